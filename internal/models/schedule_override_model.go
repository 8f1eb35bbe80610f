package models

import "time"

// ScheduleOverride is admin-authored scheduling policy. Nullability of
// UserID/InfluencerID encodes specificity: both set is the most specific
// match, both null is the global default.
type ScheduleOverride struct {
	ID               int64     `db:"id" json:"id"`
	UserID           *int64    `db:"user_id" json:"user_id"`
	InfluencerID     *string   `db:"influencer_id" json:"influencer_id"`
	Disabled         bool      `db:"disabled" json:"disabled"`
	Paused           bool      `db:"paused" json:"paused"`
	OverrideDaily    *int      `db:"override_daily" json:"override_daily"`
	OverrideMonthly  *int      `db:"override_monthly" json:"override_monthly"`
	OverrideTime     *string   `db:"override_time" json:"override_time"`
	OverrideTimeZone *string   `db:"override_time_zone" json:"override_time_zone"`
	Reason           *string   `db:"reason" json:"reason"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
}
