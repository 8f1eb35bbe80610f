package transfer

type OverrideCreation struct {
	UserID           *int64  `json:"user_id"`
	InfluencerID     *string `json:"influencer_id"`
	Disabled         bool    `json:"disabled"`
	Paused           bool    `json:"paused"`
	OverrideDaily    *int    `json:"override_daily"`
	OverrideMonthly  *int    `json:"override_monthly"`
	OverrideTime     *string `json:"override_time"`
	OverrideTimeZone *string `json:"override_time_zone"`
	Reason           *string `json:"reason"`
}

type BulkReschedule struct {
	UserID       int64   `json:"user_id"`
	InfluencerID *string `json:"influencer_id"`
	ShiftDays    int     `json:"shift_days"`
	SetTime      *string `json:"set_time"` // 24h "HH:MM"; nil keeps each row's time
}

type BulkCancel struct {
	UserID       int64   `json:"user_id"`
	InfluencerID *string `json:"influencer_id"`
	Note         string  `json:"note"`
}
