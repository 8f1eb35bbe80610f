package models

import "time"

// Profile holds onboarding data. ScheduleAnchorDate is set once on the first
// allocation for the user and never recomputed; it phases the alternating
// basic-plan pattern and the monthly-override remainder.
type Profile struct {
	ID                 int64      `db:"id" json:"id"`
	UserID             int64      `db:"user_id" json:"user_id"`
	Niche              string     `db:"niche" json:"niche"`
	ScheduleTime       string     `db:"schedule_time" json:"schedule_time"`           // "HH:MM", 24h
	ScheduleTimeZone   string     `db:"schedule_time_zone" json:"schedule_time_zone"` // IANA name
	Plan               string     `db:"plan" json:"plan"`
	ScheduleAnchorDate *time.Time `db:"schedule_anchor_date" json:"schedule_anchor_date"`
	CreatedAt          time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time  `db:"updated_at" json:"updated_at"`
}
