package models

import "time"

type ScheduledPost struct {
	ID           string     `db:"id" json:"id"`
	UserID       int64      `db:"user_id" json:"user_id"`
	InfluencerID string     `db:"influencer_id" json:"influencer_id"`
	ImageSrc     string     `db:"image_src" json:"image_src"`
	ScheduleDate time.Time  `db:"schedule_date" json:"schedule_date"`
	Time         string     `db:"time" json:"time"`
	Status       string     `db:"status" json:"status"` // scheduled, cancelled
	Label        string     `db:"label" json:"label"`
	Title        string     `db:"title" json:"title"`
	CancelledAt  *time.Time `db:"cancelled_at" json:"cancelled_at,omitempty"`
	CancelledBy  *int64     `db:"cancelled_by" json:"cancelled_by,omitempty"`
	AdminNote    *string    `db:"admin_note" json:"admin_note,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

const (
	PostStatusScheduled = "scheduled"
	PostStatusCancelled = "cancelled"
)
