package models

import "time"

// AdminAction is an append-only audit/alert log entry. Exhaustion alerts use
// action "schedule.exhausted.<influencerId>" and the (user_id, action,
// created_at) lookup doubles as the 24h rate limiter.
type AdminAction struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	Action    string    `db:"action" json:"action"`
	Detail    string    `db:"detail" json:"detail"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
