package transfer

import "time"

type ScheduleItem struct {
	ID           string    `json:"id"`
	Time         string    `json:"time"`
	Label        string    `json:"label"`
	Title        string    `json:"title"`
	Src          string    `json:"src"`
	DateKey      string    `json:"dateKey"`
	ScheduleDate time.Time `json:"scheduleDate"`
}

const (
	ReasonNoImages      = "no-images"
	ReasonAdminDisabled = "admin-disabled"
	ReasonExhausted     = "exhausted"
)

type ScheduleResult struct {
	Items     []ScheduleItem `json:"items"`
	Exhausted bool           `json:"exhausted"`
	Reason    *string        `json:"reason"`
	Remaining int            `json:"remaining"`
}
