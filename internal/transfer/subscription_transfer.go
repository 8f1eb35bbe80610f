package transfer

import "time"

type SubscriptionEvent struct {
	ID        string `json:"id"`
	EventType string `json:"eventType"`
	CreatedAt int64  `json:"created_at"`
	Object    struct {
		ID      string `json:"id"`
		Product struct {
			ID       string `json:"id"`
			Name     string `json:"name"`
			Price    int    `json:"price"`
			Currency string `json:"currency"`
		} `json:"product"`
		Customer struct {
			ID    string `json:"id"`
			Email string `json:"email"`
			Name  string `json:"name"`
		} `json:"customer"`
		Status               string    `json:"status"`
		CurrentPeriodEndDate time.Time `json:"current_period_end_date"`
		Metadata             struct {
			Plan string `json:"plan"`
		} `json:"metadata"`
	} `json:"object"`
}
