package queue

import (
	"github.com/SavrnaSS/replotre/internal/live"
	"github.com/SavrnaSS/replotre/internal/repository"
)

type Queue struct {
	aa  repository.AdminActionRepository
	hub *live.Hub
}

func NewQueue(aa repository.AdminActionRepository, hub *live.Hub) *Queue {
	return &Queue{
		aa:  aa,
		hub: hub,
	}
}

const TaskTypeExhaustedAlert = "notify:exhausted"

type ExhaustedAlertPayload struct {
	UserID       int64  `json:"user_id"`
	InfluencerID string `json:"influencer_id"`
	Detail       string `json:"detail"`
}
