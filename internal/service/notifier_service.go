package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/SavrnaSS/replotre/internal/queue"
	"github.com/SavrnaSS/replotre/internal/repository"
)

// NotifierService raises an admin alert the first time a user+influencer
// pair runs out of assets or is blocked, at most once per 24h. It must never
// fail or block the allocation response, so every error path logs and
// returns.
type NotifierService interface {
	MaybeNotifyExhausted(ctx context.Context, userID int64, influencerID, detail string)
}

type notifierService struct {
	aa     repository.AdminActionRepository
	q      *queue.Queue
	client *asynq.Client
}

// NewNotifierService delivers alerts through asynq when a client is
// provided, falling back to inline recording otherwise (and when the
// enqueue itself fails).
func NewNotifierService(aa repository.AdminActionRepository, q *queue.Queue, client *asynq.Client) NotifierService {
	return &notifierService{
		aa:     aa,
		q:      q,
		client: client,
	}
}

func (s *notifierService) MaybeNotifyExhausted(ctx context.Context, userID int64, influencerID, detail string) {
	action := fmt.Sprintf("schedule.exhausted.%s", influencerID)

	exists, err := s.aa.ExistsSince(ctx, userID, action, time.Now().Add(-24*time.Hour))
	if err != nil {
		slog.Info(err.Error())
		return
	}
	if exists {
		return
	}

	payload := queue.ExhaustedAlertPayload{
		UserID:       userID,
		InfluencerID: influencerID,
		Detail:       detail,
	}

	if s.client != nil {
		err := queue.EnqueueExhaustedAlert(s.client, payload)
		if err == nil {
			return
		}
		slog.Info(err.Error())
	}

	if err := s.q.RecordExhaustedAlert(ctx, payload); err != nil {
		slog.Info(err.Error())
	}
}
