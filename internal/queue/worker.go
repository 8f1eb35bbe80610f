package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/SavrnaSS/replotre/internal/models"
	"github.com/hibiken/asynq"
)

const actionsUpdatedEvent = "actions.updated"

func (j *Queue) HandleExhaustedAlertTask(ctx context.Context, task *asynq.Task) error {
	var payload ExhaustedAlertPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return err
	}

	return j.RecordExhaustedAlert(ctx, payload)
}

// RecordExhaustedAlert appends the exhaustion action and broadcasts it to
// the admin live stream, at most once per user+influencer per 24h. The
// re-check here makes delivery idempotent when the same alert is enqueued
// by concurrent allocation calls.
func (j *Queue) RecordExhaustedAlert(ctx context.Context, payload ExhaustedAlertPayload) error {
	action := fmt.Sprintf("schedule.exhausted.%s", payload.InfluencerID)

	exists, err := j.aa.ExistsSince(ctx, payload.UserID, action, time.Now().Add(-24*time.Hour))
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	if exists {
		return nil
	}

	entry := &models.AdminAction{
		UserID: payload.UserID,
		Action: action,
		Detail: payload.Detail,
	}
	id, err := j.aa.Create(ctx, entry)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	entry.ID = id
	entry.CreatedAt = time.Now()

	j.hub.Publish(actionsUpdatedEvent, entry)
	return nil
}
