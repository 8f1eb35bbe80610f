package queue

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SavrnaSS/replotre/internal/live"
	"github.com/SavrnaSS/replotre/internal/models"
)

type fakeActionRepo struct {
	actions []*models.AdminAction
	nextID  int64
}

func (f *fakeActionRepo) Create(ctx context.Context, a *models.AdminAction) (int64, error) {
	f.nextID++
	cp := *a
	cp.ID = f.nextID
	cp.CreatedAt = time.Now()
	f.actions = append(f.actions, &cp)
	return cp.ID, nil
}

func (f *fakeActionRepo) ExistsSince(ctx context.Context, userID int64, action string, since time.Time) (bool, error) {
	for _, a := range f.actions {
		if a.UserID == userID && a.Action == action && a.CreatedAt.After(since) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeActionRepo) ListRecent(ctx context.Context, limit int) ([]*models.AdminAction, error) {
	return f.actions, nil
}

func (f *fakeActionRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	return 0, nil
}

func TestRecordExhaustedAlert(t *testing.T) {
	aa := &fakeActionRepo{}
	hub := live.NewHub()
	q := NewQueue(aa, hub)

	events, unsubscribe := hub.Subscribe()
	defer unsubscribe()

	payload := ExhaustedAlertPayload{UserID: 7, InfluencerID: "lucy", Detail: "out of images"}
	require.NoError(t, q.RecordExhaustedAlert(context.Background(), payload))

	require.Len(t, aa.actions, 1)
	assert.Equal(t, "schedule.exhausted.lucy", aa.actions[0].Action)
	assert.Equal(t, "out of images", aa.actions[0].Detail)

	select {
	case ev := <-events:
		assert.Equal(t, "actions.updated", ev.Type)
		entry, ok := ev.Payload.(*models.AdminAction)
		require.True(t, ok)
		assert.Equal(t, aa.actions[0].ID, entry.ID)
	default:
		t.Fatal("expected a live event")
	}
}

func TestRecordExhaustedAlertIdempotent(t *testing.T) {
	aa := &fakeActionRepo{}
	q := NewQueue(aa, live.NewHub())

	payload := ExhaustedAlertPayload{UserID: 7, InfluencerID: "lucy", Detail: "out"}
	require.NoError(t, q.RecordExhaustedAlert(context.Background(), payload))
	require.NoError(t, q.RecordExhaustedAlert(context.Background(), payload))

	assert.Len(t, aa.actions, 1, "replayed deliveries must not duplicate the alert")
}

func TestHandleExhaustedAlertTask(t *testing.T) {
	aa := &fakeActionRepo{}
	q := NewQueue(aa, live.NewHub())

	payload := ExhaustedAlertPayload{UserID: 7, InfluencerID: "mara", Detail: "out"}
	raw, err := json.Marshal(payload)
	require.NoError(t, err)

	task := asynq.NewTask(TaskTypeExhaustedAlert, raw)
	require.NoError(t, q.HandleExhaustedAlertTask(context.Background(), task))

	require.Len(t, aa.actions, 1)
	assert.Equal(t, "schedule.exhausted.mara", aa.actions[0].Action)

	badTask := asynq.NewTask(TaskTypeExhaustedAlert, []byte("{not json"))
	assert.Error(t, q.HandleExhaustedAlertTask(context.Background(), badTask))
}
