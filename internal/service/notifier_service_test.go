package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SavrnaSS/replotre/internal/live"
	"github.com/SavrnaSS/replotre/internal/models"
	"github.com/SavrnaSS/replotre/internal/queue"
)

type fakeAdminActionRepo struct {
	actions []*models.AdminAction
	nextID  int64
}

func (f *fakeAdminActionRepo) Create(ctx context.Context, a *models.AdminAction) (int64, error) {
	f.nextID++
	cp := *a
	cp.ID = f.nextID
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now()
	}
	f.actions = append(f.actions, &cp)
	return cp.ID, nil
}

func (f *fakeAdminActionRepo) ExistsSince(ctx context.Context, userID int64, action string, since time.Time) (bool, error) {
	for _, a := range f.actions {
		if a.UserID == userID && a.Action == action && a.CreatedAt.After(since) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAdminActionRepo) ListRecent(ctx context.Context, limit int) ([]*models.AdminAction, error) {
	out := make([]*models.AdminAction, 0, limit)
	for i := len(f.actions) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, f.actions[i])
	}
	return out, nil
}

func (f *fakeAdminActionRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	var kept []*models.AdminAction
	var deleted int64
	for _, a := range f.actions {
		if a.CreatedAt.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, a)
	}
	f.actions = kept
	return deleted, nil
}

func TestMaybeNotifyExhaustedRateLimited(t *testing.T) {
	ctx := context.Background()
	aa := &fakeAdminActionRepo{}
	hub := live.NewHub()
	nt := NewNotifierService(aa, queue.NewQueue(aa, hub), nil)

	nt.MaybeNotifyExhausted(ctx, testUserID, testInfluencer, "out of images")
	nt.MaybeNotifyExhausted(ctx, testUserID, testInfluencer, "out of images")
	nt.MaybeNotifyExhausted(ctx, testUserID, testInfluencer, "still out of images")

	require.Len(t, aa.actions, 1, "repeat alerts within 24h collapse")
	assert.Equal(t, "schedule.exhausted.lucy", aa.actions[0].Action)
	assert.Equal(t, testUserID, aa.actions[0].UserID)
}

func TestMaybeNotifyExhaustedPerPair(t *testing.T) {
	ctx := context.Background()
	aa := &fakeAdminActionRepo{}
	nt := NewNotifierService(aa, queue.NewQueue(aa, live.NewHub()), nil)

	nt.MaybeNotifyExhausted(ctx, testUserID, "lucy", "out")
	nt.MaybeNotifyExhausted(ctx, testUserID, "mara", "out")
	nt.MaybeNotifyExhausted(ctx, int64(99), "lucy", "out")

	assert.Len(t, aa.actions, 3, "different pairs alert independently")
}

func TestMaybeNotifyExhaustedAfterWindowExpires(t *testing.T) {
	ctx := context.Background()
	aa := &fakeAdminActionRepo{}
	nt := NewNotifierService(aa, queue.NewQueue(aa, live.NewHub()), nil)

	nt.MaybeNotifyExhausted(ctx, testUserID, testInfluencer, "out")
	require.Len(t, aa.actions, 1)

	// Age the existing alert past the rate-limit window.
	aa.actions[0].CreatedAt = time.Now().Add(-25 * time.Hour)

	nt.MaybeNotifyExhausted(ctx, testUserID, testInfluencer, "out again")
	assert.Len(t, aa.actions, 2)
}
