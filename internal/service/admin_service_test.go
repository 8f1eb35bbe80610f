package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SavrnaSS/replotre/internal/live"
	"github.com/SavrnaSS/replotre/internal/models"
	"github.com/SavrnaSS/replotre/internal/transfer"
)

var adminID = int64(1)

func newAdminFixture() (AdminService, *fakeScheduledPostRepo, *fakeOverrideRepo, *fakeAdminActionRepo, *live.Hub) {
	sp := &fakeScheduledPostRepo{}
	ov := &fakeOverrideRepo{}
	aa := &fakeAdminActionRepo{}
	hub := live.NewHub()
	return NewAdminService(ov, sp, aa, hub), sp, ov, aa, hub
}

func TestCreateOverrideAudited(t *testing.T) {
	svc, _, ov, aa, hub := newAdminFixture()

	events, unsubscribe := hub.Subscribe()
	defer unsubscribe()

	disabled := true
	id, err := svc.CreateOverride(context.Background(), adminID, &transfer.OverrideCreation{
		UserID:   &adminID,
		Disabled: disabled,
	})
	require.NoError(t, err)
	assert.NotZero(t, id)
	require.Len(t, ov.overrides, 1)
	assert.True(t, ov.overrides[0].Disabled)

	require.Len(t, aa.actions, 1)
	assert.Equal(t, "override.created", aa.actions[0].Action)

	select {
	case ev := <-events:
		assert.Equal(t, "actions.updated", ev.Type)
	default:
		t.Fatal("expected a live event for the audit entry")
	}
}

func TestBulkRescheduleRequiresUser(t *testing.T) {
	svc, _, _, _, _ := newAdminFixture()

	_, err := svc.BulkReschedule(context.Background(), adminID, &transfer.BulkReschedule{ShiftDays: 1})
	assert.Error(t, err)

	_, err = svc.BulkReschedule(context.Background(), adminID, nil)
	assert.Error(t, err)
}

func TestBulkRescheduleShiftsAndSetsTime(t *testing.T) {
	svc, sp, _, aa, _ := newAdminFixture()

	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	sp.rows = []*models.ScheduledPost{
		{ID: "a", UserID: testUserID, InfluencerID: "lucy", ScheduleDate: day, Time: "10:00 AM", Status: models.PostStatusScheduled},
		{ID: "b", UserID: testUserID, InfluencerID: "mara", ScheduleDate: day, Time: "10:00 AM", Status: models.PostStatusScheduled},
	}

	lucy := "lucy"
	setTime := "18:30"
	count, err := svc.BulkReschedule(context.Background(), adminID, &transfer.BulkReschedule{
		UserID:       testUserID,
		InfluencerID: &lucy,
		ShiftDays:    2,
		SetTime:      &setTime,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	assert.Equal(t, day.AddDate(0, 0, 2), sp.rows[0].ScheduleDate)
	assert.Equal(t, "6:30 PM", sp.rows[0].Time)
	// The other influencer's row is untouched.
	assert.Equal(t, day, sp.rows[1].ScheduleDate)
	assert.Equal(t, "10:00 AM", sp.rows[1].Time)

	require.Len(t, aa.actions, 1)
	assert.Equal(t, "schedule.rescheduled", aa.actions[0].Action)
}

func TestBulkCancelStampsAudit(t *testing.T) {
	svc, sp, _, aa, _ := newAdminFixture()

	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	sp.rows = []*models.ScheduledPost{
		{ID: "a", UserID: testUserID, InfluencerID: "lucy", ScheduleDate: day, Time: "10:00 AM", Status: models.PostStatusScheduled},
	}

	count, err := svc.BulkCancel(context.Background(), adminID, &transfer.BulkCancel{
		UserID: testUserID,
		Note:   "creator offboarded",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	row := sp.rows[0]
	assert.Equal(t, models.PostStatusCancelled, row.Status)
	require.NotNil(t, row.CancelledBy)
	assert.Equal(t, adminID, *row.CancelledBy)
	require.NotNil(t, row.AdminNote)
	assert.Equal(t, "creator offboarded", *row.AdminNote)
	assert.NotNil(t, row.CancelledAt)

	require.Len(t, aa.actions, 1)
	assert.Equal(t, "schedule.cancelled", aa.actions[0].Action)
}

func TestListActionsLimit(t *testing.T) {
	svc, _, _, aa, _ := newAdminFixture()

	for i := 0; i < 60; i++ {
		_, err := aa.Create(context.Background(), &models.AdminAction{UserID: adminID, Action: "noop"})
		require.NoError(t, err)
	}

	actions, err := svc.ListActions(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, actions, 50, "zero limit falls back to the default")

	actions, err = svc.ListActions(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, actions, 10)

	actions, err = svc.ListActions(context.Background(), 1000)
	require.NoError(t, err)
	assert.Len(t, actions, 50, "oversized limits fall back to the default")
}
