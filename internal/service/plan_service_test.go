package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SavrnaSS/replotre/internal/models"
	"github.com/SavrnaSS/replotre/internal/schedule"
	"github.com/SavrnaSS/replotre/internal/transfer"
)

type fakeSubscriptionRepo struct {
	active *models.Subscription
}

func (f *fakeSubscriptionRepo) GetActiveByUserID(ctx context.Context, userID int64) (*models.Subscription, bool, error) {
	if f.active == nil {
		return nil, false, nil
	}
	return f.active, true, nil
}

func (f *fakeSubscriptionRepo) Create(ctx context.Context, s *models.Subscription) (int64, error) {
	f.active = s
	return 1, nil
}

func (f *fakeSubscriptionRepo) UpdateBySubscriptionID(ctx context.Context, s *models.Subscription) error {
	f.active = s
	return nil
}

type fakeBillingRepo struct {
	latest *models.BillingRecord
}

func (f *fakeBillingRepo) Create(ctx context.Context, r *models.BillingRecord) (int64, error) {
	f.latest = r
	return 1, nil
}

func (f *fakeBillingRepo) GetLatestByUserID(ctx context.Context, userID int64) (*models.BillingRecord, bool, error) {
	if f.latest == nil {
		return nil, false, nil
	}
	return f.latest, true, nil
}

func TestResolvePlanPrecedence(t *testing.T) {
	ctx := context.Background()
	sub := &fakeSubscriptionRepo{}
	billing := &fakeBillingRepo{}
	profiles := &fakeProfileRepo{}

	svc := NewPlanService(sub, billing, profiles)

	plan, err := svc.ResolvePlan(ctx, testUserID)
	require.NoError(t, err)
	assert.Equal(t, schedule.PlanBasic, plan.Key, "no signal defaults to basic")

	profiles.profile = &models.Profile{UserID: testUserID, Plan: schedule.PlanPro}
	plan, err = svc.ResolvePlan(ctx, testUserID)
	require.NoError(t, err)
	assert.Equal(t, schedule.PlanPro, plan.Key, "profile plan applies when nothing was paid")

	billing.latest = &models.BillingRecord{UserID: testUserID, Plan: schedule.PlanElite}
	plan, err = svc.ResolvePlan(ctx, testUserID)
	require.NoError(t, err)
	assert.Equal(t, schedule.PlanElite, plan.Key, "billing history beats the profile")

	sub.active = &models.Subscription{
		UserID:              testUserID,
		Plan:                schedule.PlanBasic,
		Status:              models.SubscriptionStatusActive,
		SubscriptionEndDate: time.Now().Add(time.Hour),
	}
	plan, err = svc.ResolvePlan(ctx, testUserID)
	require.NoError(t, err)
	assert.Equal(t, schedule.PlanBasic, plan.Key, "an active subscription wins outright")
}

func TestPlanFromEvent(t *testing.T) {
	event := func(metaPlan, productName string) *transfer.SubscriptionEvent {
		var e transfer.SubscriptionEvent
		e.Object.Metadata.Plan = metaPlan
		e.Object.Product.Name = productName
		return &e
	}

	assert.Equal(t, schedule.PlanElite, planFromEvent(event("Elite", "whatever")))
	assert.Equal(t, schedule.PlanPro, planFromEvent(event("pro", "")))
	assert.Equal(t, schedule.PlanElite, planFromEvent(event("", "Replotre Elite Monthly")))
	assert.Equal(t, schedule.PlanPro, planFromEvent(event("", "Pro plan")))
	assert.Equal(t, schedule.PlanBasic, planFromEvent(event("", "Starter")))
	assert.Equal(t, schedule.PlanBasic, planFromEvent(event("vip", "")))
}
