package service

import (
	"context"

	"github.com/SavrnaSS/replotre/internal/repository"
	"github.com/SavrnaSS/replotre/internal/schedule"
)

type PlanService interface {
	ResolvePlan(ctx context.Context, userID int64) (schedule.Plan, error)
}

type planService struct {
	sub repository.SubscriptionRepository
	b   repository.BillingRepository
	p   repository.ProfileRepository
}

func NewPlanService(sub repository.SubscriptionRepository, b repository.BillingRepository, p repository.ProfileRepository) PlanService {
	return &planService{
		sub: sub,
		b:   b,
		p:   p,
	}
}

// ResolvePlan picks the effective plan by precedence: active subscription,
// then latest billing record, then onboarding profile, then basic.
func (s *planService) ResolvePlan(ctx context.Context, userID int64) (schedule.Plan, error) {
	sub, ok, err := s.sub.GetActiveByUserID(ctx, userID)
	if err != nil {
		return schedule.Plan{}, err
	}
	if ok && sub.Plan != "" {
		return schedule.PlanByKey(sub.Plan), nil
	}

	billing, ok, err := s.b.GetLatestByUserID(ctx, userID)
	if err != nil {
		return schedule.Plan{}, err
	}
	if ok && billing.Plan != "" {
		return schedule.PlanByKey(billing.Plan), nil
	}

	profile, ok, err := s.p.GetByUserID(ctx, userID)
	if err != nil {
		return schedule.Plan{}, err
	}
	if ok && profile.Plan != "" {
		return schedule.PlanByKey(profile.Plan), nil
	}

	return schedule.PlanByKey(schedule.PlanBasic), nil
}
