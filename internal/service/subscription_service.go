package service

import (
	"context"
	"fmt"
	"strings"

	config "github.com/SavrnaSS/replotre/configs"
	"github.com/SavrnaSS/replotre/internal/models"
	"github.com/SavrnaSS/replotre/internal/repository"
	"github.com/SavrnaSS/replotre/internal/schedule"
	"github.com/SavrnaSS/replotre/internal/transfer"
)

type SubscriptionService interface {
	HandleSubscription(ctx context.Context, payload *transfer.SubscriptionEvent) error
}

type subscriptionService struct {
	cfg config.Config
	u   repository.UserRepository
	s   repository.SubscriptionRepository
	b   repository.BillingRepository
}

func NewSubscriptionService(cfg config.Config, u repository.UserRepository, s repository.SubscriptionRepository, b repository.BillingRepository) SubscriptionService {
	return &subscriptionService{
		cfg: cfg,
		u:   u,
		s:   s,
		b:   b,
	}
}

func (s *subscriptionService) HandleSubscription(ctx context.Context, payload *transfer.SubscriptionEvent) error {
	switch payload.EventType {
	case "subscription.paid":
		customerEmail := payload.Object.Customer.Email

		user, isExist, err := s.u.GetByEmail(ctx, customerEmail)
		if err != nil {
			return fmt.Errorf("fetching user by email failed: %w", err)
		}

		var userID int64
		if !isExist {
			userID, err = s.u.Create(ctx, nil, &models.User{
				Email: customerEmail,
			})
			if err != nil {
				return err
			}
		} else {
			userID = user.ID
		}

		plan := planFromEvent(payload)

		subscriptionInfo := &models.Subscription{
			UserID:              userID,
			SubscriptionID:      payload.Object.ID,
			Plan:                plan,
			Status:              payload.Object.Status,
			SubscriptionEndDate: payload.Object.CurrentPeriodEndDate,
		}
		if _, err = s.s.Create(ctx, subscriptionInfo); err != nil {
			return err
		}

		billing := &models.BillingRecord{
			UserID:      userID,
			Plan:        plan,
			AmountCents: int64(payload.Object.Product.Price),
			Status:      payload.Object.Status,
		}
		if _, err = s.b.Create(ctx, billing); err != nil {
			return err
		}

	case "subscription.updated", "subscription.cancelled":
		subscriptionInfo := &models.Subscription{
			SubscriptionID:      payload.Object.ID,
			Plan:                planFromEvent(payload),
			Status:              payload.Object.Status,
			SubscriptionEndDate: payload.Object.CurrentPeriodEndDate,
		}
		if err := s.s.UpdateBySubscriptionID(ctx, subscriptionInfo); err != nil {
			return err
		}
	}

	return nil
}

func planFromEvent(payload *transfer.SubscriptionEvent) string {
	switch strings.ToLower(payload.Object.Metadata.Plan) {
	case schedule.PlanBasic, schedule.PlanPro, schedule.PlanElite:
		return strings.ToLower(payload.Object.Metadata.Plan)
	}

	name := strings.ToLower(payload.Object.Product.Name)
	switch {
	case strings.Contains(name, schedule.PlanElite):
		return schedule.PlanElite
	case strings.Contains(name, schedule.PlanPro):
		return schedule.PlanPro
	default:
		return schedule.PlanBasic
	}
}
