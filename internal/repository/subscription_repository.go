package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/SavrnaSS/replotre/internal/models"
)

type SubscriptionRepository interface {
	GetActiveByUserID(ctx context.Context, userID int64) (*models.Subscription, bool, error)
	Create(ctx context.Context, subscription *models.Subscription) (int64, error)
	UpdateBySubscriptionID(ctx context.Context, subscription *models.Subscription) error
}

type subscriptionRepository struct {
	db *sql.DB
}

func NewSubscriptionRepository(db *sql.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) GetActiveByUserID(ctx context.Context, userID int64) (*models.Subscription, bool, error) {
	var s models.Subscription
	query := `
		SELECT id, user_id, subscription_id, plan, status, subscription_end_date
		FROM subscriptions
		WHERE user_id = $1 AND status = $2 AND subscription_end_date > $3
		ORDER BY created_at DESC
		LIMIT 1
	`
	err := r.db.QueryRowContext(ctx, query, userID, models.SubscriptionStatusActive, time.Now()).Scan(&s.ID, &s.UserID, &s.SubscriptionID, &s.Plan, &s.Status, &s.SubscriptionEndDate)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}
	return &s, true, nil
}

func (r *subscriptionRepository) Create(ctx context.Context, subscription *models.Subscription) (int64, error) {
	query := `
		INSERT INTO subscriptions (user_id, subscription_id, plan, status, subscription_end_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	var id int64
	err := r.db.QueryRowContext(ctx, query, subscription.UserID, subscription.SubscriptionID, subscription.Plan, subscription.Status, subscription.SubscriptionEndDate).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return id, nil
}

func (r *subscriptionRepository) UpdateBySubscriptionID(ctx context.Context, subscription *models.Subscription) error {
	query := `
		UPDATE subscriptions
		SET plan = $1,
			status = $2,
			subscription_end_date = $3,
			updated_at = $4
		WHERE subscription_id = $5
	`
	_, err := r.db.ExecContext(ctx, query, subscription.Plan, subscription.Status, subscription.SubscriptionEndDate, time.Now(), subscription.SubscriptionID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
