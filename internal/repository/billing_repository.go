package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/SavrnaSS/replotre/internal/models"
)

type BillingRepository interface {
	Create(ctx context.Context, record *models.BillingRecord) (int64, error)
	GetLatestByUserID(ctx context.Context, userID int64) (*models.BillingRecord, bool, error)
}

type billingRepository struct {
	db *sql.DB
}

func NewBillingRepository(db *sql.DB) BillingRepository {
	return &billingRepository{db: db}
}

func (r *billingRepository) Create(ctx context.Context, record *models.BillingRecord) (int64, error) {
	query := `
		INSERT INTO billing_history (user_id, plan, amount_cents, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	var id int64
	err := r.db.QueryRowContext(ctx, query, record.UserID, record.Plan, record.AmountCents, record.Status).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return id, nil
}

func (r *billingRepository) GetLatestByUserID(ctx context.Context, userID int64) (*models.BillingRecord, bool, error) {
	var b models.BillingRecord
	query := `
		SELECT id, user_id, plan, amount_cents, status, created_at
		FROM billing_history
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&b.ID, &b.UserID, &b.Plan, &b.AmountCents, &b.Status, &b.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}
	return &b, true, nil
}
