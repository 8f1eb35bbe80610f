package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/SavrnaSS/replotre/internal/models"
)

type OverrideRepository interface {
	ListForPair(ctx context.Context, userID int64, influencerID string) ([]*models.ScheduleOverride, error)
	List(ctx context.Context, userID *int64, influencerID *string) ([]*models.ScheduleOverride, error)
	Create(ctx context.Context, o *models.ScheduleOverride) (int64, error)
}

type overrideRepository struct {
	db *sql.DB
}

func NewOverrideRepository(db *sql.DB) OverrideRepository {
	return &overrideRepository{db: db}
}

const overrideColumns = `id, user_id, influencer_id, disabled, paused, override_daily, override_monthly, override_time, override_time_zone, reason, created_at`

func scanOverrides(rows *sql.Rows) ([]*models.ScheduleOverride, error) {
	var overrides []*models.ScheduleOverride
	for rows.Next() {
		var o models.ScheduleOverride
		err := rows.Scan(&o.ID, &o.UserID, &o.InfluencerID, &o.Disabled, &o.Paused, &o.OverrideDaily, &o.OverrideMonthly, &o.OverrideTime, &o.OverrideTimeZone, &o.Reason, &o.CreatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		overrides = append(overrides, &o)
	}
	return overrides, rows.Err()
}

// ListForPair returns every override that could apply to the pair across the
// four specificity tiers, most recent first. The resolver in
// internal/schedule depends on that ordering.
func (r *overrideRepository) ListForPair(ctx context.Context, userID int64, influencerID string) ([]*models.ScheduleOverride, error) {
	query := `
		SELECT ` + overrideColumns + `
		FROM schedule_overrides
		WHERE (user_id = $1 AND influencer_id = $2)
		   OR (user_id = $1 AND influencer_id IS NULL)
		   OR (user_id IS NULL AND influencer_id = $2)
		   OR (user_id IS NULL AND influencer_id IS NULL)
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID, influencerID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()
	return scanOverrides(rows)
}

func (r *overrideRepository) List(ctx context.Context, userID *int64, influencerID *string) ([]*models.ScheduleOverride, error) {
	query := `
		SELECT ` + overrideColumns + `
		FROM schedule_overrides
		WHERE ($1::bigint IS NULL OR user_id = $1)
		  AND ($2::text IS NULL OR influencer_id = $2)
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID, influencerID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()
	return scanOverrides(rows)
}

func (r *overrideRepository) Create(ctx context.Context, o *models.ScheduleOverride) (int64, error) {
	query := `
		INSERT INTO schedule_overrides (user_id, influencer_id, disabled, paused, override_daily, override_monthly, override_time, override_time_zone, reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	var id int64
	err := r.db.QueryRowContext(ctx, query, o.UserID, o.InfluencerID, o.Disabled, o.Paused, o.OverrideDaily, o.OverrideMonthly, o.OverrideTime, o.OverrideTimeZone, o.Reason).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return id, nil
}
