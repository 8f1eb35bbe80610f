package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/SavrnaSS/replotre/internal/models"
)

type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*models.Profile, bool, error)
	Upsert(ctx context.Context, p *models.Profile) error
	SetAnchorDate(ctx context.Context, userID int64, anchor time.Time) error
}

type profileRepository struct {
	db *sql.DB
}

func NewProfileRepository(db *sql.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID int64) (*models.Profile, bool, error) {
	query := `
		SELECT id, user_id, niche, schedule_time, schedule_time_zone, plan, schedule_anchor_date, created_at, updated_at
		FROM profiles WHERE user_id = $1
	`
	var p models.Profile
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&p.ID, &p.UserID, &p.Niche, &p.ScheduleTime, &p.ScheduleTimeZone, &p.Plan, &p.ScheduleAnchorDate, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}
	return &p, true, nil
}

func (r *profileRepository) Upsert(ctx context.Context, p *models.Profile) error {
	query := `
		INSERT INTO profiles (user_id, niche, schedule_time, schedule_time_zone, plan)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE
		SET niche = EXCLUDED.niche,
			schedule_time = EXCLUDED.schedule_time,
			schedule_time_zone = EXCLUDED.schedule_time_zone,
			plan = EXCLUDED.plan,
			updated_at = $6
	`
	_, err := r.db.ExecContext(ctx, query, p.UserID, p.Niche, p.ScheduleTime, p.ScheduleTimeZone, p.Plan, time.Now())
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

// SetAnchorDate records the scheduling anchor exactly once; later calls are
// no-ops so the day-index phase never moves.
func (r *profileRepository) SetAnchorDate(ctx context.Context, userID int64, anchor time.Time) error {
	query := `
		UPDATE profiles
		SET schedule_anchor_date = $1,
			updated_at = $2
		WHERE user_id = $3 AND schedule_anchor_date IS NULL
	`
	_, err := r.db.ExecContext(ctx, query, anchor, time.Now(), userID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
