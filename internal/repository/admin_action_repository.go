package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/SavrnaSS/replotre/internal/models"
)

type AdminActionRepository interface {
	Create(ctx context.Context, a *models.AdminAction) (int64, error)
	ExistsSince(ctx context.Context, userID int64, action string, since time.Time) (bool, error)
	ListRecent(ctx context.Context, limit int) ([]*models.AdminAction, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type adminActionRepository struct {
	db *sql.DB
}

func NewAdminActionRepository(db *sql.DB) AdminActionRepository {
	return &adminActionRepository{db: db}
}

func (r *adminActionRepository) Create(ctx context.Context, a *models.AdminAction) (int64, error) {
	query := `INSERT INTO admin_actions (user_id, action, detail) VALUES ($1, $2, $3) RETURNING id`
	var id int64
	err := r.db.QueryRowContext(ctx, query, a.UserID, a.Action, a.Detail).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return id, nil
}

func (r *adminActionRepository) ExistsSince(ctx context.Context, userID int64, action string, since time.Time) (bool, error) {
	query := `SELECT 1 FROM admin_actions WHERE user_id = $1 AND action = $2 AND created_at >= $3 LIMIT 1`
	var result int
	err := r.db.QueryRowContext(ctx, query, userID, action, since).Scan(&result)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		slog.Info(err.Error())
		return false, err
	}
	return result == 1, nil
}

func (r *adminActionRepository) ListRecent(ctx context.Context, limit int) ([]*models.AdminAction, error) {
	query := `SELECT id, user_id, action, detail, created_at FROM admin_actions ORDER BY created_at DESC LIMIT $1`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var actions []*models.AdminAction
	for rows.Next() {
		var a models.AdminAction
		if err := rows.Scan(&a.ID, &a.UserID, &a.Action, &a.Detail, &a.CreatedAt); err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		actions = append(actions, &a)
	}
	return actions, rows.Err()
}

func (r *adminActionRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `DELETE FROM admin_actions WHERE created_at < $1`
	res, err := r.db.ExecContext(ctx, query, cutoff)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return res.RowsAffected()
}
