package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SavrnaSS/replotre/internal/models"
)

type ScheduledPostRepository interface {
	GetByID(ctx context.Context, id string) (*models.ScheduledPost, error)
	ListWindow(ctx context.Context, userID int64, influencerID string, from, to time.Time, status string) ([]*models.ScheduledPost, error)
	InsertIgnoreConflicts(ctx context.Context, posts []*models.ScheduledPost) (int64, error)
	UsedImages(ctx context.Context, userID int64, influencerID string) (map[string]bool, error)
	EarliestScheduled(ctx context.Context, userID int64, influencerID string) (*models.ScheduledPost, bool, error)
	CountByStatus(ctx context.Context, userID int64, influencerID string, status string) (int64, error)
	BulkShift(ctx context.Context, userID int64, influencerID *string, shiftDays int, setTime *string) (int64, error)
	BulkCancel(ctx context.Context, userID int64, influencerID *string, cancelledBy int64, note string) (int64, error)
}

type scheduledPostRepository struct {
	db *sql.DB
}

func NewScheduledPostRepository(db *sql.DB) ScheduledPostRepository {
	return &scheduledPostRepository{db: db}
}

const scheduledPostColumns = `id, user_id, influencer_id, image_src, schedule_date, time, status, label, title, cancelled_at, cancelled_by, admin_note, created_at, updated_at`

func scanScheduledPost(row interface{ Scan(...any) error }) (*models.ScheduledPost, error) {
	var p models.ScheduledPost
	err := row.Scan(&p.ID, &p.UserID, &p.InfluencerID, &p.ImageSrc, &p.ScheduleDate, &p.Time, &p.Status, &p.Label, &p.Title, &p.CancelledAt, &p.CancelledBy, &p.AdminNote, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *scheduledPostRepository) GetByID(ctx context.Context, id string) (*models.ScheduledPost, error) {
	query := `SELECT ` + scheduledPostColumns + ` FROM scheduled_posts WHERE id = $1`
	post, err := scanScheduledPost(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}
	return post, nil
}

func (r *scheduledPostRepository) ListWindow(ctx context.Context, userID int64, influencerID string, from, to time.Time, status string) ([]*models.ScheduledPost, error) {
	query := `
		SELECT ` + scheduledPostColumns + `
		FROM scheduled_posts
		WHERE user_id = $1 AND influencer_id = $2
		  AND schedule_date >= $3 AND schedule_date < $4
		  AND ($5 = '' OR status = $5)
		ORDER BY schedule_date ASC
	`
	rows, err := r.db.QueryContext(ctx, query, userID, influencerID, from, to, status)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var posts []*models.ScheduledPost
	for rows.Next() {
		post, err := scanScheduledPost(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

// InsertIgnoreConflicts inserts the staged rows in one statement. Rows that
// collide with the slot or image uniqueness indexes are silently dropped, so
// repeated or concurrent allocation calls never duplicate a slot or reuse a
// consumed image. Returns the number of rows actually written.
func (r *scheduledPostRepository) InsertIgnoreConflicts(ctx context.Context, posts []*models.ScheduledPost) (int64, error) {
	if len(posts) == 0 {
		return 0, nil
	}

	var sb strings.Builder
	sb.WriteString(`INSERT INTO scheduled_posts (id, user_id, influencer_id, image_src, schedule_date, time, status, label, title) VALUES `)
	args := make([]any, 0, len(posts)*9)
	for i, p := range posts {
		if i > 0 {
			sb.WriteString(", ")
		}
		base := i * 9
		fmt.Fprintf(&sb, "($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8, base+9)
		args = append(args, p.ID, p.UserID, p.InfluencerID, p.ImageSrc, p.ScheduleDate, p.Time, p.Status, p.Label, p.Title)
	}
	sb.WriteString(` ON CONFLICT DO NOTHING`)

	res, err := r.db.ExecContext(ctx, sb.String(), args...)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	inserted, err := res.RowsAffected()
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return inserted, nil
}

func (r *scheduledPostRepository) UsedImages(ctx context.Context, userID int64, influencerID string) (map[string]bool, error) {
	query := `
		SELECT image_src FROM scheduled_posts
		WHERE user_id = $1 AND influencer_id = $2 AND status <> $3
	`
	rows, err := r.db.QueryContext(ctx, query, userID, influencerID, models.PostStatusCancelled)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	used := make(map[string]bool)
	for rows.Next() {
		var src string
		if err := rows.Scan(&src); err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		used[src] = true
	}
	return used, rows.Err()
}

func (r *scheduledPostRepository) EarliestScheduled(ctx context.Context, userID int64, influencerID string) (*models.ScheduledPost, bool, error) {
	query := `
		SELECT ` + scheduledPostColumns + `
		FROM scheduled_posts
		WHERE user_id = $1 AND influencer_id = $2 AND status = $3
		ORDER BY schedule_date ASC
		LIMIT 1
	`
	post, err := scanScheduledPost(r.db.QueryRowContext(ctx, query, userID, influencerID, models.PostStatusScheduled))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}
	return post, true, nil
}

func (r *scheduledPostRepository) CountByStatus(ctx context.Context, userID int64, influencerID string, status string) (int64, error) {
	query := `SELECT COUNT(*) FROM scheduled_posts WHERE user_id = $1 AND influencer_id = $2 AND status = $3`
	var count int64
	if err := r.db.QueryRowContext(ctx, query, userID, influencerID, status).Scan(&count); err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return count, nil
}

func (r *scheduledPostRepository) BulkShift(ctx context.Context, userID int64, influencerID *string, shiftDays int, setTime *string) (int64, error) {
	query := `
		UPDATE scheduled_posts
		SET schedule_date = schedule_date + make_interval(days => $1),
			time = COALESCE($2, time),
			updated_at = $3
		WHERE user_id = $4 AND status = $5
		  AND ($6::text IS NULL OR influencer_id = $6)
	`
	res, err := r.db.ExecContext(ctx, query, shiftDays, setTime, time.Now(), userID, models.PostStatusScheduled, influencerID)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return res.RowsAffected()
}

func (r *scheduledPostRepository) BulkCancel(ctx context.Context, userID int64, influencerID *string, cancelledBy int64, note string) (int64, error) {
	query := `
		UPDATE scheduled_posts
		SET status = $1,
			cancelled_at = $2,
			cancelled_by = $3,
			admin_note = $4,
			updated_at = $2
		WHERE user_id = $5 AND status = $6
		  AND ($7::text IS NULL OR influencer_id = $7)
	`
	res, err := r.db.ExecContext(ctx, query, models.PostStatusCancelled, time.Now(), cancelledBy, note, userID, models.PostStatusScheduled, influencerID)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return res.RowsAffected()
}
