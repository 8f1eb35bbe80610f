package job

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SavrnaSS/replotre/internal/repository"
)

const actionRetention = 90 * 24 * time.Hour

// RetentionJob trims old audit rows so the admin_actions table stays small.
type RetentionJob struct {
	aa repository.AdminActionRepository
}

func NewRetentionJob(aa repository.AdminActionRepository) *RetentionJob {
	return &RetentionJob{
		aa: aa,
	}
}

func (c *RetentionJob) PurgeOldActions() {
	ctx := context.Background()

	cutoff := time.Now().Add(-actionRetention)
	count, err := c.aa.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		slog.Info(err.Error())
		return
	}

	if count > 0 {
		slog.Info(fmt.Sprintf("purged %d old admin actions", count))
	}
}
