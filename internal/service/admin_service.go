package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SavrnaSS/replotre/internal/live"
	"github.com/SavrnaSS/replotre/internal/models"
	"github.com/SavrnaSS/replotre/internal/repository"
	"github.com/SavrnaSS/replotre/internal/schedule"
	"github.com/SavrnaSS/replotre/internal/transfer"
)

const actionsUpdatedEvent = "actions.updated"

type AdminService interface {
	CreateOverride(ctx context.Context, adminID int64, oc *transfer.OverrideCreation) (int64, error)
	ListOverrides(ctx context.Context, userID *int64, influencerID *string) ([]*models.ScheduleOverride, error)
	BulkReschedule(ctx context.Context, adminID int64, br *transfer.BulkReschedule) (int64, error)
	BulkCancel(ctx context.Context, adminID int64, bc *transfer.BulkCancel) (int64, error)
	ListActions(ctx context.Context, limit int) ([]*models.AdminAction, error)
}

type adminService struct {
	ov  repository.OverrideRepository
	sp  repository.ScheduledPostRepository
	aa  repository.AdminActionRepository
	hub *live.Hub
}

func NewAdminService(
	ov repository.OverrideRepository,
	sp repository.ScheduledPostRepository,
	aa repository.AdminActionRepository,
	hub *live.Hub) AdminService {
	return &adminService{
		ov:  ov,
		sp:  sp,
		aa:  aa,
		hub: hub,
	}
}

func (s *adminService) CreateOverride(ctx context.Context, adminID int64, oc *transfer.OverrideCreation) (int64, error) {
	if oc == nil {
		err := errors.New("override data is nil")
		slog.Info(err.Error())
		return 0, err
	}

	override := &models.ScheduleOverride{
		UserID:           oc.UserID,
		InfluencerID:     oc.InfluencerID,
		Disabled:         oc.Disabled,
		Paused:           oc.Paused,
		OverrideDaily:    oc.OverrideDaily,
		OverrideMonthly:  oc.OverrideMonthly,
		OverrideTime:     oc.OverrideTime,
		OverrideTimeZone: oc.OverrideTimeZone,
		Reason:           oc.Reason,
	}

	id, err := s.ov.Create(ctx, override)
	if err != nil {
		return 0, err
	}

	s.audit(ctx, adminID, "override.created", fmt.Sprintf("override %d created", id))
	return id, nil
}

func (s *adminService) ListOverrides(ctx context.Context, userID *int64, influencerID *string) ([]*models.ScheduleOverride, error) {
	return s.ov.List(ctx, userID, influencerID)
}

// BulkReschedule shifts every scheduled (not cancelled) row of the user,
// optionally scoped to one influencer, by ShiftDays and/or overwrites the
// time label. Rows keep their original time when SetTime is absent.
func (s *adminService) BulkReschedule(ctx context.Context, adminID int64, br *transfer.BulkReschedule) (int64, error) {
	if br == nil || br.UserID == 0 {
		err := errors.New("user id is required")
		slog.Info(err.Error())
		return 0, err
	}

	var setTime *string
	if br.SetTime != nil && *br.SetTime != "" {
		formatted := schedule.FormatPreferredTime(*br.SetTime)
		setTime = &formatted
	}

	count, err := s.sp.BulkShift(ctx, br.UserID, br.InfluencerID, br.ShiftDays, setTime)
	if err != nil {
		return 0, err
	}

	s.audit(ctx, adminID, "schedule.rescheduled", fmt.Sprintf("shifted %d posts of user %d by %d day(s)", count, br.UserID, br.ShiftDays))
	return count, nil
}

// BulkCancel marks rows cancelled and stamps the audit fields; rows are kept
// for audit rather than deleted.
func (s *adminService) BulkCancel(ctx context.Context, adminID int64, bc *transfer.BulkCancel) (int64, error) {
	if bc == nil || bc.UserID == 0 {
		err := errors.New("user id is required")
		slog.Info(err.Error())
		return 0, err
	}

	count, err := s.sp.BulkCancel(ctx, bc.UserID, bc.InfluencerID, adminID, bc.Note)
	if err != nil {
		return 0, err
	}

	s.audit(ctx, adminID, "schedule.cancelled", fmt.Sprintf("cancelled %d posts of user %d", count, bc.UserID))
	return count, nil
}

func (s *adminService) ListActions(ctx context.Context, limit int) ([]*models.AdminAction, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.aa.ListRecent(ctx, limit)
}

// audit failures never fail the mutation that triggered them.
func (s *adminService) audit(ctx context.Context, adminID int64, action, detail string) {
	entry := &models.AdminAction{
		UserID: adminID,
		Action: action,
		Detail: detail,
	}
	id, err := s.aa.Create(ctx, entry)
	if err != nil {
		slog.Info(err.Error())
		return
	}
	entry.ID = id
	entry.CreatedAt = time.Now()
	s.hub.Publish(actionsUpdatedEvent, entry)
}
