package service

import (
	"context"
	"log/slog"
	"sort"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/SavrnaSS/replotre/internal/models"
	"github.com/SavrnaSS/replotre/internal/repository"
	"github.com/SavrnaSS/replotre/internal/schedule"
	"github.com/SavrnaSS/replotre/internal/transfer"
)

const (
	MinWindowDays     = 1
	MaxWindowDays     = 31
	DefaultWindowDays = 7
)

// AllocationService reconciles the scheduled-content window for a
// user+influencer pair. Every call recomputes from persisted truth; writes
// use conflict-ignoring inserts, so repeated and concurrent calls converge
// on the same window without duplicating slots or images.
type AllocationService interface {
	GetSchedule(ctx context.Context, userID int64, influencerID string, days int) (*transfer.ScheduleResult, error)
}

type allocationService struct {
	sp  repository.ScheduledPostRepository
	ov  repository.OverrideRepository
	pf  repository.ProfileRepository
	pl  PlanService
	inv InventoryService
	nt  NotifierService
	now func() time.Time
}

func NewAllocationService(
	sp repository.ScheduledPostRepository,
	ov repository.OverrideRepository,
	pf repository.ProfileRepository,
	pl PlanService,
	inv InventoryService,
	nt NotifierService) AllocationService {
	return &allocationService{
		sp:  sp,
		ov:  ov,
		pf:  pf,
		pl:  pl,
		inv: inv,
		nt:  nt,
		now: time.Now,
	}
}

func (s *allocationService) GetSchedule(ctx context.Context, userID int64, influencerID string, days int) (*transfer.ScheduleResult, error) {
	if days < MinWindowDays {
		days = MinWindowDays
	}
	if days > MaxWindowDays {
		days = MaxWindowDays
	}

	plan, err := s.pl.ResolvePlan(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile, _, err := s.pf.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	overrides, err := s.ov.ListForPair(ctx, userID, influencerID)
	if err != nil {
		return nil, err
	}
	ov := schedule.ResolveOverride(userID, influencerID, overrides)

	if ov != nil && ov.Disabled {
		s.nt.MaybeNotifyExhausted(ctx, userID, influencerID, "scheduling disabled by admin override")
		reason := transfer.ReasonAdminDisabled
		return &transfer.ScheduleResult{
			Items:     []transfer.ScheduleItem{},
			Exhausted: true,
			Reason:    &reason,
		}, nil
	}

	var zoneName, preferredRaw, niche string
	if profile != nil {
		zoneName = profile.ScheduleTimeZone
		preferredRaw = profile.ScheduleTime
		niche = profile.Niche
	}
	if ov != nil && ov.OverrideTimeZone != nil && *ov.OverrideTimeZone != "" {
		zoneName = *ov.OverrideTimeZone
	}
	if ov != nil && ov.OverrideTime != nil && *ov.OverrideTime != "" {
		preferredRaw = *ov.OverrideTime
	}

	loc := schedule.LoadLocation(zoneName)
	preferred := ""
	if preferredRaw != "" {
		preferred = schedule.FormatPreferredTime(preferredRaw)
	}
	slots := schedule.EffectiveSlots(plan, preferred)

	images, err := s.inv.ListImages(ctx, influencerID)
	if err != nil {
		return nil, err
	}
	used, err := s.sp.UsedImages(ctx, userID, influencerID)
	if err != nil {
		return nil, err
	}
	available := AvailableUnconsumed(images, used)

	now := s.now()
	windowStart := schedule.LocalMidnight(now, loc, 0)
	windowEnd := schedule.LocalMidnight(now, loc, days)

	anchor, err := s.resolveAnchor(ctx, userID, influencerID, profile, windowStart)
	if err != nil {
		return nil, err
	}

	existing, err := s.sp.ListWindow(ctx, userID, influencerID, windowStart, windowEnd, models.PostStatusScheduled)
	if err != nil {
		return nil, err
	}
	taken := make(map[string]map[string]bool)
	for _, p := range existing {
		key := schedule.DateKeyInZone(p.ScheduleDate, loc)
		if taken[key] == nil {
			taken[key] = make(map[string]bool)
		}
		taken[key][p.Time] = true
	}

	exhausted := len(available) == 0
	title := postTitle(niche)
	consumed := 0
	var staged []*models.ScheduledPost

	for off := 0; off < days; off++ {
		day := schedule.LocalMidnight(now, loc, off)
		dateKey := schedule.DateKeyInZone(day, loc)
		quota := schedule.DailyQuota(plan, schedule.DayIndex(anchor, day, loc), ov)
		if quota <= 0 {
			continue
		}

		ranOut := false
		for slot := 0; slot < quota; slot++ {
			slotTime := slots[slot%len(slots)]
			if taken[dateKey][slotTime] {
				continue
			}
			if consumed >= len(available) {
				exhausted = true
				ranOut = true
				break
			}
			id, err := gonanoid.New()
			if err != nil {
				return nil, err
			}
			staged = append(staged, &models.ScheduledPost{
				ID:           id,
				UserID:       userID,
				InfluencerID: influencerID,
				ImageSrc:     available[consumed],
				ScheduleDate: day,
				Time:         slotTime,
				Status:       models.PostStatusScheduled,
				Label:        plan.Label,
				Title:        title,
			})
			consumed++
		}
		if ranOut {
			break
		}
	}

	if len(staged) > 0 && (ov == nil || !ov.Paused) {
		if _, err := s.sp.InsertIgnoreConflicts(ctx, staged); err != nil {
			return nil, err
		}
	}

	// Post-write truth: re-read the window so the response reflects committed
	// state regardless of which concurrent caller's inserts won.
	rows, err := s.sp.ListWindow(ctx, userID, influencerID, windowStart, windowEnd, models.PostStatusScheduled)
	if err != nil {
		return nil, err
	}
	byDay := make(map[string][]*models.ScheduledPost)
	for _, p := range rows {
		key := schedule.DateKeyInZone(p.ScheduleDate, loc)
		byDay[key] = append(byDay[key], p)
	}

	items := make([]transfer.ScheduleItem, 0, len(rows))
	for off := 0; off < days; off++ {
		day := schedule.LocalMidnight(now, loc, off)
		dateKey := schedule.DateKeyInZone(day, loc)
		dayRows := byDay[dateKey]
		if len(dayRows) == 0 {
			continue
		}
		sort.SliceStable(dayRows, func(i, j int) bool {
			return schedule.SlotMinutes(dayRows[i].Time) < schedule.SlotMinutes(dayRows[j].Time)
		})
		// Manual admin edits can leave more rows than the day's quota allows.
		quota := schedule.DailyQuota(plan, schedule.DayIndex(anchor, day, loc), ov)
		if quota < 0 {
			quota = 0
		}
		if len(dayRows) > quota {
			dayRows = dayRows[:quota]
		}
		for _, p := range dayRows {
			items = append(items, transfer.ScheduleItem{
				ID:           p.ID,
				Time:         p.Time,
				Label:        p.Label,
				Title:        p.Title,
				Src:          p.ImageSrc,
				DateKey:      dateKey,
				ScheduleDate: p.ScheduleDate,
			})
		}
	}

	remaining := len(available) - consumed
	if remaining < 0 {
		remaining = 0
	}
	if remaining == 0 {
		exhausted = true
	}

	var reason *string
	if exhausted {
		r := transfer.ReasonExhausted
		detail := "image inventory ran out inside the requested window"
		if len(available) == 0 {
			r = transfer.ReasonNoImages
			detail = "no unconsumed images left for this influencer"
		}
		reason = &r
		if len(items) == 0 {
			s.nt.MaybeNotifyExhausted(ctx, userID, influencerID, detail)
		}
	}

	return &transfer.ScheduleResult{
		Items:     items,
		Exhausted: exhausted,
		Reason:    reason,
		Remaining: remaining,
	}, nil
}

// resolveAnchor fixes the day-index phase. Once a profile carries an anchor
// it never moves; pairs scheduled before the column existed fall back to
// their earliest persisted row, and brand-new pairs anchor at the window
// start (then persist it).
func (s *allocationService) resolveAnchor(ctx context.Context, userID int64, influencerID string, profile *models.Profile, windowStart time.Time) (time.Time, error) {
	if profile != nil && profile.ScheduleAnchorDate != nil {
		return *profile.ScheduleAnchorDate, nil
	}

	anchor := windowStart
	earliest, ok, err := s.sp.EarliestScheduled(ctx, userID, influencerID)
	if err != nil {
		return time.Time{}, err
	}
	if ok {
		anchor = earliest.ScheduleDate
	}

	if profile != nil {
		if err := s.pf.SetAnchorDate(ctx, userID, anchor); err != nil {
			slog.Info(err.Error())
		}
	}
	return anchor, nil
}

func postTitle(niche string) string {
	if niche == "" {
		return "Scheduled post"
	}
	return niche + " post"
}
