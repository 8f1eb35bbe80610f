package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/SavrnaSS/replotre/internal/models"
	"github.com/SavrnaSS/replotre/internal/repository"
	"github.com/SavrnaSS/replotre/internal/schedule"
)

type ProfileService interface {
	GetProfileInfo(ctx context.Context, userID int64) (*models.Profile, error)
	UpdateProfile(ctx context.Context, userID int64, niche, scheduleTime, scheduleTimeZone, plan string) error
}

type profileService struct {
	pr repository.ProfileRepository
}

func NewProfileService(pr repository.ProfileRepository) ProfileService {
	return &profileService{
		pr: pr,
	}
}

func (s *profileService) GetProfileInfo(ctx context.Context, userID int64) (*models.Profile, error) {
	profile, isExist, err := s.pr.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !isExist {
		err = errors.New("profile for given user doesn't exist")
		slog.Info(err.Error())
		return nil, err
	}

	return profile, nil
}

func (s *profileService) UpdateProfile(ctx context.Context, userID int64, niche, scheduleTime, scheduleTimeZone, plan string) error {
	if scheduleTime != "" {
		if _, err := time.Parse("15:04", scheduleTime); err != nil {
			slog.Info(err.Error())
			return errors.New("schedule time must be HH:MM")
		}
	}
	if scheduleTimeZone != "" {
		if _, err := time.LoadLocation(scheduleTimeZone); err != nil {
			slog.Info(err.Error())
			return errors.New("unknown time zone")
		}
	}
	if plan != "" && plan != schedule.PlanBasic && plan != schedule.PlanPro && plan != schedule.PlanElite {
		err := errors.New("unknown plan")
		slog.Info(err.Error())
		return err
	}

	profile := &models.Profile{
		UserID:           userID,
		Niche:            niche,
		ScheduleTime:     scheduleTime,
		ScheduleTimeZone: scheduleTimeZone,
		Plan:             plan,
	}
	return s.pr.Upsert(ctx, profile)
}
