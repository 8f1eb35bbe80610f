package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/SavrnaSS/replotre/internal/service"
)

type ProfileHandler struct {
	s service.ProfileService
}

func NewProfileHandler(service service.ProfileService) *ProfileHandler {
	return &ProfileHandler{s: service}
}

func (h *ProfileHandler) GetProfileInfo(c *fiber.Ctx) error {
	userID := GetUserID(c)

	profile, err := h.s.GetProfileInfo(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(profile)
}

func (h *ProfileHandler) UpdateProfile(c *fiber.Ctx) error {
	userID := GetUserID(c)

	var requestData struct {
		Niche            string `json:"niche"`
		ScheduleTime     string `json:"schedule_time"`
		ScheduleTimeZone string `json:"schedule_time_zone"`
		Plan             string `json:"plan"`
	}

	if err := c.BodyParser(&requestData); err != nil {
		slog.Info(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	err := h.s.UpdateProfile(c.Context(), userID, requestData.Niche, requestData.ScheduleTime, requestData.ScheduleTimeZone, requestData.Plan)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.SendStatus(fiber.StatusOK)
}
