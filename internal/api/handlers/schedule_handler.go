package handlers

import (
	"regexp"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/SavrnaSS/replotre/internal/service"
	"github.com/SavrnaSS/replotre/internal/transfer"
)

var influencerIDPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

type ScheduleHandler struct {
	s   service.AllocationService
	inv service.InventoryService
}

func NewScheduleHandler(s service.AllocationService, inv service.InventoryService) *ScheduleHandler {
	return &ScheduleHandler{s: s, inv: inv}
}

func emptyResult() *transfer.ScheduleResult {
	return &transfer.ScheduleResult{
		Items:     []transfer.ScheduleItem{},
		Exhausted: false,
	}
}

// GetSchedule allocates and returns the caller's upcoming window for one
// influencer. Anonymous callers and unknown influencers get an empty
// schedule, not an error, so the widget can render before login.
func (h *ScheduleHandler) GetSchedule(c *fiber.Ctx) error {
	userID := GetUserID(c)

	influencerID := c.Query("influencer_id")
	if userID == 0 || !influencerIDPattern.MatchString(influencerID) {
		return c.JSON(emptyResult())
	}

	exists, err := h.inv.Exists(c.Context(), influencerID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "something went wrong",
		})
	}
	if !exists {
		return c.JSON(emptyResult())
	}

	days := service.DefaultWindowDays
	if raw := c.Query("days"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			days = parsed
		}
	}

	result, err := h.s.GetSchedule(c.Context(), userID, influencerID, days)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "something went wrong",
		})
	}

	return c.JSON(result)
}
