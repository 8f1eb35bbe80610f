package handlers

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"github.com/SavrnaSS/replotre/internal/live"
	"github.com/SavrnaSS/replotre/internal/service"
	"github.com/SavrnaSS/replotre/internal/transfer"
)

type AdminHandler struct {
	s   service.AdminService
	inv service.InventoryService
	hub *live.Hub
}

func NewAdminHandler(s service.AdminService, inv service.InventoryService, hub *live.Hub) *AdminHandler {
	return &AdminHandler{s: s, inv: inv, hub: hub}
}

func (h *AdminHandler) CreateOverride(c *fiber.Ctx) error {
	adminID := GetUserID(c)

	var requestData transfer.OverrideCreation
	if err := c.BodyParser(&requestData); err != nil {
		slog.Info(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	id, err := h.s.CreateOverride(c.Context(), adminID, &requestData)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{"id": id})
}

func (h *AdminHandler) ListOverrides(c *fiber.Ctx) error {
	var userID *int64
	if raw := c.Query("user_id"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "user_id must be an integer",
			})
		}
		userID = &parsed
	}

	var influencerID *string
	if raw := c.Query("influencer_id"); raw != "" {
		influencerID = &raw
	}

	overrides, err := h.s.ListOverrides(c.Context(), userID, influencerID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "something went wrong",
		})
	}

	return c.JSON(fiber.Map{"overrides": overrides})
}

func (h *AdminHandler) BulkReschedule(c *fiber.Ctx) error {
	adminID := GetUserID(c)

	var requestData transfer.BulkReschedule
	if err := c.BodyParser(&requestData); err != nil {
		slog.Info(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	count, err := h.s.BulkReschedule(c.Context(), adminID, &requestData)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{"updated": count})
}

func (h *AdminHandler) BulkCancel(c *fiber.Ctx) error {
	adminID := GetUserID(c)

	var requestData transfer.BulkCancel
	if err := c.BodyParser(&requestData); err != nil {
		slog.Info(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	count, err := h.s.BulkCancel(c.Context(), adminID, &requestData)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{"cancelled": count})
}

func (h *AdminHandler) ListActions(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit"))

	actions, err := h.s.ListActions(c.Context(), limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "something went wrong",
		})
	}

	return c.JSON(fiber.Map{"actions": actions})
}

func (h *AdminHandler) UploadAsset(c *fiber.Ctx) error {
	influencerID := c.Params("influencer_id")
	if !influencerIDPattern.MatchString(influencerID) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid influencer id",
		})
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "file is required",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		slog.Info(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "unable to read file",
		})
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		slog.Info(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "unable to read file",
		})
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if err := h.inv.Upload(c.Context(), influencerID, fileHeader.Filename, data, contentType); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "upload failed",
		})
	}

	return c.SendStatus(fiber.StatusCreated)
}

// LiveActions streams audit events over server-sent events. A comment ping
// every 30s keeps intermediaries from closing the idle connection.
func (h *AdminHandler) LiveActions(c *fiber.Ctx) error {
	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")

	events, unsubscribe := h.hub.Subscribe()

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer unsubscribe()

		ping := time.NewTicker(30 * time.Second)
		defer ping.Stop()

		for {
			select {
			case ev := <-events:
				data, err := json.Marshal(ev)
				if err != nil {
					slog.Info(err.Error())
					continue
				}
				fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Type, data)
				if err := w.Flush(); err != nil {
					return
				}
			case <-ping.C:
				fmt.Fprint(w, ": ping\n\n")
				if err := w.Flush(); err != nil {
					return
				}
			}
		}
	}))

	return nil
}
