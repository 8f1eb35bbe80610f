package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// GetUserID returns the authenticated user id, or 0 when the request is
// anonymous (optional-auth routes).
func GetUserID(c *fiber.Ctx) int64 {
	raw, ok := c.Locals("user_id").(string)
	if !ok {
		return 0
	}
	userID, _ := strconv.ParseInt(raw, 10, 64)
	return userID
}
