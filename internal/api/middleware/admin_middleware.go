package middleware

import (
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/SavrnaSS/replotre/internal/repository"
)

const adminCacheTTL = 60 * time.Second

type adminCacheEntry struct {
	isAdmin bool
	expires time.Time
}

// AdminMiddleware gates routes on the users.is_admin flag. Lookups are
// cached for a minute, so a revoked flag can stay effective that long.
type AdminMiddleware struct {
	u repository.UserRepository

	mu    sync.Mutex
	cache map[int64]adminCacheEntry
}

func NewAdminMiddleware(u repository.UserRepository) *AdminMiddleware {
	return &AdminMiddleware{
		u:     u,
		cache: make(map[int64]adminCacheEntry),
	}
}

func (m *AdminMiddleware) AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw, _ := c.Locals("user_id").(string)
		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID == 0 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing session cookie",
			})
		}

		isAdmin, err := m.isAdmin(c, userID)
		if err != nil {
			log.Printf("Admin lookup failed: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "something went wrong",
			})
		}

		if !isAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Admin access required",
			})
		}
		return c.Next()
	}
}

func (m *AdminMiddleware) isAdmin(c *fiber.Ctx, userID int64) (bool, error) {
	m.mu.Lock()
	entry, ok := m.cache[userID]
	m.mu.Unlock()
	if ok && time.Now().Before(entry.expires) {
		return entry.isAdmin, nil
	}

	user, isExist, err := m.u.GetByID(c.Context(), userID)
	if err != nil {
		return false, err
	}

	isAdmin := isExist && user.IsAdmin

	m.mu.Lock()
	m.cache[userID] = adminCacheEntry{isAdmin: isAdmin, expires: time.Now().Add(adminCacheTTL)}
	m.mu.Unlock()

	return isAdmin, nil
}
