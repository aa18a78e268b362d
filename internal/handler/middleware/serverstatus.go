package middleware

import (
	"github.com/Anoch123/exodus-instant-booking/internal/reachability"
	"github.com/gofiber/fiber/v2"
)

// ServerStatus rejects requests while the database is unreachable so
// callers get a clear 503 instead of a timeout deep in a handler.
func ServerStatus(monitor *reachability.Monitor) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if monitor.Down() {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "service temporarily unavailable",
			})
		}
		return c.Next()
	}
}
