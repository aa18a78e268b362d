package handler

import (
	"github.com/Anoch123/exodus-instant-booking/internal/reachability"
	"github.com/Anoch123/exodus-instant-booking/internal/session"
	"github.com/gofiber/fiber/v2"
)

type HealthHandler struct {
	monitor  *reachability.Monitor
	sessions *session.Store
}

func NewHealthHandler(monitor *reachability.Monitor, sessions *session.Store) *HealthHandler {
	return &HealthHandler{monitor: monitor, sessions: sessions}
}

// Health is the liveness probe
// GET /health
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "ok",
	})
}

// Ready reports whether the database is reachable
// GET /ready
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	if h.monitor.Down() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "unavailable",
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "ready",
	})
}

// Status reports the reachability detail plus session registry size
// GET /api/status
func (h *HealthHandler) Status(c *fiber.Ctx) error {
	state, lastChecked := h.monitor.Status()
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"server":          state.String(),
		"last_checked":    lastChecked,
		"active_sessions": h.sessions.ActiveSessions(),
	})
}

// Refresh forces an immediate reachability probe
// POST /api/status/refresh
func (h *HealthHandler) Refresh(c *fiber.Ctx) error {
	h.monitor.Refresh(c.Context())
	state, lastChecked := h.monitor.Status()
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"server":       state.String(),
		"last_checked": lastChecked,
	})
}
