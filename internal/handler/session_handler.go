package handler

import (
	"github.com/Anoch123/exodus-instant-booking/internal/handler/middleware"
	"github.com/Anoch123/exodus-instant-booking/internal/session"
	"github.com/gofiber/fiber/v2"
)

// SessionHandler exposes the session store's query surface so clients
// can render expiry warnings without decoding tokens themselves.
type SessionHandler struct {
	sessions *session.Store
}

func NewSessionHandler(sessions *session.Store) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// Status reports the live session state for the calling token
// GET /api/agency/session
func (h *SessionHandler) Status(c *fiber.Ctx) error {
	sess, ok := middleware.AgencySession(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "authentication required",
		})
	}
	token := middleware.Token(c)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"user":                  sess.User,
		"agency":                sess.Agency,
		"role":                  sess.Role,
		"expires_at":            sess.ExpiresAt,
		"expires_in_seconds":    int64(h.sessions.TimeUntilExpiry(token).Seconds()),
		"expiring_soon":         h.sessions.IsExpiringSoon(token),
		"subscription_expired":  h.sessions.SubscriptionExpired(sess.Agency.ID),
		"subscription_expiring": h.sessions.SubscriptionExpiringSoon(sess.Agency.ID),
	})
}
