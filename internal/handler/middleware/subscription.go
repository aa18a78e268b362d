package middleware

import (
	"github.com/Anoch123/exodus-instant-booking/internal/session"
	"github.com/gofiber/fiber/v2"
)

// RequireSubscription blocks write access for agencies whose plan has
// lapsed. The session itself stays alive so the user can still reach
// the billing page and renew.
func RequireSubscription(sessions *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, ok := AgencySession(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error":    "authentication required",
				"redirect": agencyLoginPath,
			})
		}

		if sessions.SubscriptionExpired(sess.Agency.ID) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error":    "subscription expired",
				"redirect": "/agency/subscription",
			})
		}
		return c.Next()
	}
}
