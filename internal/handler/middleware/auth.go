package middleware

import (
	"strings"

	"github.com/Anoch123/exodus-instant-booking/internal/session"
	"github.com/gofiber/fiber/v2"
)

const (
	agencyLoginPath    = "/agency/login"
	agencyDashboard    = "/agency/dashboard"
	customerLoginPath  = "/login"
	customerDashboard  = "/dashboard"
	localSessionKey    = "session"
	localCustomerKey   = "customer_session"
	localTokenKey      = "token"
)

// bearerToken extracts the token from the Authorization header.
func bearerToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

// RequireAgency guards back-office routes. Requests without a live
// session get 401 plus the login redirect; when the session was swept
// by the expiry poller the reason says so. Role is checked before
// validity so a demoted or expired admin still sees the access-denied
// answer on admin-only routes rather than a login prompt.
func RequireAgency(sessions *session.Store, roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error":    "missing authorization header",
				"redirect": agencyLoginPath,
			})
		}

		if len(allowed) > 0 {
			if role, ok := sessions.AgencyRole(token); ok {
				if _, permitted := allowed[role]; !permitted {
					return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
						"error":    "insufficient permissions",
						"redirect": agencyDashboard,
					})
				}
			}
		}

		sess, ok := sessions.ValidAgency(token)
		if !ok {
			reason := "authentication required"
			if sessions.WasExpired(c.Context(), token) {
				reason = "session expired"
			}
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error":    reason,
				"redirect": agencyLoginPath,
			})
		}

		c.Locals(localSessionKey, sess)
		c.Locals(localTokenKey, token)
		return c.Next()
	}
}

// RequireCustomer guards the customer portal routes.
func RequireCustomer(sessions *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error":    "missing authorization header",
				"redirect": customerLoginPath,
			})
		}

		sess, ok := sessions.ValidCustomer(token)
		if !ok {
			reason := "authentication required"
			if sessions.WasExpired(c.Context(), token) {
				reason = "session expired"
			}
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error":    reason,
				"redirect": customerLoginPath,
			})
		}

		c.Locals(localCustomerKey, sess)
		c.Locals(localTokenKey, token)
		return c.Next()
	}
}

// PublicOnly answers login and signup routes when the caller already
// holds a live session: instead of re-authenticating they are pointed
// at their dashboard.
func PublicOnly(sessions *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			return c.Next()
		}

		if _, ok := sessions.ValidAgency(token); ok {
			return c.Status(fiber.StatusSeeOther).JSON(fiber.Map{
				"redirect": agencyDashboard,
			})
		}
		if _, ok := sessions.ValidCustomer(token); ok {
			return c.Status(fiber.StatusSeeOther).JSON(fiber.Map{
				"redirect": customerDashboard,
			})
		}
		return c.Next()
	}
}

// AgencySession returns the session stored by RequireAgency.
func AgencySession(c *fiber.Ctx) (session.AgencySession, bool) {
	sess, ok := c.Locals(localSessionKey).(session.AgencySession)
	return sess, ok
}

// CustomerSession returns the session stored by RequireCustomer.
func CustomerSession(c *fiber.Ctx) (session.CustomerSession, bool) {
	sess, ok := c.Locals(localCustomerKey).(session.CustomerSession)
	return sess, ok
}

// Token returns the bearer token stored by the guards.
func Token(c *fiber.Ctx) string {
	token, _ := c.Locals(localTokenKey).(string)
	return token
}
