package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Locals keys set by UserContextMiddleware.
const (
	LocalUserID    = "user_id"
	LocalUserEmail = "user_email"
)

// UserContextMiddleware extracts the caller identity forwarded by the
// Gateway. The service never validates credentials itself — the gateway is
// the authentication collaborator and X-User-ID is trusted as-is.
func UserContextMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(LocalUserID, strings.TrimSpace(c.Get("X-User-ID")))
		c.Locals(LocalUserEmail, strings.TrimSpace(c.Get("X-User-Email")))
		return c.Next()
	}
}

// RequireAuthenticated rejects requests with no forwarded identity.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if UserID(c) == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Unauthorized",
			})
		}
		return c.Next()
	}
}

// UserID returns the authenticated caller's id, or "" for anonymous.
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(LocalUserID).(string)
	return id
}

// UserEmail returns the caller email forwarded by the gateway, if any.
func UserEmail(c *fiber.Ctx) string {
	email, _ := c.Locals(LocalUserEmail).(string)
	return email
}
