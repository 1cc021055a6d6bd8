package middleware

import (
	"famfolio-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

const userLocal = "user"

// RequireAuth ensures a user is in the session. Returns 401 with the standard
// error format if not.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := c.Locals(userLocal)
		if user == nil {
			return response.Unauthorized(c, "Unauthorized")
		}
		return c.Next()
	}
}

// RequireAdmin ensures the session user carries the admin flag. Admin routes
// still only ever operate on the caller's own family.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := c.Locals(userLocal)
		m, ok := user.(map[string]interface{})
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}
		if isAdmin, _ := m["is_admin"].(bool); !isAdmin {
			return response.Error(c, "Admin only", fiber.StatusForbidden, nil)
		}
		return c.Next()
	}
}

// GetUser returns the session user from Locals (nil if not logged in).
func GetUser(c *fiber.Ctx) interface{} {
	return c.Locals(userLocal)
}
