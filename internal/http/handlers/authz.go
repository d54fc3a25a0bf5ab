package handlers

import (
	"github.com/gofiber/fiber/v2"

	"fieldstock/internal/domain"
	applog "fieldstock/internal/log"
	"fieldstock/internal/repos"
)

// Authenticate resolves the acting user from the X-User-ID header set by the
// upstream gateway (which owns authentication) and attaches it to the
// request context.
func Authenticate(users *repos.UserRepo) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid := c.Get("X-User-ID")
		if uid == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing user"})
		}
		u, err := users.ByID(uid)
		if err != nil || u == nil {
			applog.Security(c, "access.denied.unknown_user", map[string]any{"user_id": uid})
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unknown user"})
		}
		c.Locals("user", u)
		return c.Next()
	}
}

// RequireRole gates a route group to the given roles.
func RequireRole(roles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u := currentUser(c)
		if u == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing user"})
		}
		for _, r := range roles {
			if u.Role == r {
				return c.Next()
			}
		}
		applog.Security(c, "access.denied.role", map[string]any{"role": string(u.Role)})
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "forbidden"})
	}
}

func currentUser(c *fiber.Ctx) *domain.User {
	u, _ := c.Locals("user").(*domain.User)
	return u
}
