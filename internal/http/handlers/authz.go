package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"shopline/internal/domain"
	applog "shopline/internal/log"
	"shopline/internal/services"
)

func bearerToken(c *fiber.Ctx) string {
	h := c.Get(fiber.HeaderAuthorization)
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return h[7:]
	}
	return ""
}

// RequireUser validates the bearer credential and attaches the acting user.
func RequireUser(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tok := bearerToken(c)
		if tok == "" {
			return jsonError(c, fiber.StatusUnauthorized, "missing token")
		}
		u, err := auth.ResolveToken(tok)
		if err != nil {
			applog.Security(c, "access.denied.token", nil)
			return jsonError(c, fiber.StatusUnauthorized, "invalid token")
		}
		c.Locals("user", u)
		return c.Next()
	}
}

// RequireAdmin additionally requires the resolved identity's admin flag.
func RequireAdmin(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tok := bearerToken(c)
		if tok == "" {
			return jsonError(c, fiber.StatusUnauthorized, "missing token")
		}
		u, err := auth.ResolveToken(tok)
		if err != nil {
			applog.Security(c, "access.denied.token", nil)
			return jsonError(c, fiber.StatusUnauthorized, "invalid token")
		}
		if !u.IsAdmin {
			applog.Security(c, "access.denied.admin", map[string]any{"user_id": u.ID})
			return jsonError(c, fiber.StatusForbidden, "admin access required")
		}
		c.Locals("user", u)
		return c.Next()
	}
}

func currentUser(c *fiber.Ctx) *domain.User {
	u, _ := c.Locals("user").(*domain.User)
	return u
}
