package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"ecofinds/internal/auth"
	applog "ecofinds/internal/log"
)

// RequireUser verifies the bearer token and stashes the claims for handlers.
func RequireUser(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			return respondErr(c, fiber.StatusUnauthorized, "missing bearer token")
		}
		claims, err := auth.ParseToken(secret, strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			applog.Security(c, "auth.token.invalid", map[string]any{"reason": err.Error()})
			return respondErr(c, fiber.StatusUnauthorized, "invalid or expired token")
		}
		c.Locals("claims", claims)
		return c.Next()
	}
}

func currentClaims(c *fiber.Ctx) *auth.Claims {
	claims, _ := c.Locals("claims").(*auth.Claims)
	return claims
}
