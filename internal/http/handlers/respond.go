package handlers

import "github.com/gofiber/fiber/v2"

func respondErr(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error": msg})
}
