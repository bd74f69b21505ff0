package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "shopline/internal/log"
)

func jsonError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"message": msg})
}

// storeError logs the underlying failure and answers with a generic body so
// internal detail never reaches the caller.
func storeError(c *fiber.Ctx, action string, err error) error {
	applog.Error(c, action, err, nil)
	return jsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
}
