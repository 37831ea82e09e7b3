package handlers

import (
	"errors"

	applog "adboard/internal/log"
	"adboard/internal/services"

	"github.com/gofiber/fiber/v2"
)

// fail translates service errors into stable client responses. Store and
// unexpected errors are logged with full detail server-side and surfaced
// as a fixed generic message.
func fail(c *fiber.Ctx, action string, err error) error {
	switch {
	case errors.Is(err, services.ErrAdNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "ad not found"})
	case errors.Is(err, services.ErrCategoryNotAllowed):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "category not allowed"})
	default:
		applog.Error(c, action, err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}
