package handlers

import (
	"adboard/internal/services"

	"github.com/gofiber/fiber/v2"
)

type CategoryHandler struct {
	Registry *services.CategoryRegistry
}

func (h *CategoryHandler) List(c *fiber.Ctx) error {
	cats, err := h.Registry.ListStored()
	if err != nil {
		return fail(c, "category.list.error", err)
	}
	return c.JSON(cats)
}
