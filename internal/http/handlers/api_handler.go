package handlers

import (
	"github.com/gofiber/fiber/v2"

	"revivedgoods/internal/log"
	"revivedgoods/internal/services"
)

type APIHandler struct{}

// State returns the caller's whole state in the persisted layout.
func (h *APIHandler) State(c *fiber.Ctx) error {
	return c.JSON(marketOf(c).Snapshot())
}

// Catalog returns the filtered, sorted view.
func (h *APIHandler) Catalog(c *fiber.Ctx) error {
	f, bad := parseFilters(c)
	if len(bad) > 0 {
		log.Security(c, "validation.fail", map[string]any{"fields": bad})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "invalid filter",
			"fields": bad,
		})
	}
	view := services.View(marketOf(c).Snapshot().Products, f)
	return c.JSON(fiber.Map{
		"products": view,
		"count":    len(view),
		"active":   services.ActiveFilters(f),
	})
}
