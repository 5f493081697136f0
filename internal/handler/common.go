package handler

import (
	"errors"

	"go-pos-erp/internal/model"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// parseUUID parses a route param into a UUID
func parseUUID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}

// respondError maps domain errors onto HTTP statuses. Everything is
// recoverable at this boundary; the client may retry.
func respondError(c *fiber.Ctx, err error) error {
	var stockErr *model.InsufficientStockError
	var transitionErr *model.InvalidTransitionError
	var orphanErr *model.OrphanedSaleError

	switch {
	case errors.As(err, &stockErr):
		return c.Status(409).JSON(fiber.Map{
			"error":     stockErr.Error(),
			"product":   stockErr.ProductName,
			"available": stockErr.Available,
			"requested": stockErr.Requested,
		})
	case errors.As(err, &transitionErr):
		return c.Status(409).JSON(fiber.Map{"error": transitionErr.Error()})
	case errors.As(err, &orphanErr):
		return c.Status(502).JSON(fiber.Map{"error": orphanErr.Error(), "sale_id": orphanErr.SaleID})
	case errors.Is(err, model.ErrNotAuthorized),
		errors.Is(err, model.ErrEditLocked),
		errors.Is(err, model.ErrVoidLocked):
		return c.Status(403).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, gorm.ErrRecordNotFound):
		return c.Status(404).JSON(fiber.Map{"error": "not found"})
	default:
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
}
