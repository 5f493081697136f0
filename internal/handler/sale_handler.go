package handler

import (
	"time"

	"go-pos-erp/internal/middleware"
	"go-pos-erp/internal/model"
	"go-pos-erp/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type SaleHandler struct {
	saleService service.SaleService
}

func NewSaleHandler(saleService service.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

// GetSales lists sales, optionally per branch, over a date range
// GET /api/v1/sales?branch_id=&range=7d
func (h *SaleHandler) GetSales(c *fiber.Ctx) error {
	var branchID *uuid.UUID
	if raw := c.Query("branch_id"); raw != "" {
		id, err := parseUUID(raw)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid branch ID"})
		}
		branchID = &id
	}

	now := time.Now()
	var startDate time.Time
	switch c.Query("range", "7d") {
	case "7d":
		startDate = now.AddDate(0, 0, -7)
	case "1m":
		startDate = now.AddDate(0, -1, 0)
	case "3m":
		startDate = now.AddDate(0, -3, 0)
	case "12m":
		startDate = now.AddDate(0, -12, 0)
	default:
		startDate = now.AddDate(0, 0, -7)
	}

	sales, err := h.saleService.List(branchID, startDate, now)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(sales)
}

// GetSale fetches one sale with items
// GET /api/v1/sales/:id
func (h *SaleHandler) GetSale(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid sale ID"})
	}

	sale, err := h.saleService.GetByID(id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Sale not found"})
	}
	return c.JSON(sale)
}

type replaceItemsRequest struct {
	Items []model.CartLine `json:"items"`
}

// ReplaceItems wholesale-replaces a sale's line items (requires can_edit)
// PUT /api/v1/sales/:id/items
func (h *SaleHandler) ReplaceItems(c *fiber.Ctx) error {
	session := middleware.Session(c)

	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid sale ID"})
	}

	var req replaceItemsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	sale, err := h.saleService.ReplaceItems(session, id, req.Items)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Sale items replaced", "data": sale})
}

// VoidSale deletes a sale (requires can_void or admin); stock reversal is
// delegated to database triggers
// DELETE /api/v1/sales/:id
func (h *SaleHandler) VoidSale(c *fiber.Ctx) error {
	session := middleware.Session(c)

	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid sale ID"})
	}

	if err := h.saleService.Void(session, id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Sale voided"})
}

type permissionFlagRequest struct {
	Field string `json:"field"` // can_edit | can_void
	Value bool   `json:"value"`
}

// SetPermissionFlag toggles a sale's can_edit/can_void flag
// PUT /api/v1/sales/:id/permissions
func (h *SaleHandler) SetPermissionFlag(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid sale ID"})
	}

	var req permissionFlagRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.saleService.SetPermissionFlag(id, req.Field, req.Value); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Permission flag updated"})
}
