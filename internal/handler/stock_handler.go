package handler

import (
	"go-pos-erp/internal/middleware"
	"go-pos-erp/internal/service"

	"github.com/gofiber/fiber/v2"
)

type StockHandler struct {
	stockService service.StockService
}

func NewStockHandler(stockService service.StockService) *StockHandler {
	return &StockHandler{stockService: stockService}
}

// GetBranchStock lists the stock rows of one branch
// GET /api/v1/branches/:branchId/stock
func (h *StockHandler) GetBranchStock(c *fiber.Ctx) error {
	branchID, err := parseUUID(c.Params("branchId"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid branch ID"})
	}

	rows, err := h.stockService.GetBranchStock(branchID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rows)
}

// GetSnapshot returns the advisory stock snapshot used for pre-submission
// validation in the POS front-end
// GET /api/v1/branches/:branchId/stock/snapshot
func (h *StockHandler) GetSnapshot(c *fiber.Ctx) error {
	branchID, err := parseUUID(c.Params("branchId"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid branch ID"})
	}

	snapshot, err := h.stockService.GetSnapshot(branchID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(snapshot)
}

// SetLevel upserts a (product, branch) stock row
// PUT /api/v1/stock
func (h *StockHandler) SetLevel(c *fiber.Ctx) error {
	session := middleware.Session(c)

	var req service.SetStockRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.stockService.SetLevel(&req, session.UserID.String()); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Stock level updated"})
}
