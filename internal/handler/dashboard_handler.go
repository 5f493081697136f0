package handler

import (
	"strconv"

	"go-pos-erp/internal/service"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	service service.DashboardService
}

func NewDashboardHandler(s service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: s}
}

// GetBranchStats returns per-branch overview statistics
// GET /api/v1/dashboard/:branchId?days=7
func (h *DashboardHandler) GetBranchStats(c *fiber.Ctx) error {
	branchID, err := parseUUID(c.Params("branchId"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid branch ID"})
	}

	days, err := strconv.Atoi(c.Query("days", "7"))
	if err != nil || days <= 0 {
		days = 7
	}

	stats, err := h.service.GetBranchStats(branchID, days)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch dashboard stats"})
	}

	return c.JSON(fiber.Map{
		"period": days,
		"data":   stats,
	})
}
