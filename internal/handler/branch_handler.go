package handler

import (
	"go-pos-erp/internal/middleware"
	"go-pos-erp/internal/model"
	"go-pos-erp/internal/repository"

	"github.com/gofiber/fiber/v2"
)

type BranchHandler struct {
	branchRepo repository.BranchRepository
}

func NewBranchHandler(branchRepo repository.BranchRepository) *BranchHandler {
	return &BranchHandler{branchRepo: branchRepo}
}

// GetBranches returns all branches
// GET /api/v1/branches
func (h *BranchHandler) GetBranches(c *fiber.Ctx) error {
	branches, err := h.branchRepo.FindAll()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch branches"})
	}
	return c.JSON(branches)
}

// GetBranch returns a single branch
// GET /api/v1/branches/:id
func (h *BranchHandler) GetBranch(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid branch ID"})
	}

	branch, err := h.branchRepo.FindByID(id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Branch not found"})
	}
	return c.JSON(branch)
}

type createBranchRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// CreateBranch registers a new branch
// POST /api/v1/branches
func (h *BranchHandler) CreateBranch(c *fiber.Ctx) error {
	session := middleware.Session(c)

	var req createBranchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if req.Name == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Branch name is required"})
	}

	branch := &model.Branch{
		Name:     req.Name,
		Address:  req.Address,
		Phone:    req.Phone,
		IsActive: true,
	}
	branch.CreatedBy = session.UserID.String()
	branch.UpdatedBy = session.UserID.String()

	if err := h.branchRepo.Create(branch); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(201).JSON(fiber.Map{"message": "Branch created", "data": branch})
}
