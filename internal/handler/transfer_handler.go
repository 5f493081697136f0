package handler

import (
	"go-pos-erp/internal/middleware"
	"go-pos-erp/internal/model"
	"go-pos-erp/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type TransferHandler struct {
	transferService service.TransferService
}

func NewTransferHandler(transferService service.TransferService) *TransferHandler {
	return &TransferHandler{transferService: transferService}
}

type createTransferRequest struct {
	model.TransferDraft
	Note string `json:"note"`
}

// CreateTransfer submits a transfer draft (enters Pendiente)
// POST /api/v1/transfers
func (h *TransferHandler) CreateTransfer(c *fiber.Ctx) error {
	session := middleware.Session(c)

	var req createTransferRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	transfer, err := h.transferService.Create(session, &req.TransferDraft, req.Note)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Transfer created", "data": transfer})
}

// GetTransfers lists transfers, optionally filtered by status
// GET /api/v1/transfers?status=Pendiente
func (h *TransferHandler) GetTransfers(c *fiber.Ctx) error {
	var status *model.TransferStatus
	if raw := c.Query("status"); raw != "" {
		s := model.TransferStatus(raw)
		status = &s
	}

	transfers, err := h.transferService.List(status)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(transfers)
}

// GetTransfer fetches one transfer with items
// GET /api/v1/transfers/:id
func (h *TransferHandler) GetTransfer(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid transfer ID"})
	}

	transfer, err := h.transferService.GetByID(id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Transfer not found"})
	}
	return c.JSON(transfer)
}

// Ship processes the shipment (Pendiente -> Enviado)
// POST /api/v1/transfers/:id/ship
func (h *TransferHandler) Ship(c *fiber.Ctx) error {
	return h.transition(c, h.transferService.Ship)
}

// Receive confirms reception (Enviado -> Recibido)
// POST /api/v1/transfers/:id/receive
func (h *TransferHandler) Receive(c *fiber.Ctx) error {
	return h.transition(c, h.transferService.Receive)
}

// Cancel cancels a pending or shipped transfer
// POST /api/v1/transfers/:id/cancel
func (h *TransferHandler) Cancel(c *fiber.Ctx) error {
	return h.transition(c, h.transferService.Cancel)
}

func (h *TransferHandler) transition(c *fiber.Ctx, op func(model.SessionContext, uuid.UUID) (*model.Transfer, error)) error {
	session := middleware.Session(c)

	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid transfer ID"})
	}

	transfer, err := op(session, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Transfer " + string(transfer.Status), "data": transfer})
}

// UpdateTransfer edits header fields and wholesale-replaces items
// PUT /api/v1/transfers/:id
func (h *TransferHandler) UpdateTransfer(c *fiber.Ctx) error {
	session := middleware.Session(c)

	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid transfer ID"})
	}

	var req service.UpdateTransferRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	transfer, err := h.transferService.Update(session, id, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Transfer updated", "data": transfer})
}
