package handler

import (
	"go-pos-erp/internal/middleware"
	"go-pos-erp/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CartHandler exposes the per-session sale basket and checkout
type CartHandler struct {
	cartService service.CartService
	saleService service.SaleService
}

func NewCartHandler(cartService service.CartService, saleService service.SaleService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		saleService: saleService,
	}
}

// GetCart returns the caller's current basket
// GET /api/v1/cart
func (h *CartHandler) GetCart(c *fiber.Ctx) error {
	session := middleware.Session(c)
	return c.JSON(h.cartService.CartFor(session.UserID))
}

// SelectBranch sets the basket's branch and re-fetches the stock snapshot
// PUT /api/v1/cart/branch/:branchId
func (h *CartHandler) SelectBranch(c *fiber.Ctx) error {
	session := middleware.Session(c)

	branchID, err := parseUUID(c.Params("branchId"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid branch ID"})
	}

	cart, err := h.cartService.SelectBranch(session.UserID, branchID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(cart)
}

// AddItem appends a product to the basket (no-op when already present)
// POST /api/v1/cart/items/:productId
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	session := middleware.Session(c)

	productID, err := parseUUID(c.Params("productId"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	cart, err := h.cartService.AddItem(session.UserID, productID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(cart)
}

// RemoveItem deletes a basket line
// DELETE /api/v1/cart/items/:productId
func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	session := middleware.Session(c)

	productID, err := parseUUID(c.Params("productId"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	cart, err := h.cartService.RemoveItem(session.UserID, productID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(cart)
}

type updateQuantityRequest struct {
	Delta int `json:"delta"`
}

// UpdateQuantity bumps a line's quantity by a delta, guarded by the
// branch stock snapshot
// PATCH /api/v1/cart/items/:productId
func (h *CartHandler) UpdateQuantity(c *fiber.Ctx) error {
	session := middleware.Session(c)

	productID, err := parseUUID(c.Params("productId"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	var req updateQuantityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	cart, err := h.cartService.UpdateQuantity(session.UserID, productID, req.Delta)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(cart)
}

// Checkout confirms the basket as a sale and returns the receipt
// POST /api/v1/cart/checkout
func (h *CartHandler) Checkout(c *fiber.Ctx) error {
	session := middleware.Session(c)

	var req service.CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	cart := h.cartService.CartFor(session.UserID)
	if cart.IsEmpty() {
		// The submit control stays disabled on an empty basket; this is the
		// caller-side contract the orchestrator relies on.
		return c.Status(400).JSON(fiber.Map{"error": "basket has no items"})
	}

	receipt, err := h.saleService.Checkout(session, cart, &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Sale recorded", "receipt": receipt})
}
