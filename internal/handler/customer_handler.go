package handler

import (
	"go-pos-erp/internal/middleware"
	"go-pos-erp/internal/model"
	"go-pos-erp/internal/repository"

	"github.com/gofiber/fiber/v2"
)

type CustomerHandler struct {
	customerRepo repository.CustomerRepository
}

func NewCustomerHandler(customerRepo repository.CustomerRepository) *CustomerHandler {
	return &CustomerHandler{customerRepo: customerRepo}
}

// GetCustomers lists customers, optionally filtered by name or document
// GET /api/v1/customers?search=
func (h *CustomerHandler) GetCustomers(c *fiber.Ctx) error {
	customers, err := h.customerRepo.FindAll(c.Query("search"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch customers"})
	}
	return c.JSON(customers)
}

// GetCustomer returns a single customer
// GET /api/v1/customers/:id
func (h *CustomerHandler) GetCustomer(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid customer ID"})
	}

	customer, err := h.customerRepo.FindByID(id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Customer not found"})
	}
	return c.JSON(customer)
}

type createCustomerRequest struct {
	FullName string `json:"full_name"`
	Document string `json:"document"`
	Phone    string `json:"phone"`
}

// CreateCustomer registers a customer (needed before a Crédito sale)
// POST /api/v1/customers
func (h *CustomerHandler) CreateCustomer(c *fiber.Ctx) error {
	session := middleware.Session(c)

	var req createCustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if req.FullName == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Customer name is required"})
	}

	customer := &model.Customer{
		FullName: req.FullName,
		Document: req.Document,
		Phone:    req.Phone,
	}
	customer.CreatedBy = session.UserID.String()
	customer.UpdatedBy = session.UserID.String()

	if err := h.customerRepo.Create(customer); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(201).JSON(fiber.Map{"message": "Customer created", "data": customer})
}
