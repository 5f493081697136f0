package service

import (
	"errors"
	"fmt"

	"go-pos-erp/internal/model"
	"go-pos-erp/internal/repository"
	"go-pos-erp/internal/ws"
	"go-pos-erp/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProductRequest struct {
	SKU      string          `json:"sku" validate:"required"`
	Name     string          `json:"name" validate:"required"`
	Price    decimal.Decimal `json:"price"`
	ImageURL string          `json:"image_url"`

	CategoryID *uint `json:"category_id"`
	BrandID    *uint `json:"brand_id"`
	ModelID    *uint `json:"model_id"`
}

type CatalogService interface {
	CreateProduct(req *ProductRequest, session model.SessionContext) (*model.Product, error)
	UpdateProduct(id uuid.UUID, req *ProductRequest, session model.SessionContext) (*model.Product, error)
	GetProducts(filter model.ProductFilter) ([]model.Product, error)
	GetProduct(id uuid.UUID) (*model.Product, error)
}

type catalogService struct {
	productRepo repository.ProductRepository
	wsHub       *ws.Hub
}

func NewCatalogService(productRepo repository.ProductRepository, hub *ws.Hub) CatalogService {
	return &catalogService{
		productRepo: productRepo,
		wsHub:       hub,
	}
}

func (s *catalogService) CreateProduct(req *ProductRequest, session model.SessionContext) (*model.Product, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	// Duplicate SKU check
	existing, _ := s.productRepo.FindBySKU(req.SKU)
	if existing != nil && existing.ID != uuid.Nil {
		return nil, errors.New("SKU already exists")
	}

	userID := session.UserID.String()
	product := &model.Product{
		SKU:        req.SKU,
		Name:       req.Name,
		Price:      req.Price,
		ImageURL:   req.ImageURL,
		CategoryID: req.CategoryID,
		BrandID:    req.BrandID,
		ModelID:    req.ModelID,
	}
	product.CreatedBy = userID
	product.UpdatedBy = userID
	product.CreatedByUserID = &userID
	product.UpdatedByUserID = &userID

	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}

	if s.wsHub != nil {
		go s.wsHub.Publish(ws.Event{
			Type:   "catalog",
			Action: "product_created",
			Payload: map[string]interface{}{
				"id":    product.ID,
				"sku":   product.SKU,
				"name":  product.Name,
				"price": product.Price,
			},
			Message: fmt.Sprintf("%s created product '%s'", session.FullName, product.Name),
		})
	}

	return product, nil
}

func (s *catalogService) UpdateProduct(id uuid.UUID, req *ProductRequest, session model.SessionContext) (*model.Product, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, errors.New("product not found")
	}

	if req.SKU != product.SKU {
		existing, _ := s.productRepo.FindBySKU(req.SKU)
		if existing != nil && existing.ID != uuid.Nil {
			return nil, errors.New("SKU already exists")
		}
	}

	userID := session.UserID.String()
	product.SKU = req.SKU
	product.Name = req.Name
	product.Price = req.Price
	product.ImageURL = req.ImageURL
	product.CategoryID = req.CategoryID
	product.BrandID = req.BrandID
	product.ModelID = req.ModelID
	product.UpdatedBy = userID
	product.UpdatedByUserID = &userID

	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}

	return product, nil
}

func (s *catalogService) GetProducts(filter model.ProductFilter) ([]model.Product, error) {
	return s.productRepo.FindAll(filter)
}

func (s *catalogService) GetProduct(id uuid.UUID) (*model.Product, error) {
	return s.productRepo.FindByID(id)
}
