package service

import (
	"fmt"
	"time"

	"go-pos-erp/internal/model"
	"go-pos-erp/internal/repository"
	"go-pos-erp/internal/ws"
	"go-pos-erp/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleCompensator is invoked with the orphaned header ID when item
// persistence fails after the header insert succeeded. The default wiring
// passes nil: the header is kept and reported, never rolled back silently.
type SaleCompensator func(saleID uuid.UUID)

// BasketClearer releases the user's basket after a successful checkout
type BasketClearer interface {
	Clear(userID uuid.UUID)
}

type CheckoutRequest struct {
	CustomerID     *uuid.UUID          `json:"customer_id"`
	PaymentMethod  model.PaymentMethod `json:"payment_method" validate:"required"`
	Discount       decimal.Decimal     `json:"discount"`
	AmountReceived *decimal.Decimal    `json:"amount_received"`
	CashAmount     *decimal.Decimal    `json:"cash_amount"` // Mixto: user-entered cash leg
}

type SaleService interface {
	Checkout(session model.SessionContext, cart *model.Cart, req *CheckoutRequest) (*model.Receipt, error)
	ReplaceItems(session model.SessionContext, saleID uuid.UUID, lines []model.CartLine) (*model.Sale, error)
	Void(session model.SessionContext, saleID uuid.UUID) error
	SetPermissionFlag(saleID uuid.UUID, field string, value bool) error
	GetByID(id uuid.UUID) (*model.Sale, error)
	List(branchID *uuid.UUID, from, to time.Time) ([]model.Sale, error)
}

type saleService struct {
	saleRepo   repository.SaleRepository
	taxCfg     model.TaxConfig
	baskets    BasketClearer
	compensate SaleCompensator
	wsHub      *ws.Hub
}

func NewSaleService(saleRepo repository.SaleRepository, taxCfg model.TaxConfig, baskets BasketClearer, compensate SaleCompensator, hub *ws.Hub) SaleService {
	return &saleService{
		saleRepo:   saleRepo,
		taxCfg:     taxCfg,
		baskets:    baskets,
		compensate: compensate,
		wsHub:      hub,
	}
}

// Checkout persists the basket as a sale. The basket is assumed non-empty:
// the submit control is disabled until it has items, and that contract is
// the caller's to uphold. Header and items are two separate persistence
// phases; an item failure leaves the header in place (see SaleCompensator).
func (s *saleService) Checkout(session model.SessionContext, cart *model.Cart, req *CheckoutRequest) (*model.Receipt, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}
	if !req.PaymentMethod.Valid() {
		return nil, fmt.Errorf("unknown payment method %q", req.PaymentMethod)
	}
	if cart.BranchID == uuid.Nil {
		return nil, model.ErrBranchRequired
	}
	if req.PaymentMethod == model.PaymentCredito && req.CustomerID == nil {
		return nil, model.ErrCustomerRequired
	}

	totals := model.CalculateTotals(cart.Subtotal(), req.Discount, s.taxCfg)

	amountReceived := totals.Total
	if req.AmountReceived != nil {
		amountReceived = *req.AmountReceived
	}

	cash := decimal.Zero
	digital := decimal.Zero
	if req.PaymentMethod == model.PaymentMixto {
		if req.CashAmount != nil {
			cash = *req.CashAmount
		}
		digital = model.SplitMixedPayment(totals.Total, cash)
	}

	userID := session.UserID.String()
	sale := &model.Sale{
		BranchID:       cart.BranchID,
		CustomerID:     req.CustomerID,
		Subtotal:       totals.Subtotal,
		Tax:            totals.Tax,
		Discount:       totals.Discount,
		Total:          totals.Total,
		PaymentMethod:  req.PaymentMethod,
		AmountReceived: amountReceived,
		ChangeDue:      model.ChangeDue(totals.Total, amountReceived),
		CashAmount:     cash,
		DigitalAmount:  digital,
		SoldByUserID:   &userID,
	}
	sale.CreatedBy = userID
	sale.UpdatedBy = userID

	// Phase 1: header
	if err := s.saleRepo.InsertSale(sale); err != nil {
		return nil, err
	}

	// Phase 2: items. Stock decrement and kardex rows happen in database
	// triggers on these inserts.
	items := saleItemsFromCart(sale.ID, cart.Lines, userID)
	if err := s.saleRepo.InsertItems(sale.ID, items); err != nil {
		if s.compensate != nil {
			s.compensate(sale.ID)
		}
		return nil, &model.OrphanedSaleError{SaleID: sale.ID, Err: err}
	}

	// Basket is released only after both phases persisted
	if s.baskets != nil {
		s.baskets.Clear(session.UserID)
	}

	if s.wsHub != nil {
		go s.wsHub.Publish(ws.Event{
			Type:   "sale",
			Action: "sale_recorded",
			Payload: map[string]interface{}{
				"sale_id":   sale.ID,
				"branch_id": sale.BranchID,
				"total":     sale.Total,
				"user_id":   userID,
			},
			Message: fmt.Sprintf("%s registered a sale of %s", session.FullName, sale.Total.StringFixed(2)),
		})
	}

	return &model.Receipt{
		SaleID:         sale.ID,
		BranchID:       sale.BranchID,
		Items:          cart.Lines,
		Totals:         totals,
		TaxLabel:       s.taxCfg.Label,
		PaymentMethod:  sale.PaymentMethod,
		AmountReceived: sale.AmountReceived,
		ChangeDue:      sale.ChangeDue,
		IssuedAt:       time.Now(),
	}, nil
}

// ReplaceItems wholesale-replaces a sale's line items (delete-all then
// re-insert) and recomputes the stored totals. Allowed only while the
// sale's can_edit flag is set.
func (s *saleService) ReplaceItems(session model.SessionContext, saleID uuid.UUID, lines []model.CartLine) (*model.Sale, error) {
	sale, err := s.saleRepo.FindByID(saleID)
	if err != nil {
		return nil, err
	}
	if !sale.CanEdit {
		return nil, model.ErrEditLocked
	}

	userID := session.UserID.String()
	items := saleItemsFromCart(saleID, lines, userID)
	if err := s.saleRepo.ReplaceItems(saleID, items); err != nil {
		return nil, err
	}

	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.LineTotal())
	}
	totals := model.CalculateTotals(subtotal, sale.Discount, s.taxCfg)
	sale.Subtotal = totals.Subtotal
	sale.Tax = totals.Tax
	sale.Total = totals.Total
	sale.UpdatedBy = userID
	sale.Items = nil
	if err := s.saleRepo.UpdateHeader(sale); err != nil {
		return nil, err
	}

	return s.saleRepo.FindByID(saleID)
}

// Void deletes the sale outright; stock restoration is delegated to the
// database triggers. Allowed while can_void is set, or for admins.
func (s *saleService) Void(session model.SessionContext, saleID uuid.UUID) error {
	sale, err := s.saleRepo.FindByID(saleID)
	if err != nil {
		return err
	}
	if !sale.CanVoid && !session.IsAdmin() {
		return model.ErrVoidLocked
	}
	if err := s.saleRepo.Delete(saleID); err != nil {
		return err
	}

	if s.wsHub != nil {
		go s.wsHub.Publish(ws.Event{
			Type:   "sale",
			Action: "sale_voided",
			Payload: map[string]interface{}{
				"sale_id":   saleID,
				"branch_id": sale.BranchID,
			},
			Message: fmt.Sprintf("%s voided a sale", session.FullName),
		})
	}
	return nil
}

func (s *saleService) SetPermissionFlag(saleID uuid.UUID, field string, value bool) error {
	return s.saleRepo.UpdatePermissionFlag(saleID, field, value)
}

func (s *saleService) GetByID(id uuid.UUID) (*model.Sale, error) {
	return s.saleRepo.FindByID(id)
}

func (s *saleService) List(branchID *uuid.UUID, from, to time.Time) ([]model.Sale, error) {
	return s.saleRepo.FindAll(branchID, from, to)
}

func saleItemsFromCart(saleID uuid.UUID, lines []model.CartLine, userID string) []model.SaleItem {
	items := make([]model.SaleItem, len(lines))
	for i, l := range lines {
		items[i] = model.SaleItem{
			SaleID:    saleID,
			ProductID: l.ProductID,
			SKU:       l.SKU,
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			LineTotal: l.LineTotal(),
		}
		items[i].CreatedBy = userID
		items[i].UpdatedBy = userID
	}
	return items
}
