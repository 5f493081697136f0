package service

import (
	"errors"
	"testing"
	"time"

	"go-pos-erp/internal/model"
	"go-pos-erp/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type stubSaleRepo struct {
	insertSaleErr  error
	insertItemsErr error
	insertedSale   *model.Sale
	insertedItems  []model.SaleItem
	findResult     *model.Sale
	findErr        error
	deletedIDs     []uuid.UUID
	replacedItems  []model.SaleItem
	updatedHeader  *model.Sale
}

func (s *stubSaleRepo) InsertSale(sale *model.Sale) error {
	if s.insertSaleErr != nil {
		return s.insertSaleErr
	}
	if sale.ID == uuid.Nil {
		sale.ID = uuid.New()
	}
	s.insertedSale = sale
	return nil
}

func (s *stubSaleRepo) InsertItems(saleID uuid.UUID, items []model.SaleItem) error {
	if s.insertItemsErr != nil {
		return s.insertItemsErr
	}
	s.insertedItems = items
	return nil
}

func (s *stubSaleRepo) ReplaceItems(saleID uuid.UUID, items []model.SaleItem) error {
	s.replacedItems = items
	return nil
}

func (s *stubSaleRepo) DeleteItems(saleID uuid.UUID) error { return nil }

func (s *stubSaleRepo) Delete(saleID uuid.UUID) error {
	s.deletedIDs = append(s.deletedIDs, saleID)
	return nil
}

func (s *stubSaleRepo) UpdateHeader(sale *model.Sale) error {
	s.updatedHeader = sale
	return nil
}

func (s *stubSaleRepo) UpdatePermissionFlag(saleID uuid.UUID, field string, value bool) error {
	if !model.PermissionFlagFields[field] {
		return repository.ErrUnknownFlagField
	}
	return nil
}

func (s *stubSaleRepo) FindByID(id uuid.UUID) (*model.Sale, error) {
	return s.findResult, s.findErr
}

func (s *stubSaleRepo) FindAll(branchID *uuid.UUID, from, to time.Time) ([]model.Sale, error) {
	return nil, nil
}

func (s *stubSaleRepo) SalesSummary(branchID *uuid.UUID, from, to time.Time) (*repository.SalesSummary, error) {
	return &repository.SalesSummary{}, nil
}

type stubBaskets struct {
	cleared []uuid.UUID
}

func (b *stubBaskets) Clear(userID uuid.UUID) {
	b.cleared = append(b.cleared, userID)
}

func sellerSession() model.SessionContext {
	return model.SessionContext{
		UserID:   uuid.New(),
		FullName: "Vendedor Uno",
		RoleCode: model.RoleVendedor,
	}
}

func testCart() *model.Cart {
	return &model.Cart{
		BranchID: uuid.New(),
		Lines: []model.CartLine{
			{ProductID: uuid.New(), SKU: "A-1", Name: "Producto A", Quantity: 2, UnitPrice: decimal.RequireFromString("10.00")},
			{ProductID: uuid.New(), SKU: "B-2", Name: "Producto B", Quantity: 1, UnitPrice: decimal.RequireFromString("15.00")},
		},
	}
}

func TestCheckoutEfectivo(t *testing.T) {
	repo := &stubSaleRepo{}
	baskets := &stubBaskets{}
	svc := NewSaleService(repo, model.TaxConfig{}, baskets, nil, nil)
	session := sellerSession()

	amountReceived := decimal.RequireFromString("50.00")
	receipt, err := svc.Checkout(session, testCart(), &CheckoutRequest{
		PaymentMethod:  model.PaymentEfectivo,
		AmountReceived: &amountReceived,
	})
	if err != nil {
		t.Fatal(err)
	}

	if !receipt.Totals.Total.Equal(decimal.RequireFromString("35.00")) {
		t.Errorf("total = %s, want 35.00", receipt.Totals.Total)
	}
	if !receipt.ChangeDue.Equal(decimal.RequireFromString("15.00")) {
		t.Errorf("change = %s, want 15.00", receipt.ChangeDue)
	}
	if len(repo.insertedItems) != 2 {
		t.Errorf("expected 2 items persisted, got %d", len(repo.insertedItems))
	}
	if len(baskets.cleared) != 1 || baskets.cleared[0] != session.UserID {
		t.Error("basket should be cleared exactly once after a successful checkout")
	}
}

func TestCheckoutAmountReceivedDefaultsToTotal(t *testing.T) {
	repo := &stubSaleRepo{}
	svc := NewSaleService(repo, model.TaxConfig{}, &stubBaskets{}, nil, nil)

	receipt, err := svc.Checkout(sellerSession(), testCart(), &CheckoutRequest{
		PaymentMethod: model.PaymentQR,
	})
	if err != nil {
		t.Fatal(err)
	}

	if !receipt.AmountReceived.Equal(receipt.Totals.Total) {
		t.Errorf("amount received = %s, want the total %s", receipt.AmountReceived, receipt.Totals.Total)
	}
	if !receipt.ChangeDue.IsZero() {
		t.Errorf("change = %s, want 0", receipt.ChangeDue)
	}
}

func TestCheckoutMixtoSplitsPayment(t *testing.T) {
	repo := &stubSaleRepo{}
	svc := NewSaleService(repo, model.TaxConfig{}, &stubBaskets{}, nil, nil)

	cash := decimal.RequireFromString("20.00")
	_, err := svc.Checkout(sellerSession(), testCart(), &CheckoutRequest{
		PaymentMethod: model.PaymentMixto,
		CashAmount:    &cash,
	})
	if err != nil {
		t.Fatal(err)
	}

	if !repo.insertedSale.CashAmount.Equal(cash) {
		t.Errorf("cash = %s, want 20.00", repo.insertedSale.CashAmount)
	}
	if !repo.insertedSale.DigitalAmount.Equal(decimal.RequireFromString("15.00")) {
		t.Errorf("digital = %s, want 15.00", repo.insertedSale.DigitalAmount)
	}
}

func TestCheckoutCreditoRequiresCustomer(t *testing.T) {
	repo := &stubSaleRepo{}
	svc := NewSaleService(repo, model.TaxConfig{}, &stubBaskets{}, nil, nil)

	_, err := svc.Checkout(sellerSession(), testCart(), &CheckoutRequest{
		PaymentMethod: model.PaymentCredito,
	})
	if !errors.Is(err, model.ErrCustomerRequired) {
		t.Fatalf("expected ErrCustomerRequired, got %v", err)
	}
	if repo.insertedSale != nil {
		t.Error("nothing should be persisted when the customer check fails")
	}

	customerID := uuid.New()
	if _, err := svc.Checkout(sellerSession(), testCart(), &CheckoutRequest{
		PaymentMethod: model.PaymentCredito,
		CustomerID:    &customerID,
	}); err != nil {
		t.Fatalf("credit sale with customer should succeed, got %v", err)
	}
}

func TestCheckoutRejectsUnknownPaymentMethod(t *testing.T) {
	svc := NewSaleService(&stubSaleRepo{}, model.TaxConfig{}, &stubBaskets{}, nil, nil)

	if _, err := svc.Checkout(sellerSession(), testCart(), &CheckoutRequest{
		PaymentMethod: "Cheque",
	}); err == nil {
		t.Fatal("expected an error for an unknown payment method")
	}
}

func TestCheckoutItemFailureKeepsHeader(t *testing.T) {
	repo := &stubSaleRepo{insertItemsErr: errors.New("constraint violation")}
	baskets := &stubBaskets{}
	var compensated []uuid.UUID
	compensate := func(saleID uuid.UUID) { compensated = append(compensated, saleID) }
	svc := NewSaleService(repo, model.TaxConfig{}, baskets, compensate, nil)

	_, err := svc.Checkout(sellerSession(), testCart(), &CheckoutRequest{
		PaymentMethod: model.PaymentEfectivo,
	})

	var orphaned *model.OrphanedSaleError
	if !errors.As(err, &orphaned) {
		t.Fatalf("expected OrphanedSaleError, got %v", err)
	}
	if orphaned.SaleID != repo.insertedSale.ID {
		t.Error("error should carry the orphaned header's ID")
	}
	if len(compensated) != 1 || compensated[0] != repo.insertedSale.ID {
		t.Error("compensator should be invoked with the orphaned header's ID")
	}
	if len(baskets.cleared) != 0 {
		t.Error("basket must not be cleared when items failed to persist")
	}
}

func TestCheckoutItemFailureWithoutCompensator(t *testing.T) {
	repo := &stubSaleRepo{insertItemsErr: errors.New("constraint violation")}
	svc := NewSaleService(repo, model.TaxConfig{}, &stubBaskets{}, nil, nil)

	_, err := svc.Checkout(sellerSession(), testCart(), &CheckoutRequest{
		PaymentMethod: model.PaymentEfectivo,
	})

	var orphaned *model.OrphanedSaleError
	if !errors.As(err, &orphaned) {
		t.Fatalf("expected OrphanedSaleError, got %v", err)
	}
}

func TestCheckoutRequiresBranch(t *testing.T) {
	svc := NewSaleService(&stubSaleRepo{}, model.TaxConfig{}, &stubBaskets{}, nil, nil)

	cart := testCart()
	cart.BranchID = uuid.Nil
	_, err := svc.Checkout(sellerSession(), cart, &CheckoutRequest{PaymentMethod: model.PaymentEfectivo})
	if !errors.Is(err, model.ErrBranchRequired) {
		t.Fatalf("expected ErrBranchRequired, got %v", err)
	}
}

func TestReplaceItemsRequiresEditFlag(t *testing.T) {
	locked := &model.Sale{CanEdit: false}
	repo := &stubSaleRepo{findResult: locked}
	svc := NewSaleService(repo, model.TaxConfig{}, nil, nil, nil)

	_, err := svc.ReplaceItems(sellerSession(), uuid.New(), nil)
	if !errors.Is(err, model.ErrEditLocked) {
		t.Fatalf("expected ErrEditLocked, got %v", err)
	}
	if repo.replacedItems != nil {
		t.Error("items must not be touched when the sale is locked")
	}
}

func TestReplaceItemsRecomputesTotals(t *testing.T) {
	editable := &model.Sale{CanEdit: true, Discount: decimal.RequireFromString("5.00")}
	repo := &stubSaleRepo{findResult: editable}
	svc := NewSaleService(repo, model.TaxConfig{}, nil, nil, nil)

	lines := []model.CartLine{
		{ProductID: uuid.New(), Name: "Producto C", Quantity: 3, UnitPrice: decimal.RequireFromString("10.00")},
	}
	if _, err := svc.ReplaceItems(sellerSession(), uuid.New(), lines); err != nil {
		t.Fatal(err)
	}

	if len(repo.replacedItems) != 1 {
		t.Fatalf("expected 1 replaced item, got %d", len(repo.replacedItems))
	}
	if repo.updatedHeader == nil {
		t.Fatal("header totals should be rewritten")
	}
	if !repo.updatedHeader.Total.Equal(decimal.RequireFromString("25.00")) {
		t.Errorf("total = %s, want 25.00 (30.00 - 5.00 discount)", repo.updatedHeader.Total)
	}
}

func TestVoidPermissions(t *testing.T) {
	seller := sellerSession()
	admin := model.SessionContext{UserID: uuid.New(), RoleCode: model.RoleAdmin}

	t.Run("locked sale rejects seller", func(t *testing.T) {
		repo := &stubSaleRepo{findResult: &model.Sale{CanVoid: false}}
		svc := NewSaleService(repo, model.TaxConfig{}, nil, nil, nil)

		if err := svc.Void(seller, uuid.New()); !errors.Is(err, model.ErrVoidLocked) {
			t.Fatalf("expected ErrVoidLocked, got %v", err)
		}
		if len(repo.deletedIDs) != 0 {
			t.Error("nothing should be deleted")
		}
	})

	t.Run("locked sale still yields to admin", func(t *testing.T) {
		repo := &stubSaleRepo{findResult: &model.Sale{CanVoid: false}}
		svc := NewSaleService(repo, model.TaxConfig{}, nil, nil, nil)

		if err := svc.Void(admin, uuid.New()); err != nil {
			t.Fatal(err)
		}
		if len(repo.deletedIDs) != 1 {
			t.Error("sale should be deleted")
		}
	})

	t.Run("unlocked sale yields to seller", func(t *testing.T) {
		repo := &stubSaleRepo{findResult: &model.Sale{CanVoid: true}}
		svc := NewSaleService(repo, model.TaxConfig{}, nil, nil, nil)

		if err := svc.Void(seller, uuid.New()); err != nil {
			t.Fatal(err)
		}
	})
}

func TestSetPermissionFlagRejectsUnknownField(t *testing.T) {
	svc := NewSaleService(&stubSaleRepo{}, model.TaxConfig{}, nil, nil, nil)

	if err := svc.SetPermissionFlag(uuid.New(), "total", true); !errors.Is(err, repository.ErrUnknownFlagField) {
		t.Fatalf("expected ErrUnknownFlagField, got %v", err)
	}
	if err := svc.SetPermissionFlag(uuid.New(), "can_edit", true); err != nil {
		t.Fatal(err)
	}
}
