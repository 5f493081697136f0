package model

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrBranchRequired   = errors.New("no branch selected")
	ErrEmptyBasket      = errors.New("basket has no items")
	ErrSameBranch       = errors.New("origin and destination branch must differ")
	ErrItemNotFound     = errors.New("item not in basket")
	ErrCustomerRequired = errors.New("credit sales require a customer")
	ErrNotAuthorized    = errors.New("actor not authorized for this operation")
	ErrEditLocked       = errors.New("sale items are locked for editing")
	ErrVoidLocked       = errors.New("sale is locked against voiding")
)

// InsufficientStockError is raised when a requested quantity exceeds the
// last-fetched stock snapshot. Advisory only: the database remains the
// final arbiter on commit.
type InsufficientStockError struct {
	ProductID   uuid.UUID
	ProductName string
	Available   int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for '%s': available %d, requested %d",
		e.ProductName, e.Available, e.Requested)
}

// InvalidTransitionError reports a transfer lifecycle edge that does not exist
type InvalidTransitionError struct {
	From TransferStatus
	To   TransferStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("transfer cannot move from %s to %s", e.From, e.To)
}

// OrphanedSaleError reports a checkout where the sale header persisted but
// its items did not. The header is NOT rolled back automatically; callers
// wire a compensator if they want one.
type OrphanedSaleError struct {
	SaleID uuid.UUID
	Err    error
}

func (e *OrphanedSaleError) Error() string {
	return fmt.Sprintf("sale %s: items not persisted, header kept: %v", e.SaleID, e.Err)
}

func (e *OrphanedSaleError) Unwrap() error { return e.Err }
