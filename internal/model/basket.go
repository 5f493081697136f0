package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UnitType for transfer lines: loose units or boxes
type UnitType string

const (
	UnitTypeUnit UnitType = "UNIT"
	UnitTypeBox  UnitType = "BOX"
)

// DefaultUnitsPerBox is applied when a line first switches to BOX
const DefaultUnitsPerBox = 12

// CartLine is one product entry in a sale basket
type CartLine struct {
	ProductID uuid.UUID       `json:"product_id"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// LineTotal is derived on every read, never stored
func (l CartLine) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is the sale-variant basket. Lines keep insertion order; at most one
// line exists per product.
type Cart struct {
	BranchID uuid.UUID  `json:"branch_id"`
	Lines    []CartLine `json:"lines"`
}

func (c *Cart) IsEmpty() bool { return len(c.Lines) == 0 }

func (c *Cart) Clear() { c.Lines = nil }

func (c *Cart) find(productID uuid.UUID) *CartLine {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			return &c.Lines[i]
		}
	}
	return nil
}

// AddItem appends the product with quantity 1. Adding a product already in
// the cart is a no-op (the existing line is not merged or incremented);
// returns false in that case.
func (c *Cart) AddItem(p *Product) bool {
	if c.find(p.ID) != nil {
		return false
	}
	c.Lines = append(c.Lines, CartLine{
		ProductID: p.ID,
		SKU:       p.SKU,
		Name:      p.Name,
		Quantity:  1,
		UnitPrice: p.Price,
	})
	return true
}

// RemoveItem deletes the matching line; absent product is not an error
func (c *Cart) RemoveItem(productID uuid.UUID) {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return
		}
	}
}

// UpdateQuantity applies a delta with a floor of 1. A positive delta that
// would exceed the branch stock snapshot leaves the quantity unchanged and
// reports InsufficientStockError.
func (c *Cart) UpdateQuantity(productID uuid.UUID, delta int, snap *StockSnapshot) error {
	line := c.find(productID)
	if line == nil {
		return ErrItemNotFound
	}

	newQuantity := line.Quantity + delta
	if newQuantity < 1 {
		newQuantity = 1
	}

	if delta > 0 && snap != nil && newQuantity > snap.Available(productID) {
		return &InsufficientStockError{
			ProductID:   productID,
			ProductName: line.Name,
			Available:   snap.Available(productID),
			Requested:   newQuantity,
		}
	}

	line.Quantity = newQuantity
	return nil
}

// Subtotal over all lines
func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.Lines {
		total = total.Add(l.LineTotal())
	}
	return total
}

// TransferLine is one product entry in a transfer draft
type TransferLine struct {
	ProductID       uuid.UUID `json:"product_id"`
	SKU             string    `json:"sku"`
	Name            string    `json:"name"`
	DisplayQuantity int       `json:"display_quantity"`
	UnitType        UnitType  `json:"unit_type"`
	UnitsPerBox     int       `json:"units_per_box"`
}

// TotalUnits is the quantity in loose units, derived on read
func (l TransferLine) TotalUnits() int {
	return l.DisplayQuantity * l.UnitsPerBox
}

// TransferDraft is the transfer-variant basket edited before submission
type TransferDraft struct {
	OriginBranchID      uuid.UUID      `json:"origin_branch_id"`
	DestinationBranchID uuid.UUID      `json:"destination_branch_id"`
	Lines               []TransferLine `json:"lines"`
}

func (d *TransferDraft) IsEmpty() bool { return len(d.Lines) == 0 }

func (d *TransferDraft) find(productID uuid.UUID) *TransferLine {
	for i := range d.Lines {
		if d.Lines[i].ProductID == productID {
			return &d.Lines[i]
		}
	}
	return nil
}

// AddItem appends the product as 1 loose unit. No-op when already present.
func (d *TransferDraft) AddItem(p *Product) bool {
	if d.find(p.ID) != nil {
		return false
	}
	d.Lines = append(d.Lines, TransferLine{
		ProductID:       p.ID,
		SKU:             p.SKU,
		Name:            p.Name,
		DisplayQuantity: 1,
		UnitType:        UnitTypeUnit,
		UnitsPerBox:     1,
	})
	return true
}

// RemoveItem deletes the matching line; absent product is not an error
func (d *TransferDraft) RemoveItem(productID uuid.UUID) {
	for i := range d.Lines {
		if d.Lines[i].ProductID == productID {
			d.Lines = append(d.Lines[:i], d.Lines[i+1:]...)
			return
		}
	}
}

// SetUnitType switches a line between UNIT and BOX. Switching to BOX
// auto-fills units_per_box with the default only when it is still 1;
// switching to UNIT always forces it back to 1.
func (d *TransferDraft) SetUnitType(productID uuid.UUID, unitType UnitType) error {
	line := d.find(productID)
	if line == nil {
		return ErrItemNotFound
	}

	switch unitType {
	case UnitTypeBox:
		if line.UnitsPerBox == 1 {
			line.UnitsPerBox = DefaultUnitsPerBox
		}
	case UnitTypeUnit:
		line.UnitsPerBox = 1
	}
	line.UnitType = unitType
	return nil
}

// SetQuantity clamps to >= 1. Non-numeric UI input arrives coerced to 0 and
// lands on the floor.
func (d *TransferDraft) SetQuantity(productID uuid.UUID, quantity int) error {
	line := d.find(productID)
	if line == nil {
		return ErrItemNotFound
	}
	if quantity < 1 {
		quantity = 1
	}
	line.DisplayQuantity = quantity
	return nil
}

// SetUnitsPerBox clamps to >= 1
func (d *TransferDraft) SetUnitsPerBox(productID uuid.UUID, unitsPerBox int) error {
	line := d.find(productID)
	if line == nil {
		return ErrItemNotFound
	}
	if unitsPerBox < 1 {
		unitsPerBox = 1
	}
	line.UnitsPerBox = unitsPerBox
	return nil
}
