package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentEfectivo PaymentMethod = "Efectivo"
	PaymentQR       PaymentMethod = "QR"
	PaymentMixto    PaymentMethod = "Mixto"
	PaymentCredito  PaymentMethod = "Crédito"
)

// Valid reports whether the method is one of the accepted values
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentEfectivo, PaymentQR, PaymentMixto, PaymentCredito:
		return true
	}
	return false
}

// Sale is the persisted checkout record. Stock decrement and customer
// credit updates happen in database triggers when the row commits.
type Sale struct {
	BaseModel
	BranchID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"branch_id" validate:"uuid_required"`
	Branch     *Branch    `gorm:"foreignKey:BranchID" json:"branch,omitempty"`
	CustomerID *uuid.UUID `gorm:"type:uuid;index" json:"customer_id"`
	Customer   *Customer  `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`

	Subtotal decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"subtotal"`
	Tax      decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"tax"`
	Discount decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"discount"`
	Total    decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total"`

	PaymentMethod  PaymentMethod   `gorm:"type:varchar(20);not null" json:"payment_method" validate:"required"`
	AmountReceived decimal.Decimal `gorm:"type:numeric(12,2)" json:"amount_received"`
	ChangeDue      decimal.Decimal `gorm:"type:numeric(12,2)" json:"change_due"`
	CashAmount     decimal.Decimal `gorm:"type:numeric(12,2)" json:"cash_amount"`    // Mixto: cash leg
	DigitalAmount  decimal.Decimal `gorm:"type:numeric(12,2)" json:"digital_amount"` // Mixto: QR/card leg

	// Post-sale permission flags, toggled by an admin per sale
	CanEdit bool `gorm:"default:false" json:"can_edit"`
	CanVoid bool `gorm:"default:false" json:"can_void"`

	// User tracking
	SoldByUserID *string `gorm:"type:varchar(255)" json:"sold_by_user_id,omitempty"`
	SoldByUser   *User   `gorm:"foreignKey:SoldByUserID;references:ID" json:"sold_by_user,omitempty"`

	Items []SaleItem `json:"items,omitempty"`
}

// SaleItem snapshots product identity and price at checkout time
type SaleItem struct {
	BaseModel
	SaleID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"sale_id"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null" json:"product_id"`
	Product   *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	SKU       string          `gorm:"type:varchar(50)" json:"sku"`
	Name      string          `gorm:"type:varchar(255)" json:"name"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"unit_price"`
	LineTotal decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"line_total"`
}

// PermissionFlagFields are the only sale columns UpdatePermissionFlag may touch
var PermissionFlagFields = map[string]bool{
	"can_edit": true,
	"can_void": true,
}

// Receipt is the print request returned to the caller after a successful
// checkout. It is a return value, not a broadcast event: the presentation
// layer decides whether and how to print it.
type Receipt struct {
	SaleID         uuid.UUID       `json:"sale_id"`
	BranchID       uuid.UUID       `json:"branch_id"`
	Items          []CartLine      `json:"items"`
	Totals         Totals          `json:"totals"`
	TaxLabel       string          `json:"tax_label"`
	PaymentMethod  PaymentMethod   `json:"payment_method"`
	AmountReceived decimal.Decimal `json:"amount_received"`
	ChangeDue      decimal.Decimal `json:"change_due"`
	IssuedAt       time.Time       `json:"issued_at"`
}
