package model

import "github.com/shopspring/decimal"

// Customer of the store. Credit sales require one; the running credit
// balance is maintained by database triggers when credit sales commit.
type Customer struct {
	BaseModel
	FullName      string          `gorm:"type:varchar(255);not null" json:"full_name" validate:"required"`
	Document      string          `gorm:"type:varchar(30)" json:"document"` // NIT / CI
	Phone         string          `gorm:"type:varchar(20)" json:"phone"`
	CreditBalance decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"credit_balance"`
}
