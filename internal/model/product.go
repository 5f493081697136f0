package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	BaseModel
	SKU      string          `gorm:"type:varchar(50);uniqueIndex;not null" json:"sku" validate:"required"`
	Name     string          `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Price    decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"price"`
	ImageURL string          `gorm:"type:varchar(500)" json:"image_url"`

	CategoryID *uint         `gorm:"index" json:"category_id"`
	Category   *Category     `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	BrandID    *uint         `gorm:"index" json:"brand_id"`
	Brand      *Brand        `gorm:"foreignKey:BrandID" json:"brand,omitempty"`
	ModelID    *uint         `gorm:"index" json:"model_id"`
	Model      *ProductModel `gorm:"foreignKey:ModelID" json:"model,omitempty"`

	// User tracking
	CreatedByUserID *string `gorm:"type:varchar(255)" json:"created_by_user_id,omitempty"`
	UpdatedByUserID *string `gorm:"type:varchar(255)" json:"updated_by_user_id,omitempty"`
	CreatedByUser   *User   `gorm:"foreignKey:CreatedByUserID;references:ID" json:"created_by_user,omitempty"`
	UpdatedByUser   *User   `gorm:"foreignKey:UpdatedByUserID;references:ID" json:"updated_by_user,omitempty"`

	// Per-branch stock rows
	Stocks []BranchStock `json:"stocks,omitempty"`
}

// Category groups products for catalog filtering
type Category struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
}

// Brand of a product (manufacturer)
type Brand struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
}

// ProductModel is the model/variant line within a brand
type ProductModel struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
}

// ProductFilter narrows catalog listings
type ProductFilter struct {
	Search     string // matches name or SKU
	CategoryID *uint
	BrandID    *uint
}

// StockAt returns the preloaded stock row for a branch, nil if absent
func (p *Product) StockAt(branchID uuid.UUID) *BranchStock {
	for i := range p.Stocks {
		if p.Stocks[i].BranchID == branchID {
			return &p.Stocks[i]
		}
	}
	return nil
}
