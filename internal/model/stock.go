package model

import "github.com/google/uuid"

// BranchStock is the stock row for one product at one branch.
// The authoritative decrement/restore happens in the database layer when a
// sale or transfer commits; rows read through StockSnapshot are advisory.
type BranchStock struct {
	BaseModel
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_branch_stock" json:"product_id" validate:"uuid_required"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	BranchID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_branch_stock" json:"branch_id" validate:"uuid_required"`
	Branch    *Branch   `gorm:"foreignKey:BranchID" json:"branch,omitempty"`
	Stock     int       `gorm:"default:0" json:"stock"`
	MinStock  int       `gorm:"default:0" json:"min_stock"`
}

func (BranchStock) TableName() string {
	return "branch_stocks"
}

// StockLevel is a snapshot entry for one product
type StockLevel struct {
	Stock    int `json:"stock"`
	MinStock int `json:"min_stock"`
}

// StockSnapshot is a point-in-time advisory read of one branch's stock,
// valid only until the caller switches branch.
type StockSnapshot struct {
	BranchID uuid.UUID               `json:"branch_id"`
	Levels   map[uuid.UUID]StockLevel `json:"levels"`
}

// Available returns the snapshot stock for a product, zero when unknown
func (s *StockSnapshot) Available(productID uuid.UUID) int {
	if s == nil {
		return 0
	}
	return s.Levels[productID].Stock
}
