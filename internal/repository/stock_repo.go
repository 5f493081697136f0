package repository

import (
	"go-pos-erp/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StockRepository interface {
	FindByBranch(branchID uuid.UUID) ([]model.BranchStock, error)
	FindLevel(productID, branchID uuid.UUID) (*model.BranchStock, error)
	Upsert(stock *model.BranchStock) error
	LowStockCount(branchID uuid.UUID) (int64, error)
}

type stockRepo struct {
	db *gorm.DB
}

func NewStockRepo(db *gorm.DB) StockRepository {
	return &stockRepo{db}
}

func (r *stockRepo) FindByBranch(branchID uuid.UUID) ([]model.BranchStock, error) {
	var rows []model.BranchStock
	err := r.db.Where("branch_id = ?", branchID).Find(&rows).Error
	return rows, err
}

func (r *stockRepo) FindLevel(productID, branchID uuid.UUID) (*model.BranchStock, error) {
	var row model.BranchStock
	err := r.db.First(&row, "product_id = ? AND branch_id = ?", productID, branchID).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *stockRepo) Upsert(stock *model.BranchStock) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "product_id"}, {Name: "branch_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"stock", "min_stock", "updated_by"}),
	}).Create(stock).Error
}

func (r *stockRepo) LowStockCount(branchID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&model.BranchStock{}).
		Where("branch_id = ? AND stock < min_stock", branchID).
		Count(&count).Error
	return count, err
}
