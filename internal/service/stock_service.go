package service

import (
	"errors"
	"fmt"

	"go-pos-erp/internal/model"
	"go-pos-erp/internal/repository"
	"go-pos-erp/pkg/validator"

	"github.com/google/uuid"
)

// StockService is the advisory stock ledger accessor. Snapshots support
// pre-submission validation only; the database decrements stock itself when
// a sale or transfer commits, and remains the final arbiter.
type StockService interface {
	GetSnapshot(branchID uuid.UUID) (*model.StockSnapshot, error)
	GetBranchStock(branchID uuid.UUID) ([]model.BranchStock, error)
	SetLevel(req *SetStockRequest, userID string) error
}

type SetStockRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"uuid_required"`
	BranchID  uuid.UUID `json:"branch_id" validate:"uuid_required"`
	Stock     int       `json:"stock" validate:"gte=0"`
	MinStock  int       `json:"min_stock" validate:"gte=0"`
}

type stockService struct {
	stockRepo  repository.StockRepository
	branchRepo repository.BranchRepository
}

func NewStockService(stockRepo repository.StockRepository, branchRepo repository.BranchRepository) StockService {
	return &stockService{
		stockRepo:  stockRepo,
		branchRepo: branchRepo,
	}
}

func (s *stockService) GetSnapshot(branchID uuid.UUID) (*model.StockSnapshot, error) {
	if branchID == uuid.Nil {
		return nil, model.ErrBranchRequired
	}

	rows, err := s.stockRepo.FindByBranch(branchID)
	if err != nil {
		return nil, err
	}

	snapshot := &model.StockSnapshot{
		BranchID: branchID,
		Levels:   make(map[uuid.UUID]model.StockLevel, len(rows)),
	}
	for _, row := range rows {
		snapshot.Levels[row.ProductID] = model.StockLevel{
			Stock:    row.Stock,
			MinStock: row.MinStock,
		}
	}
	return snapshot, nil
}

func (s *stockService) GetBranchStock(branchID uuid.UUID) ([]model.BranchStock, error) {
	if branchID == uuid.Nil {
		return nil, model.ErrBranchRequired
	}
	return s.stockRepo.FindByBranch(branchID)
}

func (s *stockService) SetLevel(req *SetStockRequest, userID string) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	if _, err := s.branchRepo.FindByID(req.BranchID); err != nil {
		return errors.New("branch not found")
	}

	row := &model.BranchStock{
		ProductID: req.ProductID,
		BranchID:  req.BranchID,
		Stock:     req.Stock,
		MinStock:  req.MinStock,
	}
	row.CreatedBy = userID
	row.UpdatedBy = userID

	return s.stockRepo.Upsert(row)
}
