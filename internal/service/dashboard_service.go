package service

import (
	"time"

	"go-pos-erp/internal/repository"

	"github.com/google/uuid"
)

// DashboardStats is the per-branch overview
type DashboardStats struct {
	Sales         *repository.SalesSummary `json:"sales"`
	LowStockCount int64                    `json:"low_stock_count"`
}

type DashboardService interface {
	GetBranchStats(branchID uuid.UUID, days int) (*DashboardStats, error)
}

type dashboardService struct {
	saleRepo  repository.SaleRepository
	stockRepo repository.StockRepository
}

func NewDashboardService(saleRepo repository.SaleRepository, stockRepo repository.StockRepository) DashboardService {
	return &dashboardService{
		saleRepo:  saleRepo,
		stockRepo: stockRepo,
	}
}

func (s *dashboardService) GetBranchStats(branchID uuid.UUID, days int) (*DashboardStats, error) {
	endDate := time.Now()
	startDate := endDate.AddDate(0, 0, -days)

	sales, err := s.saleRepo.SalesSummary(&branchID, startDate, endDate)
	if err != nil {
		return nil, err
	}

	lowStock, err := s.stockRepo.LowStockCount(branchID)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		Sales:         sales,
		LowStockCount: lowStock,
	}, nil
}
