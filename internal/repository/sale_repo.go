package repository

import (
	"errors"
	"time"

	"go-pos-erp/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrUnknownFlagField = errors.New("unknown permission flag field")

type SaleRepository interface {
	InsertSale(sale *model.Sale) error
	InsertItems(saleID uuid.UUID, items []model.SaleItem) error
	// ReplaceItems is the wholesale delete-then-reinsert edit contract.
	// The two phases are deliberately not atomic.
	ReplaceItems(saleID uuid.UUID, items []model.SaleItem) error
	DeleteItems(saleID uuid.UUID) error
	Delete(saleID uuid.UUID) error
	UpdateHeader(sale *model.Sale) error
	UpdatePermissionFlag(saleID uuid.UUID, field string, value bool) error
	FindByID(id uuid.UUID) (*model.Sale, error)
	FindAll(branchID *uuid.UUID, from, to time.Time) ([]model.Sale, error)
	SalesSummary(branchID *uuid.UUID, from, to time.Time) (*SalesSummary, error)
}

// SalesSummary aggregates a branch's sales over a date range
type SalesSummary struct {
	Count int64  `json:"count"`
	Total string `json:"total"`
}

type saleRepo struct {
	db *gorm.DB
}

func NewSaleRepo(db *gorm.DB) SaleRepository {
	return &saleRepo{db}
}

func (r *saleRepo) InsertSale(sale *model.Sale) error {
	// Header only; items are a separate phase so the caller controls the
	// partial-failure surface.
	return r.db.Omit("Items").Create(sale).Error
}

func (r *saleRepo) InsertItems(saleID uuid.UUID, items []model.SaleItem) error {
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		items[i].SaleID = saleID
	}
	return r.db.Create(&items).Error
}

func (r *saleRepo) ReplaceItems(saleID uuid.UUID, items []model.SaleItem) error {
	if err := r.DeleteItems(saleID); err != nil {
		return err
	}
	return r.InsertItems(saleID, items)
}

func (r *saleRepo) DeleteItems(saleID uuid.UUID) error {
	return r.db.Unscoped().Where("sale_id = ?", saleID).Delete(&model.SaleItem{}).Error
}

func (r *saleRepo) Delete(saleID uuid.UUID) error {
	// Stock reversal for voided sales runs in database triggers
	if err := r.DeleteItems(saleID); err != nil {
		return err
	}
	return r.db.Unscoped().Delete(&model.Sale{}, "id = ?", saleID).Error
}

func (r *saleRepo) UpdateHeader(sale *model.Sale) error {
	return r.db.Omit("Items").Save(sale).Error
}

func (r *saleRepo) UpdatePermissionFlag(saleID uuid.UUID, field string, value bool) error {
	if !model.PermissionFlagFields[field] {
		return ErrUnknownFlagField
	}
	return r.db.Model(&model.Sale{}).
		Where("id = ?", saleID).
		Update(field, value).Error
}

func (r *saleRepo) FindByID(id uuid.UUID) (*model.Sale, error) {
	var sale model.Sale
	err := r.db.Preload("Items").Preload("Items.Product").
		Preload("Branch").Preload("Customer").Preload("SoldByUser").
		First(&sale, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *saleRepo) FindAll(branchID *uuid.UUID, from, to time.Time) ([]model.Sale, error) {
	var sales []model.Sale
	q := r.db.Preload("Items").Preload("Branch").Preload("Customer").
		Where("created_at BETWEEN ? AND ?", from, to).
		Order("created_at DESC")
	if branchID != nil {
		q = q.Where("branch_id = ?", *branchID)
	}
	err := q.Find(&sales).Error
	return sales, err
}

func (r *saleRepo) SalesSummary(branchID *uuid.UUID, from, to time.Time) (*SalesSummary, error) {
	var summary SalesSummary
	q := r.db.Model(&model.Sale{}).Where("created_at BETWEEN ? AND ?", from, to)
	if branchID != nil {
		q = q.Where("branch_id = ?", *branchID)
	}
	if err := q.Count(&summary.Count).Error; err != nil {
		return nil, err
	}
	if err := q.Select("COALESCE(SUM(total), 0)").Scan(&summary.Total).Error; err != nil {
		return nil, err
	}
	return &summary, nil
}
