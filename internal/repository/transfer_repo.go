package repository

import (
	"go-pos-erp/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TransferRepository interface {
	Insert(transfer *model.Transfer) error
	UpdateHeader(transfer *model.Transfer) error
	// ReplaceItems is the wholesale delete-then-reinsert edit contract
	ReplaceItems(transferID uuid.UUID, items []model.TransferItem) error
	UpdateStatus(id uuid.UUID, status model.TransferStatus, receivedBy *string) error
	FindByID(id uuid.UUID) (*model.Transfer, error)
	FindAll(status *model.TransferStatus) ([]model.Transfer, error)
}

type transferRepo struct {
	db *gorm.DB
}

func NewTransferRepo(db *gorm.DB) TransferRepository {
	return &transferRepo{db}
}

func (r *transferRepo) Insert(transfer *model.Transfer) error {
	return r.db.Create(transfer).Error
}

func (r *transferRepo) UpdateHeader(transfer *model.Transfer) error {
	return r.db.Omit("Items").Save(transfer).Error
}

func (r *transferRepo) ReplaceItems(transferID uuid.UUID, items []model.TransferItem) error {
	if err := r.db.Unscoped().Where("transfer_id = ?", transferID).Delete(&model.TransferItem{}).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		items[i].TransferID = transferID
	}
	return r.db.Create(&items).Error
}

func (r *transferRepo) UpdateStatus(id uuid.UUID, status model.TransferStatus, receivedBy *string) error {
	updates := map[string]interface{}{"status": status}
	if receivedBy != nil {
		updates["received_by_user_id"] = *receivedBy
	}
	return r.db.Model(&model.Transfer{}).Where("id = ?", id).Updates(updates).Error
}

func (r *transferRepo) FindByID(id uuid.UUID) (*model.Transfer, error) {
	var transfer model.Transfer
	err := r.db.Preload("Items").Preload("Items.Product").
		Preload("OriginBranch").Preload("DestinationBranch").
		Preload("CreatedByUser").Preload("ReceivedByUser").
		First(&transfer, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &transfer, nil
}

func (r *transferRepo) FindAll(status *model.TransferStatus) ([]model.Transfer, error) {
	var transfers []model.Transfer
	q := r.db.Preload("Items").Preload("OriginBranch").Preload("DestinationBranch").
		Order("created_at DESC")
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	err := q.Find(&transfers).Error
	return transfers, err
}
