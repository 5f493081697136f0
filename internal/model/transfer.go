package model

import "github.com/google/uuid"

type TransferStatus string

const (
	TransferPendiente TransferStatus = "Pendiente"
	TransferEnviado   TransferStatus = "Enviado"
	TransferRecibido  TransferStatus = "Recibido"
	TransferCancelado TransferStatus = "Cancelado"
)

// Lifecycle edges. Recibido and Cancelado are terminal.
var transferEdges = map[TransferStatus][]TransferStatus{
	TransferPendiente: {TransferEnviado, TransferCancelado},
	TransferEnviado:   {TransferRecibido, TransferCancelado},
}

// CanTransitionTo reports whether the edge exists in the lifecycle
func (s TransferStatus) CanTransitionTo(next TransferStatus) bool {
	for _, allowed := range transferEdges[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no edge leaves this status
func (s TransferStatus) IsTerminal() bool {
	return len(transferEdges[s]) == 0
}

// Transfer moves stock between branches. The actual stock movement is
// executed by database triggers on the status change; this record tracks
// the lifecycle and who drove it.
type Transfer struct {
	BaseModel
	OriginBranchID      uuid.UUID `gorm:"type:uuid;not null;index" json:"origin_branch_id" validate:"uuid_required"`
	OriginBranch        *Branch   `gorm:"foreignKey:OriginBranchID" json:"origin_branch,omitempty"`
	DestinationBranchID uuid.UUID `gorm:"type:uuid;not null;index" json:"destination_branch_id" validate:"uuid_required"`
	DestinationBranch   *Branch   `gorm:"foreignKey:DestinationBranchID" json:"destination_branch,omitempty"`

	Status TransferStatus `gorm:"type:varchar(20);not null;default:'Pendiente'" json:"status"`
	Note   string         `gorm:"type:text" json:"note"`

	// User tracking
	CreatedByUserID  *string `gorm:"type:varchar(255)" json:"created_by_user_id,omitempty"`
	CreatedByUser    *User   `gorm:"foreignKey:CreatedByUserID;references:ID" json:"created_by_user,omitempty"`
	ReceivedByUserID *string `gorm:"type:varchar(255)" json:"received_by_user_id,omitempty"`
	ReceivedByUser   *User   `gorm:"foreignKey:ReceivedByUserID;references:ID" json:"received_by_user,omitempty"`

	Items []TransferItem `json:"items,omitempty"`
}

// TransferItem snapshots the line at submission time. TotalUnits is the
// quantity in loose units (display_quantity * units_per_box) captured when
// the transfer entered Pendiente.
type TransferItem struct {
	BaseModel
	TransferID      uuid.UUID `gorm:"type:uuid;not null;index" json:"transfer_id"`
	ProductID       uuid.UUID `gorm:"type:uuid;not null" json:"product_id"`
	Product         *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	SKU             string    `gorm:"type:varchar(50)" json:"sku"`
	Name            string    `gorm:"type:varchar(255)" json:"name"`
	DisplayQuantity int       `gorm:"not null" json:"display_quantity"`
	UnitType        UnitType  `gorm:"type:varchar(10);not null" json:"unit_type"`
	UnitsPerBox     int       `gorm:"not null;default:1" json:"units_per_box"`
	TotalUnits      int       `gorm:"not null" json:"total_units"`
}
