package service

import (
	"fmt"

	"go-pos-erp/internal/model"
	"go-pos-erp/internal/repository"
	"go-pos-erp/internal/ws"

	"github.com/google/uuid"
)

type UpdateTransferRequest struct {
	OriginBranchID      *uuid.UUID           `json:"origin_branch_id"`
	DestinationBranchID *uuid.UUID           `json:"destination_branch_id"`
	Note                *string              `json:"note"`
	Lines               []model.TransferLine `json:"lines"`
}

type TransferService interface {
	Create(session model.SessionContext, draft *model.TransferDraft, note string) (*model.Transfer, error)
	Ship(session model.SessionContext, id uuid.UUID) (*model.Transfer, error)
	Receive(session model.SessionContext, id uuid.UUID) (*model.Transfer, error)
	Cancel(session model.SessionContext, id uuid.UUID) (*model.Transfer, error)
	Update(session model.SessionContext, id uuid.UUID, req *UpdateTransferRequest) (*model.Transfer, error)
	GetByID(id uuid.UUID) (*model.Transfer, error)
	List(status *model.TransferStatus) ([]model.Transfer, error)
}

type transferService struct {
	transferRepo repository.TransferRepository
	stock        StockService
	wsHub        *ws.Hub
}

func NewTransferService(transferRepo repository.TransferRepository, stock StockService, hub *ws.Hub) TransferService {
	return &transferService{
		transferRepo: transferRepo,
		stock:        stock,
		wsHub:        hub,
	}
}

// Create validates the draft against the origin branch's stock snapshot and
// persists it in Pendiente. The snapshot is advisory; the database may still
// reject the eventual shipment.
func (s *transferService) Create(session model.SessionContext, draft *model.TransferDraft, note string) (*model.Transfer, error) {
	if draft.OriginBranchID == uuid.Nil || draft.DestinationBranchID == uuid.Nil {
		return nil, model.ErrBranchRequired
	}
	if draft.OriginBranchID == draft.DestinationBranchID {
		return nil, model.ErrSameBranch
	}
	if draft.IsEmpty() {
		return nil, model.ErrEmptyBasket
	}

	snap, err := s.stock.GetSnapshot(draft.OriginBranchID)
	if err != nil {
		return nil, err
	}
	for _, line := range draft.Lines {
		if available := snap.Available(line.ProductID); line.TotalUnits() > available {
			return nil, &model.InsufficientStockError{
				ProductID:   line.ProductID,
				ProductName: line.Name,
				Available:   available,
				Requested:   line.TotalUnits(),
			}
		}
	}

	userID := session.UserID.String()
	transfer := &model.Transfer{
		OriginBranchID:      draft.OriginBranchID,
		DestinationBranchID: draft.DestinationBranchID,
		Status:              model.TransferPendiente,
		Note:                note,
		CreatedByUserID:     &userID,
		Items:               transferItemsFromDraft(draft.Lines, userID),
	}
	transfer.CreatedBy = userID
	transfer.UpdatedBy = userID

	if err := s.transferRepo.Insert(transfer); err != nil {
		return nil, err
	}

	s.publish(session, transfer, "transfer_created")
	return transfer, nil
}

// Ship moves Pendiente -> Enviado. Only admins or actors assigned to the
// origin branch may process the shipment.
func (s *transferService) Ship(session model.SessionContext, id uuid.UUID) (*model.Transfer, error) {
	return s.transition(session, id, model.TransferEnviado, originAuthorized, nil)
}

// Receive moves Enviado -> Recibido and records the receiving actor. Only
// admins or actors assigned to the destination branch may confirm reception.
func (s *transferService) Receive(session model.SessionContext, id uuid.UUID) (*model.Transfer, error) {
	receivedBy := session.UserID.String()
	return s.transition(session, id, model.TransferRecibido, destinationAuthorized, &receivedBy)
}

// Cancel moves Pendiente or Enviado -> Cancelado. Same authorization rule
// as shipping: admins or origin-branch actors.
func (s *transferService) Cancel(session model.SessionContext, id uuid.UUID) (*model.Transfer, error) {
	return s.transition(session, id, model.TransferCancelado, originAuthorized, nil)
}

func originAuthorized(session model.SessionContext, t *model.Transfer) bool {
	return session.IsAdmin() || session.IsAssignedTo(t.OriginBranchID)
}

func destinationAuthorized(session model.SessionContext, t *model.Transfer) bool {
	return session.IsAdmin() || session.IsAssignedTo(t.DestinationBranchID)
}

func (s *transferService) transition(session model.SessionContext, id uuid.UUID, next model.TransferStatus, authorized func(model.SessionContext, *model.Transfer) bool, receivedBy *string) (*model.Transfer, error) {
	transfer, err := s.transferRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if !transfer.Status.CanTransitionTo(next) {
		return nil, &model.InvalidTransitionError{From: transfer.Status, To: next}
	}
	if !authorized(session, transfer) {
		return nil, model.ErrNotAuthorized
	}

	if err := s.transferRepo.UpdateStatus(id, next, receivedBy); err != nil {
		return nil, err
	}

	transfer.Status = next
	if receivedBy != nil {
		transfer.ReceivedByUserID = receivedBy
	}

	s.publish(session, transfer, "transfer_"+string(next))
	return transfer, nil
}

// Update edits a transfer: header fields change independently of status, and
// items are wholesale-replaced (delete-all then re-insert). No stock
// re-validation runs here — deliberate parity with the checkout front-end,
// where only creation checks the snapshot.
func (s *transferService) Update(session model.SessionContext, id uuid.UUID, req *UpdateTransferRequest) (*model.Transfer, error) {
	transfer, err := s.transferRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if !originAuthorized(session, transfer) {
		return nil, model.ErrNotAuthorized
	}

	userID := session.UserID.String()
	if req.OriginBranchID != nil {
		transfer.OriginBranchID = *req.OriginBranchID
	}
	if req.DestinationBranchID != nil {
		transfer.DestinationBranchID = *req.DestinationBranchID
	}
	if transfer.OriginBranchID == transfer.DestinationBranchID {
		return nil, model.ErrSameBranch
	}
	if req.Note != nil {
		transfer.Note = *req.Note
	}
	transfer.UpdatedBy = userID
	transfer.Items = nil

	if err := s.transferRepo.UpdateHeader(transfer); err != nil {
		return nil, err
	}

	if req.Lines != nil {
		items := transferItemsFromDraft(req.Lines, userID)
		if err := s.transferRepo.ReplaceItems(id, items); err != nil {
			return nil, err
		}
	}

	return s.transferRepo.FindByID(id)
}

func (s *transferService) GetByID(id uuid.UUID) (*model.Transfer, error) {
	return s.transferRepo.FindByID(id)
}

func (s *transferService) List(status *model.TransferStatus) ([]model.Transfer, error) {
	return s.transferRepo.FindAll(status)
}

func (s *transferService) publish(session model.SessionContext, t *model.Transfer, action string) {
	if s.wsHub == nil {
		return
	}
	go s.wsHub.Publish(ws.Event{
		Type:   "transfer",
		Action: action,
		Payload: map[string]interface{}{
			"transfer_id": t.ID,
			"origin":      t.OriginBranchID,
			"destination": t.DestinationBranchID,
			"status":      t.Status,
			"user_id":     session.UserID,
		},
		Message: fmt.Sprintf("%s: transfer %s", session.FullName, t.Status),
	})
}

func transferItemsFromDraft(lines []model.TransferLine, userID string) []model.TransferItem {
	items := make([]model.TransferItem, len(lines))
	for i, l := range lines {
		items[i] = model.TransferItem{
			ProductID:       l.ProductID,
			SKU:             l.SKU,
			Name:            l.Name,
			DisplayQuantity: l.DisplayQuantity,
			UnitType:        l.UnitType,
			UnitsPerBox:     l.UnitsPerBox,
			TotalUnits:      l.TotalUnits(),
		}
		items[i].CreatedBy = userID
		items[i].UpdatedBy = userID
	}
	return items
}
