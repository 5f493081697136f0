package service

import (
	"errors"
	"testing"

	"go-pos-erp/internal/model"

	"github.com/google/uuid"
)

type stubTransferRepo struct {
	inserted      *model.Transfer
	insertErr     error
	findResult    *model.Transfer
	findErr       error
	updatedStatus *model.TransferStatus
	receivedBy    *string
	updatedHeader *model.Transfer
	replacedItems []model.TransferItem
}

func (s *stubTransferRepo) Insert(transfer *model.Transfer) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	s.inserted = transfer
	return nil
}

func (s *stubTransferRepo) UpdateHeader(transfer *model.Transfer) error {
	s.updatedHeader = transfer
	return nil
}

func (s *stubTransferRepo) ReplaceItems(transferID uuid.UUID, items []model.TransferItem) error {
	s.replacedItems = items
	return nil
}

func (s *stubTransferRepo) UpdateStatus(id uuid.UUID, status model.TransferStatus, receivedBy *string) error {
	s.updatedStatus = &status
	s.receivedBy = receivedBy
	return nil
}

func (s *stubTransferRepo) FindByID(id uuid.UUID) (*model.Transfer, error) {
	return s.findResult, s.findErr
}

func (s *stubTransferRepo) FindAll(status *model.TransferStatus) ([]model.Transfer, error) {
	return nil, nil
}

type stubStock struct {
	snapshot *model.StockSnapshot
	err      error
}

func (s *stubStock) GetSnapshot(branchID uuid.UUID) (*model.StockSnapshot, error) {
	return s.snapshot, s.err
}

func (s *stubStock) GetBranchStock(branchID uuid.UUID) ([]model.BranchStock, error) {
	return nil, nil
}

func (s *stubStock) SetLevel(req *SetStockRequest, userID string) error { return nil }

func adminSession() model.SessionContext {
	return model.SessionContext{UserID: uuid.New(), FullName: "Admin", RoleCode: model.RoleAdmin}
}

func branchSession(branchIDs ...uuid.UUID) model.SessionContext {
	return model.SessionContext{
		UserID:            uuid.New(),
		FullName:          "Vendedor Uno",
		RoleCode:          model.RoleVendedor,
		AssignedBranchIDs: branchIDs,
	}
}

func draftWithLine(origin, destination, productID uuid.UUID, qty, unitsPerBox int) *model.TransferDraft {
	unitType := model.UnitTypeUnit
	if unitsPerBox > 1 {
		unitType = model.UnitTypeBox
	}
	return &model.TransferDraft{
		OriginBranchID:      origin,
		DestinationBranchID: destination,
		Lines: []model.TransferLine{{
			ProductID:       productID,
			Name:            "Gaseosa 2L",
			DisplayQuantity: qty,
			UnitType:        unitType,
			UnitsPerBox:     unitsPerBox,
		}},
	}
}

func stockAt(branchID, productID uuid.UUID, stock int) *stubStock {
	return &stubStock{snapshot: &model.StockSnapshot{
		BranchID: branchID,
		Levels:   map[uuid.UUID]model.StockLevel{productID: {Stock: stock}},
	}}
}

func TestCreateTransferValidation(t *testing.T) {
	origin := uuid.New()
	destination := uuid.New()
	productID := uuid.New()

	tests := []struct {
		name    string
		draft   *model.TransferDraft
		wantErr error
	}{
		{
			name:    "missing origin",
			draft:   draftWithLine(uuid.Nil, destination, productID, 1, 1),
			wantErr: model.ErrBranchRequired,
		},
		{
			name:    "missing destination",
			draft:   draftWithLine(origin, uuid.Nil, productID, 1, 1),
			wantErr: model.ErrBranchRequired,
		},
		{
			name:    "same branch",
			draft:   draftWithLine(origin, origin, productID, 1, 1),
			wantErr: model.ErrSameBranch,
		},
		{
			name:    "empty draft",
			draft:   &model.TransferDraft{OriginBranchID: origin, DestinationBranchID: destination},
			wantErr: model.ErrEmptyBasket,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &stubTransferRepo{}
			svc := NewTransferService(repo, stockAt(origin, productID, 100), nil)

			_, err := svc.Create(adminSession(), tt.draft, "")
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if repo.inserted != nil {
				t.Error("nothing should be persisted on a validation failure")
			}
		})
	}
}

func TestCreateTransferChecksSnapshotInTotalUnits(t *testing.T) {
	origin := uuid.New()
	destination := uuid.New()
	productID := uuid.New()

	// 3 boxes of 12 = 36 units against 30 available
	draft := draftWithLine(origin, destination, productID, 3, 12)
	repo := &stubTransferRepo{}
	svc := NewTransferService(repo, stockAt(origin, productID, 30), nil)

	_, err := svc.Create(adminSession(), draft, "")

	var stockErr *model.InsufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("expected InsufficientStockError, got %v", err)
	}
	if stockErr.Available != 30 || stockErr.Requested != 36 {
		t.Errorf("got available=%d requested=%d, want available=30 requested=36", stockErr.Available, stockErr.Requested)
	}
	if stockErr.ProductName != "Gaseosa 2L" {
		t.Errorf("product name = %q, want the line's name", stockErr.ProductName)
	}
}

func TestCreateTransferSnapshotsTotalUnits(t *testing.T) {
	origin := uuid.New()
	destination := uuid.New()
	productID := uuid.New()

	draft := draftWithLine(origin, destination, productID, 2, 12)
	repo := &stubTransferRepo{}
	svc := NewTransferService(repo, stockAt(origin, productID, 100), nil)

	transfer, err := svc.Create(branchSession(origin), draft, "reposición semanal")
	if err != nil {
		t.Fatal(err)
	}

	if transfer.Status != model.TransferPendiente {
		t.Errorf("status = %s, want Pendiente", transfer.Status)
	}
	if transfer.Note != "reposición semanal" {
		t.Errorf("note = %q", transfer.Note)
	}
	if len(repo.inserted.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(repo.inserted.Items))
	}
	if repo.inserted.Items[0].TotalUnits != 24 {
		t.Errorf("total units = %d, want 24 stored at submission", repo.inserted.Items[0].TotalUnits)
	}
}

func pendingTransfer(origin, destination uuid.UUID) *model.Transfer {
	t := &model.Transfer{
		OriginBranchID:      origin,
		DestinationBranchID: destination,
		Status:              model.TransferPendiente,
	}
	t.ID = uuid.New()
	return t
}

func TestShipAuthorization(t *testing.T) {
	origin := uuid.New()
	destination := uuid.New()

	t.Run("origin actor ships", func(t *testing.T) {
		repo := &stubTransferRepo{findResult: pendingTransfer(origin, destination)}
		svc := NewTransferService(repo, &stubStock{}, nil)

		transfer, err := svc.Ship(branchSession(origin), uuid.New())
		if err != nil {
			t.Fatal(err)
		}
		if transfer.Status != model.TransferEnviado {
			t.Errorf("status = %s, want Enviado", transfer.Status)
		}
	})

	t.Run("destination actor cannot ship", func(t *testing.T) {
		repo := &stubTransferRepo{findResult: pendingTransfer(origin, destination)}
		svc := NewTransferService(repo, &stubStock{}, nil)

		if _, err := svc.Ship(branchSession(destination), uuid.New()); !errors.Is(err, model.ErrNotAuthorized) {
			t.Fatalf("expected ErrNotAuthorized, got %v", err)
		}
		if repo.updatedStatus != nil {
			t.Error("status must not change for an unauthorized actor")
		}
	})

	t.Run("admin ships from anywhere", func(t *testing.T) {
		repo := &stubTransferRepo{findResult: pendingTransfer(origin, destination)}
		svc := NewTransferService(repo, &stubStock{}, nil)

		if _, err := svc.Ship(adminSession(), uuid.New()); err != nil {
			t.Fatal(err)
		}
	})
}

func TestReceiveRecordsActor(t *testing.T) {
	origin := uuid.New()
	destination := uuid.New()

	shipped := pendingTransfer(origin, destination)
	shipped.Status = model.TransferEnviado

	repo := &stubTransferRepo{findResult: shipped}
	svc := NewTransferService(repo, &stubStock{}, nil)
	session := branchSession(destination)

	transfer, err := svc.Receive(session, uuid.New())
	if err != nil {
		t.Fatal(err)
	}

	if transfer.Status != model.TransferRecibido {
		t.Errorf("status = %s, want Recibido", transfer.Status)
	}
	if repo.receivedBy == nil || *repo.receivedBy != session.UserID.String() {
		t.Error("receiving actor should be recorded on the transfer")
	}

	t.Run("origin actor cannot receive", func(t *testing.T) {
		repo := &stubTransferRepo{findResult: func() *model.Transfer {
			tr := pendingTransfer(origin, destination)
			tr.Status = model.TransferEnviado
			return tr
		}()}
		svc := NewTransferService(repo, &stubStock{}, nil)

		if _, err := svc.Receive(branchSession(origin), uuid.New()); !errors.Is(err, model.ErrNotAuthorized) {
			t.Fatalf("expected ErrNotAuthorized, got %v", err)
		}
	})
}

func TestTransitionRejectsInvalidEdges(t *testing.T) {
	origin := uuid.New()
	destination := uuid.New()

	tests := []struct {
		name string
		from model.TransferStatus
		op   func(TransferService, model.SessionContext) error
	}{
		{
			name: "receive from Pendiente",
			from: model.TransferPendiente,
			op: func(svc TransferService, s model.SessionContext) error {
				_, err := svc.Receive(s, uuid.New())
				return err
			},
		},
		{
			name: "ship from Recibido",
			from: model.TransferRecibido,
			op: func(svc TransferService, s model.SessionContext) error {
				_, err := svc.Ship(s, uuid.New())
				return err
			},
		},
		{
			name: "cancel from Recibido",
			from: model.TransferRecibido,
			op: func(svc TransferService, s model.SessionContext) error {
				_, err := svc.Cancel(s, uuid.New())
				return err
			},
		},
		{
			name: "ship from Cancelado",
			from: model.TransferCancelado,
			op: func(svc TransferService, s model.SessionContext) error {
				_, err := svc.Ship(s, uuid.New())
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transfer := pendingTransfer(origin, destination)
			transfer.Status = tt.from
			repo := &stubTransferRepo{findResult: transfer}
			svc := NewTransferService(repo, &stubStock{}, nil)

			err := tt.op(svc, adminSession())

			var transitionErr *model.InvalidTransitionError
			if !errors.As(err, &transitionErr) {
				t.Fatalf("expected InvalidTransitionError, got %v", err)
			}
			if repo.updatedStatus != nil {
				t.Error("status must not change on a rejected edge")
			}
		})
	}
}

func TestCancelFromEnviado(t *testing.T) {
	origin := uuid.New()
	destination := uuid.New()

	shipped := pendingTransfer(origin, destination)
	shipped.Status = model.TransferEnviado

	repo := &stubTransferRepo{findResult: shipped}
	svc := NewTransferService(repo, &stubStock{}, nil)

	transfer, err := svc.Cancel(branchSession(origin), uuid.New())
	if err != nil {
		t.Fatal(err)
	}
	if transfer.Status != model.TransferCancelado {
		t.Errorf("status = %s, want Cancelado", transfer.Status)
	}
}

func TestUpdateTransferSkipsStockValidation(t *testing.T) {
	origin := uuid.New()
	destination := uuid.New()
	productID := uuid.New()

	repo := &stubTransferRepo{findResult: pendingTransfer(origin, destination)}
	// A stock service that would fail any snapshot read: Update must not
	// consult it at all.
	svc := NewTransferService(repo, &stubStock{err: errors.New("snapshot unavailable")}, nil)

	note := "corrección"
	req := &UpdateTransferRequest{
		Note: &note,
		Lines: []model.TransferLine{{
			ProductID:       productID,
			Name:            "Gaseosa 2L",
			DisplayQuantity: 999,
			UnitType:        model.UnitTypeBox,
			UnitsPerBox:     12,
		}},
	}

	if _, err := svc.Update(branchSession(origin), uuid.New(), req); err != nil {
		t.Fatal(err)
	}

	if repo.updatedHeader == nil || repo.updatedHeader.Note != "corrección" {
		t.Error("header note should be rewritten")
	}
	if len(repo.replacedItems) != 1 {
		t.Fatalf("expected 1 replaced item, got %d", len(repo.replacedItems))
	}
	if repo.replacedItems[0].TotalUnits != 999*12 {
		t.Errorf("total units = %d, want %d with no stock check", repo.replacedItems[0].TotalUnits, 999*12)
	}
}

func TestUpdateTransferRejectsSameBranch(t *testing.T) {
	origin := uuid.New()
	destination := uuid.New()

	repo := &stubTransferRepo{findResult: pendingTransfer(origin, destination)}
	svc := NewTransferService(repo, &stubStock{}, nil)

	req := &UpdateTransferRequest{DestinationBranchID: &origin}
	if _, err := svc.Update(branchSession(origin), uuid.New(), req); !errors.Is(err, model.ErrSameBranch) {
		t.Fatalf("expected ErrSameBranch, got %v", err)
	}
}

func TestUpdateTransferRequiresOriginActor(t *testing.T) {
	origin := uuid.New()
	destination := uuid.New()

	repo := &stubTransferRepo{findResult: pendingTransfer(origin, destination)}
	svc := NewTransferService(repo, &stubStock{}, nil)

	if _, err := svc.Update(branchSession(destination), uuid.New(), &UpdateTransferRequest{}); !errors.Is(err, model.ErrNotAuthorized) {
		t.Fatalf("expected ErrNotAuthorized, got %v", err)
	}
}
