package service

import (
	"sync"

	"go-pos-erp/internal/model"
	"go-pos-erp/internal/repository"

	"github.com/google/uuid"
)

// CartService keeps one sale basket per user session. Quantity checks run
// against the stock snapshot fetched when the branch was selected; switching
// branch invalidates the snapshot and re-fetches it.
type CartService interface {
	CartFor(userID uuid.UUID) *model.Cart
	SelectBranch(userID, branchID uuid.UUID) (*model.Cart, error)
	AddItem(userID, productID uuid.UUID) (*model.Cart, error)
	RemoveItem(userID, productID uuid.UUID) (*model.Cart, error)
	UpdateQuantity(userID, productID uuid.UUID, delta int) (*model.Cart, error)
	Clear(userID uuid.UUID)
}

type cartSession struct {
	mu       sync.Mutex
	cart     model.Cart
	snapshot *model.StockSnapshot
}

type cartService struct {
	mu          sync.Mutex
	sessions    map[uuid.UUID]*cartSession
	productRepo repository.ProductRepository
	stock       StockService
}

func NewCartService(productRepo repository.ProductRepository, stock StockService) CartService {
	return &cartService{
		sessions:    make(map[uuid.UUID]*cartSession),
		productRepo: productRepo,
		stock:       stock,
	}
}

func (s *cartService) session(userID uuid.UUID) *cartSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[userID]
	if !ok {
		sess = &cartSession{}
		s.sessions[userID] = sess
	}
	return sess
}

func snapshotCart(c *model.Cart) *model.Cart {
	out := &model.Cart{BranchID: c.BranchID}
	out.Lines = append(out.Lines, c.Lines...)
	return out
}

func (s *cartService) CartFor(userID uuid.UUID) *model.Cart {
	sess := s.session(userID)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return snapshotCart(&sess.cart)
}

func (s *cartService) SelectBranch(userID, branchID uuid.UUID) (*model.Cart, error) {
	snap, err := s.stock.GetSnapshot(branchID)
	if err != nil {
		return nil, err
	}

	sess := s.session(userID)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.cart.BranchID = branchID
	sess.snapshot = snap
	return snapshotCart(&sess.cart), nil
}

func (s *cartService) AddItem(userID, productID uuid.UUID) (*model.Cart, error) {
	sess := s.session(userID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.cart.BranchID == uuid.Nil {
		return nil, model.ErrBranchRequired
	}

	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		return nil, err
	}

	sess.cart.AddItem(product)
	return snapshotCart(&sess.cart), nil
}

func (s *cartService) RemoveItem(userID, productID uuid.UUID) (*model.Cart, error) {
	sess := s.session(userID)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.cart.RemoveItem(productID)
	return snapshotCart(&sess.cart), nil
}

func (s *cartService) UpdateQuantity(userID, productID uuid.UUID, delta int) (*model.Cart, error) {
	sess := s.session(userID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err := sess.cart.UpdateQuantity(productID, delta, sess.snapshot); err != nil {
		return nil, err
	}
	return snapshotCart(&sess.cart), nil
}

func (s *cartService) Clear(userID uuid.UUID) {
	sess := s.session(userID)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.cart.Clear()
}
