package application

import (
	"sync"

	"go.uber.org/zap"

	"github.com/abdidvp/minimart/internal/domain"
	"github.com/abdidvp/minimart/internal/domain/catalog"
	"github.com/abdidvp/minimart/internal/domain/checkout"
)

// CheckoutService runs one cart at a time against the current catalog. When
// the catalog is regenerated the open cart is abandoned.
type CheckoutService struct {
	catalog *CatalogService
	logger  *zap.Logger

	mu     sync.Mutex
	engine *checkout.Engine
	cart   *checkout.Cart
}

func NewCheckoutService(catalog *CatalogService, logger *zap.Logger) *CheckoutService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &CheckoutService{catalog: catalog, logger: logger}
	catalog.OnReplace(s.catalogReplaced)
	return s
}

func (s *CheckoutService) catalogReplaced(*catalog.Catalog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cart != nil && s.cart.State() == checkout.Building {
		_ = s.engine.Abandon(s.cart)
		s.logger.Warn("open cart abandoned: catalog replaced", zap.Stringer("cart_id", s.cart.ID))
	}
	s.cart = nil
	s.engine = nil
}

// Begin opens a new cart, abandoning any cart still being built.
func (s *CheckoutService) Begin() *checkout.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cart != nil && s.cart.State() == checkout.Building {
		_ = s.engine.Abandon(s.cart)
	}
	s.engine = checkout.New(s.catalog.Catalog(), checkout.WithLogger(s.logger))
	s.cart = s.engine.NewCart()
	return s.cart
}

// Cart returns the cart in progress, or nil.
func (s *CheckoutService) Cart() *checkout.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart
}

func (s *CheckoutService) active() (*checkout.Engine, *checkout.Cart, error) {
	if s.cart == nil {
		return nil, nil, domain.ErrCartClosed
	}
	return s.engine, s.cart, nil
}

// Add puts qty units of the product named by token in the open cart.
func (s *CheckoutService) Add(token string, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, cart, err := s.active()
	if err != nil {
		return err
	}
	return e.AddLine(cart, token, qty)
}

// Remove drops a line from the open cart.
func (s *CheckoutService) Remove(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, cart, err := s.active()
	if err != nil {
		return err
	}
	return e.RemoveLine(cart, token)
}

// Finish commits the open cart. An empty cart is abandoned and reported as
// domain.ErrEmptyCart.
func (s *CheckoutService) Finish() (checkout.Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, cart, err := s.active()
	if err != nil {
		return checkout.Receipt{}, err
	}
	if cart.Len() == 0 {
		_ = e.Abandon(cart)
		s.cart = nil
		return checkout.Receipt{}, domain.ErrEmptyCart
	}
	receipt, err := e.Commit(cart)
	if err != nil {
		return checkout.Receipt{}, err
	}
	s.cart = nil
	return receipt, nil
}

// Cancel abandons the open cart, if any.
func (s *CheckoutService) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cart != nil && s.cart.State() == checkout.Building {
		_ = s.engine.Abandon(s.cart)
	}
	s.cart = nil
}
