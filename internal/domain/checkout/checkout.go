// Package checkout turns product selections into a cart and commits the cart
// against catalog stock.
package checkout

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/abdidvp/minimart/internal/domain"
	"github.com/abdidvp/minimart/internal/domain/catalog"
)

// Store is the part of the catalog checkout reads from and writes to.
type Store interface {
	FindByCode(code string) (domain.Product, bool)
	ApplyStock(changes []catalog.StockChange) error
}

// State is the lifecycle position of a cart.
type State int

const (
	Building State = iota
	Committed
	Abandoned
)

func (s State) String() string {
	switch s {
	case Building:
		return "building"
	case Committed:
		return "committed"
	case Abandoned:
		return "abandoned"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Line pairs a product snapshot taken at selection time with a quantity.
type Line struct {
	Product  domain.Product `json:"product"`
	Quantity int            `json:"quantity"`
}

// LineTotal is UnitPrice * Quantity.
func (l Line) LineTotal() decimal.Decimal {
	return l.Product.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart accumulates one line per distinct product.
type Cart struct {
	ID    uuid.UUID
	state State
	lines []Line
}

// State returns the cart's lifecycle state.
func (c *Cart) State() State { return c.state }

// Lines returns a copy of the cart lines in the order they were added.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Len returns the number of lines.
func (c *Cart) Len() int { return len(c.lines) }

// Total sums the line totals at snapshot prices.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.LineTotal())
	}
	return total
}

func (c *Cart) indexOf(key string) int {
	for i, l := range c.lines {
		if l.Product.Key() == key {
			return i
		}
	}
	return -1
}

// ReceiptLine is a committed line with its computed total.
type ReceiptLine struct {
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Unit      string          `json:"unit"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// Receipt is the outcome of a successful commit.
type Receipt struct {
	ID          uuid.UUID       `json:"id"`
	CartID      uuid.UUID       `json:"cart_id"`
	Lines       []ReceiptLine   `json:"lines"`
	Total       decimal.Decimal `json:"total"`
	CommittedAt time.Time       `json:"committed_at"`
}

// Engine validates cart lines against the store and commits carts.
type Engine struct {
	store  Store
	logger *zap.Logger
	now    func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New creates an Engine bound to store.
func New(store Store, opts ...Option) *Engine {
	e := &Engine{
		store:  store,
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewCart starts an empty cart.
func (e *Engine) NewCart() *Cart {
	return &Cart{ID: uuid.New(), state: Building}
}

// AddLine appends a line for the product named by token. The token goes
// through the code normalizer first. On any error the cart is unchanged.
func (e *Engine) AddLine(cart *Cart, token string, qty int) error {
	if cart.state != Building {
		return fmt.Errorf("%w: %s", domain.ErrCartClosed, cart.state)
	}
	code := domain.NormalizeCode(token)
	p, ok := e.store.FindByCode(code)
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, code)
	}
	if qty <= 0 || qty > p.Stock {
		return fmt.Errorf("%w: %s has %d, requested %d", domain.ErrInsufficientStock, p.Code, p.Stock, qty)
	}
	if cart.indexOf(p.Key()) >= 0 {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateLine, p.Code)
	}
	cart.lines = append(cart.lines, Line{Product: p, Quantity: qty})
	e.logger.Debug("cart line added",
		zap.Stringer("cart_id", cart.ID),
		zap.String("code", p.Code),
		zap.Int("quantity", qty))
	return nil
}

// RemoveLine drops the line for the product named by token.
func (e *Engine) RemoveLine(cart *Cart, token string) error {
	if cart.state != Building {
		return fmt.Errorf("%w: %s", domain.ErrCartClosed, cart.state)
	}
	code := domain.NormalizeCode(token)
	i := cart.indexOf(domain.CodeKey(code))
	if i < 0 {
		return fmt.Errorf("%w: %s not in cart", domain.ErrNotFound, code)
	}
	cart.lines = append(cart.lines[:i], cart.lines[i+1:]...)
	return nil
}

// Commit computes the receipt and then applies every stock decrement in one
// atomic store call. If the store rejects the batch nothing is decremented
// and the cart stays open.
func (e *Engine) Commit(cart *Cart) (Receipt, error) {
	if cart.state != Building {
		return Receipt{}, fmt.Errorf("%w: %s", domain.ErrCartClosed, cart.state)
	}
	if len(cart.lines) == 0 {
		return Receipt{}, domain.ErrEmptyCart
	}

	receipt := Receipt{
		ID:     uuid.New(),
		CartID: cart.ID,
		Lines:  make([]ReceiptLine, 0, len(cart.lines)),
		Total:  decimal.Zero,
	}
	changes := make([]catalog.StockChange, 0, len(cart.lines))
	for _, l := range cart.lines {
		lt := l.LineTotal()
		receipt.Lines = append(receipt.Lines, ReceiptLine{
			Code:      l.Product.Code,
			Name:      l.Product.Name,
			Unit:      l.Product.Unit,
			UnitPrice: l.Product.UnitPrice,
			Quantity:  l.Quantity,
			LineTotal: lt,
		})
		receipt.Total = receipt.Total.Add(lt)
		changes = append(changes, catalog.StockChange{Code: l.Product.Code, Quantity: l.Quantity})
	}

	if err := e.store.ApplyStock(changes); err != nil {
		e.logger.Warn("commit rejected", zap.Stringer("cart_id", cart.ID), zap.Error(err))
		return Receipt{}, fmt.Errorf("committing cart: %w", err)
	}

	receipt.CommittedAt = e.now()
	cart.state = Committed
	e.logger.Info("cart committed",
		zap.Stringer("cart_id", cart.ID),
		zap.Int("lines", len(receipt.Lines)),
		zap.Stringer("total", receipt.Total))
	return receipt, nil
}

// Abandon closes a cart without touching stock.
func (e *Engine) Abandon(cart *Cart) error {
	if cart.state != Building {
		return fmt.Errorf("%w: %s", domain.ErrCartClosed, cart.state)
	}
	cart.state = Abandoned
	e.logger.Debug("cart abandoned", zap.Stringer("cart_id", cart.ID), zap.Int("lines", len(cart.lines)))
	return nil
}
