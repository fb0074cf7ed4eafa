// Package catalog is the in-memory product store. It is the single owner of
// product identity and stock.
package catalog

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/btree"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/text/cases"

	"github.com/abdidvp/minimart/internal/domain"
)

const indexDegree = 16

// StockChange is one decrement applied by ApplyStock.
type StockChange struct {
	Code     string
	Quantity int
}

// Catalog maps normalized product keys to products. Keys are kept in a btree
// so listings come back in a stable order.
type Catalog struct {
	id     uuid.UUID
	logger *zap.Logger

	mu       sync.RWMutex
	products map[string]domain.Product
	index    *btree.BTreeG[string]
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithLogger sets the logger used for mutation events.
func WithLogger(l *zap.Logger) Option {
	return func(c *Catalog) { c.logger = l }
}

// New creates an empty catalog.
func New(opts ...Option) *Catalog {
	c := &Catalog{
		id:       uuid.New(),
		logger:   zap.NewNop(),
		products: make(map[string]domain.Product),
		index:    btree.NewG[string](indexDegree, func(a, b string) bool { return a < b }),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With(zap.Stringer("catalog_id", c.id))
	return c
}

// ID identifies this catalog instance. A regenerated catalog gets a new ID.
func (c *Catalog) ID() uuid.UUID { return c.id }

// Insert adds p unless a product with the same key exists.
func (c *Catalog) Insert(p domain.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.insertLocked(p)
}

func (c *Catalog) insertLocked(p domain.Product) error {
	key := p.Key()
	if _, exists := c.products[key]; exists {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateKey, p.Code)
	}
	c.products[key] = p
	c.index.ReplaceOrInsert(key)
	c.logger.Debug("product inserted", zap.String("code", p.Code))
	return nil
}

// BulkInsert inserts each product independently and returns how many went
// in. Duplicates and invalid records are skipped.
func (c *Catalog) BulkInsert(ps []domain.Product) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	inserted := 0
	for _, p := range ps {
		if err := p.Validate(); err != nil {
			c.logger.Debug("bulk insert skipped invalid product", zap.String("code", p.Code), zap.Error(err))
			continue
		}
		if err := c.insertLocked(p); err != nil {
			c.logger.Debug("bulk insert skipped duplicate", zap.String("code", p.Code))
			continue
		}
		inserted++
	}
	c.logger.Info("bulk insert", zap.Int("requested", len(ps)), zap.Int("inserted", inserted))
	return inserted
}

// FindByCode looks up a product by code, ignoring case. The bool is false
// when nothing matches.
func (c *Catalog) FindByCode(code string) (domain.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.products[domain.CodeKey(code)]
	return p, ok
}

// FindByNameSubstring returns every product whose name contains text,
// ignoring case.
func (c *Catalog) FindByNameSubstring(text string) []domain.Product {
	fold := cases.Fold()
	needle := fold.String(text)

	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []domain.Product
	c.index.Ascend(func(key string) bool {
		p := c.products[key]
		if strings.Contains(fold.String(p.Name), needle) {
			out = append(out, p)
		}
		return true
	})
	return out
}

// Update replaces the product stored under code. If p carries a different
// code the record is re-keyed.
func (c *Catalog) Update(code string, p domain.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	oldKey := domain.CodeKey(code)
	if _, ok := c.products[oldKey]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, code)
	}
	newKey := p.Key()
	if newKey != oldKey {
		if _, taken := c.products[newKey]; taken {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateKey, p.Code)
		}
		delete(c.products, oldKey)
		c.index.Delete(oldKey)
		c.index.ReplaceOrInsert(newKey)
	}
	c.products[newKey] = p
	c.logger.Debug("product updated", zap.String("code", p.Code))
	return nil
}

// Delete removes the product stored under code.
func (c *Catalog) Delete(code string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := domain.CodeKey(code)
	if _, ok := c.products[key]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, code)
	}
	delete(c.products, key)
	c.index.Delete(key)
	c.logger.Debug("product deleted", zap.String("code", code))
	return nil
}

// ListAll returns a snapshot of every product in key order.
func (c *Catalog) ListAll() []domain.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]domain.Product, 0, len(c.products))
	c.index.Ascend(func(key string) bool {
		out = append(out, c.products[key])
		return true
	})
	return out
}

// Count returns the number of products.
func (c *Catalog) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.products)
}

// ApplyStock decrements stock for every change or for none of them. Current
// stock is re-read under the write lock, so a check made earlier by the
// caller cannot go stale.
func (c *Catalog) ApplyStock(changes []StockChange) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	need := make(map[string]int, len(changes))
	order := make([]string, 0, len(changes))
	for _, ch := range changes {
		key := domain.CodeKey(ch.Code)
		if ch.Quantity <= 0 {
			return fmt.Errorf("%w: %s quantity %d", domain.ErrInsufficientStock, ch.Code, ch.Quantity)
		}
		p, ok := c.products[key]
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrNotFound, ch.Code)
		}
		if _, seen := need[key]; !seen {
			order = append(order, key)
		}
		need[key] += ch.Quantity
		if need[key] > p.Stock {
			return fmt.Errorf("%w: %s has %d, requested %d", domain.ErrInsufficientStock, p.Code, p.Stock, need[key])
		}
	}

	for _, key := range order {
		p := c.products[key]
		c.products[key] = p.WithStock(p.Stock - need[key])
	}
	c.logger.Info("stock applied", zap.Int("products", len(order)))
	return nil
}
