package application

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/abdidvp/minimart/internal/domain"
	"github.com/abdidvp/minimart/internal/domain/catalog"
)

// CatalogService owns the session catalog and resolves user tokens through
// the code normalizer before every lookup.
type CatalogService struct {
	cfg       domain.Config
	generator domain.SampleGenerator
	logger    *zap.Logger

	mu        sync.RWMutex
	current   *catalog.Catalog
	listeners []func(*catalog.Catalog)
}

func NewCatalogService(cfg domain.Config, generator domain.SampleGenerator, logger *zap.Logger) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &CatalogService{
		cfg:       cfg,
		generator: generator,
		logger:    logger,
	}
	s.current = s.newCatalog()
	return s
}

func (s *CatalogService) newCatalog() *catalog.Catalog {
	return catalog.New(catalog.WithLogger(s.logger))
}

// Catalog returns the catalog currently in use. A Regenerate replaces it.
func (s *CatalogService) Catalog() *catalog.Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// OnReplace registers fn to run after Regenerate swaps in a new catalog.
func (s *CatalogService) OnReplace(fn func(*catalog.Catalog)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Add validates input and inserts it.
func (s *CatalogService) Add(in domain.ProductInput) (domain.Product, error) {
	p, err := in.Build()
	if err != nil {
		return domain.Product{}, err
	}
	if err := s.Catalog().Insert(p); err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

// Find resolves token (bare number or full code) to a product.
func (s *CatalogService) Find(token string) (domain.Product, error) {
	code := domain.NormalizeCode(token)
	p, ok := s.Catalog().FindByCode(code)
	if !ok {
		return domain.Product{}, fmt.Errorf("%w: %s", domain.ErrNotFound, code)
	}
	return p, nil
}

// Search returns products whose name contains text.
func (s *CatalogService) Search(text string) []domain.Product {
	return s.Catalog().FindByNameSubstring(text)
}

// Edit applies patch to the product named by token and stores the result as
// a new value.
func (s *CatalogService) Edit(token string, patch domain.ProductPatch) (domain.Product, error) {
	current, err := s.Find(token)
	if err != nil {
		return domain.Product{}, err
	}
	next, err := current.Merge(patch)
	if err != nil {
		return domain.Product{}, err
	}
	if err := s.Catalog().Update(current.Code, next); err != nil {
		return domain.Product{}, fmt.Errorf("updating %s: %w", current.Code, err)
	}
	return next, nil
}

// Remove deletes the product named by token.
func (s *CatalogService) Remove(token string) error {
	return s.Catalog().Delete(domain.NormalizeCode(token))
}

func (s *CatalogService) List() []domain.Product { return s.Catalog().ListAll() }

func (s *CatalogService) Count() int { return s.Catalog().Count() }

// Regenerate discards the current catalog and fills a fresh one with n
// sample products. It returns how many were inserted.
func (s *CatalogService) Regenerate(n int) (int, error) {
	if n <= 0 || n > s.cfg.MaxGenerate {
		return 0, fmt.Errorf("sample size must be between 1 and %d (got %d)", s.cfg.MaxGenerate, n)
	}

	fresh := s.newCatalog()
	inserted := fresh.BulkInsert(s.generator.Generate(n))

	s.mu.Lock()
	old := s.current
	s.current = fresh
	listeners := append([]func(*catalog.Catalog){}, s.listeners...)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(fresh)
	}
	s.logger.Info("catalog regenerated",
		zap.Stringer("old_catalog_id", old.ID()),
		zap.Stringer("catalog_id", fresh.ID()),
		zap.Int("inserted", inserted))
	return inserted, nil
}
