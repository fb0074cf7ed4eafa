package application

import (
	"fmt"
	"iter"
	"math/big"

	"go.uber.org/zap"

	"github.com/abdidvp/minimart/internal/domain"
	"github.com/abdidvp/minimart/internal/domain/combo"
)

// ComboPlan is a validated enumeration request. Items are the first Take
// products of the catalog listing.
type ComboPlan struct {
	Take         int
	Size         int
	Items        []domain.Product
	Count        *big.Int
	NeedsConfirm bool
}

// ComboService selects products from the catalog and feeds them to the
// combination engine.
type ComboService struct {
	catalog *CatalogService
	engine  *combo.Engine
	cfg     domain.Config
	logger  *zap.Logger
}

func NewComboService(catalog *CatalogService, cfg domain.Config, logger *zap.Logger) *ComboService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ComboService{
		catalog: catalog,
		engine:  combo.New(combo.WithMinSize(cfg.MinComboSize)),
		cfg:     cfg,
		logger:  logger,
	}
}

// Plan validates take and size against the current catalog. NeedsConfirm is
// set when take exceeds the configured confirmation threshold.
func (s *ComboService) Plan(take, size int) (ComboPlan, error) {
	all := s.catalog.List()
	if take <= 0 || take > len(all) {
		return ComboPlan{}, fmt.Errorf("%w: take %d of %d products", domain.ErrInvalidRange, take, len(all))
	}
	if size <= 0 || size > take || size < s.engine.MinSize() {
		return ComboPlan{}, fmt.Errorf("%w: size %d from %d products (minimum %d)",
			domain.ErrInvalidRange, size, take, s.engine.MinSize())
	}
	return ComboPlan{
		Take:         take,
		Size:         size,
		Items:        all[:take],
		Count:        combo.Count(take, size),
		NeedsConfirm: take > s.cfg.ConfirmAbove,
	}, nil
}

// Enumerate returns the lazy combination sequence for plan.
func (s *ComboService) Enumerate(plan ComboPlan) (iter.Seq[combo.Combination], error) {
	seq, err := s.engine.Enumerate(plan.Items, plan.Size)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("enumeration started",
		zap.Int("take", plan.Take),
		zap.Int("size", plan.Size),
		zap.Stringer("count", plan.Count))
	return seq, nil
}
