// Package combo enumerates every size-m subset of a product sequence.
//
// Combinations come out in lexicographic order over input positions: the
// first member is drawn from positions [0, n-m], each following member from
// positions strictly after the previous one. Callers number combinations in
// this order, so it must not change.
package combo

import (
	"fmt"
	"iter"
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/abdidvp/minimart/internal/domain"
)

// Combination is one subset with its aggregate price.
type Combination struct {
	Seq   int              `json:"seq"`
	Items []domain.Product `json:"items"`
	Total decimal.Decimal  `json:"total"`
}

// Codes lists member codes in order.
func (c Combination) Codes() []string {
	codes := make([]string, len(c.Items))
	for i, p := range c.Items {
		codes[i] = p.Code
	}
	return codes
}

// Engine holds only policy; it keeps no state between enumerations.
type Engine struct {
	minSize int
}

// Option configures an Engine.
type Option func(*Engine)

// WithMinSize sets the smallest accepted combination size.
func WithMinSize(k int) Option {
	return func(e *Engine) {
		if k > 0 {
			e.minSize = k
		}
	}
}

// New creates an Engine. The default minimum size is 1.
func New(opts ...Option) *Engine {
	e := &Engine{minSize: 1}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// MinSize returns the configured minimum combination size.
func (e *Engine) MinSize() int { return e.minSize }

// Enumerate returns a lazy sequence of every size-m combination of items.
// Nothing is computed until the sequence is ranged over, and only the
// current index vector is held in memory. Breaking out of the range loop
// stops the walk.
func (e *Engine) Enumerate(items []domain.Product, m int) (iter.Seq[Combination], error) {
	n := len(items)
	if m <= 0 || m > n || m < e.minSize {
		return nil, fmt.Errorf("%w: C(%d, %d) with minimum size %d", domain.ErrInvalidRange, n, m, e.minSize)
	}

	// Snapshot so later edits to the caller's slice do not leak into the walk.
	src := make([]domain.Product, n)
	copy(src, items)

	return func(yield func(Combination) bool) {
		idx := make([]int, m)
		for i := range idx {
			idx[i] = i
		}

		for seq := 1; ; seq++ {
			if !yield(build(src, idx, seq)) {
				return
			}
			if !advance(idx, n) {
				return
			}
		}
	}, nil
}

// advance moves idx to the next combination in lexicographic order and
// reports false once the last one has been produced.
func advance(idx []int, n int) bool {
	m := len(idx)
	i := m - 1
	for i >= 0 && idx[i] == n-m+i {
		i--
	}
	if i < 0 {
		return false
	}
	idx[i]++
	for j := i + 1; j < m; j++ {
		idx[j] = idx[j-1] + 1
	}
	return true
}

func build(src []domain.Product, idx []int, seq int) Combination {
	items := make([]domain.Product, len(idx))
	total := decimal.Zero
	for i, k := range idx {
		items[i] = src[k]
		total = total.Add(src[k].UnitPrice)
	}
	return Combination{Seq: seq, Items: items, Total: total}
}

// Count returns C(n, m), or zero when m is outside [0, n].
func Count(n, m int) *big.Int {
	if m < 0 || n < 0 || m > n {
		return big.NewInt(0)
	}
	return new(big.Int).Binomial(int64(n), int64(m))
}
