// Package sampledata generates random products to fill an empty catalog.
package sampledata

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/abdidvp/minimart/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	namePrefixes = []string{"Cookie", "Milk", "Candy", "Soda", "Greens", "Beef", "Fish", "Rice", "Noodles"}
	nameSuffixes = []string{"Oreo", "TH True", "Chupa Chups", "Coca Cola", "Bok Choy", "Kobe", "Salmon", "ST25", "Hao Hao"}
	units        = []string{"Box", "Crate", "Kg", "Pack", "Bottle"}
)

const (
	minPrice     = 5000
	maxPrice     = 500000
	minStock     = 10
	maxStock     = 1000
	minShelfDays = 30
	maxShelfDays = 720
)

// Generator implements domain.SampleGenerator.
type Generator struct {
	rng *rand.Rand
	now func() time.Time
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed makes generation reproducible.
func WithSeed(seed uint64) Option {
	return func(g *Generator) { g.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) }
}

// WithClock sets the reference time expiry dates are computed from.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// New creates a Generator seeded from the runtime source unless WithSeed is given.
func New(opts ...Option) *Generator {
	g := &Generator{
		rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate returns n products with codes FormatCode(0) .. FormatCode(n-1).
func (g *Generator) Generate(n int) []domain.Product {
	if n <= 0 {
		return nil
	}
	today := g.now().Truncate(24 * time.Hour)
	out := make([]domain.Product, 0, n)
	for i := 0; i < n; i++ {
		name := fmt.Sprintf("%s %s #%d", pick(g.rng, namePrefixes), pick(g.rng, nameSuffixes), i)
		price := decimal.NewFromInt(int64(minPrice + g.rng.IntN(maxPrice-minPrice)))
		stock := minStock + g.rng.IntN(maxStock-minStock)
		expiry := today.AddDate(0, 0, minShelfDays+g.rng.IntN(maxShelfDays-minShelfDays))

		p, err := domain.NewProduct(domain.FormatCode(i), name, pick(g.rng, units), price, stock, expiry)
		if err != nil {
			continue
		}
		out = append(out, p)
	}
	return out
}

func pick(rng *rand.Rand, from []string) string {
	return from[rng.IntN(len(from))]
}
