package sampledata_test

import (
	"testing"
	"time"

	"github.com/abdidvp/minimart/internal/adapters/outbound/sampledata"
	"github.com/abdidvp/minimart/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var clock = func() time.Time { return time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC) }

func TestGenerate_ValidDistinctProducts(t *testing.T) {
	g := sampledata.New(sampledata.WithSeed(7), sampledata.WithClock(clock))
	ps := g.Generate(200)
	require.Len(t, ps, 200)

	seen := make(map[string]bool)
	for i, p := range ps {
		require.NoError(t, p.Validate())
		assert.Equal(t, domain.FormatCode(i), p.Code)
		assert.False(t, seen[p.Key()])
		seen[p.Key()] = true

		assert.True(t, p.UnitPrice.GreaterThanOrEqual(decimal.NewFromInt(5000)))
		assert.True(t, p.UnitPrice.LessThan(decimal.NewFromInt(500000)))
		assert.GreaterOrEqual(t, p.Stock, 10)
		assert.Less(t, p.Stock, 1000)
		assert.True(t, p.Expiry.After(clock()))
	}
}

func TestGenerate_Reproducible(t *testing.T) {
	a := sampledata.New(sampledata.WithSeed(42), sampledata.WithClock(clock)).Generate(20)
	b := sampledata.New(sampledata.WithSeed(42), sampledata.WithClock(clock)).Generate(20)
	assert.Equal(t, a, b)
}

func TestGenerate_NonPositive(t *testing.T) {
	g := sampledata.New()
	assert.Empty(t, g.Generate(0))
	assert.Empty(t, g.Generate(-3))
}
