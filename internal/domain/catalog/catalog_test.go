package catalog_test

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/abdidvp/minimart/internal/domain"
	"github.com/abdidvp/minimart/internal/domain/catalog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(t *testing.T, code, name string, price int64, stock int) domain.Product {
	t.Helper()
	p, err := domain.NewProduct(code, name, "Box", decimal.NewFromInt(price), stock,
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return p
}

func TestInsert_FindByCodeIgnoresCase(t *testing.T) {
	c := catalog.New()
	milk := product(t, "MH00000001", "Milk", 20000, 50)
	require.NoError(t, c.Insert(milk))

	got, ok := c.FindByCode("mh00000001")
	require.True(t, ok)
	assert.Equal(t, milk, got)

	got, ok = c.FindByCode("1")
	require.True(t, ok, "numeric shorthand resolves to the canonical code")
	assert.Equal(t, milk, got)
}

func TestFindByCode_Missing(t *testing.T) {
	c := catalog.New()
	_, ok := c.FindByCode("MH00000009")
	assert.False(t, ok)
}

func TestInsert_DuplicateLeavesExisting(t *testing.T) {
	c := catalog.New()
	original := product(t, "MH00000001", "Milk", 20000, 50)
	require.NoError(t, c.Insert(original))

	err := c.Insert(product(t, "mh00000001", "Impostor", 1, 1))
	assert.ErrorIs(t, err, domain.ErrDuplicateKey)
	assert.Equal(t, 1, c.Count())

	got, _ := c.FindByCode("MH00000001")
	assert.Equal(t, "Milk", got.Name)
}

func TestInsert_RejectsInvalidRecord(t *testing.T) {
	c := catalog.New()
	bad := domain.Product{Code: "X", Name: "Broken", UnitPrice: decimal.NewFromInt(-1)}
	assert.ErrorIs(t, c.Insert(bad), domain.ErrValidation)
	assert.Zero(t, c.Count())
}

func TestBulkInsert_SkipsDuplicates(t *testing.T) {
	c := catalog.New()
	p1 := product(t, "MH00000001", "Milk", 20000, 50)
	p1dup := product(t, "MH00000001", "Milk again", 10, 1)
	p2 := product(t, "MH00000002", "Bread", 15000, 20)

	n := c.BulkInsert([]domain.Product{p1, p1dup, p2})
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, c.Count())
}

func TestFindByNameSubstring(t *testing.T) {
	c := catalog.New()
	c.BulkInsert([]domain.Product{
		product(t, "A1", "Fresh Milk", 1, 1),
		product(t, "A2", "Oat MILK", 1, 1),
		product(t, "A3", "Bread", 1, 1),
	})

	got := c.FindByNameSubstring("milk")
	require.Len(t, got, 2)
	assert.Equal(t, "A1", got[0].Code)
	assert.Equal(t, "A2", got[1].Code)

	assert.Empty(t, c.FindByNameSubstring("cheese"))
	assert.Len(t, c.FindByNameSubstring(""), 3)
}

func TestUpdate(t *testing.T) {
	c := catalog.New()
	require.NoError(t, c.Insert(product(t, "MH00000001", "Milk", 20000, 50)))

	require.NoError(t, c.Update("mh00000001", product(t, "MH00000001", "Milk 1L", 21000, 40)))
	got, _ := c.FindByCode("MH00000001")
	assert.Equal(t, "Milk 1L", got.Name)
	assert.Equal(t, 40, got.Stock)
	assert.Equal(t, 1, c.Count())
}

func TestUpdate_Missing(t *testing.T) {
	c := catalog.New()
	err := c.Update("nope", product(t, "nope", "X", 1, 1))
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Zero(t, c.Count())
}

func TestUpdate_Rekey(t *testing.T) {
	c := catalog.New()
	require.NoError(t, c.Insert(product(t, "A", "Apple", 1, 1)))
	require.NoError(t, c.Insert(product(t, "B", "Banana", 1, 1)))

	assert.ErrorIs(t, c.Update("A", product(t, "b", "Apple", 1, 1)), domain.ErrDuplicateKey)

	require.NoError(t, c.Update("A", product(t, "C", "Apple", 1, 1)))
	_, ok := c.FindByCode("A")
	assert.False(t, ok)
	_, ok = c.FindByCode("C")
	assert.True(t, ok)
	assert.Equal(t, 2, c.Count())
}

func TestDelete(t *testing.T) {
	c := catalog.New()
	require.NoError(t, c.Insert(product(t, "MH00000001", "Milk", 1, 1)))

	require.NoError(t, c.Delete("1"))
	assert.Zero(t, c.Count())
	assert.ErrorIs(t, c.Delete("1"), domain.ErrNotFound)
}

func TestListAll_StableSnapshot(t *testing.T) {
	c := catalog.New()
	for _, code := range []string{"C", "A", "B"} {
		require.NoError(t, c.Insert(product(t, code, "Item "+code, 1, 1)))
	}

	first := c.ListAll()
	second := c.ListAll()
	assert.Equal(t, first, second)
	require.Len(t, first, 3)
	assert.Equal(t, "A", first[0].Code)

	first[0] = product(t, "Z", "Mutated", 1, 1)
	_, ok := c.FindByCode("Z")
	assert.False(t, ok, "listing is a copy")
}

func TestApplyStock_AllOrNothing(t *testing.T) {
	c := catalog.New()
	require.NoError(t, c.Insert(product(t, "A", "Apple", 1, 5)))
	require.NoError(t, c.Insert(product(t, "B", "Banana", 1, 2)))

	err := c.ApplyStock([]catalog.StockChange{{Code: "A", Quantity: 3}, {Code: "B", Quantity: 3}})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	a, _ := c.FindByCode("A")
	assert.Equal(t, 5, a.Stock, "first change must not be applied")

	err = c.ApplyStock([]catalog.StockChange{{Code: "A", Quantity: 1}, {Code: "missing", Quantity: 1}})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, c.ApplyStock([]catalog.StockChange{{Code: "a", Quantity: 5}, {Code: "B", Quantity: 1}}))
	a, _ = c.FindByCode("A")
	b, _ := c.FindByCode("B")
	assert.Equal(t, 0, a.Stock)
	assert.Equal(t, 1, b.Stock)
}

func TestApplyStock_AggregatesRepeatedCodes(t *testing.T) {
	c := catalog.New()
	require.NoError(t, c.Insert(product(t, "A", "Apple", 1, 5)))

	err := c.ApplyStock([]catalog.StockChange{{Code: "A", Quantity: 3}, {Code: "a", Quantity: 3}})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestApplyStock_ConcurrentNeverOversells(t *testing.T) {
	c := catalog.New()
	require.NoError(t, c.Insert(product(t, "A", "Apple", 1, 10)))

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := c.ApplyStock([]catalog.StockChange{{Code: "A", Quantity: 1}}); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	a, _ := c.FindByCode("A")
	assert.Equal(t, 10, succeeded)
	assert.Equal(t, 0, a.Stock)
}

func TestNew_DistinctIDs(t *testing.T) {
	assert.NotEqual(t, catalog.New().ID(), catalog.New().ID())
}

func BenchmarkFindByCode(b *testing.B) {
	c := catalog.New()
	exp := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 1000; i++ {
		p, _ := domain.NewProduct(domain.FormatCode(i), fmt.Sprintf("Item %d", i), "Box", decimal.NewFromInt(1), 1, exp)
		_ = c.Insert(p)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.FindByCode("500")
	}
}
