package application_test

import (
	"testing"
	"time"

	"github.com/abdidvp/minimart/internal/adapters/outbound/sampledata"
	"github.com/abdidvp/minimart/internal/application"
	"github.com/abdidvp/minimart/internal/domain"
	"github.com/abdidvp/minimart/internal/domain/catalog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var expiry = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func newCatalogService(t *testing.T) *application.CatalogService {
	t.Helper()
	return application.NewCatalogService(domain.DefaultConfig(), sampledata.New(sampledata.WithSeed(1)), nil)
}

func milk() domain.ProductInput {
	return domain.ProductInput{
		Code: "MH00000001", Name: "Milk", Unit: "Box",
		UnitPrice: decimal.NewFromInt(20000), Stock: 50, Expiry: expiry,
	}
}

func TestCatalogService_AddAndFind(t *testing.T) {
	svc := newCatalogService(t)
	added, err := svc.Add(milk())
	require.NoError(t, err)

	for _, token := range []string{"mh00000001", "1", " 00001 "} {
		got, err := svc.Find(token)
		require.NoError(t, err, token)
		assert.Equal(t, added, got)
	}
}

func TestCatalogService_AddDuplicate(t *testing.T) {
	svc := newCatalogService(t)
	_, err := svc.Add(milk())
	require.NoError(t, err)

	dup := milk()
	dup.Code = "1"
	_, err = svc.Add(dup)
	assert.ErrorIs(t, err, domain.ErrDuplicateKey)
	assert.Equal(t, 1, svc.Count())
}

func TestCatalogService_AddInvalidLeavesNothing(t *testing.T) {
	svc := newCatalogService(t)
	in := milk()
	in.Expiry = time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err := svc.Add(in)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Zero(t, svc.Count())
}

func TestCatalogService_FindMissing(t *testing.T) {
	svc := newCatalogService(t)
	_, err := svc.Find("42")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "MH00000042")
}

func TestCatalogService_Edit(t *testing.T) {
	svc := newCatalogService(t)
	_, err := svc.Add(milk())
	require.NoError(t, err)

	price := decimal.NewFromInt(21000)
	updated, err := svc.Edit("1", domain.ProductPatch{UnitPrice: &price})
	require.NoError(t, err)
	assert.True(t, price.Equal(updated.UnitPrice))
	assert.Equal(t, "Milk", updated.Name)

	got, err := svc.Find("1")
	require.NoError(t, err)
	assert.Equal(t, updated, got)
}

func TestCatalogService_EditInvalidKeepsRecord(t *testing.T) {
	svc := newCatalogService(t)
	_, err := svc.Add(milk())
	require.NoError(t, err)

	neg := -1
	_, err = svc.Edit("1", domain.ProductPatch{Stock: &neg})
	assert.ErrorIs(t, err, domain.ErrValidation)

	got, _ := svc.Find("1")
	assert.Equal(t, 50, got.Stock)
}

func TestCatalogService_Remove(t *testing.T) {
	svc := newCatalogService(t)
	_, err := svc.Add(milk())
	require.NoError(t, err)

	require.NoError(t, svc.Remove("1"))
	assert.ErrorIs(t, svc.Remove("1"), domain.ErrNotFound)
}

func TestCatalogService_Search(t *testing.T) {
	svc := newCatalogService(t)
	_, err := svc.Add(milk())
	require.NoError(t, err)

	assert.Len(t, svc.Search("MIL"), 1)
	assert.Empty(t, svc.Search("bread"))
}

func TestCatalogService_RegenerateReplacesWholesale(t *testing.T) {
	svc := newCatalogService(t)
	_, err := svc.Add(milk())
	require.NoError(t, err)
	old := svc.Catalog()

	var replaced int
	svc.OnReplace(func(_ *catalog.Catalog) { replaced++ })

	n, err := svc.Regenerate(25)
	require.NoError(t, err)
	assert.Equal(t, 25, n)
	assert.Equal(t, 25, svc.Count())
	assert.NotEqual(t, old.ID(), svc.Catalog().ID())
	assert.Equal(t, 1, old.Count(), "old catalog is discarded, not merged")
	assert.Equal(t, 1, replaced)
}

func TestCatalogService_RegenerateBounds(t *testing.T) {
	svc := newCatalogService(t)
	_, err := svc.Regenerate(0)
	assert.Error(t, err)
	_, err = svc.Regenerate(10000)
	assert.Error(t, err)
	assert.Zero(t, svc.Count())
}
