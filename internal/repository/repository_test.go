package repository

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/namanpradyumn/Online-Shopping-Cart/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProducts() []domain.ProductRecord {
	return []domain.ProductRecord{
		{
			Type:              domain.KindPhysical,
			ProductID:         "B1",
			Name:              "Book",
			Price:             domain.Number{Decimal: decimal.RequireFromString("12.50")},
			QuantityAvailable: 3,
			Weight:            &domain.Number{Decimal: decimal.RequireFromString("0.75")},
		},
		{
			Type:              domain.KindDigital,
			ProductID:         "E1",
			Name:              "Ebook",
			Price:             domain.Number{Decimal: decimal.NewFromInt(4)},
			QuantityAvailable: 100,
			DownloadLink:      "https://example.com/e1",
		},
		{
			Type:              domain.KindProduct,
			ProductID:         "A1",
			Name:              "Gift card",
			Price:             domain.Number{Decimal: decimal.Zero},
			QuantityAvailable: 0,
		},
	}
}

func sampleCart() []domain.CartRecord {
	return []domain.CartRecord{
		{ProductID: "E1", Quantity: 2},
		{ProductID: "B1", Quantity: 1},
	}
}

// assertSameJSON compares records by their encoded form since decimals
// that are numerically equal may differ in scale
func assertSameJSON(t *testing.T, expected, actual any) {
	t.Helper()
	want, err := json.Marshal(expected)
	require.NoError(t, err)
	got, err := json.Marshal(actual)
	require.NoError(t, err)
	assert.JSONEq(t, string(want), string(got))
}

// testRepositoryContract exercises the behaviour every backend must share
func testRepositoryContract(t *testing.T, repo Repository) {
	ctx := context.Background()

	t.Run("empty source loads empty", func(t *testing.T) {
		products, err := repo.LoadCatalog(ctx)
		require.NoError(t, err)
		assert.Empty(t, products)

		items, err := repo.LoadCart(ctx)
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("round trip keeps order and variants", func(t *testing.T) {
		require.NoError(t, repo.SaveCatalog(ctx, sampleProducts()))
		require.NoError(t, repo.SaveCart(ctx, sampleCart()))

		products, err := repo.LoadCatalog(ctx)
		require.NoError(t, err)
		assertSameJSON(t, sampleProducts(), products)

		items, err := repo.LoadCart(ctx)
		require.NoError(t, err)
		assert.Equal(t, sampleCart(), items)
	})

	t.Run("save replaces previous contents", func(t *testing.T) {
		require.NoError(t, repo.SaveCatalog(ctx, sampleProducts()[:1]))
		require.NoError(t, repo.SaveCart(ctx, nil))

		products, err := repo.LoadCatalog(ctx)
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "B1", products[0].ProductID)

		items, err := repo.LoadCart(ctx)
		require.NoError(t, err)
		assert.Empty(t, items)
	})
}
