package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProduct(t *testing.T, stock int) *Product {
	t.Helper()
	p, err := NewProduct("P1", "Laptop", decimal.RequireFromString("10.00"), stock, nil)
	require.NoError(t, err)
	return p
}

func TestNewProduct_Validation(t *testing.T) {
	price := decimal.RequireFromString("1.50")

	tests := []struct {
		name      string
		id        string
		pname     string
		price     decimal.Decimal
		available int
		variant   Variant
	}{
		{name: "empty id", id: "  ", pname: "Mouse", price: price},
		{name: "empty name", id: "P1", pname: "", price: price},
		{name: "negative price", id: "P1", pname: "Mouse", price: decimal.NewFromInt(-1)},
		{name: "negative stock", id: "P1", pname: "Mouse", price: price, available: -1},
		{name: "negative weight", id: "P1", pname: "Mouse", price: price, variant: Physical{Weight: decimal.NewFromInt(-2)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewProduct(tt.id, tt.pname, tt.price, tt.available, tt.variant)
			assert.ErrorIs(t, err, ErrInvalidProductData)
		})
	}
}

func TestNewProduct_TrimsAndKeepsVariant(t *testing.T) {
	p, err := NewProduct(" E1 ", " Ebook ", decimal.Zero, 0, Digital{DownloadLink: "https://example.com/e1"})
	require.NoError(t, err)

	assert.Equal(t, "E1", p.ID)
	assert.Equal(t, "Ebook", p.Name)
	assert.Equal(t, KindDigital, p.Kind())
	assert.Equal(t, 0, p.Available())
}

func TestProduct_Kind(t *testing.T) {
	assert.Equal(t, KindProduct, (&Product{}).Kind())
	assert.Equal(t, KindPhysical, (&Product{Variant: Physical{}}).Kind())
	assert.Equal(t, KindDigital, (&Product{Variant: Digital{}}).Kind())
}

func TestProduct_DecreaseQuantity(t *testing.T) {
	p := newTestProduct(t, 5)

	require.NoError(t, p.DecreaseQuantity(3))
	assert.Equal(t, 2, p.Available())

	err := p.DecreaseQuantity(3)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	var stockErr *InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, 2, stockErr.Available)
	assert.Equal(t, 3, stockErr.Requested)
	assert.Equal(t, "P1", stockErr.ProductID)

	// Stock should be unchanged
	assert.Equal(t, 2, p.Available())

	require.NoError(t, p.DecreaseQuantity(2))
	assert.Equal(t, 0, p.Available())
}

func TestProduct_DecreaseQuantity_NonPositive(t *testing.T) {
	p := newTestProduct(t, 5)

	assert.ErrorIs(t, p.DecreaseQuantity(0), ErrInvalidQuantity)
	assert.ErrorIs(t, p.DecreaseQuantity(-1), ErrInvalidQuantity)
	assert.Equal(t, 5, p.Available())
}

func TestProduct_IncreaseQuantity(t *testing.T) {
	p := newTestProduct(t, 1)

	require.NoError(t, p.IncreaseQuantity(4))
	assert.Equal(t, 5, p.Available())

	assert.ErrorIs(t, p.IncreaseQuantity(0), ErrInvalidQuantity)
	assert.ErrorIs(t, p.IncreaseQuantity(-3), ErrInvalidQuantity)
	assert.Equal(t, 5, p.Available())
}
