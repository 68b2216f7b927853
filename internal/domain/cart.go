package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem reserves a quantity of a catalog product. Product is the
// catalog's own instance, never a copy.
type CartItem struct {
	Product *Product

	quantity int
}

func NewCartItem(p *Product, quantity int) (*CartItem, error) {
	if quantity < 0 {
		return nil, ErrInvalidQuantity
	}
	return &CartItem{Product: p, quantity: quantity}, nil
}

func (i *CartItem) Quantity() int {
	return i.quantity
}

func (i *CartItem) SetQuantity(quantity int) error {
	if quantity < 0 {
		return ErrInvalidQuantity
	}
	i.quantity = quantity
	return nil
}

// Subtotal returns price * quantity
func (i *CartItem) Subtotal() decimal.Decimal {
	return i.Product.Price.Mul(decimal.NewFromInt(int64(i.quantity)))
}

type ReceiptLine struct {
	ProductID string
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
	Subtotal  decimal.Decimal
}

// Receipt is what a checkout hands back once the cart has been consumed
type Receipt struct {
	ID        string
	Lines     []ReceiptLine
	Total     decimal.Decimal
	CreatedAt time.Time
}
