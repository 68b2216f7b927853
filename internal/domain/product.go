package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Kind is the discriminant persisted with every product record
type Kind string

const (
	KindProduct  Kind = "product"
	KindPhysical Kind = "physical"
	KindDigital  Kind = "digital"
)

// Variant holds the fields specific to a non-generic product.
// The set of implementations is closed to this package.
type Variant interface {
	Kind() Kind
	variant()
}

// Physical is a shippable product with a weight
type Physical struct {
	Weight decimal.Decimal
}

func (Physical) Kind() Kind { return KindPhysical }
func (Physical) variant()   {}

// Digital is a product delivered through a download link
type Digital struct {
	DownloadLink string
}

func (Digital) Kind() Kind { return KindDigital }
func (Digital) variant()   {}

// Product is a catalog entry. Stock only changes through
// DecreaseQuantity and IncreaseQuantity.
type Product struct {
	ID      string
	Name    string
	Price   decimal.Decimal
	Variant Variant // nil for a generic product

	available int
}

// NewProduct validates the construction arguments and returns a product
// holding the given stock.
func NewProduct(id, name string, price decimal.Decimal, available int, v Variant) (*Product, error) {
	id = strings.TrimSpace(id)
	name = strings.TrimSpace(name)

	if id == "" || name == "" {
		return nil, fmt.Errorf("%w: product id and name are required", ErrInvalidProductData)
	}
	if price.IsNegative() {
		return nil, fmt.Errorf("%w: price must be non-negative", ErrInvalidProductData)
	}
	if available < 0 {
		return nil, fmt.Errorf("%w: quantity must be non-negative", ErrInvalidProductData)
	}
	if ph, ok := v.(Physical); ok && ph.Weight.IsNegative() {
		return nil, fmt.Errorf("%w: weight must be non-negative", ErrInvalidProductData)
	}

	return &Product{
		ID:        id,
		Name:      name,
		Price:     price,
		Variant:   v,
		available: available,
	}, nil
}

// Kind returns the product's discriminant
func (p *Product) Kind() Kind {
	if p.Variant == nil {
		return KindProduct
	}
	return p.Variant.Kind()
}

// Available returns the stock not reserved by the cart
func (p *Product) Available() int {
	return p.available
}

// DecreaseQuantity takes amount units out of the available stock.
// On error the stock is unchanged.
func (p *Product) DecreaseQuantity(amount int) error {
	if amount <= 0 {
		return ErrInvalidQuantity
	}
	if amount > p.available {
		return &InsufficientStockError{ProductID: p.ID, Available: p.available, Requested: amount}
	}
	p.available -= amount
	return nil
}

// IncreaseQuantity returns amount units to the available stock
func (p *Product) IncreaseQuantity(amount int) error {
	if amount <= 0 {
		return ErrInvalidQuantity
	}
	p.available += amount
	return nil
}
