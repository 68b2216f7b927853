package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Number is a decimal that encodes as a bare JSON number instead of a string
type Number struct {
	decimal.Decimal
}

func (n Number) MarshalJSON() ([]byte, error) {
	return []byte(n.Decimal.String()), nil
}

// ProductRecord is the persisted form of a Product
type ProductRecord struct {
	Type              Kind    `json:"type"`
	ProductID         string  `json:"product_id"`
	Name              string  `json:"name"`
	Price             Number  `json:"price"`
	QuantityAvailable int     `json:"quantity_available"`
	Weight            *Number `json:"weight,omitempty"`
	DownloadLink      string  `json:"download_link,omitempty"`
}

// CartRecord is the persisted form of a CartItem
type CartRecord struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// Record converts the product into its persisted form
func (p *Product) Record() ProductRecord {
	rec := ProductRecord{
		Type:              p.Kind(),
		ProductID:         p.ID,
		Name:              p.Name,
		Price:             Number{p.Price},
		QuantityAvailable: p.available,
	}

	switch v := p.Variant.(type) {
	case Physical:
		rec.Weight = &Number{v.Weight}
	case Digital:
		rec.DownloadLink = v.DownloadLink
	}
	return rec
}

// ProductFromRecord rebuilds the variant named by the record's type.
// Unknown or missing types produce a generic product.
func ProductFromRecord(rec ProductRecord) (*Product, error) {
	var v Variant
	switch rec.Type {
	case KindPhysical:
		ph := Physical{}
		if rec.Weight != nil {
			ph.Weight = rec.Weight.Decimal
		}
		v = ph
	case KindDigital:
		v = Digital{DownloadLink: rec.DownloadLink}
	}

	p, err := NewProduct(rec.ProductID, rec.Name, rec.Price.Decimal, rec.QuantityAvailable, v)
	if err != nil {
		return nil, fmt.Errorf("product record %q: %w", rec.ProductID, err)
	}
	return p, nil
}

func (i *CartItem) Record() CartRecord {
	return CartRecord{ProductID: i.Product.ID, Quantity: i.quantity}
}
