package store

import (
	"slices"
	"strings"

	"github.com/namanpradyumn/Online-Shopping-Cart/internal/domain"
	"github.com/shopspring/decimal"
)

// Cart maps product ids to cart items. It borrows products from a Catalog
// and never copies them.
type Cart struct {
	items map[string]*domain.CartItem // productID -> item
	order []string
}

func NewCart() *Cart {
	return &Cart{
		items: make(map[string]*domain.CartItem),
	}
}

// LoadCart rebuilds a cart against catalog. Records naming an unknown
// product or carrying a non-positive quantity are skipped and returned
// so the caller can report them.
func LoadCart(records []domain.CartRecord, catalog *Catalog) (*Cart, []domain.CartRecord) {
	c := NewCart()
	var dropped []domain.CartRecord

	for _, rec := range records {
		// catalog ids are trimmed on load, match them the same way
		rec.ProductID = strings.TrimSpace(rec.ProductID)
		p, ok := catalog.Get(rec.ProductID)
		if !ok || rec.Quantity <= 0 {
			dropped = append(dropped, rec)
			continue
		}
		if existing, ok := c.items[rec.ProductID]; ok {
			// duplicate lines for one product collapse into one item;
			// both quantities are positive so SetQuantity cannot fail
			_ = existing.SetQuantity(existing.Quantity() + rec.Quantity)
			continue
		}
		item, err := domain.NewCartItem(p, rec.Quantity)
		if err != nil {
			dropped = append(dropped, rec)
			continue
		}
		c.Put(item)
	}
	return c, dropped
}

func (c *Cart) Get(productID string) (*domain.CartItem, bool) {
	item, ok := c.items[productID]
	return item, ok
}

// Put stores item under its product id, keeping the position of an
// existing entry
func (c *Cart) Put(item *domain.CartItem) {
	id := item.Product.ID
	if _, exists := c.items[id]; !exists {
		c.order = append(c.order, id)
	}
	c.items[id] = item
}

func (c *Cart) Delete(productID string) {
	if _, exists := c.items[productID]; !exists {
		return
	}
	delete(c.items, productID)
	c.order = slices.DeleteFunc(c.order, func(id string) bool { return id == productID })
}

// Clear drops every item without touching product stock
func (c *Cart) Clear() {
	c.items = make(map[string]*domain.CartItem)
	c.order = nil
}

func (c *Cart) Len() int {
	return len(c.order)
}

// Items returns the cart items in insertion order
func (c *Cart) Items() []*domain.CartItem {
	result := make([]*domain.CartItem, 0, len(c.order))
	for _, id := range c.order {
		result = append(result, c.items[id])
	}
	return result
}

// Total sums the subtotals of all items
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// Reserved returns the quantity held in the cart for productID
func (c *Cart) Reserved(productID string) int {
	if item, ok := c.items[productID]; ok {
		return item.Quantity()
	}
	return 0
}

func (c *Cart) Records() []domain.CartRecord {
	result := make([]domain.CartRecord, 0, len(c.order))
	for _, item := range c.Items() {
		result = append(result, item.Record())
	}
	return result
}
