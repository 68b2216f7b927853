package store

import (
	"strings"

	"github.com/namanpradyumn/Online-Shopping-Cart/internal/domain"
)

// Catalog owns every product. Iteration follows insertion order so a
// save writes products back in the order they were loaded or added.
type Catalog struct {
	products map[string]*domain.Product // productID -> product
	order    []string
}

// NewCatalog creates an empty catalog
func NewCatalog() *Catalog {
	return &Catalog{
		products: make(map[string]*domain.Product),
	}
}

// LoadCatalog rebuilds a catalog from persisted records
func LoadCatalog(records []domain.ProductRecord) (*Catalog, error) {
	c := NewCatalog()
	for _, rec := range records {
		p, err := domain.ProductFromRecord(rec)
		if err != nil {
			return nil, err
		}
		if err := c.Add(p); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Add inserts a new product. Replacing an existing id is refused since
// the cart may still hold the old instance.
func (c *Catalog) Add(p *domain.Product) error {
	if _, exists := c.products[p.ID]; exists {
		return domain.ErrDuplicateProduct
	}
	c.products[p.ID] = p
	c.order = append(c.order, p.ID)
	return nil
}

// Get looks a product up by id
func (c *Catalog) Get(productID string) (*domain.Product, bool) {
	p, ok := c.products[productID]
	return p, ok
}

func (c *Catalog) Len() int {
	return len(c.order)
}

// List returns all products in iteration order
func (c *Catalog) List() []*domain.Product {
	result := make([]*domain.Product, 0, len(c.order))
	for _, id := range c.order {
		result = append(result, c.products[id])
	}
	return result
}

// FindByName returns the products whose name contains keyword, ignoring case
func (c *Catalog) FindByName(keyword string) []*domain.Product {
	keyword = strings.ToLower(keyword)

	result := make([]*domain.Product, 0)
	for _, p := range c.List() {
		if strings.Contains(strings.ToLower(p.Name), keyword) {
			result = append(result, p)
		}
	}
	return result
}

// Records returns the persisted form of every product in iteration order
func (c *Catalog) Records() []domain.ProductRecord {
	result := make([]domain.ProductRecord, 0, len(c.order))
	for _, p := range c.List() {
		result = append(result, p.Record())
	}
	return result
}
