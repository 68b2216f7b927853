package domain

import (
	"errors"
	"fmt"
)

// Common errors returned by the catalog, cart and cart service
var (
	ErrProductNotFound    = errors.New("product not found")
	ErrItemNotFound       = errors.New("item not found in cart")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrInvalidQuantity    = errors.New("quantity must be greater than 0")
	ErrInvalidProductData = errors.New("invalid product data")
	ErrDuplicateProduct   = errors.New("product already exists")
)

// InsufficientStockError carries the stock that was actually available
// when a reservation was refused. It matches ErrInsufficientStock.
type InsufficientStockError struct {
	ProductID string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: available %d, requested %d", e.ProductID, e.Available, e.Requested)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}
