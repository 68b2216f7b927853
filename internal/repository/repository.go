package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/namanpradyumn/Online-Shopping-Cart/internal/domain"
)

// Repository persists the catalog and the cart as two independent
// record sequences. A source that does not exist yet loads as empty.
type Repository interface {
	// LoadCatalog returns the persisted products in their saved order
	LoadCatalog(ctx context.Context) ([]domain.ProductRecord, error)

	// SaveCatalog replaces the persisted products
	SaveCatalog(ctx context.Context, records []domain.ProductRecord) error

	// LoadCart returns the persisted cart lines in their saved order
	LoadCart(ctx context.Context) ([]domain.CartRecord, error)

	// SaveCart replaces the persisted cart lines
	SaveCart(ctx context.Context, records []domain.CartRecord) error

	// Close releases the underlying storage
	Close() error
}

func decodeRecords[T any](data []byte) ([]T, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("unmarshal records failed: %w", err)
	}
	return records, nil
}

func encodeRecords[T any](records []T) ([]byte, error) {
	if records == nil {
		records = []T{}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal records failed: %w", err)
	}
	return data, nil
}
