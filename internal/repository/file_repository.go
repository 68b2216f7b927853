package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/namanpradyumn/Online-Shopping-Cart/internal/domain"
)

const (
	CatalogFile = "catalog.json"
	CartFile    = "cart.json"
)

// FileRepository keeps the catalog and cart as JSON arrays in two flat files
type FileRepository struct {
	catalogPath string
	cartPath    string
}

// NewFileRepository stores its files under dir, creating it if needed
func NewFileRepository(dir string) (*FileRepository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}

	return &FileRepository{
		catalogPath: filepath.Join(dir, CatalogFile),
		cartPath:    filepath.Join(dir, CartFile),
	}, nil
}

func (r *FileRepository) LoadCatalog(ctx context.Context) ([]domain.ProductRecord, error) {
	return readRecords[domain.ProductRecord](ctx, r.catalogPath)
}

func (r *FileRepository) SaveCatalog(ctx context.Context, records []domain.ProductRecord) error {
	return writeRecords(ctx, r.catalogPath, records)
}

func (r *FileRepository) LoadCart(ctx context.Context) ([]domain.CartRecord, error) {
	return readRecords[domain.CartRecord](ctx, r.cartPath)
}

func (r *FileRepository) SaveCart(ctx context.Context, records []domain.CartRecord) error {
	return writeRecords(ctx, r.cartPath, records)
}

func (r *FileRepository) Close() error {
	return nil
}

func readRecords[T any](ctx context.Context, path string) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	records, err := decodeRecords[T](data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return records, nil
}

// writeRecords replaces path through a temp file and a rename so a crash
// mid-write leaves the previous file in place
func writeRecords[T any](ctx context.Context, path string, records []T) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := encodeRecords(records)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op once renamed

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
