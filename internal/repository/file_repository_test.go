package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/namanpradyumn/Online-Shopping-Cart/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupFileRepo(t *testing.T) (*FileRepository, string) {
	dir := t.TempDir()
	repo, err := NewFileRepository(dir)
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo, dir
}

func TestFileRepository_Contract(t *testing.T) {
	repo, _ := setupFileRepo(t)
	testRepositoryContract(t, repo)
}

func TestFileRepository_CreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")

	repo, err := NewFileRepository(dir)
	require.NoError(t, err)
	require.NoError(t, repo.SaveCart(context.Background(), sampleCart()))

	assert.FileExists(t, filepath.Join(dir, CartFile))
}

func TestFileRepository_WritesJSONArrays(t *testing.T) {
	repo, dir := setupFileRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveCatalog(ctx, sampleProducts()[:1]))
	require.NoError(t, repo.SaveCart(ctx, nil))

	catalog, err := os.ReadFile(filepath.Join(dir, CatalogFile))
	require.NoError(t, err)
	assert.JSONEq(t,
		`[{"type":"physical","product_id":"B1","name":"Book","price":12.5,"quantity_available":3,"weight":0.75}]`,
		string(catalog))

	cart, err := os.ReadFile(filepath.Join(dir, CartFile))
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(cart))

	// no temp files left behind
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestFileRepository_ReadsHandWrittenFiles(t *testing.T) {
	repo, dir := setupFileRepo(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, CatalogFile), []byte(`[
		{"product_id": "X1", "name": "Untagged", "price": 3, "quantity_available": 7}
	]`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, CartFile), []byte("  \n"), 0o644))

	products, err := repo.LoadCatalog(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, domain.Kind(""), products[0].Type)
	assert.Equal(t, 7, products[0].QuantityAvailable)

	items, err := repo.LoadCart(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestFileRepository_CorruptFile(t *testing.T) {
	repo, dir := setupFileRepo(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, CartFile), []byte(`{not json`), 0o644))

	_, err := repo.LoadCart(context.Background())
	assert.ErrorContains(t, err, CartFile)
}

func TestFileRepository_CancelledContext(t *testing.T) {
	repo, _ := setupFileRepo(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.LoadCatalog(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, repo.SaveCatalog(ctx, sampleProducts()), context.Canceled)
}
