package repository

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/namanpradyumn/Online-Shopping-Cart/internal/domain"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SQLiteRepository keeps the catalog and cart in two tables of one
// SQLite database
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// single writer, and ":memory:" stays one database
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// RunMigrations applies the embedded schema migrations
func (r *SQLiteRepository) RunMigrations() error {
	driver, err := sqlite.WithInstance(r.db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("could not open migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func (r *SQLiteRepository) LoadCatalog(ctx context.Context) ([]domain.ProductRecord, error) {
	query := `
		SELECT type, product_id, name, price, quantity_available, weight, download_link
		FROM products
		ORDER BY position
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var records []domain.ProductRecord
	for rows.Next() {
		var (
			rec          domain.ProductRecord
			kind, price  string
			weight, link sql.NullString
		)
		if err := rows.Scan(&kind, &rec.ProductID, &rec.Name, &price, &rec.QuantityAvailable, &weight, &link); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}

		rec.Type = domain.Kind(kind)
		if rec.Price.Decimal, err = decimal.NewFromString(price); err != nil {
			return nil, fmt.Errorf("invalid price for product %s: %w", rec.ProductID, err)
		}
		if weight.Valid {
			w, err := decimal.NewFromString(weight.String)
			if err != nil {
				return nil, fmt.Errorf("invalid weight for product %s: %w", rec.ProductID, err)
			}
			rec.Weight = &domain.Number{Decimal: w}
		}
		rec.DownloadLink = link.String

		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return records, nil
}

func (r *SQLiteRepository) SaveCatalog(ctx context.Context, records []domain.ProductRecord) error {
	return r.replace(ctx, "products", func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO products (product_id, position, type, name, price, quantity_available, weight, download_link)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare insert: %w", err)
		}
		defer stmt.Close()

		for i, rec := range records {
			var weight, link sql.NullString
			if rec.Weight != nil {
				weight = sql.NullString{String: rec.Weight.String(), Valid: true}
			}
			if rec.DownloadLink != "" {
				link = sql.NullString{String: rec.DownloadLink, Valid: true}
			}

			_, err := stmt.ExecContext(ctx,
				rec.ProductID, i, string(rec.Type), rec.Name, rec.Price.String(), rec.QuantityAvailable, weight, link)
			if err != nil {
				return fmt.Errorf("failed to insert product %s: %w", rec.ProductID, err)
			}
		}
		return nil
	})
}

func (r *SQLiteRepository) LoadCart(ctx context.Context) ([]domain.CartRecord, error) {
	query := `
		SELECT product_id, quantity
		FROM cart_items
		ORDER BY position
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query cart items: %w", err)
	}
	defer rows.Close()

	var records []domain.CartRecord
	for rows.Next() {
		var rec domain.CartRecord
		if err := rows.Scan(&rec.ProductID, &rec.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return records, nil
}

func (r *SQLiteRepository) SaveCart(ctx context.Context, records []domain.CartRecord) error {
	return r.replace(ctx, "cart_items", func(tx *sql.Tx) error {
		for i, rec := range records {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO cart_items (product_id, position, quantity) VALUES (?, ?, ?)`,
				rec.ProductID, i, rec.Quantity)
			if err != nil {
				return fmt.Errorf("failed to insert cart item %s: %w", rec.ProductID, err)
			}
		}
		return nil
	})
}

// replace empties table and refills it through insert inside one transaction
func (r *SQLiteRepository) replace(ctx context.Context, table string, insert func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
		return fmt.Errorf("failed to clear %s: %w", table, err)
	}
	if err := insert(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit %s: %w", table, err)
	}
	return nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}
