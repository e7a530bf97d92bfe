package store

import (
	"context"
	"errors"
	"fmt"

	perrors "github.com/gocatalog/productsvc/internal/product/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgStore implements ProductStore using PostgreSQL as the data store.
type PgStore struct {
	db *pgxpool.Pool
}

// NewPgStore creates a new instance of ProductStore using a PostgreSQL connection pool.
func NewPgStore(dbp *pgxpool.Pool) *PgStore {
	return &PgStore{
		db: dbp,
	}
}

// FindByID retrieves a product by its unique identifier.
// Returns ErrProductNotFound if no product exists with the given ID.
func (p *PgStore) FindByID(ctx context.Context, id int64) (*Product, error) {
	row := p.db.QueryRow(ctx,
		`SELECT id, name, price, quantity, created_at FROM products WHERE id = $1`, id)
	product, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, perrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}
	return product, nil
}

// FindAll retrieves all available products ordered by identifier.
// It returns a slice of products, which may be empty if no products exist.
func (p *PgStore) FindAll(ctx context.Context) ([]Product, error) {
	rows, err := p.db.Query(ctx,
		`SELECT id, name, price, quantity, created_at FROM products ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to find all products: %w", err)
	}
	defer rows.Close()

	products := make([]Product, 0)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		products = append(products, *product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read product rows: %w", err)
	}
	return products, nil
}

// Count returns the number of live products.
func (p *PgStore) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := p.db.QueryRow(ctx, `SELECT count(*) FROM products`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

// Create adds a new product to the system; the database assigns the identifier.
// Returns an error if the product cannot be created.
func (p *PgStore) Create(ctx context.Context, name string, price int64, quantity int32) (*Product, error) {
	row := p.db.QueryRow(ctx,
		`INSERT INTO products (name, price, quantity)
         VALUES ($1, $2, $3)
         RETURNING id, name, price, quantity, created_at`,
		name, price, quantity)
	product, err := scanProduct(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return product, nil
}

// Update overwrites the mutable fields of an existing product.
// Returns ErrProductNotFound if no product exists with the given ID.
func (p *PgStore) Update(ctx context.Context, id int64, name string, price int64, quantity int32) (*Product, error) {
	row := p.db.QueryRow(ctx,
		`UPDATE products SET name = $2, price = $3, quantity = $4
         WHERE id = $1
         RETURNING id, name, price, quantity, created_at`,
		id, name, price, quantity)
	product, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, perrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return product, nil
}

// DeleteByID removes a product by its unique identifier.
// Returns ErrProductNotFound if no product exists with the given ID.
func (p *PgStore) DeleteByID(ctx context.Context, id int64) error {
	tag, err := p.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product by ID: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return perrors.ErrProductNotFound
	}
	return nil
}

// scanProduct reads one product from a row.
func scanProduct(row pgx.Row) (*Product, error) {
	var product Product
	if err := row.Scan(&product.ID, &product.Name, &product.Price, &product.Quantity, &product.CreatedAt); err != nil {
		return nil, err
	}
	return &product, nil
}
