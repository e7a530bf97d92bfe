// Package store provides an interface for product storage operations.
package store

import (
	"context"
	"time"
)

// Product represents a product row in the store.
type Product struct {
	ID        int64
	Name      string
	Price     int64 // Price in minor currency units
	Quantity  int32
	CreatedAt time.Time
}

// ProductStore is an interface for product storage operations.
// It abstracts the underlying data store, allowing for different implementations (e.g., in-memory, database).
type ProductStore interface {
	// FindByID retrieves a single product by its unique identifier.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindByID(ctx context.Context, id int64) (*Product, error)

	// FindAll returns all available products in store order.
	// Returns an empty slice if no products exist.
	FindAll(ctx context.Context) ([]Product, error)

	// Count returns the number of live products.
	Count(ctx context.Context) (int64, error)

	// Create adds a new product to the system; the store assigns the ID.
	// Returns error if the product cannot be created.
	Create(ctx context.Context, name string, price int64, quantity int32) (*Product, error)

	// Update overwrites the mutable fields of an existing product.
	// Returns ErrProductNotFound if no product exists with the given ID.
	Update(ctx context.Context, id int64, name string, price int64, quantity int32) (*Product, error)

	// DeleteByID removes a product by its ID.
	// Returns ErrProductNotFound if no product exists with the given ID.
	DeleteByID(ctx context.Context, id int64) error
}
