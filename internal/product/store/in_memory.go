package store

import (
	"context"
	"sync"
	"time"

	perrors "github.com/gocatalog/productsvc/internal/product/errors"
)

// inMemory implements ProductStore using a mutex-guarded map.
// FindAll preserves insertion order.
type inMemory struct {
	mu       sync.RWMutex
	products map[int64]Product
	order    []int64
	nextID   int64
}

// NewInMemoryStore creates a new instance of ProductStore
func NewInMemoryStore() ProductStore {
	return &inMemory{
		products: make(map[int64]Product),
		nextID:   1,
	}
}

// FindByID retrieves a product by its ID.
func (s *inMemory) FindByID(_ context.Context, id int64) (*Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return nil, perrors.ErrProductNotFound
	}
	return &p, nil
}

// FindAll retrieves all products in insertion order.
func (s *inMemory) FindAll(_ context.Context) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]Product, 0, len(s.products))
	for _, id := range s.order {
		if p, ok := s.products[id]; ok {
			list = append(list, p)
		}
	}
	return list, nil
}

// Count returns the number of stored products.
func (s *inMemory) Count(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return int64(len(s.products)), nil
}

// Create creates a new product and returns it.
func (s *inMemory) Create(_ context.Context, name string, price int64, quantity int32) (*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product := Product{
		ID:        s.nextID,
		Name:      name,
		Price:     price,
		Quantity:  quantity,
		CreatedAt: time.Now().UTC(),
	}
	s.nextID++
	s.products[product.ID] = product
	s.order = append(s.order, product.ID)

	return &product, nil
}

// Update overwrites the mutable fields of an existing product.
func (s *inMemory) Update(_ context.Context, id int64, name string, price int64, quantity int32) (*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.products[id]
	if !ok {
		return nil, perrors.ErrProductNotFound
	}
	product.Name = name
	product.Price = price
	product.Quantity = quantity
	s.products[id] = product

	return &product, nil
}

// DeleteByID deletes a product by its ID.
func (s *inMemory) DeleteByID(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[id]; !exists {
		return perrors.ErrProductNotFound
	}
	delete(s.products, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}
