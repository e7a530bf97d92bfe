// Package service provides the implementation of product-related business logic.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	perrors "github.com/gocatalog/productsvc/internal/product/errors"
	"github.com/gocatalog/productsvc/internal/product/store"
)

// ProductService defines the methods for managing products.
// It abstracts the underlying business logic and data access.
type ProductService interface {
	// FindByID retrieves a single product by its unique identifier.
	// Returns InvalidProductIDError if no product exists with the given ID.
	FindByID(ctx context.Context, id int64) (*ProductDto, error)

	// FindAll returns all available products in store order.
	// Returns an empty slice if no products exist.
	FindAll(ctx context.Context) ([]ProductDto, error)

	// Count returns the number of live products.
	Count(ctx context.Context) (int64, error)

	// Create validates the input and adds a new product to the system.
	// Returns ValidationError on invalid input.
	Create(ctx context.Context, product ProductCreateDto) (*ProductDto, error)

	// Update validates the input and overwrites the mutable fields of a product.
	// Returns InvalidProductIDError if no product exists with the given ID.
	Update(ctx context.Context, id int64, product ProductUpdateDto) (*ProductDto, error)

	// DeleteByID removes a product by its ID.
	// Returns InvalidProductIDError if no product exists with the given ID.
	DeleteByID(ctx context.Context, id int64) error
}

// Service implements ProductService and provides methods to manage products.
type Service struct {
	repository store.ProductStore
	validate   *validator.Validate
}

// NewService creates a new instance of ProductService with the provided repository.
func NewService(repo store.ProductStore) *Service {
	return &Service{
		repository: repo,
		validate:   validator.New(),
	}
}

// ProductCreateDto represents the data transfer object for creating a new product.
type ProductCreateDto struct {
	Name     string `json:"name"     validate:"required,max=100"`
	Price    int64  `json:"price"    validate:"gte=0"`
	Quantity int32  `json:"quantity" validate:"gte=0"`
}

// ProductUpdateDto represents the data transfer object for replacing a product's
// mutable fields. The identifier comes from the request path and never changes.
type ProductUpdateDto struct {
	Name     string `json:"name"     validate:"required,max=100"`
	Price    int64  `json:"price"    validate:"gte=0"`
	Quantity int32  `json:"quantity" validate:"gte=0"`
}

// ProductDto represents the data transfer object for a product.
type ProductDto struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int32  `json:"quantity"`
}

// FindByID retrieves a product by its ID and returns it as a ProductDto.
// Returns InvalidProductIDError if no product exists with the given ID.
func (s *Service) FindByID(ctx context.Context, id int64) (*ProductDto, error) {
	product, err := s.repository.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, perrors.ErrProductNotFound) {
			return nil, perrors.NewInvalidProductID(id)
		}
		return nil, fmt.Errorf("failed to fetch product by ID %d: %w", id, err)
	}

	return toDto(product), nil
}

// FindAll retrieves a list of all products and returns them as ProductDTOs.
// Returns an empty slice if no products exist or error if the retrieval fails.
func (s *Service) FindAll(ctx context.Context) ([]ProductDto, error) {
	products, err := s.repository.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	productDTOs := make([]ProductDto, len(products))

	for i, item := range products {
		productDTOs[i] = *toDto(&item)
	}

	return productDTOs, nil
}

// Count returns the number of live products.
func (s *Service) Count(ctx context.Context) (int64, error) {
	count, err := s.repository.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

// Create validates the input, creates a new product and returns it as a ProductDto.
// Returns ValidationError on invalid input.
func (s *Service) Create(ctx context.Context, product ProductCreateDto) (*ProductDto, error) {
	if err := s.validateStruct(product); err != nil {
		return nil, err
	}
	p, err := s.repository.Create(ctx, product.Name, product.Price, product.Quantity)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return toDto(p), nil
}

// Update validates the input, overwrites the product's mutable fields and
// returns the updated product as a ProductDto.
// Returns InvalidProductIDError if no product exists with the given ID.
func (s *Service) Update(ctx context.Context, id int64, product ProductUpdateDto) (*ProductDto, error) {
	if err := s.validateStruct(product); err != nil {
		return nil, err
	}
	updated, err := s.repository.Update(ctx, id, product.Name, product.Price, product.Quantity)
	if err != nil {
		if errors.Is(err, perrors.ErrProductNotFound) {
			return nil, perrors.NewInvalidProductID(id)
		}
		return nil, fmt.Errorf("failed to update product with ID %d: %w", id, err)
	}

	return toDto(updated), nil
}

// DeleteByID deletes a product by its ID.
// Returns InvalidProductIDError if no product exists with the given ID.
func (s *Service) DeleteByID(ctx context.Context, id int64) error {
	if err := s.repository.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, perrors.ErrProductNotFound) {
			return perrors.NewInvalidProductID(id)
		}
		return fmt.Errorf("failed to delete product with ID %d: %w", id, err)
	}
	return nil
}

// validateStruct runs struct validation and converts field failures into a ValidationError.
func (s *Service) validateStruct(payload any) error {
	err := s.validate.Struct(payload)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		fields := make(map[string]string, len(validationErrors))
		for _, fieldErr := range validationErrors {
			// fieldErr.Tag() returns "required", "max", etc.
			fields[fieldErr.Field()] = "failed on rule: " + fieldErr.Tag()
		}
		return &perrors.ValidationError{Fields: fields}
	}
	return fmt.Errorf("failed to validate product payload: %w", err)
}

// toDto converts a store.Product to a ProductDto.
func toDto(product *store.Product) *ProductDto {
	return &ProductDto{
		ID:       product.ID,
		Name:     product.Name,
		Price:    product.Price,
		Quantity: product.Quantity,
	}
}
