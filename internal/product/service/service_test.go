package service

import (
	"context"
	"errors"
	"testing"

	perrors "github.com/gocatalog/productsvc/internal/product/errors"
	"github.com/gocatalog/productsvc/internal/product/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockProductStore is a mock implementation of the ProductStore interface
type mockProductStore struct {
	products []store.Product
	product  store.Product
	count    int64
	error    error
}

// Simulate finding a product by ID
func (m *mockProductStore) FindByID(_ context.Context, _ int64) (*store.Product, error) {
	return &m.product, m.error
}

// Simulate finding all products
func (m *mockProductStore) FindAll(_ context.Context) ([]store.Product, error) {
	return m.products, m.error
}

// Simulate counting products
func (m *mockProductStore) Count(_ context.Context) (int64, error) {
	return m.count, m.error
}

// Simulate creating a product
func (m *mockProductStore) Create(_ context.Context, _ string, _ int64, _ int32) (*store.Product, error) {
	return &m.product, m.error
}

// Simulate updating a product
func (m *mockProductStore) Update(_ context.Context, _ int64, _ string, _ int64, _ int32) (*store.Product, error) {
	return &m.product, m.error
}

// Simulate deleting a product by ID
func (m *mockProductStore) DeleteByID(_ context.Context, _ int64) error {
	return m.error
}

func Test_ProductService_FindByID(t *testing.T) {
	ErrStoreError := errors.New("store error")
	testCases := []struct {
		name          string
		mockStore     *mockProductStore
		productID     int64
		expected      *ProductDto
		expectError   error
		expectMessage string
	}{
		{
			name: "Success - product found",
			mockStore: &mockProductStore{
				product: store.Product{ID: 42, Name: "Toy", Price: 199, Quantity: 3},
				error:   nil,
			},
			productID:   42,
			expected:    &ProductDto{ID: 42, Name: "Toy", Price: 199, Quantity: 3},
			expectError: nil,
		},
		{
			name: "Error - product not found becomes InvalidProductIDError",
			mockStore: &mockProductStore{
				error: perrors.ErrProductNotFound,
			},
			productID:     42,
			expected:      nil,
			expectError:   perrors.ErrProductNotFound,
			expectMessage: "product with id 42 not found",
		},
		{
			name: "Error - store failure",
			mockStore: &mockProductStore{
				error: ErrStoreError,
			},
			productID:   42,
			expected:    nil,
			expectError: ErrStoreError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			service := NewService(tc.mockStore)
			// when
			found, err := service.FindByID(context.Background(), tc.productID)
			// then
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				assert.Nil(t, found)
				if tc.expectMessage != "" {
					var invalidID *perrors.InvalidProductIDError
					require.ErrorAs(t, err, &invalidID)
					assert.Equal(t, tc.expectMessage, invalidID.Error())
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, found)
		})
	}
}

func Test_ProductService_FindAll(t *testing.T) {
	ErrStoreError := errors.New("store error")
	testCases := []struct {
		name        string
		mockStore   *mockProductStore
		expected    []ProductDto
		expectError error
	}{
		{
			name: "Success - products found",
			mockStore: &mockProductStore{
				products: []store.Product{{ID: 1, Name: "Toy"}, {ID: 2, Name: "Lamp"}},
				error:    nil,
			},
			expected:    []ProductDto{{ID: 1, Name: "Toy"}, {ID: 2, Name: "Lamp"}},
			expectError: nil,
		},
		{
			name: "Success - no products",
			mockStore: &mockProductStore{
				products: []store.Product{},
				error:    nil,
			},
			expected:    []ProductDto{},
			expectError: nil,
		},
		{
			name: "Error - store error",
			mockStore: &mockProductStore{
				error: ErrStoreError,
			},
			expected:    nil,
			expectError: ErrStoreError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			service := NewService(tc.mockStore)
			// when
			found, err := service.FindAll(context.Background())
			// then
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				assert.Nil(t, found)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, found)
		})
	}
}

func Test_ProductService_Create(t *testing.T) {
	ErrStoreError := errors.New("store error")
	testCases := []struct {
		name          string
		mockStore     *mockProductStore
		input         ProductCreateDto
		expected      *ProductDto
		expectError   error
		invalidFields []string
	}{
		{
			name: "Success - product created with assigned ID",
			mockStore: &mockProductStore{
				product: store.Product{ID: 7, Name: "Toy", Price: 199, Quantity: 3},
			},
			input:    ProductCreateDto{Name: "Toy", Price: 199, Quantity: 3},
			expected: &ProductDto{ID: 7, Name: "Toy", Price: 199, Quantity: 3},
		},
		{
			name: "Success - zero price and quantity are valid",
			mockStore: &mockProductStore{
				product: store.Product{ID: 8, Name: "Freebie", Price: 0, Quantity: 0},
			},
			input:    ProductCreateDto{Name: "Freebie", Price: 0, Quantity: 0},
			expected: &ProductDto{ID: 8, Name: "Freebie", Price: 0, Quantity: 0},
		},
		{
			name:          "Error - empty name",
			mockStore:     &mockProductStore{},
			input:         ProductCreateDto{Name: "", Price: 100, Quantity: 1},
			invalidFields: []string{"Name"},
		},
		{
			name:          "Error - negative price",
			mockStore:     &mockProductStore{},
			input:         ProductCreateDto{Name: "Toy", Price: -1, Quantity: 1},
			invalidFields: []string{"Price"},
		},
		{
			name:          "Error - negative quantity",
			mockStore:     &mockProductStore{},
			input:         ProductCreateDto{Name: "Toy", Price: 100, Quantity: -1},
			invalidFields: []string{"Quantity"},
		},
		{
			name: "Error - store failure",
			mockStore: &mockProductStore{
				error: ErrStoreError,
			},
			input:       ProductCreateDto{Name: "Toy", Price: 100, Quantity: 1},
			expectError: ErrStoreError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			service := NewService(tc.mockStore)
			// when
			created, err := service.Create(context.Background(), tc.input)
			// then
			if len(tc.invalidFields) > 0 {
				var validationErr *perrors.ValidationError
				require.ErrorAs(t, err, &validationErr)
				for _, field := range tc.invalidFields {
					assert.Contains(t, validationErr.Fields, field)
				}
				assert.Nil(t, created)
				return
			}
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				assert.Nil(t, created)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, created)
		})
	}
}

func Test_ProductService_Update(t *testing.T) {
	testCases := []struct {
		name        string
		mockStore   *mockProductStore
		productID   int64
		input       ProductUpdateDto
		expected    *ProductDto
		expectError error
		invalid     bool
	}{
		{
			name: "Success - product updated",
			mockStore: &mockProductStore{
				product: store.Product{ID: 42, Name: "Lamp", Price: 500, Quantity: 10},
			},
			productID: 42,
			input:     ProductUpdateDto{Name: "Lamp", Price: 500, Quantity: 10},
			expected:  &ProductDto{ID: 42, Name: "Lamp", Price: 500, Quantity: 10},
		},
		{
			name: "Error - product not found becomes InvalidProductIDError",
			mockStore: &mockProductStore{
				error: perrors.ErrProductNotFound,
			},
			productID:   42,
			input:       ProductUpdateDto{Name: "Lamp", Price: 500, Quantity: 10},
			expectError: perrors.ErrProductNotFound,
		},
		{
			name:      "Error - invalid payload rejected before the store is called",
			mockStore: &mockProductStore{},
			productID: 42,
			input:     ProductUpdateDto{Name: "", Price: -5, Quantity: -1},
			invalid:   true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			service := NewService(tc.mockStore)
			// when
			updated, err := service.Update(context.Background(), tc.productID, tc.input)
			// then
			if tc.invalid {
				var validationErr *perrors.ValidationError
				require.ErrorAs(t, err, &validationErr)
				assert.Nil(t, updated)
				return
			}
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				assert.Nil(t, updated)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, updated)
		})
	}
}

func Test_ProductService_DeleteByID(t *testing.T) {
	ErrStoreError := errors.New("store error")
	testCases := []struct {
		name        string
		mockStore   *mockProductStore
		productID   int64
		expectError error
		expectAs    bool
	}{
		{
			name:      "Success - product deleted",
			mockStore: &mockProductStore{},
			productID: 42,
		},
		{
			name: "Error - product not found becomes InvalidProductIDError",
			mockStore: &mockProductStore{
				error: perrors.ErrProductNotFound,
			},
			productID:   42,
			expectError: perrors.ErrProductNotFound,
			expectAs:    true,
		},
		{
			name: "Error - store failure",
			mockStore: &mockProductStore{
				error: ErrStoreError,
			},
			productID:   42,
			expectError: ErrStoreError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			service := NewService(tc.mockStore)
			// when
			err := service.DeleteByID(context.Background(), tc.productID)
			// then
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				if tc.expectAs {
					var invalidID *perrors.InvalidProductIDError
					assert.ErrorAs(t, err, &invalidID)
				}
				return
			}
			require.NoError(t, err)
		})
	}
}

func Test_ProductService_Count(t *testing.T) {
	// given
	service := NewService(&mockProductStore{count: 5})
	// when
	count, err := service.Count(context.Background())
	// then
	require.NoError(t, err)
	assert.Equal(t, int64(5), count)
}
