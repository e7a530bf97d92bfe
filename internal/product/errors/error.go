// Package errors provides custom error types for product-related operations.
package errors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrProductNotFound signals that a store lookup matched no live record.
// Absence is a normal store result; the service layer converts it into
// an InvalidProductIDError naming the requested identifier.
var ErrProductNotFound = errors.New("product not found")

// InvalidProductIDError reports a requested product identifier with no
// corresponding live record.
type InvalidProductIDError struct {
	ID int64
}

func (e *InvalidProductIDError) Error() string {
	return fmt.Sprintf("product with id %d not found", e.ID)
}

// Is allows errors.Is(err, ErrProductNotFound) to match through the typed error.
func (e *InvalidProductIDError) Is(target error) bool {
	return target == ErrProductNotFound
}

// NewInvalidProductID creates an InvalidProductIDError for the given identifier.
func NewInvalidProductID(id int64) *InvalidProductIDError {
	return &InvalidProductIDError{ID: id}
}

// ValidationError carries per-field validation failures of a product payload.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		names = append(names, field)
	}
	sort.Strings(names)
	return "invalid product payload: " + strings.Join(names, ", ")
}
