// Package rest provides HTTP handlers for product-related operations.
package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	perrors "github.com/gocatalog/productsvc/internal/product/errors"
	"github.com/gocatalog/productsvc/internal/product/service"
	"github.com/gocatalog/productsvc/pkg/web"
)

type Handler struct {
	service service.ProductService
	logger  *slog.Logger
}

// NewHandler creates a new instance of ProductAPI with the provided service.
func NewHandler(service service.ProductService, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger.With("component", "rest"),
	}
}

// RegisterRoutes registers the HTTP routes for the product service.
func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.FindAll)
		r.Post("/", h.Create)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.FindByID)
			r.Delete("/", h.DeleteByID)
			r.Put("/", h.Update)
		})
	})

	r.Get("/hello", h.Hello)
	r.Get("/healthz", h.HealthCheck)
}

// FindByID retrieves a product by its ID.
func (h *Handler) FindByID(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}

	mLogger.DebugContext(r.Context(), "Received request to find product by ID", "ID", id)
	found, err := h.service.FindByID(r.Context(), id)
	if err != nil {
		var invalidID *perrors.InvalidProductIDError
		if errors.As(err, &invalidID) {
			mLogger.WarnContext(r.Context(), "Product not found", "ID", id)
			web.RespondError(w, mLogger, http.StatusNotFound, invalidID.Error())
			return
		}
		mLogger.ErrorContext(r.Context(), "Error retrieving product", "ID", id, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, fmt.Sprintf("Failed to retrieve product with ID %d", id))
		return
	}
	mLogger.DebugContext(r.Context(), "Successfully retrieved product", "ID", found.ID, "Name", found.Name)
	web.RespondJSON(w, mLogger, http.StatusOK, found)
}

// FindAll retrieves a list of all products.
func (h *Handler) FindAll(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	mLogger.DebugContext(r.Context(), "Received request to find all products")
	list, err := h.service.FindAll(r.Context())
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error retrieving product list", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to fetch products")
		return
	}
	mLogger.DebugContext(r.Context(), "Successfully retrieved product list", "count", len(list))
	web.RespondJSON(w, mLogger, http.StatusOK, list)
}

// Create handles the creation of a new product.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	var productCreateDto service.ProductCreateDto
	if err := json.NewDecoder(r.Body).Decode(&productCreateDto); err != nil {
		mLogger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return
	}
	mLogger.DebugContext(r.Context(), "Received request to create product", "product", productCreateDto)

	newProduct, err := h.service.Create(r.Context(), productCreateDto)
	if err != nil {
		var validationErr *perrors.ValidationError
		if errors.As(err, &validationErr) {
			mLogger.WarnContext(r.Context(), "Validation errors occurred", "errors", validationErr.Fields)
			web.RespondJSON(w, mLogger, http.StatusBadRequest, map[string]any{"validation_errors": validationErr.Fields})
			return
		}
		mLogger.ErrorContext(r.Context(), "Error creating product", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to create product")
		return
	}
	mLogger.InfoContext(r.Context(), "Product created successfully", "ID", newProduct.ID, "Name", newProduct.Name)
	web.RespondJSON(w, mLogger, http.StatusCreated, newProduct)
}

// Update replaces the mutable fields of a product identified by the path ID.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	mLogger.DebugContext(r.Context(), "Received request to update product", "ID", id)
	var productUpdateDto service.ProductUpdateDto
	if err := json.NewDecoder(r.Body).Decode(&productUpdateDto); err != nil {
		mLogger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.service.Update(r.Context(), id, productUpdateDto)
	if err != nil {
		var validationErr *perrors.ValidationError
		if errors.As(err, &validationErr) {
			mLogger.WarnContext(r.Context(), "Validation errors occurred", "errors", validationErr.Fields)
			web.RespondJSON(w, mLogger, http.StatusBadRequest, map[string]any{"validation_errors": validationErr.Fields})
			return
		}
		var invalidID *perrors.InvalidProductIDError
		if errors.As(err, &invalidID) {
			mLogger.WarnContext(r.Context(), "Product not found for update", "ID", id)
			web.RespondError(w, mLogger, http.StatusNotFound, invalidID.Error())
			return
		}
		mLogger.ErrorContext(r.Context(), "Error updating product", "ID", id, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, fmt.Sprintf("Failed to update product with ID %d", id))
		return
	}
	mLogger.InfoContext(r.Context(), "Product updated successfully", "ID", updated.ID, "Name", updated.Name)
	web.RespondJSON(w, mLogger, http.StatusOK, updated)
}

// DeleteByID deletes a product by its ID.
func (h *Handler) DeleteByID(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	mLogger.DebugContext(r.Context(), "Received request to delete product", "ID", id)
	if err := h.service.DeleteByID(r.Context(), id); err != nil {
		var invalidID *perrors.InvalidProductIDError
		if errors.As(err, &invalidID) {
			mLogger.WarnContext(r.Context(), "Product not found for deletion", "ID", id)
			web.RespondError(w, mLogger, http.StatusNotFound, invalidID.Error())
			return
		}
		mLogger.ErrorContext(r.Context(), "Error deleting product", "ID", id, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, fmt.Sprintf("Failed to delete product with ID %d", id))
		return
	}
	mLogger.InfoContext(r.Context(), "Product deleted successfully", "ID", id)
	w.WriteHeader(http.StatusNoContent)
}

// Hello responds with a plain-text greeting.
func (h *Handler) Hello(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Hello, World!"))
}

// HealthCheck is a simple health check endpoint.
func (h *Handler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// loggerWithReqID creates a logger with the request ID from the context.
func (h *Handler) loggerWithReqID(r *http.Request) *slog.Logger {
	reqID := middleware.GetReqID(r.Context())
	return h.logger.With("request_id", reqID)
}
