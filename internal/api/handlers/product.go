package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/inventory-client/internal/api/middleware"
	"github.com/aaravmahajanofficial/inventory-client/internal/errors"
	"github.com/aaravmahajanofficial/inventory-client/internal/inventory"
	"github.com/aaravmahajanofficial/inventory-client/internal/models"
	"github.com/aaravmahajanofficial/inventory-client/internal/utils"
	"github.com/aaravmahajanofficial/inventory-client/internal/utils/response"
)

// ProductRepository is the mode-aware product contract the gateway serves.
type ProductRepository interface {
	Mode() models.Mode
	List(ctx context.Context) models.ListResult
	Get(ctx context.Context, id int64) (models.Product, error)
	Create(ctx context.Context, req *models.CreateProductRequest) (models.Product, error)
	Update(ctx context.Context, id int64, req *models.UpdateProductRequest) (models.Product, error)
	Delete(ctx context.Context, id int64) error
}

type ProductHandler struct {
	repo ProductRepository
}

func NewProductHandler(repo ProductRepository) *ProductHandler {
	return &ProductHandler{repo: repo}
}

// products loads the current list, writing the error response itself when
// the list is not available.
func (h *ProductHandler) products(w http.ResponseWriter, r *http.Request) ([]models.Product, bool) {
	result := h.repo.List(r.Context())

	switch {
	case result.IsLoading:
		response.Error(w, errors.UnavailableError("connectivity has not been resolved yet"))
		return nil, false
	case result.IsError:
		response.Error(w, result.Err)
		return nil, false
	}

	return result.Data, true
}

// CreateProduct godoc
//	@Summary		Create a product
//	@Description	Creates a product in the active store (upstream API or offline store).
//	@Tags			Products
//	@Accept			json
//	@Produce		json
//	@Param			product	body		models.CreateProductRequest	true	"Product details"
//	@Success		201		{object}	models.Product
//	@Failure		400		{object}	response.ErrorResponse	"Invalid JSON or validation error"
//	@Failure		503		{object}	response.ErrorResponse	"Connectivity not resolved"
//	@Router			/products [post]
func (h *ProductHandler) CreateProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.CreateProductRequest
		if !utils.ParseBody(r, w, &req) {
			logger.Warn("Invalid create product input")
			return
		}

		product, err := h.repo.Create(r.Context(), &req)
		if err != nil {
			logger.Warn("Failed to create product", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Product created successfully", slog.Int64("productId", product.ID), slog.String("mode", string(h.repo.Mode())))
		response.Success(w, http.StatusCreated, product)
	}
}

// GetProduct godoc
//	@Summary		Get a product by ID
//	@Tags			Products
//	@Produce		json
//	@Param			id	path		int	true	"Product ID"
//	@Success		200	{object}	models.Product
//	@Failure		400	{object}	response.ErrorResponse	"Invalid product ID"
//	@Failure		404	{object}	response.ErrorResponse	"Product not found"
//	@Router			/products/{id} [get]
func (h *ProductHandler) GetProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid product id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		product, err := h.repo.Get(r.Context(), id)
		if err != nil {
			logger.Warn("Failed to get product", slog.Int64("productId", id), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, product)
	}
}

// UpdateProduct godoc
//	@Summary		Partially update a product
//	@Description	Only the fields present in the body are changed.
//	@Tags			Products
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int							true	"Product ID"
//	@Param			product	body		models.UpdateProductRequest	true	"Fields to change"
//	@Success		200		{object}	models.Product
//	@Failure		400		{object}	response.ErrorResponse	"Invalid JSON or validation error"
//	@Failure		404		{object}	response.ErrorResponse	"Product not found"
//	@Router			/products/{id} [patch]
func (h *ProductHandler) UpdateProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid product id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger = logger.With(slog.Int64("productId", id))

		var req models.UpdateProductRequest
		if !utils.ParseBody(r, w, &req) {
			logger.Warn("Invalid update product input")
			return
		}

		product, err := h.repo.Update(r.Context(), id, &req)
		if err != nil {
			logger.Warn("Failed to update product", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Product updated successfully")
		response.Success(w, http.StatusOK, product)
	}
}

// DeleteProduct godoc
//	@Summary		Delete a product
//	@Description	Deleting an unknown id in offline mode is a no-op.
//	@Tags			Products
//	@Param			id	path	int	true	"Product ID"
//	@Success		204
//	@Failure		400	{object}	response.ErrorResponse	"Invalid product ID"
//	@Router			/products/{id} [delete]
func (h *ProductHandler) DeleteProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid product id", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		if err := h.repo.Delete(r.Context(), id); err != nil {
			logger.Warn("Failed to delete product", slog.Int64("productId", id), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Product deleted successfully", slog.Int64("productId", id))
		w.WriteHeader(http.StatusNoContent)
	}
}

// ListProducts godoc
//	@Summary		List products
//	@Tags			Products
//	@Produce		json
//	@Param			search		query		string	false	"Case-insensitive match on name, description or category"
//	@Param			category	query		string	false	"Exact category"
//	@Param			sort		query		string	false	"name|price|stock|date with -asc or -desc (default date-desc)"
//	@Success		200			{array}		models.Product
//	@Failure		400			{object}	response.ErrorResponse	"Unknown sort key"
//	@Failure		503			{object}	response.ErrorResponse	"Connectivity not resolved"
//	@Router			/products [get]
func (h *ProductHandler) ListProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		products, ok := h.products(w, r)
		if !ok {
			logger.Warn("Product list unavailable")
			return
		}

		q := r.URL.Query()
		filtered, err := inventory.Filter(products, inventory.Query{
			Search:   q.Get("search"),
			Category: q.Get("category"),
			Sort:     q.Get("sort"),
		})
		if err != nil {
			response.Error(w, errors.BadRequestError(err.Error()))
			return
		}

		response.Success(w, http.StatusOK, filtered)
	}
}
