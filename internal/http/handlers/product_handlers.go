package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rogerio-castellano/product-api/internal/models"
	"github.com/rogerio-castellano/product-api/internal/repo"
)

// lookupProduct resolves the {id} path parameter to a stored product. When it
// returns false the response has already been written.
func (h *Handler) lookupProduct(w http.ResponseWriter, r *http.Request) (models.Product, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		h.productNotFound(w, r)
		return models.Product{}, false
	}

	product, err := h.products.GetByID(r.Context(), id)
	if errors.Is(err, repo.ErrProductNotFound) {
		h.productNotFound(w, r)
		return models.Product{}, false
	}
	if err != nil {
		h.serverError(w, r, "could not fetch product", err)
		return models.Product{}, false
	}
	return product, true
}

// GetProductsHandler godoc
// @Summary List all products
// @Tags products
// @Produce json
// @Success 200 {object} ProductsResult
// @Failure 500 {object} StatusResult
// @Router /products [get]
func (h *Handler) GetProductsHandler(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.GetAll(r.Context())
	if err != nil {
		h.serverError(w, r, "could not fetch products", err)
		return
	}
	if products == nil {
		products = []models.Product{}
	}
	h.writeJSON(w, r, http.StatusOK, ProductsResult{Products: products})
}

// CreateProductHandler godoc
// @Summary Create a new product
// @Description product_id, name and price are required; product_id and price must be numeric.
// @Tags products
// @Accept json
// @Produce json
// @Param product body CreateProductRequest true "Product to add"
// @Success 200 {object} ProductResult
// @Failure 400 {object} map[string]string
// @Failure 422 {object} ValidationErrorResult
// @Failure 500 {object} StatusResult
// @Router /products [post]
func (h *Handler) CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if !h.decode(w, r, &req) {
		return
	}

	created, err := h.products.Create(r.Context(), req.toProduct(h.now().UTC()))
	if err != nil {
		h.serverError(w, r, "could not create product", err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, ProductResult{Product: created, Status: statusSuccess})
}

// GetProductByIDHandler godoc
// @Summary Get product by ID
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} ProductResult
// @Failure 404 {object} StatusResult
// @Failure 500 {object} StatusResult
// @Router /products/{id} [get]
func (h *Handler) GetProductByIDHandler(w http.ResponseWriter, r *http.Request) {
	product, ok := h.lookupProduct(w, r)
	if !ok {
		return
	}
	h.writeJSON(w, r, http.StatusOK, ProductResult{Product: product, Status: statusSuccess})
}

// UpdateProductHandler godoc
// @Summary Update a product
// @Description Overwrites the supplied fields only.
// @Tags products
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param product body UpdateProductRequest true "Fields to overwrite"
// @Success 200 {object} ProductResult
// @Failure 400 {object} map[string]string
// @Failure 404 {object} StatusResult
// @Failure 422 {object} ValidationErrorResult
// @Failure 500 {object} StatusResult
// @Router /products/{id} [patch]
func (h *Handler) UpdateProductHandler(w http.ResponseWriter, r *http.Request) {
	product, ok := h.lookupProduct(w, r)
	if !ok {
		return
	}

	var req UpdateProductRequest
	if !h.decode(w, r, &req) {
		return
	}

	req.apply(&product)
	product.UpdatedAt = h.now().UTC()

	updated, err := h.products.Update(r.Context(), product)
	if errors.Is(err, repo.ErrProductNotFound) {
		h.productNotFound(w, r)
		return
	}
	if err != nil {
		h.serverError(w, r, "could not update product", err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, ProductResult{Product: updated, Status: statusSuccess})
}

// DeleteProductHandler godoc
// @Summary Delete a product
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} StatusResult
// @Failure 404 {object} StatusResult
// @Failure 500 {object} StatusResult
// @Router /products/{id} [delete]
func (h *Handler) DeleteProductHandler(w http.ResponseWriter, r *http.Request) {
	product, ok := h.lookupProduct(w, r)
	if !ok {
		return
	}

	err := h.products.Delete(r.Context(), product.ID)
	if errors.Is(err, repo.ErrProductNotFound) {
		h.productNotFound(w, r)
		return
	}
	if err != nil {
		h.serverError(w, r, "could not delete product", err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, StatusResult{Status: statusSuccess, Message: "Product deleted"})
}
