package main

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"svitlo/internal/domain/catalog"
	"svitlo/internal/params"

	"github.com/go-chi/chi/v5"
)

// listCategoriesHandler godoc
//
//	@Summary		List categories
//	@Description	Returns the store's categories for the category sheet
//	@Tags			Store
//	@Produce		json
//	@Success		200	{array}		catalog.Category
//	@Failure		500	{object}	ErrorInternalServerResponse
//	@Router			/store/categories [get]
func (app *application) listCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	categories, err := app.store.Catalog.ListCategories(ctx)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, categories)
}

// listProductsHandler godoc
//
//	@Summary		List products
//	@Description	Returns product cards with variants, optionally filtered by category
//	@Tags			Store
//	@Produce		json
//	@Param			category	query		string	false	"Category ID"
//	@Param			page		query		int		false	"Page"
//	@Param			limit		query		int		false	"Items per page"
//	@Success		200			{object}	map[string]any
//	@Failure		500			{object}	ErrorInternalServerResponse
//	@Router			/store/products [get]
func (app *application) listProductsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	categoryID := strings.TrimSpace(r.URL.Query().Get("category"))
	pagination := params.ParsePagination(r.URL.Query())

	products, total, err := app.store.Catalog.ListProducts(ctx, categoryID, pagination.Limit, pagination.Offset)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	pagination.ComputeMeta(total)

	app.jsonResponse(w, http.StatusOK, map[string]any{
		"products":   products,
		"pagination": pagination,
	})
}

// getProductHandler godoc
//
//	@Summary		Get product
//	@Description	Returns one product with its variants
//	@Tags			Store
//	@Produce		json
//	@Param			productID	path		string	true	"Product ID"
//	@Success		200			{object}	catalog.Product
//	@Failure		404			{object}	ErrorBadRequestResponse
//	@Failure		500			{object}	ErrorInternalServerResponse
//	@Router			/store/products/{productID} [get]
func (app *application) getProductHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	productID := chi.URLParam(r, "productID")

	product, err := app.store.Catalog.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, product)
}
