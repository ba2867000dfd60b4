package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"svitlo/internal/domain/catalog"

	"github.com/go-chi/chi/v5"
)

// getCartHandler godoc
//
//	@Summary		Get cart
//	@Description	Returns the user's cart with the recomputed total; empty on first use
//	@Tags			Cart
//	@Produce		json
//	@Success		200	{object}	cart.View
//	@Failure		401	{object}	ErrorBadRequestResponse
//	@Failure		500	{object}	ErrorInternalServerResponse
//	@Security		ApiKeyAuth
//	@Router			/store/cart [get]
func (app *application) getCartHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	user := getUserFromContext(r)

	view, err := app.store.Cart.View(ctx, cartKey(user))
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, view)
}

// addCartItemHandler godoc
//
//	@Summary		Add to cart
//	@Description	Resolves the product (or its selected variant) into a line candidate and adds it; a duplicate add bumps the quantity
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Success		201	{object}	map[string]any
//	@Failure		400	{object}	ErrorBadRequestResponse
//	@Failure		404	{object}	ErrorBadRequestResponse
//	@Failure		500	{object}	ErrorInternalServerResponse
//	@Security		ApiKeyAuth
//	@Router			/store/cart/items [post]
func (app *application) addCartItemHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	user := getUserFromContext(r)

	var in struct {
		ProductID string `json:"product_id"`
		VariantID string `json:"variant_id"`
	}
	if err := readJSON(w, r, &in); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if in.ProductID == "" {
		app.badRequestResponse(w, r, fmt.Errorf("product_id is required"))
		return
	}

	product, err := app.store.Catalog.GetProduct(ctx, in.ProductID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	candidate, err := catalog.Resolve(product, in.VariantID)
	if err != nil {
		if errors.Is(err, catalog.ErrVariantNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	outcome, view, err := app.store.Cart.AddItem(ctx, cartKey(user), candidate)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusCreated, map[string]any{
		"outcome": outcome,
		"cart":    view,
	})
}

// updateCartItemQtyHandler godoc
//
//	@Summary		Set line quantity
//	@Description	Sets the line's quantity to the given value exactly; values below 1 remove the line
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			itemID	path		string	true	"Line item ID"
//	@Success		200		{object}	map[string]any
//	@Failure		400		{object}	ErrorBadRequestResponse
//	@Failure		500		{object}	ErrorInternalServerResponse
//	@Security		ApiKeyAuth
//	@Router			/store/cart/items/{itemID} [patch]
func (app *application) updateCartItemQtyHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	user := getUserFromContext(r)
	itemID := chi.URLParam(r, "itemID")

	var in struct {
		Qty *int `json:"qty"`
	}
	if err := readJSON(w, r, &in); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if in.Qty == nil {
		app.badRequestResponse(w, r, fmt.Errorf("qty is required"))
		return
	}

	outcome, view, err := app.store.Cart.SetQuantity(ctx, cartKey(user), itemID, *in.Qty)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, map[string]any{
		"outcome": outcome,
		"cart":    view,
	})
}

// removeCartItemHandler godoc
//
//	@Summary		Remove line
//	@Description	Removes the line with that identity; an absent id is a no-op
//	@Tags			Cart
//	@Produce		json
//	@Param			itemID	path		string	true	"Line item ID"
//	@Success		200		{object}	map[string]any
//	@Failure		500		{object}	ErrorInternalServerResponse
//	@Security		ApiKeyAuth
//	@Router			/store/cart/items/{itemID} [delete]
func (app *application) removeCartItemHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	user := getUserFromContext(r)
	itemID := chi.URLParam(r, "itemID")

	outcome, view, err := app.store.Cart.RemoveItem(ctx, cartKey(user), itemID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, map[string]any{
		"outcome": outcome,
		"cart":    view,
	})
}

// clearCartHandler godoc
//
//	@Summary		Clear cart
//	@Tags			Cart
//	@Produce		json
//	@Success		200	{object}	cart.View
//	@Failure		500	{object}	ErrorInternalServerResponse
//	@Security		ApiKeyAuth
//	@Router			/store/cart [delete]
func (app *application) clearCartHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	user := getUserFromContext(r)

	view, err := app.store.Cart.Clear(ctx, cartKey(user))
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, view)
}
