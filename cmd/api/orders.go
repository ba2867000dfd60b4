package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"svitlo/internal/domain/orders"
	"svitlo/internal/params"

	"github.com/go-chi/chi/v5"
)

type CheckoutPayload struct {
	Name  string `json:"name" validate:"required,min=2"`
	Phone string `json:"phone" validate:"required,phone"`
	City  string `json:"city" validate:"required,min=2"`
}

// checkoutHandler godoc
//
//	@Summary		Checkout
//	@Description	Places an order from the live cart, relays it to the managers and clears the cart. Relay failure is a soft warning; the order stands.
//	@Tags			Orders
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		CheckoutPayload	true	"Contact data"
//	@Success		201		{object}	map[string]any
//	@Failure		400		{object}	ErrorBadRequestResponse
//	@Failure		500		{object}	ErrorInternalServerResponse
//	@Security		ApiKeyAuth
//	@Router			/store/checkout [post]
func (app *application) checkoutHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	user := getUserFromContext(r)
	key := cartKey(user)

	var payload CheckoutPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	info := orders.CustomerInfo{
		Name:  payload.Name,
		Phone: payload.Phone,
		City:  payload.City,
	}

	items, totalCents, err := app.store.Cart.Items(ctx, key)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	orderNumber, err := app.store.Orders.Place(ctx, key, items, totalCents, info)
	if err != nil {
		switch {
		case errors.Is(err, orders.ErrEmptyCart):
			app.badRequestResponse(w, r, errors.New("cart is empty, add items before checking out"))
		default:
			app.badRequestResponse(w, r, err)
		}
		return
	}

	// The order is placed once Place returns a number. Relay and cart
	// clearing come after and neither can undo it.
	warning := ""
	order, err := app.store.Orders.Get(ctx, orderNumber)
	if err != nil {
		app.logger.Errorw("order relay skipped", "order", orderNumber, "error", err)
		warning = "order placed, manager notification delayed"
	} else if err := app.notifier.NotifyOrderPlaced(ctx, order); err != nil {
		app.logger.Errorw("telegram relay failed", "order", orderNumber, "error", err)
		warning = "order placed, manager notification delayed"

		if app.mailNotifier != nil {
			app.background(func() {
				bctx, bcancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer bcancel()
				if err := app.mailNotifier.NotifyOrderPlaced(bctx, order); err != nil {
					app.logger.Errorw("mail relay failed", "order", orderNumber, "error", err)
				}
			})
		}
	}

	if _, err := app.store.Cart.Clear(ctx, key); err != nil {
		// The order exists; an uncleared cart only means the user sees
		// stale lines until the next mutation.
		app.logger.Errorw("cart clear after checkout failed", "order", orderNumber, "error", err)
	}

	resp := map[string]any{
		"order_number": orderNumber,
		"short_ref":    orders.ShortRef(orderNumber),
	}
	if warning != "" {
		resp["warning"] = warning
	}

	app.jsonResponse(w, http.StatusCreated, resp)
}

// trackOrderHandler godoc
//
//	@Summary		Track order
//	@Description	Looks an order up by its number; misses are a plain not-found result
//	@Tags			Orders
//	@Produce		json
//	@Param			orderNumber	path		string	true	"Order number"
//	@Success		200			{object}	orders.Order
//	@Failure		404			{object}	ErrorBadRequestResponse
//	@Failure		500			{object}	ErrorInternalServerResponse
//	@Router			/store/orders/{orderNumber} [get]
func (app *application) trackOrderHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	orderNumber := chi.URLParam(r, "orderNumber")

	order, err := app.store.Orders.Get(ctx, orderNumber)
	if err != nil {
		if errors.Is(err, orders.ErrNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusOK, order)
}

// listMyOrdersHandler godoc
//
//	@Summary		List my orders
//	@Tags			Orders
//	@Produce		json
//	@Param			page	query		int	false	"Page"
//	@Param			limit	query		int	false	"Items per page"
//	@Success		200		{object}	map[string]any
//	@Failure		500		{object}	ErrorInternalServerResponse
//	@Security		ApiKeyAuth
//	@Router			/store/orders [get]
func (app *application) listMyOrdersHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	user := getUserFromContext(r)
	pagination := params.ParsePagination(r.URL.Query())

	list, total, err := app.store.Orders.ListByKey(ctx, cartKey(user), pagination.Limit, pagination.Offset)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	pagination.ComputeMeta(total)

	app.jsonResponse(w, http.StatusOK, map[string]any{
		"orders":     list,
		"pagination": pagination,
	})
}

// adminListOrdersHandler godoc
//
//	@Summary		List all orders
//	@Tags			Admin
//	@Produce		json
//	@Param			page	query		int	false	"Page"
//	@Param			limit	query		int	false	"Items per page"
//	@Success		200		{object}	map[string]any
//	@Failure		500		{object}	ErrorInternalServerResponse
//	@Router			/admin/orders [get]
func (app *application) adminListOrdersHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	pagination := params.ParsePagination(r.URL.Query())

	list, total, err := app.store.Orders.ListAll(ctx, pagination.Limit, pagination.Offset)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	pagination.ComputeMeta(total)

	app.jsonResponse(w, http.StatusOK, map[string]any{
		"orders":     list,
		"pagination": pagination,
	})
}
