package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"svitlo/internal/domain/cart"
	"svitlo/internal/domain/orders"
	"svitlo/internal/domain/users"
	"svitlo/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubNotifier struct {
	err  error
	sent []*orders.Order
}

func (n *stubNotifier) NotifyOrderPlaced(_ context.Context, o *orders.Order) error {
	n.sent = append(n.sent, o)
	return n.err
}

func newTestApp(notifier *stubNotifier) *application {
	return &application{
		config: config{env: "test"},
		logger: zap.NewNop().Sugar(),
		store: store.Storage{
			Cart:   cart.NewAggregator(cart.NewMemoryStore()),
			Orders: orders.NewLog(orders.NewMemoryStore()),
		},
		notifier: notifier,
	}
}

func authedRequest(t *testing.T, method, target string, body any, userID int64) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	ctx := context.WithValue(req.Context(), userCtx, &users.User{ID: userID})
	return req.WithContext(ctx)
}

func seedCart(t *testing.T, app *application, userID int64) {
	t.Helper()
	_, _, err := app.store.Cart.AddItem(context.Background(), cartKey(&users.User{ID: userID}), cart.Candidate{
		ItemID:         "p1",
		Name:           "Modern chandelier",
		UnitPriceCents: 250000,
	})
	require.NoError(t, err)
}

func TestCheckoutHandlerPlacesOrderAndClearsCart(t *testing.T) {
	notifier := &stubNotifier{}
	app := newTestApp(notifier)
	seedCart(t, app, 7)

	rr := httptest.NewRecorder()
	req := authedRequest(t, http.MethodPost, "/v1/store/checkout", map[string]string{
		"name":  "Ivan Petrov",
		"phone": "+380671234567",
		"city":  "Kyiv",
	}, 7)

	app.checkoutHandler(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)

	var resp struct {
		Data struct {
			OrderNumber string `json:"order_number"`
			ShortRef    string `json:"short_ref"`
			Warning     string `json:"warning"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Data.OrderNumber)
	assert.Equal(t, orders.ShortRef(resp.Data.OrderNumber), resp.Data.ShortRef)
	assert.Empty(t, resp.Data.Warning)

	// The order is in the log and carries the cart snapshot.
	placed, err := app.store.Orders.Get(context.Background(), resp.Data.OrderNumber)
	require.NoError(t, err)
	require.Len(t, placed.Items, 1)
	assert.Equal(t, "Modern chandelier", placed.Items[0].Name)
	assert.Equal(t, int64(250000), placed.TotalCents)

	// The managers were notified once.
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, resp.Data.OrderNumber, notifier.sent[0].OrderNumber)

	// The cart is empty afterwards.
	view, err := app.store.Cart.View(context.Background(), "7")
	require.NoError(t, err)
	assert.Empty(t, view.Items)
}

func TestCheckoutHandlerNotifyFailureIsSoft(t *testing.T) {
	notifier := &stubNotifier{err: assert.AnError}
	app := newTestApp(notifier)
	seedCart(t, app, 7)

	rr := httptest.NewRecorder()
	req := authedRequest(t, http.MethodPost, "/v1/store/checkout", map[string]string{
		"name":  "Ivan Petrov",
		"phone": "+380671234567",
		"city":  "Kyiv",
	}, 7)

	app.checkoutHandler(rr, req)

	// The order still stands; the client just sees a warning.
	require.Equal(t, http.StatusCreated, rr.Code)

	var resp struct {
		Data struct {
			OrderNumber string `json:"order_number"`
			Warning     string `json:"warning"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Data.Warning)

	_, err := app.store.Orders.Get(context.Background(), resp.Data.OrderNumber)
	require.NoError(t, err)
}

func TestCheckoutHandlerRejectsEmptyCart(t *testing.T) {
	notifier := &stubNotifier{}
	app := newTestApp(notifier)

	rr := httptest.NewRecorder()
	req := authedRequest(t, http.MethodPost, "/v1/store/checkout", map[string]string{
		"name":  "Ivan Petrov",
		"phone": "+380671234567",
		"city":  "Kyiv",
	}, 7)

	app.checkoutHandler(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Empty(t, notifier.sent)
}

func TestCheckoutHandlerRejectsInvalidContact(t *testing.T) {
	notifier := &stubNotifier{}
	app := newTestApp(notifier)
	seedCart(t, app, 7)

	rr := httptest.NewRecorder()
	req := authedRequest(t, http.MethodPost, "/v1/store/checkout", map[string]string{
		"name":  "I",
		"phone": "123",
		"city":  "Kyiv",
	}, 7)

	app.checkoutHandler(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Empty(t, notifier.sent)

	// Nothing was appended and the cart kept its lines.
	view, err := app.store.Cart.View(context.Background(), "7")
	require.NoError(t, err)
	assert.Len(t, view.Items, 1)
}

func TestTrackOrderHandler(t *testing.T) {
	app := newTestApp(&stubNotifier{})

	number, err := app.store.Orders.Place(context.Background(), "7",
		[]cart.LineItem{{ItemID: "p1", Name: "Modern chandelier", UnitPriceCents: 250000, Quantity: 1}},
		250000,
		orders.CustomerInfo{Name: "Ivan Petrov", Phone: "+380671234567", City: "Kyiv"},
	)
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Get("/store/orders/{orderNumber}", app.trackOrderHandler)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/store/orders/"+number, nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Data orders.Order `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, number, resp.Data.OrderNumber)
	assert.Len(t, resp.Data.Items, 1)

	// Unknown numbers are a plain miss.
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/store/orders/no-such-order", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
