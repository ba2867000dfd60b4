package orders

import (
	"context"
	"testing"

	"svitlo/internal/domain/cart"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var validCustomer = CustomerInfo{
	Name:  "Ivan Petrov",
	Phone: "+380671234567",
	City:  "Kyiv",
}

func lines() []cart.LineItem {
	url := "https://cdn/chandelier.jpg"
	return []cart.LineItem{
		{ItemID: "p1", Name: "Modern chandelier", UnitPriceCents: 250000, ImageURL: &url, Quantity: 2},
		{ItemID: "v2", Name: "Desk lamp (Brass)", UnitPriceCents: 85000, Quantity: 1},
	}
}

func TestPlaceAndGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	log := NewLog(NewMemoryStore())

	number, err := log.Place(ctx, "user-1", lines(), 585000, validCustomer)
	require.NoError(t, err)
	require.NotEmpty(t, number)

	o, err := log.Get(ctx, number)
	require.NoError(t, err)
	assert.Equal(t, number, o.OrderNumber)
	assert.Equal(t, int64(585000), o.TotalCents)
	assert.Equal(t, validCustomer, o.Customer)
	assert.Equal(t, lines(), o.Items)
	assert.False(t, o.CreatedAt.IsZero())
}

func TestOrderNumbersAreUnique(t *testing.T) {
	ctx := context.Background()
	log := NewLog(NewMemoryStore())

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		number, err := log.Place(ctx, "u", lines(), 585000, validCustomer)
		require.NoError(t, err)
		assert.False(t, seen[number])
		seen[number] = true
	}
}

func TestSnapshotImmuneToLaterMutation(t *testing.T) {
	ctx := context.Background()
	log := NewLog(NewMemoryStore())

	items := lines()
	number, err := log.Place(ctx, "u", items, 585000, validCustomer)
	require.NoError(t, err)

	// Mutate the slice the caller handed in, as a live cart would.
	items[0].Quantity = 99
	items[0].Name = "changed"
	*items[0].ImageURL = "changed"

	o, err := log.Get(ctx, number)
	require.NoError(t, err)
	assert.Equal(t, 2, o.Items[0].Quantity)
	assert.Equal(t, "Modern chandelier", o.Items[0].Name)
	assert.Equal(t, "https://cdn/chandelier.jpg", *o.Items[0].ImageURL)

	// Mutating a returned snapshot must not leak into the log either.
	o.Items[0].Quantity = 42
	again, err := log.Get(ctx, number)
	require.NoError(t, err)
	assert.Equal(t, 2, again.Items[0].Quantity)
}

func TestEmptyCartRejected(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	log := NewLog(store)

	_, err := log.Place(ctx, "u", nil, 0, validCustomer)
	assert.ErrorIs(t, err, ErrEmptyCart)

	_, total, err := store.ListAll(ctx, 10, 0)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestInvalidCustomerRejectedBeforeAppend(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	log := NewLog(store)

	for _, info := range []CustomerInfo{
		{Name: "Ivan", Phone: "abc", City: "Kyiv"},
		{Name: "I", Phone: "+380671234567", City: "Kyiv"},
		{Name: "Ivan", Phone: "+380671234567", City: "K"},
		{Name: "Ivan", Phone: "+38067", City: "Kyiv"},
		{Name: "Ivan", Phone: "+3806712345678901", City: "Kyiv"},
	} {
		_, err := log.Place(ctx, "u", lines(), 585000, info)
		assert.Error(t, err, "customer %+v should be rejected", info)
	}

	_, total, err := store.ListAll(ctx, 10, 0)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestCustomerValidation(t *testing.T) {
	assert.NoError(t, CustomerInfo{Name: "Ivan", Phone: "0671234567", City: "Lviv"}.Validate())
	assert.NoError(t, CustomerInfo{Name: "Ivan", Phone: "+380671234567", City: "Lviv"}.Validate())
	assert.Error(t, CustomerInfo{Name: "Ivan", Phone: "067 123 45 67", City: "Lviv"}.Validate())
}

func TestGetMissReportsNotFound(t *testing.T) {
	log := NewLog(NewMemoryStore())
	_, err := log.Get(context.Background(), "no-such-order")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListByKeyScopes(t *testing.T) {
	ctx := context.Background()
	log := NewLog(NewMemoryStore())

	_, err := log.Place(ctx, "alice", lines(), 585000, validCustomer)
	require.NoError(t, err)
	_, err = log.Place(ctx, "bob", lines(), 585000, validCustomer)
	require.NoError(t, err)

	got, total, err := log.ListByKey(ctx, "alice", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, got, 1)
	assert.Equal(t, "alice", got[0].CartKey)
}

func TestShortRef(t *testing.T) {
	assert.Equal(t, "12345678", ShortRef("12345678-abcd-efgh"))
	assert.Equal(t, "short", ShortRef("short"))
}
