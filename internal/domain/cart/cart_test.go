package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func str(s string) *string { return &s }

func TestAddMergesByItemID(t *testing.T) {
	c := New()

	out := c.Add(Candidate{ItemID: "A", Name: "Chandelier", UnitPriceCents: 250000})
	assert.Equal(t, OutcomeAdded, out)

	out = c.Add(Candidate{ItemID: "A", Name: "Renamed", UnitPriceCents: 999999})
	assert.Equal(t, OutcomeQuantityUpdated, out)

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	// Fields from the first add win; the duplicate add only bumps quantity.
	assert.Equal(t, "Chandelier", items[0].Name)
	assert.Equal(t, int64(250000), items[0].UnitPriceCents)
}

func TestAddNeverDuplicatesItemID(t *testing.T) {
	c := New()
	for i := 0; i < 5; i++ {
		c.Add(Candidate{ItemID: "A", UnitPriceCents: 100})
		c.Add(Candidate{ItemID: "B", UnitPriceCents: 200})
	}

	seen := map[string]bool{}
	for _, li := range c.Items() {
		assert.False(t, seen[li.ItemID], "duplicate line for %s", li.ItemID)
		seen[li.ItemID] = true
	}
	assert.Len(t, c.Items(), 2)
}

func TestSetQuantityFloorRemoves(t *testing.T) {
	for _, qty := range []int{0, -1} {
		c := New()
		c.Add(Candidate{ItemID: "A", UnitPriceCents: 100})

		out := c.SetQuantity("A", qty)
		assert.Equal(t, OutcomeRemoved, out)
		assert.True(t, c.IsEmpty())
	}
}

func TestSetQuantityAbsolute(t *testing.T) {
	c := New()
	c.Add(Candidate{ItemID: "A", UnitPriceCents: 100})

	out := c.SetQuantity("A", 7)
	assert.Equal(t, OutcomeQuantityUpdated, out)
	assert.Equal(t, 7, c.Items()[0].Quantity)
}

func TestSetQuantityAbsentIsNoop(t *testing.T) {
	c := New()
	c.Add(Candidate{ItemID: "A", UnitPriceCents: 100})

	assert.Equal(t, OutcomeNoop, c.SetQuantity("missing", 3))
	assert.Len(t, c.Items(), 1)
}

func TestRemoveAbsentIsNoop(t *testing.T) {
	c := New()
	assert.Equal(t, OutcomeNoop, c.Remove("missing"))
}

func TestTotalRecomputed(t *testing.T) {
	c := New()
	c.Add(Candidate{ItemID: "A", UnitPriceCents: 10000})
	c.Add(Candidate{ItemID: "A", UnitPriceCents: 10000})
	c.Add(Candidate{ItemID: "B", UnitPriceCents: 5000})
	assert.Equal(t, int64(25000), c.TotalCents())

	c.SetQuantity("A", 3)
	assert.Equal(t, int64(35000), c.TotalCents())

	c.Remove("B")
	assert.Equal(t, int64(30000), c.TotalCents())

	c.Clear()
	assert.Equal(t, int64(0), c.TotalCents())
}

func TestItemsReturnsCopy(t *testing.T) {
	c := New()
	c.Add(Candidate{ItemID: "A", UnitPriceCents: 100})

	items := c.Items()
	items[0].Quantity = 99

	assert.Equal(t, 1, c.Items()[0].Quantity)
}

func TestAggregatorReloadsAfterWrite(t *testing.T) {
	ctx := context.Background()
	agg := NewAggregator(NewMemoryStore())

	out, view, err := agg.AddItem(ctx, "user-1", Candidate{ItemID: "v1", Name: "Desk lamp", UnitPriceCents: 85000, ImageURL: str("https://cdn/x.jpg")})
	require.NoError(t, err)
	assert.Equal(t, OutcomeAdded, out)
	require.Len(t, view.Items, 1)
	assert.Equal(t, int64(85000), view.TotalCents)

	out, view, err = agg.AddItem(ctx, "user-1", Candidate{ItemID: "v1", UnitPriceCents: 1})
	require.NoError(t, err)
	assert.Equal(t, OutcomeQuantityUpdated, out)
	assert.Equal(t, 2, view.Items[0].Quantity)
	assert.Equal(t, int64(170000), view.TotalCents)

	// Carts are scoped by key.
	other, err := agg.View(ctx, "user-2")
	require.NoError(t, err)
	assert.Empty(t, other.Items)
}

type failingSaveStore struct {
	*MemoryStore
	fail bool
}

func (s *failingSaveStore) Save(ctx context.Context, key string, c *Cart) error {
	if s.fail {
		return errors.New("connection reset")
	}
	return s.MemoryStore.Save(ctx, key, c)
}

func TestFailedSaveLeavesStoredCartUnchanged(t *testing.T) {
	ctx := context.Background()
	store := &failingSaveStore{MemoryStore: NewMemoryStore()}
	agg := NewAggregator(store)

	_, _, err := agg.AddItem(ctx, "u", Candidate{ItemID: "A", UnitPriceCents: 100})
	require.NoError(t, err)

	store.fail = true
	_, _, err = agg.AddItem(ctx, "u", Candidate{ItemID: "A", UnitPriceCents: 100})
	require.Error(t, err)

	store.fail = false
	view, err := agg.View(ctx, "u")
	require.NoError(t, err)
	assert.Equal(t, 1, view.Items[0].Quantity)
}

func TestAggregatorClear(t *testing.T) {
	ctx := context.Background()
	agg := NewAggregator(NewMemoryStore())

	_, _, err := agg.AddItem(ctx, "u", Candidate{ItemID: "A", UnitPriceCents: 100})
	require.NoError(t, err)

	view, err := agg.Clear(ctx, "u")
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.Equal(t, int64(0), view.TotalCents)
}
