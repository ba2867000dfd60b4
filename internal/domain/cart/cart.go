package cart

import (
	"context"
	"fmt"
)

// Cart holds the in-progress line items in insertion order. At most one
// LineItem exists per ItemID; a quantity below 1 removes the line entirely,
// it is never stored at 0. All mutation happens through the methods below.
type Cart struct {
	items []LineItem
}

func New() *Cart {
	return &Cart{}
}

// FromItems builds a cart from stored lines. Lines are copied.
func FromItems(items []LineItem) *Cart {
	c := &Cart{items: make([]LineItem, len(items))}
	copy(c.items, items)
	return c
}

func (c *Cart) find(itemID string) int {
	for i := range c.items {
		if c.items[i].ItemID == itemID {
			return i
		}
	}
	return -1
}

// Add inserts the candidate with quantity 1, or bumps the quantity by 1 when
// a line with the same ItemID already exists. On a duplicate add every other
// field keeps the value captured on the first add; the candidate's price and
// name are intentionally not re-applied.
func (c *Cart) Add(cand Candidate) Outcome {
	if i := c.find(cand.ItemID); i >= 0 {
		c.items[i].Quantity++
		return OutcomeQuantityUpdated
	}
	c.items = append(c.items, LineItem{
		ItemID:         cand.ItemID,
		Name:           cand.Name,
		UnitPriceCents: cand.UnitPriceCents,
		ImageURL:       cand.ImageURL,
		Quantity:       1,
	})
	return OutcomeAdded
}

// Remove deletes the line with that identity. Absent ids are a no-op.
func (c *Cart) Remove(itemID string) Outcome {
	i := c.find(itemID)
	if i < 0 {
		return OutcomeNoop
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
	return OutcomeRemoved
}

// SetQuantity sets the line's quantity to qty exactly. qty below 1 removes
// the line. An absent id is a silent no-op.
func (c *Cart) SetQuantity(itemID string, qty int) Outcome {
	if qty < 1 {
		return c.Remove(itemID)
	}
	i := c.find(itemID)
	if i < 0 {
		return OutcomeNoop
	}
	c.items[i].Quantity = qty
	return OutcomeQuantityUpdated
}

func (c *Cart) Clear() {
	c.items = nil
}

func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// Items returns a copy of the lines; mutating it does not touch the cart.
func (c *Cart) Items() []LineItem {
	out := make([]LineItem, len(c.items))
	copy(out, c.items)
	return out
}

// TotalCents recomputes the total from the lines on every call. It is never
// cached, so it cannot drift from its inputs.
func (c *Cart) TotalCents() int64 {
	var total int64
	for i := range c.items {
		total += c.items[i].UnitPriceCents * int64(c.items[i].Quantity)
	}
	return total
}

func (c *Cart) view() *View {
	return &View{Items: c.Items(), TotalCents: c.TotalCents()}
}

// Aggregator owns the cart mutation rules on top of a Store. It is built
// once per process and scoped per request by the key; it keeps no cart state
// of its own. Every mutation is load → apply → save → reload, so the view a
// caller gets back is what the store confirmed, never an optimistic local
// copy. A failed save leaves the stored cart untouched.
type Aggregator struct {
	store Store
}

func NewAggregator(store Store) *Aggregator {
	return &Aggregator{store: store}
}

func (a *Aggregator) View(ctx context.Context, key string) (*View, error) {
	c, err := a.store.Load(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	return c.view(), nil
}

// Items returns the confirmed lines and total, for checkout.
func (a *Aggregator) Items(ctx context.Context, key string) ([]LineItem, int64, error) {
	c, err := a.store.Load(ctx, key)
	if err != nil {
		return nil, 0, fmt.Errorf("load cart: %w", err)
	}
	return c.Items(), c.TotalCents(), nil
}

func (a *Aggregator) AddItem(ctx context.Context, key string, cand Candidate) (Outcome, *View, error) {
	return a.mutate(ctx, key, func(c *Cart) Outcome {
		return c.Add(cand)
	})
}

func (a *Aggregator) SetQuantity(ctx context.Context, key, itemID string, qty int) (Outcome, *View, error) {
	return a.mutate(ctx, key, func(c *Cart) Outcome {
		return c.SetQuantity(itemID, qty)
	})
}

func (a *Aggregator) RemoveItem(ctx context.Context, key, itemID string) (Outcome, *View, error) {
	return a.mutate(ctx, key, func(c *Cart) Outcome {
		return c.Remove(itemID)
	})
}

func (a *Aggregator) Clear(ctx context.Context, key string) (*View, error) {
	_, v, err := a.mutate(ctx, key, func(c *Cart) Outcome {
		c.Clear()
		return OutcomeCleared
	})
	return v, err
}

func (a *Aggregator) mutate(ctx context.Context, key string, fn func(*Cart) Outcome) (Outcome, *View, error) {
	c, err := a.store.Load(ctx, key)
	if err != nil {
		return OutcomeNoop, nil, fmt.Errorf("load cart: %w", err)
	}

	outcome := fn(c)
	if outcome == OutcomeNoop {
		return outcome, c.view(), nil
	}

	if err := a.store.Save(ctx, key, c); err != nil {
		return OutcomeNoop, nil, fmt.Errorf("save cart: %w", err)
	}

	// Read back what the store confirmed rather than trusting the local copy.
	fresh, err := a.store.Load(ctx, key)
	if err != nil {
		return OutcomeNoop, nil, fmt.Errorf("reload cart: %w", err)
	}
	return outcome, fresh.view(), nil
}
