package cart

import "context"

// LineItem is one purchasable entry in a cart. ItemID is the identity of the
// purchasable unit: a bare product id, or a variant id when the product sells
// variants. Both live in the same opaque identity space.
type LineItem struct {
	ItemID         string  `json:"item_id"`
	Name           string  `json:"name"`
	UnitPriceCents int64   `json:"unit_price_cents"`
	ImageURL       *string `json:"image_url,omitempty"`
	Quantity       int     `json:"quantity"`
}

// Candidate is an already-resolved purchasable unit handed to AddItem.
// The catalog layer resolves products and variants into candidates; the
// cart never queries the catalog itself.
type Candidate struct {
	ItemID         string  `json:"item_id"`
	Name           string  `json:"name"`
	UnitPriceCents int64   `json:"unit_price_cents"`
	ImageURL       *string `json:"image_url,omitempty"`
}

// Outcome tells the caller which user-facing notification to show.
type Outcome string

const (
	OutcomeAdded           Outcome = "added"
	OutcomeQuantityUpdated Outcome = "quantity_updated"
	OutcomeRemoved         Outcome = "removed"
	OutcomeCleared         Outcome = "cleared"
	OutcomeNoop            Outcome = "noop"
)

// View is what handlers return to clients: the lines plus the derived total.
type View struct {
	Items      []LineItem `json:"items"`
	TotalCents int64      `json:"total_cents"`
}

// Store makes a cart durable across sessions. The key is an opaque scoping
// value supplied by the identity layer (user id in the authenticated
// revision). Load on an unknown key returns an empty cart, not an error.
//
// The cart's transition rules are identical regardless of which Store backs
// it; the Postgres and in-memory implementations are interchangeable.
type Store interface {
	Load(ctx context.Context, key string) (*Cart, error)
	Save(ctx context.Context, key string, c *Cart) error
}
