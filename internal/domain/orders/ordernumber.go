package orders

import "github.com/google/uuid"

// newOrderNumber returns a fresh order number. Order numbers are opaque,
// URL-safe and globally unique; they appear in tracking links, so they must
// also be unguessable.
func newOrderNumber() string {
	return uuid.NewString()
}

// ShortRef is the human-facing form of an order number, used in
// notifications and confirmation messages.
func ShortRef(orderNumber string) string {
	if len(orderNumber) <= 8 {
		return orderNumber
	}
	return orderNumber[:8]
}
