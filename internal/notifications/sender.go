package notifications

import (
	"context"

	"svitlo/internal/domain/orders"
)

// OrderNotifier delivers a human-readable order summary to the store's
// operators after checkout. Delivery is best-effort by contract: a failed
// send is logged and surfaced as a soft warning, it never reverses the
// order.
type OrderNotifier interface {
	NotifyOrderPlaced(ctx context.Context, o *orders.Order) error
}
