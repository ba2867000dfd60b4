package orders

import (
	"context"
	"errors"
	"time"

	"svitlo/internal/domain/cart"
)

var (
	ErrNotFound  = errors.New("order not found")
	ErrEmptyCart = errors.New("cart is empty")
)

// CustomerInfo is the contact data collected at checkout. It is validated
// before any order is created; invalid input blocks checkout with a
// field-level message and mutates nothing.
type CustomerInfo struct {
	Name  string `json:"name" validate:"required,min=2"`
	Phone string `json:"phone" validate:"required,phone"`
	City  string `json:"city" validate:"required,min=2"`
}

// Order is an immutable snapshot of a cart plus customer contact data,
// created once at checkout. There is no update or delete; the log is
// append-only and orders stay retrievable by number forever.
type Order struct {
	OrderNumber string          `json:"order_number"`
	CartKey     string          `json:"-"`
	Items       []cart.LineItem `json:"items"`
	TotalCents  int64           `json:"total_cents"`
	Customer    CustomerInfo    `json:"customer_info"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Store is the append-only order log. Append is the sole mutator;
// GetByNumber misses report ErrNotFound.
type Store interface {
	Append(ctx context.Context, o *Order) error
	GetByNumber(ctx context.Context, number string) (*Order, error)
	ListByKey(ctx context.Context, key string, limit, offset int) ([]Order, int, error)
	ListAll(ctx context.Context, limit, offset int) ([]Order, int, error)
}
