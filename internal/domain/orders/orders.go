package orders

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"svitlo/internal/domain/cart"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// Optional leading +, then 10 to 15 digits.
	phoneRe := regexp.MustCompile(`^\+?\d{10,15}$`)
	_ = validate.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phoneRe.MatchString(fl.Field().String())
	})
}

// Validate reports the first failing contact field. The same rules gate
// checkout no matter which transport called it.
func (ci CustomerInfo) Validate() error {
	if err := validate.Struct(ci); err != nil {
		return fmt.Errorf("invalid customer info: %w", err)
	}
	return nil
}

// Log owns the checkout transition: a live cart becomes a numbered,
// immutable order. It knows nothing about notification delivery; the caller
// triggers that after Place returns.
type Log struct {
	store Store
}

func NewLog(store Store) *Log {
	return &Log{store: store}
}

// Place creates an order from the given lines and returns its number.
// The cart must be non-empty and the contact data valid; otherwise nothing
// is appended. Items are deep-copied so later cart mutations cannot reach
// the snapshot.
func (l *Log) Place(ctx context.Context, key string, items []cart.LineItem, totalCents int64, info CustomerInfo) (string, error) {
	if len(items) == 0 {
		return "", ErrEmptyCart
	}
	if err := info.Validate(); err != nil {
		return "", err
	}

	o := &Order{
		OrderNumber: newOrderNumber(),
		CartKey:     key,
		Items:       cloneItems(items),
		TotalCents:  totalCents,
		Customer:    info,
		CreatedAt:   time.Now().UTC(),
	}

	if err := l.store.Append(ctx, o); err != nil {
		return "", fmt.Errorf("append order: %w", err)
	}
	return o.OrderNumber, nil
}

// Get looks the order up by exact number. The returned snapshot is the
// caller's copy; mutating it does not touch the log.
func (l *Log) Get(ctx context.Context, number string) (*Order, error) {
	return l.store.GetByNumber(ctx, number)
}

func (l *Log) ListByKey(ctx context.Context, key string, limit, offset int) ([]Order, int, error) {
	return l.store.ListByKey(ctx, key, limit, offset)
}

func (l *Log) ListAll(ctx context.Context, limit, offset int) ([]Order, int, error) {
	return l.store.ListAll(ctx, limit, offset)
}

func cloneItems(items []cart.LineItem) []cart.LineItem {
	out := make([]cart.LineItem, len(items))
	copy(out, items)
	for i := range out {
		if out[i].ImageURL != nil {
			url := *out[i].ImageURL
			out[i].ImageURL = &url
		}
	}
	return out
}
