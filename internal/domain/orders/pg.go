package orders

import (
	"context"
	"errors"
	"fmt"

	"svitlo/internal/domain/cart"
	"svitlo/internal/infra/dbx"

	"github.com/jackc/pgx/v5"
)

// PgStore appends orders to the orders / order_items tables. There is no
// UPDATE or DELETE here on purpose. Expected schema:
//
//	CREATE TABLE orders (
//	    id             bigserial   PRIMARY KEY,
//	    order_number   text        NOT NULL UNIQUE,
//	    cart_key       text        NOT NULL,
//	    customer_name  text        NOT NULL,
//	    customer_phone text        NOT NULL,
//	    customer_city  text        NOT NULL,
//	    total_cents    bigint      NOT NULL,
//	    created_at     timestamptz NOT NULL
//	);
//
//	CREATE TABLE order_items (
//	    id               bigserial PRIMARY KEY,
//	    order_number     text      NOT NULL REFERENCES orders(order_number),
//	    item_id          text      NOT NULL,
//	    name             text      NOT NULL,
//	    unit_price_cents bigint    NOT NULL,
//	    image_url        text,
//	    quantity         int       NOT NULL,
//	    position         int       NOT NULL
//	);
type PgStore struct {
	db dbx.TxBeginner
}

func NewPgStore(db dbx.TxBeginner) *PgStore {
	return &PgStore{db: db}
}

// Append writes the order row and its item rows in one transaction; a
// failed item insert leaves no partial snapshot behind.
func (s *PgStore) Append(ctx context.Context, o *Order) error {
	return dbx.WithTx(ctx, s.db, func(q dbx.Querier) error {
		if _, err := q.Exec(ctx, `
INSERT INTO orders (order_number, cart_key, customer_name, customer_phone, customer_city, total_cents, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`, o.OrderNumber, o.CartKey, o.Customer.Name, o.Customer.Phone, o.Customer.City, o.TotalCents, o.CreatedAt); err != nil {
			return fmt.Errorf("insert order: %w", err)
		}

		for i, li := range o.Items {
			if _, err := q.Exec(ctx, `
INSERT INTO order_items (order_number, item_id, name, unit_price_cents, image_url, quantity, position)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`, o.OrderNumber, li.ItemID, li.Name, li.UnitPriceCents, li.ImageURL, li.Quantity, i); err != nil {
				return fmt.Errorf("insert order item: %w", err)
			}
		}
		return nil
	})
}

func (s *PgStore) GetByNumber(ctx context.Context, number string) (*Order, error) {
	var o Order
	err := s.db.QueryRow(ctx, `
SELECT order_number, cart_key, customer_name, customer_phone, customer_city, total_cents, created_at
FROM orders
WHERE order_number = $1
`, number).Scan(&o.OrderNumber, &o.CartKey, &o.Customer.Name, &o.Customer.Phone, &o.Customer.City, &o.TotalCents, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get order: %w", err)
	}

	items, err := s.itemsFor(ctx, number)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

func (s *PgStore) itemsFor(ctx context.Context, number string) ([]cart.LineItem, error) {
	rows, err := s.db.Query(ctx, `
SELECT item_id, name, unit_price_cents, image_url, quantity
FROM order_items
WHERE order_number = $1
ORDER BY position ASC
`, number)
	if err != nil {
		return nil, fmt.Errorf("order items: %w", err)
	}
	defer rows.Close()

	var items []cart.LineItem
	for rows.Next() {
		var li cart.LineItem
		if err := rows.Scan(&li.ItemID, &li.Name, &li.UnitPriceCents, &li.ImageURL, &li.Quantity); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, li)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("order item rows: %w", err)
	}
	return items, nil
}

func (s *PgStore) ListByKey(ctx context.Context, key string, limit, offset int) ([]Order, int, error) {
	return s.list(ctx, `
SELECT order_number, cart_key, customer_name, customer_phone, customer_city, total_cents, created_at,
       COUNT(*) OVER() AS total
FROM orders
WHERE cart_key = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3
`, key, limit, offset)
}

func (s *PgStore) ListAll(ctx context.Context, limit, offset int) ([]Order, int, error) {
	return s.list(ctx, `
SELECT order_number, cart_key, customer_name, customer_phone, customer_city, total_cents, created_at,
       COUNT(*) OVER() AS total
FROM orders
ORDER BY created_at DESC
LIMIT $1 OFFSET $2
`, limit, offset)
}

func (s *PgStore) list(ctx context.Context, q string, args ...any) ([]Order, int, error) {
	rows, err := s.db.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var out []Order
	total := 0
	for rows.Next() {
		var o Order
		var t int
		if err := rows.Scan(&o.OrderNumber, &o.CartKey, &o.Customer.Name, &o.Customer.Phone, &o.Customer.City, &o.TotalCents, &o.CreatedAt, &t); err != nil {
			return nil, 0, fmt.Errorf("scan order: %w", err)
		}
		if total == 0 {
			total = t
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("order rows: %w", err)
	}
	return out, total, nil
}
