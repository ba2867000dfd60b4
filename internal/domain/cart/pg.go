package cart

import (
	"context"
	"fmt"

	"svitlo/internal/infra/dbx"
)

// PgStore persists carts as rows in cart_items, one row per line, keyed by
// the opaque cart key. Expected schema:
//
//	CREATE TABLE cart_items (
//	    cart_key         text        NOT NULL,
//	    item_id          text        NOT NULL,
//	    name             text        NOT NULL,
//	    unit_price_cents bigint      NOT NULL,
//	    image_url        text,
//	    quantity         int         NOT NULL CHECK (quantity >= 1),
//	    position         int         NOT NULL,
//	    updated_at       timestamptz NOT NULL DEFAULT now(),
//	    PRIMARY KEY (cart_key, item_id)
//	);
type PgStore struct {
	db dbx.TxBeginner
}

func NewPgStore(db dbx.TxBeginner) *PgStore {
	return &PgStore{db: db}
}

func (s *PgStore) Load(ctx context.Context, key string) (*Cart, error) {
	rows, err := s.db.Query(ctx, `
SELECT item_id, name, unit_price_cents, image_url, quantity
FROM cart_items
WHERE cart_key = $1
ORDER BY position ASC
`, key)
	if err != nil {
		return nil, fmt.Errorf("load cart rows: %w", err)
	}
	defer rows.Close()

	var items []LineItem
	for rows.Next() {
		var li LineItem
		if err := rows.Scan(&li.ItemID, &li.Name, &li.UnitPriceCents, &li.ImageURL, &li.Quantity); err != nil {
			return nil, fmt.Errorf("scan cart row: %w", err)
		}
		items = append(items, li)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("cart rows: %w", err)
	}

	return FromItems(items), nil
}

// Save replaces the stored rows with the cart's lines: removed lines are
// deleted, the rest upserted with their insertion position, all in one
// transaction. Callers reload after Save instead of trusting their local
// copy.
func (s *PgStore) Save(ctx context.Context, key string, c *Cart) error {
	items := c.Items()

	if len(items) == 0 {
		if _, err := s.db.Exec(ctx, `DELETE FROM cart_items WHERE cart_key = $1`, key); err != nil {
			return fmt.Errorf("clear cart rows: %w", err)
		}
		return nil
	}

	keep := make([]string, len(items))
	for i, li := range items {
		keep[i] = li.ItemID
	}

	return dbx.WithTx(ctx, s.db, func(q dbx.Querier) error {
		if _, err := q.Exec(ctx, `
DELETE FROM cart_items
WHERE cart_key = $1
  AND NOT (item_id = ANY($2))
`, key, keep); err != nil {
			return fmt.Errorf("prune cart rows: %w", err)
		}

		for i, li := range items {
			if _, err := q.Exec(ctx, `
INSERT INTO cart_items (cart_key, item_id, name, unit_price_cents, image_url, quantity, position)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (cart_key, item_id)
DO UPDATE SET
  quantity   = EXCLUDED.quantity,
  position   = EXCLUDED.position,
  updated_at = now()
`, key, li.ItemID, li.Name, li.UnitPriceCents, li.ImageURL, li.Quantity, i); err != nil {
				return fmt.Errorf("upsert cart row: %w", err)
			}
		}
		return nil
	})
}
