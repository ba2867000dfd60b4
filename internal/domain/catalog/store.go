package catalog

import (
	"context"
	"errors"
	"fmt"

	"svitlo/internal/infra/dbx"

	"github.com/jackc/pgx/v5"
)

// Repository is the read-only catalog source. The storefront queries it for
// cards and details; the cart only ever sees candidates resolved from its
// data.
type Repository struct {
	db dbx.Querier
}

func NewRepository(q dbx.Querier) *Repository {
	return &Repository{db: q}
}

func (r *Repository) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := r.db.Query(ctx, `
SELECT id, name, created_at
FROM categories
ORDER BY name ASC
`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var out []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("category rows: %w", err)
	}
	return out, nil
}

// ListProducts returns products with their variants, optionally filtered by
// category, newest first.
func (r *Repository) ListProducts(ctx context.Context, categoryID string, limit, offset int) ([]Product, int, error) {
	where := "1=1"
	args := []any{}
	arg := 1

	if categoryID != "" {
		where += fmt.Sprintf(" AND category_id = $%d", arg)
		args = append(args, categoryID)
		arg++
	}

	q := fmt.Sprintf(`
SELECT id, name, description, price_cents, image_url, category_id, created_at,
       COUNT(*) OVER() AS total
FROM products
WHERE %s
ORDER BY created_at DESC
LIMIT $%d OFFSET $%d
`, where, arg, arg+1)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var out []Product
	total := 0
	for rows.Next() {
		var p Product
		var t int
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.PriceCents, &p.ImageURL, &p.CategoryID, &p.CreatedAt, &t); err != nil {
			return nil, 0, fmt.Errorf("scan product: %w", err)
		}
		if total == 0 {
			total = t
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("product rows: %w", err)
	}

	if err := r.fillVariants(ctx, out); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *Repository) GetProduct(ctx context.Context, id string) (*Product, error) {
	var p Product
	err := r.db.QueryRow(ctx, `
SELECT id, name, description, price_cents, image_url, category_id, created_at
FROM products
WHERE id = $1
`, id).Scan(&p.ID, &p.Name, &p.Description, &p.PriceCents, &p.ImageURL, &p.CategoryID, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}

	products := []Product{p}
	if err := r.fillVariants(ctx, products); err != nil {
		return nil, err
	}
	return &products[0], nil
}

func (r *Repository) fillVariants(ctx context.Context, products []Product) error {
	if len(products) == 0 {
		return nil
	}

	ids := make([]string, len(products))
	byID := make(map[string]*Product, len(products))
	for i := range products {
		ids[i] = products[i].ID
		byID[products[i].ID] = &products[i]
	}

	rows, err := r.db.Query(ctx, `
SELECT id, product_id, name, price_cents, image_url
FROM product_variants
WHERE product_id = ANY($1)
ORDER BY product_id, position ASC
`, ids)
	if err != nil {
		return fmt.Errorf("product variants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var v Variant
		if err := rows.Scan(&v.ID, &v.ProductID, &v.Name, &v.PriceCents, &v.ImageURL); err != nil {
			return fmt.Errorf("scan variant: %w", err)
		}
		if p, ok := byID[v.ProductID]; ok {
			p.Variants = append(p.Variants, v)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("variant rows: %w", err)
	}
	return nil
}

// AddProductImage records an uploaded image as the product's display image.
func (r *Repository) AddProductImage(ctx context.Context, productID, url string) error {
	tag, err := r.db.Exec(ctx, `
UPDATE products
SET image_url = $2
WHERE id = $1
`, productID, url)
	if err != nil {
		return fmt.Errorf("set product image: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
