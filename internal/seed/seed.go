package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"storefront-cart/internal/domain"
)

func int64Ptr(v int64) *int64 { return &v }
func boolPtr(v bool) *bool    { return &v }

// Products returns the demo catalog. The same set backs the in-memory
// catalog when the API runs without a database.
func Products() []domain.Product {
	return []domain.Product{
		{
			ID:                 "0d4bd4f6-36f1-4f07-8f5b-000000000001",
			Name:               "Wireless Headphones",
			PriceCents:         7999,
			OriginalPriceCents: int64Ptr(9999),
			Image:              "https://cdn.example.com/img/headphones.jpg",
			Category:           "Electronics",
			Rating:             4.5,
			ReviewCount:        212,
			InStock:            boolPtr(true),
		},
		{
			ID:          "0d4bd4f6-36f1-4f07-8f5b-000000000002",
			Name:        "Ceramic Pour-Over Kettle",
			PriceCents:  4299,
			Image:       "https://cdn.example.com/img/kettle.jpg",
			Category:    "Home & Kitchen",
			Rating:      4.8,
			ReviewCount: 87,
			InStock:     boolPtr(true),
		},
		{
			ID:          "0d4bd4f6-36f1-4f07-8f5b-000000000003",
			Name:        "Organic Cotton T-Shirt",
			PriceCents:  1999,
			Image:       "https://cdn.example.com/img/tshirt.jpg",
			Category:    "Apparel",
			Rating:      4.2,
			ReviewCount: 340,
			InStock:     boolPtr(true),
		},
		{
			// No category on purpose; exercises the Uncategorized default.
			ID:          "0d4bd4f6-36f1-4f07-8f5b-000000000004",
			Name:        "Mystery Sample Box",
			PriceCents:  500,
			InStock:     boolPtr(false),
			ReviewCount: 0,
		},
	}
}

// Apply inserts the demo catalog for manual testing. It is idempotent via
// ON CONFLICT on fixed product ids.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	for _, p := range Products() {
		if err := upsertProduct(ctx, pool, p); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.Name, err)
		}
	}
	return nil
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, p domain.Product) error {
	const q = `
INSERT INTO products (id, name, price_cents, original_price_cents, image, category, rating, review_count, in_stock)
VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8, $9)
ON CONFLICT (id) DO UPDATE SET
	name = EXCLUDED.name,
	price_cents = EXCLUDED.price_cents,
	original_price_cents = EXCLUDED.original_price_cents,
	image = EXCLUDED.image,
	category = EXCLUDED.category,
	rating = EXCLUDED.rating,
	review_count = EXCLUDED.review_count,
	in_stock = EXCLUDED.in_stock
`
	snap := p.Snapshot()
	_, err := pool.Exec(ctx, q,
		p.ID,
		p.Name,
		p.PriceCents,
		p.OriginalPriceCents,
		p.Image,
		snap.Category,
		snap.Rating,
		snap.ReviewCount,
		snap.InStock,
	)
	return err
}
