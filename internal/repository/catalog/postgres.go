package catalog

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"storefront-cart/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger zerolog.Logger) Repository {
	return &postgresRepo{pool: pool, logger: logger}
}

const productColumns = `id::text, name, price_cents, original_price_cents, COALESCE(image, ''), category, rating, review_count, in_stock, created_at`

func (r *postgresRepo) List(ctx context.Context, category string) ([]domain.Product, error) {
	q := `
SELECT ` + productColumns + `
FROM products
ORDER BY created_at DESC
`
	args := []interface{}{}
	if category != "" {
		q = `
SELECT ` + productColumns + `
FROM products
WHERE category = $1
ORDER BY created_at DESC
`
		args = append(args, category)
	}

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Error().Err(err).Str("category", category).Msg("catalog list failed")
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Str("category", category).Msg("catalog list rows failed")
		return nil, err
	}
	r.logger.Debug().Str("category", category).Int("count", len(result)).Msg("catalog list")
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	q := `
SELECT ` + productColumns + `
FROM products
WHERE id = $1
`
	row := r.pool.QueryRow(ctx, q, id)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error().Err(err).Str("id", id).Msg("catalog get failed")
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepo) Categories(ctx context.Context) ([]string, error) {
	const q = `
SELECT DISTINCT category
FROM products
ORDER BY category ASC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

func (r *postgresRepo) Upsert(ctx context.Context, product domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (id, name, price_cents, original_price_cents, image, category, rating, review_count, in_stock)
VALUES (COALESCE(NULLIF($1, '')::uuid, gen_random_uuid()), $2, $3, $4, NULLIF($5, ''), $6, $7, $8, $9)
ON CONFLICT (id) DO UPDATE SET
	name = EXCLUDED.name,
	price_cents = EXCLUDED.price_cents,
	original_price_cents = EXCLUDED.original_price_cents,
	image = EXCLUDED.image,
	category = EXCLUDED.category,
	rating = EXCLUDED.rating,
	review_count = EXCLUDED.review_count,
	in_stock = EXCLUDED.in_stock
RETURNING ` + productColumns + `
`
	snap := product.Snapshot()
	row := r.pool.QueryRow(ctx, q,
		product.ID,
		product.Name,
		product.PriceCents,
		product.OriginalPriceCents,
		product.Image,
		snap.Category,
		snap.Rating,
		snap.ReviewCount,
		snap.InStock,
	)
	p, err := scanProduct(row)
	if err != nil {
		r.logger.Error().Err(err).Str("id", product.ID).Str("name", product.Name).Msg("catalog upsert failed")
		return nil, err
	}
	r.logger.Debug().Str("id", p.ID).Str("name", p.Name).Msg("catalog upsert")
	return &p, nil
}

func scanProduct(row pgx.Row) (domain.Product, error) {
	var p domain.Product
	var inStock bool
	if err := row.Scan(
		&p.ID,
		&p.Name,
		&p.PriceCents,
		&p.OriginalPriceCents,
		&p.Image,
		&p.Category,
		&p.Rating,
		&p.ReviewCount,
		&inStock,
		&p.CreatedAt,
	); err != nil {
		return domain.Product{}, err
	}
	p.InStock = &inStock
	return p, nil
}
