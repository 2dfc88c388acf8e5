package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront-cart/internal/domain"
)

// Postgres keeps one jsonb row per session key in cart_states.
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

func (p *Postgres) Load(ctx context.Context, key string) (*domain.CartState, error) {
	const q = `
SELECT state
FROM cart_states
WHERE key = $1
`
	var raw []byte
	if err := p.pool.QueryRow(ctx, q, key).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var state domain.CartState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("unmarshal cart state: %w", err)
	}
	return &state, nil
}

func (p *Postgres) Save(ctx context.Context, key string, state *domain.CartState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal cart state: %w", err)
	}
	const q = `
INSERT INTO cart_states (key, state, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE SET state = EXCLUDED.state, updated_at = now()
`
	_, err = p.pool.Exec(ctx, q, key, data)
	return err
}

func (p *Postgres) Delete(ctx context.Context, key string) error {
	_, err := p.pool.Exec(ctx, `DELETE FROM cart_states WHERE key = $1`, key)
	return err
}
