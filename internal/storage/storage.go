package storage

import (
	"context"
	"errors"

	"storefront-cart/internal/domain"
)

// ErrNotFound is returned by Load when no record exists for the key.
var ErrNotFound = errors.New("cart state not found")

// Backend is the durable home of cart snapshots, one record per session key.
// The cart store writes through on every mutation and loads once at
// construction, so backends only need simple keyed Load/Save/Delete.
type Backend interface {
	Load(ctx context.Context, key string) (*domain.CartState, error)
	Save(ctx context.Context, key string, state *domain.CartState) error
	Delete(ctx context.Context, key string) error
}
