package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"storefront-cart/internal/domain"
)

// Redis persists one JSON cart record per "<namespace>:<key>". Records carry
// no TTL: a cart survives until it is cleared, matching the indefinite
// lifetime of the storefront's durable storage.
type Redis struct {
	client    *redis.Client
	namespace string
}

func NewRedis(client *redis.Client, namespace string) *Redis {
	return &Redis{client: client, namespace: namespace}
}

func (r *Redis) Load(ctx context.Context, key string) (*domain.CartState, error) {
	data, err := r.client.Get(ctx, r.recordKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var state domain.CartState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("unmarshal cart state failed: %w", err)
	}
	return &state, nil
}

func (r *Redis) Save(ctx context.Context, key string, state *domain.CartState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal cart state failed: %w", err)
	}
	if err := r.client.Set(ctx, r.recordKey(key), data, 0).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.recordKey(key)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func (r *Redis) recordKey(key string) string {
	return fmt.Sprintf("%s:%s", r.namespace, key)
}
