package storage

import (
	"context"
	"sync"

	"storefront-cart/internal/domain"
)

// Memory keeps cart records in a map. It backs tests and the dev-mode
// service where no Redis or Postgres is configured.
type Memory struct {
	mu      sync.RWMutex
	records map[string]domain.CartState
}

func NewMemory() *Memory {
	return &Memory{records: make(map[string]domain.CartState)}
}

func (m *Memory) Load(_ context.Context, key string) (*domain.CartState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	state, ok := m.records[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := state.Clone()
	return &out, nil
}

func (m *Memory) Save(_ context.Context, key string, state *domain.CartState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[key] = state.Clone()
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, key)
	return nil
}
