package cart

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"storefront-cart/internal/storage"
)

// Manager hands out the one Store per session key. First use constructs and
// rehydrates the store; singleflight collapses concurrent first requests so
// a session is only ever rehydrated once.
type Manager struct {
	backend storage.Backend
	logger  zerolog.Logger

	mu     sync.RWMutex
	stores map[string]*Store
	sfg    singleflight.Group
}

func NewManager(backend storage.Backend, logger zerolog.Logger) *Manager {
	return &Manager{
		backend: backend,
		logger:  logger,
		stores:  make(map[string]*Store),
	}
}

// For returns the session's store, constructing it on first use.
func (m *Manager) For(ctx context.Context, sessionID string) (*Store, error) {
	m.mu.RLock()
	store, ok := m.stores[sessionID]
	m.mu.RUnlock()
	if ok {
		return store, nil
	}

	v, err, _ := m.sfg.Do(sessionID, func() (interface{}, error) {
		m.mu.RLock()
		existing, ok := m.stores[sessionID]
		m.mu.RUnlock()
		if ok {
			return existing, nil
		}

		created, err := NewStore(ctx, m.backend, sessionID, m.logger)
		if err != nil {
			return nil, err
		}

		m.mu.Lock()
		m.stores[sessionID] = created
		m.mu.Unlock()
		return created, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Store), nil
}
