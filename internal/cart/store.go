package cart

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"storefront-cart/internal/domain"
	"storefront-cart/internal/storage"
)

// Store holds the authoritative cart state for one session. Every mutation
// is a single locked transition followed by a write-through save; readers
// never observe a half-applied operation. The in-memory state stays
// authoritative when a save fails, so a flaky backend degrades persistence,
// not correctness.
type Store struct {
	mu      sync.Mutex
	key     string
	backend storage.Backend
	logger  zerolog.Logger

	state   domain.CartState
	loading bool
}

// NewStore rehydrates the session's cart from the backend before returning,
// so no caller can order an operation ahead of rehydration. A missing record
// starts an empty cart; a record written by a newer schema is discarded.
func NewStore(ctx context.Context, backend storage.Backend, key string, logger zerolog.Logger) (*Store, error) {
	s := &Store{
		key:     key,
		backend: backend,
		logger:  logger,
		state:   domain.CartState{SchemaVersion: domain.CartSchemaVersion},
	}

	loaded, err := backend.Load(ctx, key)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return s, nil
	case err != nil:
		return nil, err
	}

	if loaded.SchemaVersion > domain.CartSchemaVersion {
		logger.Warn().Str("key", key).Int("schema_version", loaded.SchemaVersion).
			Msg("cart record from newer schema, starting empty")
		return s, nil
	}

	s.state = loaded.Clone()
	s.state.SchemaVersion = domain.CartSchemaVersion
	// Aggregates are derived state; never trust a stored copy of them.
	s.state.Recompute()
	return s, nil
}

// AddItem adds quantity units of product. If a line for the product already
// exists its quantity is incremented and the captured price and snapshot are
// left untouched; otherwise a new line captures the product's current price
// and defaulted display snapshot. A non-positive quantity is a no-op: the
// boundary rejects it, the store refuses to accumulate it.
func (s *Store) AddItem(ctx context.Context, product domain.Product, quantity int) error {
	if quantity <= 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	for i := range s.state.Items {
		if s.state.Items[i].ProductID == product.ID {
			s.state.Items[i].Quantity += quantity
			found = true
			break
		}
	}
	if !found {
		s.state.Items = append(s.state.Items, domain.LineItem{
			ProductID:  product.ID,
			Quantity:   quantity,
			PriceCents: product.PriceCents,
			Snapshot:   product.Snapshot(),
			AddedAt:    time.Now().UTC(),
		})
	}

	s.state.Recompute()
	return s.persist(ctx)
}

// RemoveItem deletes the line for productID. Removing an absent line is a
// no-op, not an error.
func (s *Store) RemoveItem(ctx context.Context, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.removeLocked(productID)
	s.state.Recompute()
	return s.persist(ctx)
}

// UpdateQuantity replaces the quantity on the line for productID. A quantity
// of zero or less deletes the line. No line is created when the product is
// not in the cart.
func (s *Store) UpdateQuantity(ctx context.Context, productID string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		s.removeLocked(productID)
	} else {
		for i := range s.state.Items {
			if s.state.Items[i].ProductID == productID {
				s.state.Items[i].Quantity = quantity
				break
			}
		}
	}

	s.state.Recompute()
	return s.persist(ctx)
}

// Clear empties the cart and resets the aggregates. The transient loading
// flag is not touched.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Items = nil
	s.state.Recompute()
	return s.persist(ctx)
}

// SetLoading flips the transient UI flag. It is not persisted and has no
// effect on the financial state.
func (s *Store) SetLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Items returns a copy of the current line items.
func (s *Store) Items() []domain.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone().Items
}

func (s *Store) TotalCents() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.TotalCents
}

func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.ItemCount
}

// State returns a copy of the full persisted snapshot.
func (s *Store) State() domain.CartState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

func (s *Store) removeLocked(productID string) {
	items := s.state.Items[:0]
	for _, item := range s.state.Items {
		if item.ProductID != productID {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		items = nil
	}
	s.state.Items = items
}

// persist writes the snapshot through to the backend. Callers hold the lock.
func (s *Store) persist(ctx context.Context) error {
	snapshot := s.state.Clone()
	if err := s.backend.Save(ctx, s.key, &snapshot); err != nil {
		s.logger.Warn().Err(err).Str("key", s.key).Msg("cart save failed")
		return err
	}
	return nil
}
