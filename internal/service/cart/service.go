package cart

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	cartstore "storefront-cart/internal/cart"
	"storefront-cart/internal/domain"
)

// ErrQuantityNotPositive rejects add requests with a zero or negative
// quantity at the boundary, before the store sees them.
var ErrQuantityNotPositive = errors.New("quantity must be positive")

// Service resolves products against the catalog and applies cart operations
// to the session's store.
type Service struct {
	stores  storeProvider
	catalog catalogRepo
	logger  zerolog.Logger
}

type storeProvider interface {
	For(ctx context.Context, sessionID string) (*cartstore.Store, error)
}

type catalogRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

func New(stores storeProvider, catalog catalogRepo, logger zerolog.Logger) *Service {
	return &Service{stores: stores, catalog: catalog, logger: logger}
}

// View is what UI callers read: the persisted snapshot plus the transient
// loading flag.
type View struct {
	Items      []domain.LineItem `json:"items"`
	TotalCents int64             `json:"totalCents"`
	ItemCount  int               `json:"itemCount"`
	Loading    bool              `json:"loading"`
}

func (s *Service) Get(ctx context.Context, sessionID string) (*View, error) {
	store, err := s.stores.For(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return viewOf(store), nil
}

// AddItem resolves productID in the catalog and adds quantity units to the
// session's cart. The catalog price and display fields are captured on first
// add; re-adding only accumulates quantity.
func (s *Service) AddItem(ctx context.Context, sessionID, productID string, quantity int) (*View, error) {
	if quantity <= 0 {
		return nil, ErrQuantityNotPositive
	}
	product, err := s.catalog.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	store, err := s.stores.For(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := store.AddItem(ctx, *product, quantity); err != nil {
		s.logger.Warn().Err(err).Str("session", sessionID).Str("product", productID).
			Msg("cart add persisted with error")
	}
	return viewOf(store), nil
}

// UpdateQuantity replaces the quantity on an existing line; zero or less
// removes the line. Unknown products in the cart are a no-op.
func (s *Service) UpdateQuantity(ctx context.Context, sessionID, productID string, quantity int) (*View, error) {
	store, err := s.stores.For(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := store.UpdateQuantity(ctx, productID, quantity); err != nil {
		s.logger.Warn().Err(err).Str("session", sessionID).Str("product", productID).
			Msg("cart update persisted with error")
	}
	return viewOf(store), nil
}

func (s *Service) RemoveItem(ctx context.Context, sessionID, productID string) (*View, error) {
	store, err := s.stores.For(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := store.RemoveItem(ctx, productID); err != nil {
		s.logger.Warn().Err(err).Str("session", sessionID).Str("product", productID).
			Msg("cart remove persisted with error")
	}
	return viewOf(store), nil
}

func (s *Service) Clear(ctx context.Context, sessionID string) (*View, error) {
	store, err := s.stores.For(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := store.Clear(ctx); err != nil {
		s.logger.Warn().Err(err).Str("session", sessionID).Msg("cart clear persisted with error")
	}
	return viewOf(store), nil
}

func viewOf(store *cartstore.Store) *View {
	state := store.State()
	items := state.Items
	if items == nil {
		items = []domain.LineItem{}
	}
	return &View{
		Items:      items,
		TotalCents: state.TotalCents,
		ItemCount:  state.ItemCount,
		Loading:    store.Loading(),
	}
}
