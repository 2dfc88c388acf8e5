package catalog

import (
	"context"

	"storefront-cart/internal/domain"
)

type Repository interface {
	List(ctx context.Context, category string) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Categories(ctx context.Context) ([]string, error)
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}
