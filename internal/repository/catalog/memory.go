package catalog

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"storefront-cart/internal/domain"
)

// memoryRepo serves the catalog from memory, for tests and for running the
// API without a database.
type memoryRepo struct {
	mu       sync.RWMutex
	products map[string]domain.Product
	order    []string
}

func NewMemory(products ...domain.Product) Repository {
	r := &memoryRepo{products: make(map[string]domain.Product)}
	for _, p := range products {
		r.put(p)
	}
	return r
}

func (r *memoryRepo) List(_ context.Context, category string) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.Product
	for _, id := range r.order {
		p := r.products[id]
		if category != "" && p.Snapshot().Category != category {
			continue
		}
		result = append(result, p)
	}
	return result, nil
}

func (r *memoryRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (r *memoryRepo) Categories(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := make(map[string]struct{})
	var result []string
	for _, p := range r.products {
		c := p.Snapshot().Category
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		result = append(result, c)
	}
	sort.Strings(result)
	return result, nil
}

func (r *memoryRepo) Upsert(_ context.Context, product domain.Product) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if product.ID == "" {
		product.ID = uuid.NewString()
	}
	r.put(product)
	p := r.products[product.ID]
	return &p, nil
}

func (r *memoryRepo) put(p domain.Product) {
	if _, ok := r.products[p.ID]; !ok {
		r.order = append(r.order, p.ID)
	}
	r.products[p.ID] = p
}
