package cart

import (
	"context"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"storefront-cart/internal/storage"
)

func TestManagerReturnsSameStorePerSession(t *testing.T) {
	ctx := context.Background()
	m := NewManager(storage.NewMemory(), zerolog.Nop())

	a, err := m.For(ctx, "sess-a")
	if err != nil {
		t.Fatalf("For: %v", err)
	}
	b, err := m.For(ctx, "sess-a")
	if err != nil {
		t.Fatalf("For: %v", err)
	}
	if a != b {
		t.Fatalf("expected the same store for the same session")
	}

	other, err := m.For(ctx, "sess-b")
	if err != nil {
		t.Fatalf("For: %v", err)
	}
	if other == a {
		t.Fatalf("sessions must not share a store")
	}
}

func TestManagerSessionIsolation(t *testing.T) {
	ctx := context.Background()
	m := NewManager(storage.NewMemory(), zerolog.Nop())

	a, _ := m.For(ctx, "sess-a")
	b, _ := m.For(ctx, "sess-b")

	if err := a.AddItem(ctx, product("P1", 100), 2); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if b.ItemCount() != 0 {
		t.Fatalf("mutation leaked across sessions")
	}
}

func TestManagerConcurrentFirstUse(t *testing.T) {
	ctx := context.Background()
	m := NewManager(storage.NewMemory(), zerolog.Nop())

	const goroutines = 16
	stores := make([]*Store, goroutines)
	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func(i int) {
			defer wg.Done()
			s, err := m.For(ctx, "sess-hot")
			if err != nil {
				t.Errorf("For: %v", err)
				return
			}
			stores[i] = s
		}(i)
	}
	wg.Wait()

	for i := 1; i < goroutines; i++ {
		if stores[i] != stores[0] {
			t.Fatalf("concurrent first use produced distinct stores")
		}
	}
}
