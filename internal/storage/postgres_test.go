package storage

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"storefront-cart/internal/domain"
	"storefront-cart/internal/migrate"
)

func testPool(ctx context.Context, t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	return pool
}

func TestPostgres_SaveLoadDelete(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	if _, err := pool.Exec(ctx, `TRUNCATE cart_states`); err != nil {
		t.Fatalf("truncate cart_states: %v", err)
	}

	backend := NewPostgres(pool)

	if _, err := backend.Load(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	state := domain.CartState{
		SchemaVersion: domain.CartSchemaVersion,
		Items: []domain.LineItem{{
			ProductID:  "P1",
			Quantity:   3,
			PriceCents: 1250,
			Snapshot:   domain.ProductSnapshot{Name: "Prod 1", Category: domain.DefaultCategory, InStock: true},
		}},
	}
	state.Recompute()

	if err := backend.Save(ctx, "sess-1", &state); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := backend.Load(ctx, "sess-1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.TotalCents != 3750 || got.ItemCount != 3 || len(got.Items) != 1 {
		t.Fatalf("unexpected state %+v", got)
	}
	if got.Items[0].Snapshot.Name != "Prod 1" {
		t.Fatalf("snapshot lost on round trip: %+v", got.Items[0])
	}

	// Save again to exercise the upsert path.
	state.Items[0].Quantity = 1
	state.Recompute()
	if err := backend.Save(ctx, "sess-1", &state); err != nil {
		t.Fatalf("Save update: %v", err)
	}
	got, err = backend.Load(ctx, "sess-1")
	if err != nil {
		t.Fatalf("Load after update: %v", err)
	}
	if got.ItemCount != 1 {
		t.Fatalf("upsert did not replace record: %+v", got)
	}

	if err := backend.Delete(ctx, "sess-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := backend.Load(ctx, "sess-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}
