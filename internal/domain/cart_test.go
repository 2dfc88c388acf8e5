package domain

import (
	"encoding/json"
	"testing"
)

func TestRecompute(t *testing.T) {
	s := CartState{
		Items: []LineItem{
			{ProductID: "a", Quantity: 2, PriceCents: 150},
			{ProductID: "b", Quantity: 1, PriceCents: 999},
		},
		TotalCents: -1,
		ItemCount:  -1,
	}
	s.Recompute()
	if s.TotalCents != 1299 || s.ItemCount != 3 {
		t.Fatalf("unexpected aggregates %+v", s)
	}

	s.Items = nil
	s.Recompute()
	if s.TotalCents != 0 || s.ItemCount != 0 {
		t.Fatalf("empty cart aggregates %+v", s)
	}
}

func TestSnapshotDefaults(t *testing.T) {
	snap := Product{ID: "p", Name: "Bare", PriceCents: 100}.Snapshot()
	if snap.Category != DefaultCategory {
		t.Fatalf("category = %q, want %q", snap.Category, DefaultCategory)
	}
	if !snap.InStock {
		t.Fatalf("in-stock default should be true")
	}
	if snap.Rating != 0 || snap.ReviewCount != 0 || snap.OriginalPriceCents != nil {
		t.Fatalf("unexpected defaults %+v", snap)
	}

	out := false
	orig := int64(500)
	snap = Product{ID: "p", Name: "Full", PriceCents: 100, Category: "Toys", InStock: &out, OriginalPriceCents: &orig, Rating: 3.5, ReviewCount: 7}.Snapshot()
	if snap.Category != "Toys" || snap.InStock || snap.Rating != 3.5 || snap.ReviewCount != 7 {
		t.Fatalf("explicit values overridden %+v", snap)
	}
	if snap.OriginalPriceCents == nil || *snap.OriginalPriceCents != 500 {
		t.Fatalf("original price lost %+v", snap)
	}
}

func TestCartStateJSONRoundTrip(t *testing.T) {
	orig := int64(2000)
	s := CartState{
		SchemaVersion: CartSchemaVersion,
		Items: []LineItem{{
			ProductID:  "p1",
			Quantity:   2,
			PriceCents: 1500,
			Snapshot: ProductSnapshot{
				Name:               "Lamp",
				Category:           "Home",
				Rating:             4.5,
				ReviewCount:        10,
				InStock:            true,
				OriginalPriceCents: &orig,
			},
		}},
	}
	s.Recompute()

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got CartState
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.SchemaVersion != s.SchemaVersion || got.TotalCents != 3000 || got.ItemCount != 2 {
		t.Fatalf("round trip mismatch %+v", got)
	}
	if len(got.Items) != 1 {
		t.Fatalf("items mismatch %+v", got.Items)
	}
	snap := got.Items[0].Snapshot
	if snap.Name != "Lamp" || snap.Category != "Home" || snap.Rating != 4.5 || !snap.InStock {
		t.Fatalf("snapshot mismatch %+v", snap)
	}
	if snap.OriginalPriceCents == nil || *snap.OriginalPriceCents != 2000 {
		t.Fatalf("original price lost %+v", snap)
	}
}

func TestCloneIsDeep(t *testing.T) {
	s := CartState{Items: []LineItem{{ProductID: "a", Quantity: 1, PriceCents: 10}}}
	c := s.Clone()
	c.Items[0].Quantity = 99
	if s.Items[0].Quantity != 1 {
		t.Fatalf("clone aliases the source items")
	}
}
