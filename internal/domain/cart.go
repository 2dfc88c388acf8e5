package domain

import "time"

// CartSchemaVersion marks the layout of persisted cart records. Records
// written by a newer schema are discarded on load rather than misread.
const CartSchemaVersion = 1

// ProductSnapshot is the denormalized copy of catalog display fields a line
// item carries. It is captured at add time and never re-synced with the
// catalog, so cart rendering and totals stay stable against catalog edits.
type ProductSnapshot struct {
	Name               string  `json:"name"`
	Image              string  `json:"image,omitempty"`
	Category           string  `json:"category"`
	Rating             float64 `json:"rating"`
	ReviewCount        int     `json:"reviewCount"`
	InStock            bool    `json:"inStock"`
	OriginalPriceCents *int64  `json:"originalPriceCents,omitempty"`
}

// LineItem is one cart row: a product reference by value, the quantity, and
// the unit price captured when the product was first added.
type LineItem struct {
	ProductID  string          `json:"productId"`
	Quantity   int             `json:"quantity"`
	PriceCents int64           `json:"priceCents"`
	Snapshot   ProductSnapshot `json:"snapshot"`
	AddedAt    time.Time       `json:"addedAt"`
}

// TotalCents is the line total at the captured unit price.
func (l LineItem) TotalCents() int64 {
	return l.PriceCents * int64(l.Quantity)
}

// CartState is the persisted cart snapshot: an ordered list of line items,
// unique per product id, plus aggregates derived from them. TotalCents and
// ItemCount are never set directly; Recompute is the only writer.
type CartState struct {
	SchemaVersion int        `json:"schemaVersion"`
	Items         []LineItem `json:"items"`
	TotalCents    int64      `json:"totalCents"`
	ItemCount     int        `json:"itemCount"`
}

// Recompute rederives TotalCents and ItemCount from the line items.
func (s *CartState) Recompute() {
	var total int64
	var count int
	for _, item := range s.Items {
		total += item.TotalCents()
		count += item.Quantity
	}
	s.TotalCents = total
	s.ItemCount = count
}

// Clone returns a deep copy so callers and storage backends cannot alias the
// live line-item slice.
func (s CartState) Clone() CartState {
	out := s
	if s.Items != nil {
		out.Items = make([]LineItem, len(s.Items))
		copy(out.Items, s.Items)
	}
	return out
}
