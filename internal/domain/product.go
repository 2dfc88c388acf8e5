package domain

import "time"

// DefaultCategory is used when catalog data arrives without a category label.
const DefaultCategory = "Uncategorized"

// Product is the catalog shape the storefront browses and the cart consumes.
// Optional fields are pointers so an absent value can be told apart from a
// zero value; defaults are applied once, in Snapshot.
type Product struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	PriceCents         int64     `json:"priceCents"`
	OriginalPriceCents *int64    `json:"originalPriceCents,omitempty"`
	Image              string    `json:"image,omitempty"`
	Category           string    `json:"category,omitempty"`
	Rating             float64   `json:"rating,omitempty"`
	ReviewCount        int       `json:"reviewCount,omitempty"`
	InStock            *bool     `json:"inStock,omitempty"`
	CreatedAt          time.Time `json:"createdAt,omitempty"`
}

// Snapshot returns the denormalized display fields a cart line keeps.
// Missing category defaults to DefaultCategory, missing stock flag to true,
// rating and review count to zero.
func (p Product) Snapshot() ProductSnapshot {
	category := p.Category
	if category == "" {
		category = DefaultCategory
	}
	inStock := true
	if p.InStock != nil {
		inStock = *p.InStock
	}
	return ProductSnapshot{
		Name:               p.Name,
		Image:              p.Image,
		Category:           category,
		Rating:             p.Rating,
		ReviewCount:        p.ReviewCount,
		InStock:            inStock,
		OriginalPriceCents: p.OriginalPriceCents,
	}
}
