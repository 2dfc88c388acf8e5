package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"storefront-cart/internal/domain"
)

type ProductWriter interface {
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}

// CSVImporter reads supplier catalog exports and inserts/updates products.
// Expected headers: id, name, price_cents, original_price_cents, image,
// category, rating, review_count, in_stock. Only name and price_cents are
// required per row.
type CSVImporter struct {
	reader  *csv.Reader
	catalog ProductWriter
}

func NewCSVImporter(r io.Reader, catalog ProductWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{
		reader:  csvr,
		catalog: catalog,
	}
}

// Run parses CSV rows and upserts products, returning the number imported.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)

	imported := 0
	line := 1
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}
		line++

		product, ok, err := parseRow(record, index)
		if err != nil {
			return imported, fmt.Errorf("row %d: %w", line, err)
		}
		if !ok {
			continue
		}

		if _, err := i.catalog.Upsert(ctx, product); err != nil {
			return imported, fmt.Errorf("upsert %q: %w", product.Name, err)
		}
		imported++
	}

	return imported, nil
}

func headerIndex(headers []string) map[string]int {
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return index
}

func parseRow(record []string, index map[string]int) (domain.Product, bool, error) {
	name := field(record, index, "name")
	if name == "" {
		return domain.Product{}, false, nil
	}

	priceCents, err := parseInt64(field(record, index, "price_cents"))
	if err != nil {
		return domain.Product{}, false, fmt.Errorf("price_cents: %w", err)
	}

	p := domain.Product{
		ID:         field(record, index, "id"),
		Name:       name,
		PriceCents: priceCents,
		Image:      field(record, index, "image"),
		Category:   field(record, index, "category"),
	}

	if raw := field(record, index, "original_price_cents"); raw != "" {
		orig, err := parseInt64(raw)
		if err != nil {
			return domain.Product{}, false, fmt.Errorf("original_price_cents: %w", err)
		}
		p.OriginalPriceCents = &orig
	}
	if raw := field(record, index, "rating"); raw != "" {
		rating, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return domain.Product{}, false, fmt.Errorf("rating: %w", err)
		}
		p.Rating = rating
	}
	if raw := field(record, index, "review_count"); raw != "" {
		count, err := strconv.Atoi(raw)
		if err != nil {
			return domain.Product{}, false, fmt.Errorf("review_count: %w", err)
		}
		p.ReviewCount = count
	}
	if raw := field(record, index, "in_stock"); raw != "" {
		inStock, err := strconv.ParseBool(raw)
		if err != nil {
			return domain.Product{}, false, fmt.Errorf("in_stock: %w", err)
		}
		p.InStock = &inStock
	}

	return p, true, nil
}

func field(record []string, index map[string]int, name string) string {
	i, ok := index[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func parseInt64(raw string) (int64, error) {
	if raw == "" {
		return 0, errors.New("missing value")
	}
	return strconv.ParseInt(raw, 10, 64)
}
