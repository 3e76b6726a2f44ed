package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"digitalshop/internal/domain"
)

type ProductWriter interface {
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}

// CSVImporter reads catalog CSV exports and inserts/updates products. The
// expected header row is: id, title, description, price_cents, category,
// image, rating, reviews, featured, download_url, features. The features
// column holds a semicolon-separated list; id is optional.
type CSVImporter struct {
	reader   *csv.Reader
	products ProductWriter
}

func NewCSVImporter(r io.Reader, products ProductWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{
		reader:   csvr,
		products: products,
	}
}

// Run parses CSV rows and upserts one product per row. It stops at the
// first malformed row and reports how many products were imported before it.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	if _, ok := index["title"]; !ok {
		return 0, errors.New("missing required column: title")
	}

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

		p, err := parseRow(record, index)
		if err != nil {
			return imported, fmt.Errorf("line %d: %w", line, err)
		}
		if p == nil {
			continue
		}
		if _, err := i.products.Upsert(ctx, *p); err != nil {
			return imported, fmt.Errorf("line %d: upsert %q: %w", line, p.Title, err)
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

func parseRow(record []string, index map[string]int) (*domain.Product, error) {
	field := func(name string) string {
		i, ok := index[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	title := field("title")
	if title == "" {
		// Blank row.
		return nil, nil
	}

	p := domain.Product{
		ID:          field("id"),
		Title:       title,
		Description: field("description"),
		Category:    field("category"),
		Image:       field("image"),
		DownloadURL: field("download_url"),
	}

	if v := field("price_cents"); v != "" {
		cents, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("price_cents %q: %w", v, err)
		}
		p.PriceCents = cents
	}
	if v := field("rating"); v != "" {
		rating, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("rating %q: %w", v, err)
		}
		p.Rating = rating
	}
	if v := field("reviews"); v != "" {
		reviews, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("reviews %q: %w", v, err)
		}
		p.Reviews = reviews
	}
	if v := field("featured"); v != "" {
		featured, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("featured %q: %w", v, err)
		}
		p.Featured = featured
	}
	if v := field("features"); v != "" {
		for _, f := range strings.Split(v, ";") {
			if f = strings.TrimSpace(f); f != "" {
				p.Features = append(p.Features, f)
			}
		}
	}
	return &p, nil
}
