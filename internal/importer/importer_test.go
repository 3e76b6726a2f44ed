package importer

import (
	"context"
	"strings"
	"testing"

	"digitalshop/internal/domain"
)

type captureWriter struct {
	products []domain.Product
}

func (w *captureWriter) Upsert(_ context.Context, p domain.Product) (*domain.Product, error) {
	w.products = append(w.products, p)
	return &p, nil
}

func TestRunImportsRows(t *testing.T) {
	csv := strings.Join([]string{
		"id,title,description,price_cents,category,image,rating,reviews,featured,download_url,features",
		`,Marketing Dashboard Pro,Analytics dashboard,14900,Digital Tools,/assets/p4.jpg,4.9,342,true,/downloads/md.zip,Real-time analytics;Automated reporting`,
		`p-2,Business Presentation Pack,Slide templates,6900,Templates,/assets/p3.jpg,4.5,167,false,,`,
		``,
	}, "\n")

	w := &captureWriter{}
	imp := NewCSVImporter(strings.NewReader(csv), w)
	count, err := imp.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if count != 2 {
		t.Fatalf("imported %d products, want 2", count)
	}

	first := w.products[0]
	if first.Title != "Marketing Dashboard Pro" || first.PriceCents != 14900 || !first.Featured {
		t.Fatalf("first product: %+v", first)
	}
	if len(first.Features) != 2 || first.Features[1] != "Automated reporting" {
		t.Fatalf("features not split: %v", first.Features)
	}

	second := w.products[1]
	if second.ID != "p-2" || second.Category != "Templates" || second.Featured {
		t.Fatalf("second product: %+v", second)
	}
}

func TestRunRejectsBadNumbers(t *testing.T) {
	csv := strings.Join([]string{
		"title,price_cents",
		"Broken,abc",
	}, "\n")

	w := &captureWriter{}
	imp := NewCSVImporter(strings.NewReader(csv), w)
	if _, err := imp.Run(context.Background()); err == nil {
		t.Fatal("expected error for non-numeric price")
	}
	if len(w.products) != 0 {
		t.Fatalf("bad row reached the writer: %v", w.products)
	}
}

func TestRunRequiresTitleColumn(t *testing.T) {
	imp := NewCSVImporter(strings.NewReader("id,price_cents\n1,100\n"), &captureWriter{})
	if _, err := imp.Run(context.Background()); err == nil {
		t.Fatal("expected error for missing title column")
	}
}
