package product

import (
	"context"

	"digitalshop/internal/domain"
)

// ListParams describes one catalog page request. Category and Query narrow
// the result; Cursor is the opaque token returned by a previous page.
type ListParams struct {
	Category string
	Query    string
	Sort     string
	Limit    int
	Cursor   string
}

// Sort orders accepted by List.
const (
	SortFeatured  = "featured"
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
	SortRating    = "rating"
)

type Page struct {
	Products   []domain.Product `json:"products"`
	NextCursor string           `json:"nextCursor,omitempty"`
}

type Repository interface {
	List(ctx context.Context, params ListParams) (*Page, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}
