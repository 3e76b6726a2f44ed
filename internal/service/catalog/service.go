package catalog

import (
	"context"
	"errors"
	"strings"

	"digitalshop/internal/domain"
	categoryrepo "digitalshop/internal/repository/category"
	productrepo "digitalshop/internal/repository/product"
)

// Service exposes the storefront catalog: paged product listings, single
// product lookups and the category filter list.
type Service struct {
	products   productrepo.Repository
	categories categoryrepo.Repository
}

func New(products productrepo.Repository, categories categoryrepo.Repository) *Service {
	return &Service{
		products:   products,
		categories: categories,
	}
}

// List returns one catalog page. An unknown sort falls back to featured and
// the "All Products" pseudo-category clears the filter.
func (s *Service) List(ctx context.Context, params productrepo.ListParams) (*productrepo.Page, error) {
	params.Category = strings.TrimSpace(params.Category)
	if params.Category == productrepo.AllCategories {
		params.Category = ""
	}
	params.Query = strings.TrimSpace(params.Query)
	switch params.Sort {
	case productrepo.SortFeatured, productrepo.SortPriceLow, productrepo.SortPriceHigh, productrepo.SortRating:
	default:
		params.Sort = productrepo.SortFeatured
	}
	return s.products.List(ctx, params)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.ErrNotFound
	}
	return s.products.GetByID(ctx, id)
}

// Upsert creates or updates a catalog entry. Used by the admin surface and
// the importer.
func (s *Service) Upsert(ctx context.Context, p domain.Product) (*domain.Product, error) {
	p.Title = strings.TrimSpace(p.Title)
	if p.Title == "" {
		return nil, errors.New("title required")
	}
	if p.PriceCents < 0 {
		return nil, errors.New("price must not be negative")
	}
	if p.Rating < 0 || p.Rating > 5 {
		return nil, errors.New("rating must be between 0 and 5")
	}
	p.Category = strings.TrimSpace(p.Category)
	if p.Category == "" || p.Category == productrepo.AllCategories {
		return nil, errors.New("category required")
	}
	return s.products.Upsert(ctx, p)
}

// Categories returns the filter list shown in the storefront, with the
// "All Products" entry synthesized at the front.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	stored, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(stored)+1)
	names = append(names, productrepo.AllCategories)
	for _, c := range stored {
		names = append(names, c.Name)
	}
	return names, nil
}
