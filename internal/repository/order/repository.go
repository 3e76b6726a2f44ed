package order

import (
	"context"
	"time"

	"digitalshop/internal/domain"
)

// MonthlyTotal is one point of the admin sales series.
type MonthlyTotal struct {
	Month      time.Time `json:"month"`
	Orders     int       `json:"orders"`
	TotalCents int64     `json:"totalCents"`
}

type Repository interface {
	Create(ctx context.Context, order domain.Order) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	ListRecent(ctx context.Context, limit int) ([]domain.Order, error)
	Totals(ctx context.Context) (count int, revenueCents int64, err error)
	MonthlyTotals(ctx context.Context) ([]MonthlyTotal, error)
}
