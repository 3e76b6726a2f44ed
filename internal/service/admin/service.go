package admin

import (
	"context"

	"digitalshop/internal/domain"
	contactrepo "digitalshop/internal/repository/contact"
	orderrepo "digitalshop/internal/repository/order"
	userrepo "digitalshop/internal/repository/user"
)

const defaultRecentLimit = 10

// Stats is the dashboard headline row.
type Stats struct {
	TotalUsers        int   `json:"totalUsers"`
	TotalOrders       int   `json:"totalOrders"`
	TotalRevenueCents int64 `json:"totalRevenueCents"`
	TotalMessages     int   `json:"totalMessages"`
}

// Service aggregates read models for the admin dashboard.
type Service struct {
	orders   orderrepo.Repository
	users    userrepo.Repository
	messages contactrepo.Repository
}

func New(orders orderrepo.Repository, users userrepo.Repository, messages contactrepo.Repository) *Service {
	return &Service{
		orders:   orders,
		users:    users,
		messages: messages,
	}
}

func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	userCount, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	orderCount, revenue, err := s.orders.Totals(ctx)
	if err != nil {
		return nil, err
	}
	messageCount, err := s.messages.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &Stats{
		TotalUsers:        userCount,
		TotalOrders:       orderCount,
		TotalRevenueCents: revenue,
		TotalMessages:     messageCount,
	}, nil
}

func (s *Service) RecentOrders(ctx context.Context, limit int) ([]domain.Order, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	return s.orders.ListRecent(ctx, limit)
}

func (s *Service) RecentUsers(ctx context.Context, limit int) ([]domain.User, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	return s.users.ListRecent(ctx, limit)
}

func (s *Service) RecentMessages(ctx context.Context, limit int) ([]domain.ContactMessage, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	return s.messages.ListRecent(ctx, limit)
}

// MonthlySales returns the per-month order count and revenue series used by
// the dashboard chart.
func (s *Service) MonthlySales(ctx context.Context) ([]orderrepo.MonthlyTotal, error) {
	return s.orders.MonthlyTotals(ctx)
}
