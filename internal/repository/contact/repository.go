package contact

import (
	"context"

	"digitalshop/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, msg domain.ContactMessage) (*domain.ContactMessage, error)
	ListRecent(ctx context.Context, limit int) ([]domain.ContactMessage, error)
	Count(ctx context.Context) (int, error)
}
