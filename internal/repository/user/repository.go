package user

import (
	"context"

	"digitalshop/internal/domain"
)

type ProfileUpdate struct {
	FullName *string
	PhotoURL *string
}

type Repository interface {
	Create(ctx context.Context, u domain.User) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id string, update ProfileUpdate) (*domain.User, error)
	ListRecent(ctx context.Context, limit int) ([]domain.User, error)
	Count(ctx context.Context) (int, error)
}
