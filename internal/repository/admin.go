package repository

import (
	"context"

	"softveda-site/internal/domain"
)

// AdminRepository defines persistence operations for Admin entities.
type AdminRepository interface {
	Create(ctx context.Context, admin *domain.Admin) (int64, error)
	GetByUsername(ctx context.Context, username string) (*domain.Admin, error)
	List(ctx context.Context) ([]domain.Admin, error)
}
