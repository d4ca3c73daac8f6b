package repository

import (
	"context"
	"time"

	"softveda-site/internal/domain"
)

// ContactRepository stores contact form submissions and their archive state.
type ContactRepository interface {
	Create(ctx context.Context, contact *domain.Contact) (int64, error)
	Get(ctx context.Context, id int64) (*domain.Contact, error)
	List(ctx context.Context) ([]domain.Contact, error)
	ListUnarchived(ctx context.Context) ([]domain.Contact, error)
	MarkArchived(ctx context.Context, id int64, location string, archivedAt time.Time) error
}
