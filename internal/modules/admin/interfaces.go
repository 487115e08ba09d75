package admin

import (
	"context"

	"servicedir/internal/domain"
	"servicedir/internal/repository"
)

type ServiceStore interface {
	FindAll(ctx context.Context) ([]domain.Service, error)
	GetByID(ctx context.Context, id string) (*domain.Service, error)
	UpdateFields(ctx context.Context, id string, fields map[string]interface{}) (*domain.Service, error)
	ReplaceItems(ctx context.Context, serviceID string, items []domain.ServiceItem) error
	Delete(ctx context.Context, id string) error
}

type BookingStore interface {
	List(ctx context.Context, f repository.BookingFilters) ([]domain.Booking, error)
}

type CategoryStore interface {
	RecountAll(ctx context.Context) error
}
