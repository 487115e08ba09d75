package booking

import (
	"context"

	"servicedir/internal/domain"
	"servicedir/internal/repository"
)

type BookingStore interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	List(ctx context.Context, f repository.BookingFilters) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, id string, from, to domain.BookingStatus) error
	Patch(ctx context.Context, id string, fields map[string]interface{}) (*domain.Booking, error)
}
