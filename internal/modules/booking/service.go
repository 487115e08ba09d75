package booking

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"servicedir/internal/domain"
	"servicedir/internal/pkg/validator"
	"servicedir/internal/repository"
)

type Service struct {
	bookings BookingStore
}

func NewService(bookings BookingStore) *Service {
	return &Service{bookings: bookings}
}

var requiredBookingFields = []string{
	"service_id", "service_name", "user_name", "user_email", "user_phone", "date", "time",
}

// Create validates the request fail-fast (first violation wins) and
// persists a fresh pending booking. ServiceName and ServiceItemName are
// stored as-is: they are snapshots of what was booked and are never
// re-read from the live listing.
func (s *Service) Create(ctx context.Context, req CreateBookingRequest) (*domain.Booking, error) {
	values := map[string]string{
		"service_id":   req.ServiceID,
		"service_name": req.ServiceName,
		"user_name":    req.UserName,
		"user_email":   req.UserEmail,
		"user_phone":   req.UserPhone,
		"date":         req.Date,
		"time":         req.Time,
	}
	if field, ok := validator.FirstMissing(requiredBookingFields, values); !ok {
		return nil, domain.Invalid(field, "is required")
	}
	if !validator.IsValidEmail(req.UserEmail) {
		return nil, domain.Invalid("user_email", "invalid email address")
	}
	if !validator.IsValidPhone(req.UserPhone) {
		return nil, domain.Invalid("user_phone", "invalid phone number")
	}

	userID := req.UserID
	if userID == "" {
		userID = domain.GuestUserID
	}

	b := &domain.Booking{
		ID:              uuid.NewString(),
		ServiceID:       req.ServiceID,
		ServiceName:     req.ServiceName,
		UserID:          userID,
		UserName:        req.UserName,
		UserEmail:       req.UserEmail,
		UserPhone:       req.UserPhone,
		ServiceItemID:   req.ServiceItemID,
		ServiceItemName: req.ServiceItemName,
		Date:            req.Date,
		Time:            req.Time,
		Status:          domain.BookingPending,
		Notes:           req.Notes,
		CreatedAt:       time.Now(),
	}

	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// Transition moves a booking through the strict state machine. Anything
// domain.AllowedTransition rejects fails with ErrInvalidTransition. The
// store write is guarded on the status read here, so a concurrent caller
// that moves the booking first makes this one fail instead of overwriting.
func (s *Service) Transition(ctx context.Context, id string, status domain.BookingStatus) (*domain.Booking, error) {
	if !status.Valid() {
		return nil, domain.Invalid("status", "unknown status")
	}

	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.AllowedTransition(b.Status, status) {
		return nil, ErrInvalidTransition
	}

	if err := s.bookings.UpdateStatus(ctx, id, b.Status, status); err != nil {
		if errors.Is(err, repository.ErrStaleStatus) {
			return nil, ErrInvalidTransition
		}
		return nil, err
	}
	b.Status = status
	return b, nil
}

// Patch is the legacy-compatible raw merge, kept as a distinctly named
// operation next to Transition. Status values must at least be members of
// the status set; beyond that, no lifecycle rules apply.
func (s *Service) Patch(ctx context.Context, id string, req PatchRequest) (*domain.Booking, error) {
	if req.Status != nil && !domain.BookingStatus(*req.Status).Valid() {
		return nil, domain.Invalid("status", "unknown status")
	}
	return s.bookings.Patch(ctx, id, req.fields())
}

func (s *Service) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	return s.bookings.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, f repository.BookingFilters) ([]domain.Booking, error) {
	if f.Status != "" && !domain.BookingStatus(f.Status).Valid() {
		return nil, domain.Invalid("status", "unknown status")
	}
	return s.bookings.List(ctx, f)
}
