package review

import (
	"context"
	"time"

	"github.com/google/uuid"

	"servicedir/internal/domain"
	"servicedir/internal/pkg/validator"
)

type ReviewStore interface {
	CreateAndRecompute(ctx context.Context, rv *domain.Review) (domain.RatingSummary, error)
	ListByService(ctx context.Context, serviceID string) ([]domain.Review, error)
}

type Service struct {
	reviews ReviewStore
}

func NewService(reviews ReviewStore) *Service {
	return &Service{reviews: reviews}
}

// Create persists the review and returns it together with the listing's
// recomputed rating pair. Insert and recompute run as one atomic store
// operation; this is the only code path that writes rating/review_count.
func (s *Service) Create(ctx context.Context, req CreateReviewRequest) (*domain.Review, domain.RatingSummary, error) {
	values := map[string]string{
		"service_id": req.ServiceID,
		"user_name":  req.UserName,
	}
	if field, ok := validator.FirstMissing([]string{"service_id", "user_name"}, values); !ok {
		return nil, domain.RatingSummary{}, domain.Invalid(field, "is required")
	}
	if req.Rating < 1 || req.Rating > 5 {
		return nil, domain.RatingSummary{}, domain.Invalid("rating", "must be between 1 and 5")
	}

	userID := req.UserID
	if userID == "" {
		userID = domain.GuestUserID
	}

	rv := &domain.Review{
		ID:        uuid.NewString(),
		ServiceID: req.ServiceID,
		UserID:    userID,
		UserName:  req.UserName,
		Rating:    req.Rating,
		Text:      req.Text,
		Images:    req.Images,
		CreatedAt: time.Now(),
	}

	summary, err := s.reviews.CreateAndRecompute(ctx, rv)
	if err != nil {
		return nil, domain.RatingSummary{}, err
	}
	return rv, summary, nil
}

func (s *Service) ListByService(ctx context.Context, serviceID string) ([]domain.Review, error) {
	if serviceID == "" {
		return nil, domain.Invalid("service_id", "is required")
	}
	return s.reviews.ListByService(ctx, serviceID)
}
