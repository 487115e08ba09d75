package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"servicedir/internal/domain"
	"servicedir/internal/pkg/validator"
)

type ServiceStore interface {
	FindAll(ctx context.Context) ([]domain.Service, error)
	GetByID(ctx context.Context, id string) (*domain.Service, error)
	Create(ctx context.Context, s *domain.Service) error
}

type CategoryStore interface {
	ListActive(ctx context.Context) ([]domain.Category, error)
}

type Service struct {
	services   ServiceStore
	categories CategoryStore
}

func NewService(services ServiceStore, categories CategoryStore) *Service {
	return &Service{services: services, categories: categories}
}

// Search runs the query engine over a fresh read of the listings. Results
// are never cached across calls.
func (s *Service) Search(ctx context.Context, f Filter, p Page) (Result, error) {
	records, err := s.services.FindAll(ctx)
	if err != nil {
		return Result{}, err
	}
	return Query(records, f, p)
}

// GetService serves the public detail page; inactive listings are treated
// as missing.
func (s *Service) GetService(ctx context.Context, id string) (*domain.Service, error) {
	svc, err := s.services.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !svc.IsActive {
		return nil, domain.NotFound("service", id)
	}
	return svc, nil
}

func (s *Service) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.categories.ListActive(ctx)
}

var requiredListingFields = []string{"name", "category", "city", "address", "phone", "email"}

func (s *Service) CreateListing(ctx context.Context, req CreateServiceRequest) (*domain.Service, error) {
	values := map[string]string{
		"name":     req.Name,
		"category": req.CategoryID,
		"city":     req.City,
		"address":  req.Address,
		"phone":    req.Phone,
		"email":    req.Email,
	}
	if field, ok := validator.FirstMissing(requiredListingFields, values); !ok {
		return nil, domain.Invalid(field, "is required")
	}
	if !validator.IsValidEmail(req.Email) {
		return nil, domain.Invalid("email", "invalid email address")
	}
	if !validator.IsValidPhone(req.Phone) {
		return nil, domain.Invalid("phone", "invalid phone number")
	}

	now := time.Now()
	svc := &domain.Service{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(req.Name),
		Slug:        Slugify(req.Name),
		CategoryID:  req.CategoryID,
		City:        req.City,
		Address:     req.Address,
		Phone:       req.Phone,
		Email:       req.Email,
		Website:     req.Website,
		Description: req.Description,
		Rating:      0,
		ReviewCount: 0,
		IsPremium:   req.IsPremium,
		IsVerified:  false,
		IsActive:    true,
		Images:      req.Images,
		Schedule:    req.Schedule.Normalize(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, it := range req.Items {
		svc.Items = append(svc.Items, domain.ServiceItem{
			ID:       uuid.NewString(),
			Name:     it.Name,
			Price:    it.Price,
			Duration: it.Duration,
		})
	}

	if err := s.services.Create(ctx, svc); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrSlugTaken
		}
		return nil, &domain.StoreError{Cause: err}
	}
	return svc, nil
}

func isUniqueViolation(err error) bool {
	if pgErr, ok := err.(*pgconn.PgError); ok {
		return pgErr.Code == "23505"
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}
