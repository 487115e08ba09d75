package admin

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"servicedir/internal/domain"
	"servicedir/internal/modules/catalog"
	"servicedir/internal/pkg/validator"
)

var errUnknownFlag = errors.New("unknown flag")

type Service struct {
	services   ServiceStore
	bookings   BookingStore
	categories CategoryStore
	log        *zap.Logger
}

func NewService(services ServiceStore, bookings BookingStore, categories CategoryStore, log *zap.Logger) *Service {
	return &Service{services: services, bookings: bookings, categories: categories, log: log}
}

// ListServices is the admin table view: the same query engine as the
// public search, but inactive listings stay visible.
func (s *Service) ListServices(ctx context.Context, f catalog.Filter, p catalog.Page) (catalog.Result, error) {
	f.IncludeInactive = true

	records, err := s.services.FindAll(ctx)
	if err != nil {
		return catalog.Result{}, err
	}
	return catalog.Query(records, f, p)
}

func (s *Service) GetService(ctx context.Context, id string) (*domain.Service, error) {
	return s.services.GetByID(ctx, id)
}

func (s *Service) UpdateService(ctx context.Context, id string, req UpdateServiceRequest) (*domain.Service, error) {
	if req.Email != nil && !validator.IsValidEmail(*req.Email) {
		return nil, domain.Invalid("email", "invalid email address")
	}
	if req.Phone != nil && !validator.IsValidPhone(*req.Phone) {
		return nil, domain.Invalid("phone", "invalid phone number")
	}

	fields := map[string]interface{}{}
	set := func(col string, v *string) {
		if v != nil {
			fields[col] = *v
		}
	}
	set("name", req.Name)
	set("category_id", req.CategoryID)
	set("city", req.City)
	set("address", req.Address)
	set("phone", req.Phone)
	set("email", req.Email)
	set("website", req.Website)
	set("description", req.Description)

	if req.Images != nil {
		raw, _ := json.Marshal(*req.Images)
		fields["images"] = string(raw)
	}
	if req.Schedule != nil {
		raw, _ := json.Marshal(req.Schedule.Normalize())
		fields["schedule"] = string(raw)
	}

	// the column update first: it reports NotFound for a missing listing
	// before any item row is written
	svc, err := s.services.UpdateFields(ctx, id, fields)
	if err != nil {
		return nil, err
	}

	if req.Items != nil {
		items := make([]domain.ServiceItem, 0, len(*req.Items))
		for _, it := range *req.Items {
			itemID := it.ID
			if itemID == "" {
				itemID = uuid.NewString()
			}
			items = append(items, domain.ServiceItem{
				ID:       itemID,
				Name:     it.Name,
				Price:    it.Price,
				Duration: it.Duration,
			})
		}
		if err := s.services.ReplaceItems(ctx, id, items); err != nil {
			return nil, err
		}
		return s.services.GetByID(ctx, id)
	}

	return svc, nil
}

var flagColumns = map[string]string{
	"premium":  "is_premium",
	"verified": "is_verified",
	"active":   "is_active",
}

// SetFlag toggles one of the three independent listing flags. Flipping
// active changes category counts, so those are refreshed right away.
func (s *Service) SetFlag(ctx context.Context, id, flag string, value bool) (*domain.Service, error) {
	col, ok := flagColumns[flag]
	if !ok {
		return nil, domain.Invalid("flag", "must be one of premium, verified, active")
	}

	svc, err := s.services.UpdateFields(ctx, id, map[string]interface{}{col: value})
	if err != nil {
		return nil, err
	}

	if col == "is_active" {
		if err := s.categories.RecountAll(ctx); err != nil {
			s.log.Warn("category recount after flag change failed", zap.Error(err))
		}
	}
	return svc, nil
}

func (s *Service) DeleteService(ctx context.Context, id string) error {
	if err := s.services.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.categories.RecountAll(ctx); err != nil {
		s.log.Warn("category recount after delete failed", zap.Error(err))
	}
	return nil
}

// RecountCategories refreshes every category's derived service_count.
// Runs on the cron schedule and on demand through the maintenance route.
func (s *Service) RecountCategories(ctx context.Context) error {
	return s.categories.RecountAll(ctx)
}
