package repository

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/gorm"

	"servicedir/internal/domain"
)

type ServiceRepository struct {
	db *gorm.DB
}

func NewServiceRepository(db *gorm.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

type serviceModel struct {
	ID          string    `gorm:"column:id;primaryKey"`
	Name        string    `gorm:"column:name"`
	Slug        string    `gorm:"column:slug;uniqueIndex"`
	CategoryID  string    `gorm:"column:category_id;index"`
	City        string    `gorm:"column:city"`
	Address     string    `gorm:"column:address"`
	Phone       string    `gorm:"column:phone"`
	Email       string    `gorm:"column:email"`
	Website     string    `gorm:"column:website"`
	Description string    `gorm:"column:description;type:text"`
	Rating      float64   `gorm:"column:rating"`
	ReviewCount int       `gorm:"column:review_count"`
	IsPremium   bool      `gorm:"column:is_premium"`
	IsVerified  bool      `gorm:"column:is_verified"`
	IsActive    bool      `gorm:"column:is_active"`
	Images      string    `gorm:"column:images;type:text"`
	Schedule    string    `gorm:"column:schedule;type:text"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`

	Items []serviceItemModel `gorm:"foreignKey:ServiceID"`
}

func (serviceModel) TableName() string { return "services" }

type serviceItemModel struct {
	ID        string `gorm:"column:id;primaryKey"`
	ServiceID string `gorm:"column:service_id;index"`
	Name      string `gorm:"column:name"`
	Price     string `gorm:"column:price"`
	Duration  string `gorm:"column:duration"`
}

func (serviceItemModel) TableName() string { return "service_items" }

func toDomainService(m serviceModel) *domain.Service {
	var images []string
	if m.Images != "" {
		_ = json.Unmarshal([]byte(m.Images), &images)
	}
	schedule := domain.Schedule{}
	if m.Schedule != "" {
		_ = json.Unmarshal([]byte(m.Schedule), &schedule)
	}

	items := make([]domain.ServiceItem, 0, len(m.Items))
	for _, it := range m.Items {
		items = append(items, domain.ServiceItem{
			ID:       it.ID,
			Name:     it.Name,
			Price:    it.Price,
			Duration: it.Duration,
		})
	}

	return &domain.Service{
		ID:          m.ID,
		Name:        m.Name,
		Slug:        m.Slug,
		CategoryID:  m.CategoryID,
		City:        m.City,
		Address:     m.Address,
		Phone:       m.Phone,
		Email:       m.Email,
		Website:     m.Website,
		Description: m.Description,
		Rating:      m.Rating,
		ReviewCount: m.ReviewCount,
		IsPremium:   m.IsPremium,
		IsVerified:  m.IsVerified,
		IsActive:    m.IsActive,
		Images:      images,
		Schedule:    schedule.Normalize(),
		Items:       items,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toServiceModel(s *domain.Service) serviceModel {
	images, _ := json.Marshal(s.Images)
	schedule, _ := json.Marshal(s.Schedule.Normalize())

	items := make([]serviceItemModel, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, serviceItemModel{
			ID:        it.ID,
			ServiceID: s.ID,
			Name:      it.Name,
			Price:     it.Price,
			Duration:  it.Duration,
		})
	}

	return serviceModel{
		ID:          s.ID,
		Name:        s.Name,
		Slug:        s.Slug,
		CategoryID:  s.CategoryID,
		City:        s.City,
		Address:     s.Address,
		Phone:       s.Phone,
		Email:       s.Email,
		Website:     s.Website,
		Description: s.Description,
		Rating:      s.Rating,
		ReviewCount: s.ReviewCount,
		IsPremium:   s.IsPremium,
		IsVerified:  s.IsVerified,
		IsActive:    s.IsActive,
		Images:      string(images),
		Schedule:    string(schedule),
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
		Items:       items,
	}
}

// FindAll returns every listing in a deterministic base order. Filtering,
// sorting and pagination happen in the catalog query engine.
func (r *ServiceRepository) FindAll(ctx context.Context) ([]domain.Service, error) {
	var models []serviceModel
	tx := r.db.WithContext(ctx).
		Preload("Items").
		Order("created_at ASC, id ASC").
		Find(&models)
	if tx.Error != nil {
		return nil, &domain.StoreError{Cause: tx.Error}
	}

	out := make([]domain.Service, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainService(m))
	}
	return out, nil
}

func (r *ServiceRepository) GetByID(ctx context.Context, id string) (*domain.Service, error) {
	var m serviceModel
	tx := r.db.WithContext(ctx).Preload("Items").Where("id = ?", id).First(&m)
	if tx.Error != nil {
		return nil, storeErr("service", id, tx.Error)
	}
	return toDomainService(m), nil
}

func (r *ServiceRepository) Create(ctx context.Context, s *domain.Service) error {
	m := toServiceModel(s)
	if tx := r.db.WithContext(ctx).Create(&m); tx.Error != nil {
		return tx.Error
	}
	*s = *toDomainService(m)
	return nil
}

// immutable and derived columns a partial update may never touch
var protectedServiceColumns = []string{"id", "slug", "rating", "review_count", "created_at"}

func (r *ServiceRepository) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) (*domain.Service, error) {
	for _, col := range protectedServiceColumns {
		delete(fields, col)
	}
	fields["updated_at"] = time.Now()

	tx := r.db.WithContext(ctx).Model(&serviceModel{}).Where("id = ?", id).Updates(fields)
	if tx.Error != nil {
		return nil, &domain.StoreError{Cause: tx.Error}
	}
	if tx.RowsAffected == 0 {
		return nil, domain.NotFound("service", id)
	}
	return r.GetByID(ctx, id)
}

// ReplaceItems swaps a listing's offerings wholesale. The parent row is
// checked inside the transaction so no item rows can outlive a listing
// that was never there.
func (r *ServiceRepository) ReplaceItems(ctx context.Context, serviceID string, items []domain.ServiceItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&serviceModel{}).Where("id = ?", serviceID).Count(&n).Error; err != nil {
			return &domain.StoreError{Cause: err}
		}
		if n == 0 {
			return domain.NotFound("service", serviceID)
		}
		if err := tx.Where("service_id = ?", serviceID).Delete(&serviceItemModel{}).Error; err != nil {
			return &domain.StoreError{Cause: err}
		}
		for _, it := range items {
			m := serviceItemModel{
				ID:        it.ID,
				ServiceID: serviceID,
				Name:      it.Name,
				Price:     it.Price,
				Duration:  it.Duration,
			}
			if err := tx.Create(&m).Error; err != nil {
				return &domain.StoreError{Cause: err}
			}
		}
		return nil
	})
}

// Delete removes a listing and its owned items. Reviews and bookings are
// deliberately kept as a historical record.
func (r *ServiceRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ?", id).Delete(&serviceModel{})
		if res.Error != nil {
			return &domain.StoreError{Cause: res.Error}
		}
		if res.RowsAffected == 0 {
			return domain.NotFound("service", id)
		}
		if err := tx.Where("service_id = ?", id).Delete(&serviceItemModel{}).Error; err != nil {
			return &domain.StoreError{Cause: err}
		}
		return nil
	})
}
