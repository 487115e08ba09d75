package repository

import (
	"context"

	"gorm.io/gorm"

	"servicedir/internal/domain"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

type categoryModel struct {
	ID           string `gorm:"column:id;primaryKey"`
	Name         string `gorm:"column:name"`
	Slug         string `gorm:"column:slug;uniqueIndex"`
	Icon         string `gorm:"column:icon"`
	Description  string `gorm:"column:description"`
	ServiceCount int    `gorm:"column:service_count"`
	IsActive     bool   `gorm:"column:is_active"`
}

func (categoryModel) TableName() string { return "categories" }

func toDomainCategory(m categoryModel) domain.Category {
	return domain.Category{
		ID:           m.ID,
		Name:         m.Name,
		Slug:         m.Slug,
		Icon:         m.Icon,
		Description:  m.Description,
		ServiceCount: m.ServiceCount,
		IsActive:     m.IsActive,
	}
}

func (r *CategoryRepository) ListActive(ctx context.Context) ([]domain.Category, error) {
	var models []categoryModel
	tx := r.db.WithContext(ctx).Where("is_active = ?", true).Order("name ASC").Find(&models)
	if tx.Error != nil {
		return nil, &domain.StoreError{Cause: tx.Error}
	}

	out := make([]domain.Category, 0, len(models))
	for _, m := range models {
		out = append(out, toDomainCategory(m))
	}
	return out, nil
}

func (r *CategoryRepository) Create(ctx context.Context, c *domain.Category) error {
	m := categoryModel{
		ID:           c.ID,
		Name:         c.Name,
		Slug:         c.Slug,
		Icon:         c.Icon,
		Description:  c.Description,
		ServiceCount: c.ServiceCount,
		IsActive:     c.IsActive,
	}
	if tx := r.db.WithContext(ctx).Create(&m); tx.Error != nil {
		return &domain.StoreError{Cause: tx.Error}
	}
	return nil
}

// RecountAll refreshes the derived service_count of every category from
// the active listings, in one statement.
func (r *CategoryRepository) RecountAll(ctx context.Context) error {
	err := r.db.WithContext(ctx).Exec(`
UPDATE categories
SET service_count = (
    SELECT COUNT(*) FROM services
    WHERE services.category_id = categories.id AND services.is_active = ?
)`, true).Error
	if err != nil {
		return &domain.StoreError{Cause: err}
	}
	return nil
}
