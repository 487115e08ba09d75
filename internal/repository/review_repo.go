package repository

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/gorm"

	"servicedir/internal/domain"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

type reviewModel struct {
	ID         string    `gorm:"column:id;primaryKey"`
	ServiceID  string    `gorm:"column:service_id;index"`
	UserID     string    `gorm:"column:user_id"`
	UserName   string    `gorm:"column:user_name"`
	Rating     int       `gorm:"column:rating"`
	Text       string    `gorm:"column:text;type:text"`
	Images     string    `gorm:"column:images;type:text"`
	IsVerified bool      `gorm:"column:is_verified"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (reviewModel) TableName() string { return "reviews" }

func toDomainReview(m reviewModel) *domain.Review {
	var images []string
	if m.Images != "" {
		_ = json.Unmarshal([]byte(m.Images), &images)
	}
	return &domain.Review{
		ID:         m.ID,
		ServiceID:  m.ServiceID,
		UserID:     m.UserID,
		UserName:   m.UserName,
		Rating:     m.Rating,
		Text:       m.Text,
		Images:     images,
		IsVerified: m.IsVerified,
		CreatedAt:  m.CreatedAt,
	}
}

func toReviewModel(rv *domain.Review) reviewModel {
	images, _ := json.Marshal(rv.Images)
	return reviewModel{
		ID:         rv.ID,
		ServiceID:  rv.ServiceID,
		UserID:     rv.UserID,
		UserName:   rv.UserName,
		Rating:     rv.Rating,
		Text:       rv.Text,
		Images:     string(images),
		IsVerified: rv.IsVerified,
		CreatedAt:  rv.CreatedAt,
	}
}

// CreateAndRecompute inserts the review and refreshes the parent listing's
// rating and review_count in the same transaction. The recompute is one
// UPDATE with AVG/COUNT subselects, so two concurrent reviews for the same
// listing cannot produce a stale pair.
func (r *ReviewRepository) CreateAndRecompute(ctx context.Context, rv *domain.Review) (domain.RatingSummary, error) {
	m := toReviewModel(rv)
	var summary domain.RatingSummary

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Exec(`
UPDATE services
SET rating = COALESCE((SELECT AVG(rating) FROM reviews WHERE service_id = ?), 0),
    review_count = (SELECT COUNT(*) FROM reviews WHERE service_id = ?)
WHERE id = ?`, m.ServiceID, m.ServiceID, m.ServiceID)

		// Probe first so a review for a missing listing never lands.
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		if err := tx.Create(&m).Error; err != nil {
			return err
		}

		if err := tx.Exec(`
UPDATE services
SET rating = COALESCE((SELECT AVG(rating) FROM reviews WHERE service_id = ?), 0),
    review_count = (SELECT COUNT(*) FROM reviews WHERE service_id = ?)
WHERE id = ?`, m.ServiceID, m.ServiceID, m.ServiceID).Error; err != nil {
			return err
		}

		return tx.Raw(
			`SELECT rating, review_count FROM services WHERE id = ?`, m.ServiceID,
		).Row().Scan(&summary.Rating, &summary.ReviewCount)
	})
	if err != nil {
		return domain.RatingSummary{}, storeErr("service", rv.ServiceID, err)
	}

	*rv = *toDomainReview(m)
	return summary, nil
}

func (r *ReviewRepository) ListByService(ctx context.Context, serviceID string) ([]domain.Review, error) {
	var models []reviewModel
	tx := r.db.WithContext(ctx).
		Where("service_id = ?", serviceID).
		Order("created_at DESC").
		Find(&models)
	if tx.Error != nil {
		return nil, &domain.StoreError{Cause: tx.Error}
	}

	out := make([]domain.Review, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainReview(m))
	}
	return out, nil
}
