package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"servicedir/internal/domain"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID              string    `gorm:"column:id;primaryKey"`
	ServiceID       string    `gorm:"column:service_id;index"`
	ServiceName     string    `gorm:"column:service_name"`
	UserID          string    `gorm:"column:user_id;index"`
	UserName        string    `gorm:"column:user_name"`
	UserEmail       string    `gorm:"column:user_email"`
	UserPhone       string    `gorm:"column:user_phone"`
	ServiceItemID   *string   `gorm:"column:service_item_id"`
	ServiceItemName *string   `gorm:"column:service_item_name"`
	Date            string    `gorm:"column:date"`
	Time            string    `gorm:"column:time"`
	Status          string    `gorm:"column:status"`
	Notes           *string   `gorm:"column:notes;type:text"`
	CreatedAt       time.Time `gorm:"column:created_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	b := &domain.Booking{
		ID:          m.ID,
		ServiceID:   m.ServiceID,
		ServiceName: m.ServiceName,
		UserID:      m.UserID,
		UserName:    m.UserName,
		UserEmail:   m.UserEmail,
		UserPhone:   m.UserPhone,
		Date:        m.Date,
		Time:        m.Time,
		Status:      domain.BookingStatus(m.Status),
		CreatedAt:   m.CreatedAt,
	}
	if m.ServiceItemID != nil {
		b.ServiceItemID = *m.ServiceItemID
	}
	if m.ServiceItemName != nil {
		b.ServiceItemName = *m.ServiceItemName
	}
	if m.Notes != nil {
		b.Notes = *m.Notes
	}
	return b
}

func toBookingModel(b *domain.Booking) bookingModel {
	m := bookingModel{
		ID:          b.ID,
		ServiceID:   b.ServiceID,
		ServiceName: b.ServiceName,
		UserID:      b.UserID,
		UserName:    b.UserName,
		UserEmail:   b.UserEmail,
		UserPhone:   b.UserPhone,
		Date:        b.Date,
		Time:        b.Time,
		Status:      string(b.Status),
		CreatedAt:   b.CreatedAt,
	}
	if b.ServiceItemID != "" {
		v := b.ServiceItemID
		m.ServiceItemID = &v
	}
	if b.ServiceItemName != "" {
		v := b.ServiceItemName
		m.ServiceItemName = &v
	}
	if b.Notes != "" {
		v := b.Notes
		m.Notes = &v
	}
	return m
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	if tx := r.db.WithContext(ctx).Create(&m); tx.Error != nil {
		return &domain.StoreError{Cause: tx.Error}
	}
	*b = *toDomainBooking(m)
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).Where("id = ?", id).First(&m)
	if tx.Error != nil {
		return nil, storeErr("booking", id, tx.Error)
	}
	return toDomainBooking(m), nil
}

type BookingFilters struct {
	ServiceID string
	UserID    string
	Status    string
	Date      string
}

func (r *BookingRepository) List(ctx context.Context, f BookingFilters) ([]domain.Booking, error) {
	q := r.db.WithContext(ctx).Model(&bookingModel{})

	if f.ServiceID != "" {
		q = q.Where("service_id = ?", f.ServiceID)
	}
	if f.UserID != "" {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Date != "" {
		q = q.Where("date = ?", f.Date)
	}

	var models []bookingModel
	if err := q.Order("date DESC, time DESC").Find(&models).Error; err != nil {
		return nil, &domain.StoreError{Cause: err}
	}

	out := make([]domain.Booking, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

// ErrStaleStatus reports a lost status race: the row left the observed
// status between the caller's read and its write.
var ErrStaleStatus = errors.New("booking status changed concurrently")

// UpdateStatus is a compare-and-swap on the status column. The caller
// passes the status it observed; when the guarded update touches no row
// the booking is either gone or was moved by a concurrent caller.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id string, from, to domain.BookingStatus) error {
	tx := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("id = ? AND status = ?", id, string(from)).
		Update("status", string(to))
	if tx.Error != nil {
		return &domain.StoreError{Cause: tx.Error}
	}
	if tx.RowsAffected == 0 {
		var n int64
		if err := r.db.WithContext(ctx).Model(&bookingModel{}).Where("id = ?", id).Count(&n).Error; err != nil {
			return &domain.StoreError{Cause: err}
		}
		if n == 0 {
			return domain.NotFound("booking", id)
		}
		return ErrStaleStatus
	}
	return nil
}

// Patch merges the supplied columns onto the stored row. id and created_at
// stay immutable; everything else, status included, is overwritten as-is.
func (r *BookingRepository) Patch(ctx context.Context, id string, fields map[string]interface{}) (*domain.Booking, error) {
	delete(fields, "id")
	delete(fields, "created_at")

	if len(fields) > 0 {
		tx := r.db.WithContext(ctx).Model(&bookingModel{}).Where("id = ?", id).Updates(fields)
		if tx.Error != nil {
			return nil, &domain.StoreError{Cause: tx.Error}
		}
		if tx.RowsAffected == 0 {
			return nil, domain.NotFound("booking", id)
		}
	}
	return r.GetByID(ctx, id)
}
