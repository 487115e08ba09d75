package repository

import (
	"errors"

	"gorm.io/gorm"

	"servicedir/internal/domain"
)

// AutoMigrate creates the full table set. Used by cmd/seed and tests.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&categoryModel{},
		&serviceModel{},
		&serviceItemModel{},
		&reviewModel{},
		&bookingModel{},
	)
}

// storeErr maps driver failures onto the domain error kinds: missing rows
// become NotFoundError, everything else a StoreError.
func storeErr(resource, id string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.NotFound(resource, id)
	}
	return &domain.StoreError{Cause: err}
}
