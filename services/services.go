package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Damilola-codes/lenno-sub000/apperr"
)

// Service exposes the marketplace state machine over an explicitly
// injected database handle. Handlers construct one instance at startup;
// tests substitute an in-memory database.
type Service struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Service {
	return &Service{db: db}
}

// notFoundOr maps gorm's missing-row error to the taxonomy and passes
// everything else through as an internal failure.
func notFoundOr(err error, resource string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(resource)
	}
	return err
}
