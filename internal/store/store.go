// Package store is the persistence gateway: GORM-backed repositories for
// users, services, bookings and reviews. Lookups of unknown ids return a
// domain NotFound error and uniqueness violations a domain Conflict error.
package store

import (
	"errors"
	"fmt"

	"local_services/internal/domain"

	"gorm.io/gorm"
)

// Store bundles the repositories over one database handle
type Store struct {
	Users    *GormUserRepository
	Services *GormServiceRepository
	Bookings *GormBookingRepository
	Reviews  *GormReviewRepository
}

// New builds every repository over db
func New(db *gorm.DB) *Store {
	return &Store{
		Users:    NewGormUserRepository(db),
		Services: NewGormServiceRepository(db),
		Bookings: NewGormBookingRepository(db),
		Reviews:  NewGormReviewRepository(db),
	}
}

// translate maps gorm errors onto the domain taxonomy
func translate(err error, entity string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.NotFound(entity + " not found")
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.Conflict(entity + " already exists")
	}
	return fmt.Errorf("%s: %w", entity, err)
}
