package store

import (
	"context"

	"local_services/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BookingRepository persists bookings. Associations are never written through it.
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	FindByID(ctx context.Context, id uint) (*domain.Booking, error)
	Save(ctx context.Context, booking *domain.Booking) error
	ListAll(ctx context.Context) ([]domain.Booking, error)
	ListByUser(ctx context.Context, userID uint) ([]domain.Booking, error)
	// ListByProvider filters on the denormalized bookings.provider_id column.
	ListByProvider(ctx context.Context, providerID uint) ([]domain.Booking, error)
	// ListByServiceProvider filters through the services join.
	ListByServiceProvider(ctx context.Context, providerID uint) ([]domain.Booking, error)
}

type GormBookingRepository struct {
	db *gorm.DB
}

func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

func (r *GormBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(booking).Error, "booking")
}

// FindByID loads the booking with its service and customer
func (r *GormBookingRepository) FindByID(ctx context.Context, id uint) (*domain.Booking, error) {
	var b domain.Booking
	if err := r.withRelations(ctx).First(&b, id).Error; err != nil {
		return nil, translate(err, "booking")
	}
	return &b, nil
}

// Save writes every column, so nil notes are stored as NULL
func (r *GormBookingRepository) Save(ctx context.Context, booking *domain.Booking) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Save(booking).Error, "booking")
}

func (r *GormBookingRepository) ListAll(ctx context.Context) ([]domain.Booking, error) {
	var bookings []domain.Booking
	err := r.withRelations(ctx).Order("bookings.id").Find(&bookings).Error
	return bookings, translate(err, "bookings")
}

func (r *GormBookingRepository) ListByUser(ctx context.Context, userID uint) ([]domain.Booking, error) {
	var bookings []domain.Booking
	err := r.withRelations(ctx).Where("bookings.user_id = ?", userID).Order("bookings.id").Find(&bookings).Error
	return bookings, translate(err, "bookings")
}

func (r *GormBookingRepository) ListByProvider(ctx context.Context, providerID uint) ([]domain.Booking, error) {
	var bookings []domain.Booking
	err := r.withRelations(ctx).Where("bookings.provider_id = ?", providerID).Order("bookings.id").Find(&bookings).Error
	return bookings, translate(err, "bookings")
}

func (r *GormBookingRepository) ListByServiceProvider(ctx context.Context, providerID uint) ([]domain.Booking, error) {
	var bookings []domain.Booking
	err := r.withRelations(ctx).
		Joins("JOIN services ON services.id = bookings.service_id").
		Where("services.provider_id = ?", providerID).
		Order("bookings.id").
		Find(&bookings).Error
	return bookings, translate(err, "bookings")
}

func (r *GormBookingRepository) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("User").Preload("Service")
}
