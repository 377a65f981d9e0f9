package store

import (
	"context"
	"strings"

	"local_services/internal/domain"

	"gorm.io/gorm"
)

// ServiceRepository is the catalog lookup surface
type ServiceRepository interface {
	Create(ctx context.Context, svc *domain.Service) error
	FindByID(ctx context.Context, id uint) (*domain.Service, error)
	Update(ctx context.Context, svc *domain.Service) error
	Search(ctx context.Context, name, pincode string) ([]domain.Service, error)
	ListByProvider(ctx context.Context, providerID uint) ([]domain.Service, error)
}

type GormServiceRepository struct {
	db *gorm.DB
}

func NewGormServiceRepository(db *gorm.DB) *GormServiceRepository {
	return &GormServiceRepository{db: db}
}

func (r *GormServiceRepository) Create(ctx context.Context, svc *domain.Service) error {
	return translate(r.db.WithContext(ctx).Omit("Provider").Create(svc).Error, "service")
}

// FindByID loads the service together with its provider
func (r *GormServiceRepository) FindByID(ctx context.Context, id uint) (*domain.Service, error) {
	var s domain.Service
	if err := r.db.WithContext(ctx).Preload("Provider").First(&s, id).Error; err != nil {
		return nil, translate(err, "service")
	}
	return &s, nil
}

func (r *GormServiceRepository) Update(ctx context.Context, svc *domain.Service) error {
	return translate(r.db.WithContext(ctx).Omit("Provider").Save(svc).Error, "service")
}

// Search lists services of active providers, optionally filtered by a
// case-insensitive name fragment and by the provider's pincode.
func (r *GormServiceRepository) Search(ctx context.Context, name, pincode string) ([]domain.Service, error) {
	q := r.db.WithContext(ctx).
		Joins("JOIN users ON users.id = services.provider_id").
		Where("users.status = ?", domain.StatusActive)
	if name = strings.TrimSpace(name); name != "" {
		q = q.Where("LOWER(services.name) LIKE ?", "%"+strings.ToLower(name)+"%")
	}
	if pincode = strings.TrimSpace(pincode); pincode != "" {
		q = q.Where("users.pincode = ?", pincode)
	}
	var services []domain.Service
	err := q.Preload("Provider").Order("services.id").Find(&services).Error
	return services, translate(err, "services")
}

func (r *GormServiceRepository) ListByProvider(ctx context.Context, providerID uint) ([]domain.Service, error) {
	var services []domain.Service
	err := r.db.WithContext(ctx).
		Preload("Provider").
		Where("provider_id = ?", providerID).
		Order("id").
		Find(&services).Error
	return services, translate(err, "services")
}
