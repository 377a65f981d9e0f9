package store

import (
	"context"
	"strings"

	"local_services/internal/domain"

	"gorm.io/gorm"
)

// UserRepository is the identity lookup surface used by the engine and the handlers
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id uint) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	List(ctx context.Context, offset, limit int) ([]domain.User, int64, error)
	ListByRoleAndStatus(ctx context.Context, role, status string) ([]domain.User, error)
}

type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) Create(ctx context.Context, user *domain.User) error {
	user.Email = normalizeEmail(user.Email)
	return translate(r.db.WithContext(ctx).Create(user).Error, "user")
}

func (r *GormUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var u domain.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, translate(err, "user")
	}
	return &u, nil
}

func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	if err := r.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&u).Error; err != nil {
		return nil, translate(err, "user")
	}
	return &u, nil
}

func (r *GormUserRepository) Update(ctx context.Context, user *domain.User) error {
	user.Email = normalizeEmail(user.Email)
	return translate(r.db.WithContext(ctx).Save(user).Error, "user")
}

// List returns one page of users and the total count
func (r *GormUserRepository) List(ctx context.Context, offset, limit int) ([]domain.User, int64, error) {
	var (
		users []domain.User
		total int64
	)
	q := r.db.WithContext(ctx).Model(&domain.User{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translate(err, "users")
	}
	if limit > 0 {
		q = q.Offset(offset).Limit(limit)
	}
	if err := q.Order("id").Find(&users).Error; err != nil {
		return nil, 0, translate(err, "users")
	}
	return users, total, nil
}

func (r *GormUserRepository) ListByRoleAndStatus(ctx context.Context, role, status string) ([]domain.User, error) {
	var users []domain.User
	err := r.db.WithContext(ctx).
		Where("role = ? AND status = ?", role, status).
		Order("id").
		Find(&users).Error
	return users, translate(err, "users")
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
