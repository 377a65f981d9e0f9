package store

import (
	"context"

	"local_services/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReviewStats is the aggregate over one provider's reviews
type ReviewStats struct {
	Average float64
	Count   int64
}

// ReviewRepository persists reviews
type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error
	Exists(ctx context.Context, providerID, userID uint) (bool, error)
	ListByProvider(ctx context.Context, providerID uint) ([]domain.Review, error)
	Stats(ctx context.Context, providerID uint) (ReviewStats, error)
}

type GormReviewRepository struct {
	db *gorm.DB
}

func NewGormReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

func (r *GormReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(review).Error, "review")
}

func (r *GormReviewRepository) Exists(ctx context.Context, providerID, userID uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&domain.Review{}).
		Where("provider_id = ? AND user_id = ?", providerID, userID).
		Count(&n).Error
	return n > 0, translate(err, "review")
}

// ListByProvider returns reviews newest first, with the reviewer loaded
func (r *GormReviewRepository) ListByProvider(ctx context.Context, providerID uint) ([]domain.Review, error) {
	var reviews []domain.Review
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("provider_id = ?", providerID).
		Order("created_at desc, id desc").
		Find(&reviews).Error
	return reviews, translate(err, "reviews")
}

func (r *GormReviewRepository) Stats(ctx context.Context, providerID uint) (ReviewStats, error) {
	var row struct {
		Average float64
		Count   int64
	}
	err := r.db.WithContext(ctx).
		Model(&domain.Review{}).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS count").
		Where("provider_id = ?", providerID).
		Scan(&row).Error
	if err != nil {
		return ReviewStats{}, translate(err, "reviews")
	}
	return ReviewStats{Average: row.Average, Count: row.Count}, nil
}
