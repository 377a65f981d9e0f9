// Package review records provider reviews and maintains each provider's
// average rating.
package review

import (
	"context"
	"math"
	"strconv"
	"strings"
	"time"

	"local_services/internal/domain"
	"local_services/internal/metrics"
	"local_services/internal/store"
	"local_services/internal/utils"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// UserFinder resolves providers and reviewers
type UserFinder interface {
	FindByID(ctx context.Context, id uint) (*domain.User, error)
}

// Aggregate owns review creation and the rating read model
type Aggregate struct {
	reviews store.ReviewRepository
	users   UserFinder
	rdb     *redis.Client // Optional rating cache
}

// NewAggregate builds an aggregate; rdb may be nil to disable caching
func NewAggregate(reviews store.ReviewRepository, users UserFinder, rdb *redis.Client) *Aggregate {
	return &Aggregate{reviews: reviews, users: users, rdb: rdb}
}

// AddInput is a new review. Nil ReviewerID or Rating means the field was missing.
type AddInput struct {
	ProviderID uint
	ReviewerID *uint
	Rating     *int
	Comment    string
}

// Reviewer is the public part of the reviewing user
type Reviewer struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// View is a review as shown on a provider's page
type View struct {
	ID        uint      `json:"id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
	User      Reviewer  `json:"user"`
}

// Rating is a provider's average (one decimal) and review count
type Rating struct {
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
}

// Add stores a review. The rating is clamped into 1..5 and each reviewer
// may review a given provider once.
func (a *Aggregate) Add(ctx context.Context, in AddInput) (uint, error) {
	if in.ReviewerID == nil || in.Rating == nil {
		return 0, domain.Validation("userId (or authenticated user) and rating are required")
	}
	provider, err := a.users.FindByID(ctx, in.ProviderID)
	if err != nil || !provider.IsProvider() {
		if err != nil && domain.KindOf(err) != domain.KindNotFound {
			return 0, err
		}
		return 0, domain.NotFound("Provider not found")
	}
	if _, err := a.users.FindByID(ctx, *in.ReviewerID); err != nil {
		if domain.KindOf(err) == domain.KindNotFound {
			return 0, domain.NotFound("User not found")
		}
		return 0, err
	}

	exists, err := a.reviews.Exists(ctx, in.ProviderID, *in.ReviewerID)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, domain.Conflict("You have already reviewed this provider")
	}

	r := &domain.Review{
		ProviderID: in.ProviderID,
		UserID:     *in.ReviewerID,
		Rating:     domain.ClampRating(*in.Rating),
		Comment:    strings.TrimSpace(in.Comment),
	}
	if err := a.reviews.Create(ctx, r); err != nil {
		// Lost a race against the unique index
		if domain.KindOf(err) == domain.KindConflict {
			return 0, domain.Conflict("You have already reviewed this provider")
		}
		return 0, err
	}
	metrics.IncReviewCreated()
	if err := utils.DeleteCache(ctx, a.rdb, ratingKey(in.ProviderID)); err != nil {
		logrus.WithError(err).WithField("provider_id", in.ProviderID).Warn("Failed to invalidate rating cache")
	}
	logrus.WithFields(logrus.Fields{
		"review_id":   r.ID,
		"provider_id": r.ProviderID,
		"user_id":     r.UserID,
		"rating":      r.Rating,
	}).Info("Review created")
	return r.ID, nil
}

// List returns a provider's reviews, newest first
func (a *Aggregate) List(ctx context.Context, providerID uint) ([]View, error) {
	reviews, err := a.reviews.ListByProvider(ctx, providerID)
	if err != nil {
		return nil, err
	}
	views := make([]View, 0, len(reviews))
	for _, r := range reviews {
		v := View{ID: r.ID, Rating: r.Rating, Comment: r.Comment, CreatedAt: r.CreatedAt, User: Reviewer{ID: r.UserID}}
		if r.User != nil {
			v.User.Name = r.User.Name
		}
		views = append(views, v)
	}
	return views, nil
}

// Rating returns the provider's average and count; no reviews yields zeros
func (a *Aggregate) Rating(ctx context.Context, providerID uint) (Rating, error) {
	key := ratingKey(providerID)
	var cached Rating
	if found, err := utils.GetCache(ctx, a.rdb, key, &cached); err == nil && found {
		return cached, nil
	}
	stats, err := a.reviews.Stats(ctx, providerID)
	if err != nil {
		return Rating{}, err
	}
	rating := Rating{Average: roundTenth(stats.Average), Count: stats.Count}
	if stats.Count == 0 {
		rating.Average = 0
	}
	_ = utils.SetCache(ctx, a.rdb, key, rating, utils.DefaultCacheTTL)
	return rating, nil
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}

func ratingKey(providerID uint) string {
	return "rating:provider:" + strconv.FormatUint(uint64(providerID), 10)
}
