package domain

import "time"

// Rating bounds
const (
	MinRating = 1
	MaxRating = 5
)

// Review Model. One row per (provider, reviewer) pair.
type Review struct {
	ID         uint      `gorm:"primaryKey" json:"id"`                                            // Primary key
	ProviderID uint      `gorm:"not null;uniqueIndex:idx_review_provider_user" json:"providerId"` // Reviewed provider
	Provider   *User     `gorm:"constraint:OnDelete:RESTRICT;" json:"-"`                          // Provider relation
	UserID     uint      `gorm:"not null;uniqueIndex:idx_review_provider_user" json:"userId"`     // Reviewer
	User       *User     `gorm:"constraint:OnDelete:RESTRICT;" json:"-"`                          // Reviewer relation
	Rating     int       `gorm:"not null" json:"rating"`                                          // 1-5
	Comment    string    `gorm:"size:2000" json:"comment"`                                        // Free text
	CreatedAt  time.Time `gorm:"index" json:"createdAt"`                                          // Creation time
}

// ClampRating forces a rating into [MinRating, MaxRating]
func ClampRating(rating int) int {
	if rating < MinRating {
		return MinRating
	}
	if rating > MaxRating {
		return MaxRating
	}
	return rating
}
