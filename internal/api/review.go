package api

import (
	"local_services/internal/domain"     // Rating bounds
	"local_services/internal/middleware" // Caller identity
	"local_services/internal/review"     // Review aggregate
	"math"                               // Integral check for ratings
	"net/http"                           // HTTP status codes
	"strconv"                            // String conversion
	"strings"                            // String manipulation

	"github.com/gin-gonic/gin" // Gin web framework
)

// CreateReviewRequest represents a new review
type CreateReviewRequest struct {
	UserID  *uint  `json:"userId"`  // Reviewer, ignored when the caller is authenticated
	Rating  any    `json:"rating"`  // Number or numeric string
	Comment string `json:"comment"` // Free text
}

// parseRating accepts whole numbers given as JSON numbers or numeric strings.
// Values outside the rating range are clamped, so huge inputs never overflow int.
func parseRating(v any) (*int, bool) {
	var f float64
	switch r := v.(type) {
	case nil:
		return nil, true // Missing, reported by the aggregate
	case float64:
		f = r
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(r), 64)
		if err != nil {
			return nil, false
		}
		f = parsed
	default:
		return nil, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return nil, false
	}
	n := int(math.Max(domain.MinRating, math.Min(domain.MaxRating, f))) // Clamp before converting
	return &n, true
}

// CreateReviewHandler adds a review for a provider
func CreateReviewHandler(reviews *review.Aggregate) gin.HandlerFunc {
	return func(c *gin.Context) {
		providerID, ok := idParam(c, "id") // Provider id from path
		if !ok {
			return
		}
		var req CreateReviewRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		rating, ok := parseRating(req.Rating)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "rating must be a whole number"})
			return
		}
		reviewerID := req.UserID
		if uid, authenticated := middleware.CurrentUserID(c); authenticated {
			reviewerID = &uid // Token identity wins over the body
		}
		id, err := reviews.Add(c.Request.Context(), review.AddInput{
			ProviderID: providerID,
			ReviewerID: reviewerID,
			Rating:     rating,
			Comment:    req.Comment,
		})
		if err != nil {
			respondError(c, err, "create review")
			return
		}
		c.JSON(http.StatusCreated, gin.H{"id": id})
	}
}

// ListReviewsHandler lists a provider's reviews, newest first
func ListReviewsHandler(reviews *review.Aggregate) gin.HandlerFunc {
	return func(c *gin.Context) {
		providerID, ok := idParam(c, "id") // Provider id from path
		if !ok {
			return
		}
		views, err := reviews.List(c.Request.Context(), providerID)
		if err != nil {
			respondError(c, err, "fetch reviews")
			return
		}
		c.JSON(http.StatusOK, views)
	}
}

// GetRatingHandler returns a provider's average rating and review count
func GetRatingHandler(reviews *review.Aggregate) gin.HandlerFunc {
	return func(c *gin.Context) {
		providerID, ok := idParam(c, "id") // Provider id from path
		if !ok {
			return
		}
		rating, err := reviews.Rating(c.Request.Context(), providerID)
		if err != nil {
			respondError(c, err, "fetch rating")
			return
		}
		c.JSON(http.StatusOK, rating)
	}
}
