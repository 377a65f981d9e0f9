package api

import (
	"local_services/internal/booking" // Booking lifecycle engine
	"local_services/internal/domain"  // Importing domain models
	"local_services/internal/store"   // Repositories
	"local_services/internal/utils"   // Utility functions
	"net/http"                        // HTTP status codes
	"strconv"                         // String conversion
	"strings"                         // String manipulation

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

// usersCachePrefix namespaces cached admin user pages
const usersCachePrefix = "admin:users:"

// UserPage is one page of the admin user listing
type UserPage struct {
	Users      []domain.User `json:"users"`       // List of users
	Page       int           `json:"page"`        // Current page
	PageSize   int           `json:"page_size"`   // Page size
	Total      int64         `json:"total"`       // Total number of users
	TotalPages int           `json:"total_pages"` // Total pages
	Cached     bool          `json:"cached"`      // Served from cache
}

// Request struct for status changes
type UserStatusRequest struct {
	Status string `json:"status" binding:"required"` // pending, active or inactive
}

// ListUsersHandler returns users page by page
func ListUsersHandler(users store.UserRepository, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		page := 1      // Default page number
		pageSize := 20 // Default page size
		if p := c.Query("page"); p != "" {
			if v, err := strconv.Atoi(p); err == nil && v > 0 {
				page = v // Set page if valid
			}
		}
		// Check and set page size within limits
		if ps := c.Query("page_size"); ps != "" {
			// If valid, set page size
			if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= 100 {
				pageSize = v // Set page size
			}
		}
		// Create a cache key based on pagination parameters
		cacheKey := usersCachePrefix + "page=" + strconv.Itoa(page) + ":size=" + strconv.Itoa(pageSize)
		var cached UserPage
		// If cached data found, return it
		if found, err := utils.GetCache(ctx, rdb, cacheKey, &cached); err == nil && found {
			cached.Cached = true // Indicate response is from cache
			c.JSON(http.StatusOK, cached)
			return
		}
		offset := (page - 1) * pageSize // Calculate offset for pagination
		list, total, err := users.List(ctx, offset, pageSize)
		if err != nil {
			respondError(c, err, "fetch users")
			return
		}
		resp := UserPage{
			Users:      list,                                   // List of users
			Page:       page,                                   // Current page
			PageSize:   pageSize,                               // Page size
			Total:      total,                                  // Total number of users
			TotalPages: (int(total) + pageSize - 1) / pageSize, // Total pages
		}
		// Cache the response for future requests
		_ = utils.SetCache(ctx, rdb, cacheKey, resp, utils.DefaultCacheTTL)
		c.JSON(http.StatusOK, resp) // Return the response
	}
}

// ListPendingProvidersHandler returns providers waiting for approval
func ListPendingProvidersHandler(users store.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := users.ListByRoleAndStatus(c.Request.Context(), domain.RoleProvider, domain.StatusPending)
		if err != nil {
			respondError(c, err, "fetch pending providers")
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// VerifyProviderHandler approves a provider account
func VerifyProviderHandler(users store.UserRepository, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id") // Provider id from path
		if !ok {
			return
		}
		ctx := c.Request.Context()
		user, err := users.FindByID(ctx, id)
		if err != nil {
			respondError(c, err, "verify provider")
			return
		}
		if !user.IsProvider() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "User is not a provider"})
			return
		}
		user.Status = domain.StatusActive               // Provider may now log in
		user.Verification = domain.VerificationVerified // Approved by an admin
		if err := users.Update(ctx, user); err != nil {
			respondError(c, err, "verify provider")
			return
		}
		invalidateUserListings(ctx, rdb)
		logrus.WithField("provider_id", user.ID).Info("Provider verified")
		c.JSON(http.StatusOK, user)
	}
}

// UpdateUserStatusHandler sets an account's status; admin accounts cannot be changed
func UpdateUserStatusHandler(users store.UserRepository, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id") // User id from path
		if !ok {
			return
		}
		var req UserStatusRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		status := strings.ToLower(strings.TrimSpace(req.Status))
		if !domain.IsValidStatus(status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			return
		}
		ctx := c.Request.Context()
		user, err := users.FindByID(ctx, id)
		if err != nil {
			respondError(c, err, "update user status")
			return
		}
		if user.Role == domain.RoleAdmin {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Admin status cannot be changed"})
			return
		}
		previous := user.Status
		user.Status = status
		if err := users.Update(ctx, user); err != nil {
			respondError(c, err, "update user status")
			return
		}
		invalidateUserListings(ctx, rdb)
		logrus.WithFields(logrus.Fields{
			"user_id": user.ID,
			"from":    previous,
			"to":      status,
		}).Info("User status changed")
		c.JSON(http.StatusOK, user)
	}
}

// AdminListBookingsHandler returns every booking
func AdminListBookingsHandler(engine *booking.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookings, err := engine.List(c.Request.Context(), nil, nil)
		if err != nil {
			respondError(c, err, "fetch bookings")
			return
		}
		c.JSON(http.StatusOK, bookings)
	}
}
