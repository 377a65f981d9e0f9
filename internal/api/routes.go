package api

import (
	"local_services/internal/booking"    // Booking lifecycle engine
	"local_services/internal/middleware" // Custom package for middleware
	"local_services/internal/review"     // Review aggregate
	"local_services/internal/store"      // Repositories
	"net/http"                           // HTTP status codes

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

// Deps is everything the handlers need
type Deps struct {
	DB        *gorm.DB          // Used for multi-table transactions
	Redis     *redis.Client     // Optional cache, may be nil
	Store     *store.Store      // Repositories
	Bookings  *booking.Engine   // Booking lifecycle
	Reviews   *review.Aggregate // Reviews and ratings
	JWTSecret string            // Token signing key
}

// RegisterRoutes mounts every API route under /api
func RegisterRoutes(r gin.IRouter, d Deps) {
	auth := middleware.JWTAuthMiddleware(d.JWTSecret)             // Required login
	adminOnly := middleware.AdminOnlyMiddleware(d.Store.Users)    // Admin role, checked against the database
	optionalAuth := middleware.OptionalJWTMiddleware(d.JWTSecret) // Identify the caller when possible

	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	apiGroup := r.Group("/api")

	// Booking routes
	bookings := apiGroup.Group("/bookings")
	bookings.POST("", CreateBookingHandler(d.Bookings))                  // Book a service
	bookings.GET("", ListBookingsHandler(d.Bookings))                    // List bookings
	bookings.POST("/:id/accept", AcceptBookingHandler(d.Bookings))       // Provider accepts with an amount
	bookings.POST("/:id/verify", VerifyPaymentHandler(d.Bookings))       // Confirm payment
	bookings.GET("/:id/order", GetOrderHandler(d.Bookings))              // Payment order for checkout
	bookings.PUT("/:id/status", UpdateBookingStatusHandler(d.Bookings))  // Direct status change
	bookings.PATCH("/:id", PatchBookingHandler(d.Bookings))              // Partial update
	bookings.POST("/:id/note", PatchBookingHandler(d.Bookings))          // Partial update for clients without PATCH
	bookings.POST("/:id/note-form", PatchBookingFormHandler(d.Bookings)) // Form-encoded partial update

	// Review routes
	providers := apiGroup.Group("/providers")
	providers.POST("/:id/reviews", optionalAuth, CreateReviewHandler(d.Reviews)) // Review a provider
	providers.GET("/:id/reviews", ListReviewsHandler(d.Reviews))                 // Provider reviews
	providers.GET("/:id/rating", GetRatingHandler(d.Reviews))                    // Average rating

	// User routes
	users := apiGroup.Group("/users")
	users.POST("/register", RegisterHandler(d.DB, d.Redis))                        // Registration endpoint
	users.POST("/login", LoginHandler(d.Store.Users, d.JWTSecret))                 // Login endpoint
	users.GET("", auth, adminOnly, ListUsersHandler(d.Store.Users, d.Redis))       // List users
	users.GET("/:id", GetUserHandler(d.Store.Users))                               // Profile
	users.PUT("/:id", auth, UpdateUserHandler(d.Store.Users, d.Redis))             // Edit profile
	users.POST("/:id/change-password", auth, ChangePasswordHandler(d.Store.Users)) // Change password

	// Service catalog routes
	services := apiGroup.Group("/services")
	services.GET("", ListServicesHandler(d.Store.Services))                        // Search or list by provider
	services.POST("", auth, CreateServiceHandler(d.Store.Services, d.Store.Users)) // Add a service
	services.PUT("/:id", auth, UpdateServiceHandler(d.Store.Services))             // Edit a service

	// Admin routes (protected, admin only)
	admin := apiGroup.Group("/admin")
	admin.Use(auth, adminOnly)
	admin.GET("/providers/pending", ListPendingProvidersHandler(d.Store.Users))        // Providers awaiting approval
	admin.POST("/providers/:id/verify", VerifyProviderHandler(d.Store.Users, d.Redis)) // Approve a provider
	admin.POST("/users/:id/status", UpdateUserStatusHandler(d.Store.Users, d.Redis))   // Enable or disable an account
	admin.GET("/users", ListUsersHandler(d.Store.Users, d.Redis))                      // List users endpoint
	admin.GET("/bookings", AdminListBookingsHandler(d.Bookings))                       // List bookings endpoint
}
