package api

import (
	"context"                            // Request context
	"local_services/internal/domain"     // Importing domain models
	"local_services/internal/middleware" // Caller identity
	"local_services/internal/store"      // Repositories
	"local_services/internal/utils"      // Utility functions
	"net/http"                           // HTTP status codes
	"regexp"                             // Regular expressions
	"strings"                            // String manipulation

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

// Request struct for registration
type RegisterRequest struct {
	Name               string   `json:"name" binding:"required"`                  // Display name
	Email              string   `json:"email" binding:"required,email"`           // Unique email
	Password           string   `json:"password" binding:"required"`              // Plain password
	Role               string   `json:"role"`                                     // customer (default) or provider
	ServiceType        string   `json:"serviceType"`                              // Trade offered by a provider
	Address            string   `json:"address"`                                  // Street address
	State              string   `json:"state"`                                    // State
	District           string   `json:"district"`                                 // District
	Pincode            string   `json:"pincode"`                                  // Six digit postal code
	Phone              string   `json:"phone"`                                    // Ten digit phone number
	ServiceName        string   `json:"serviceName"`                              // Provider's first service, optional
	ServiceDescription string   `json:"serviceDescription"`                       // Description of that service
	PricingPerHour     *float64 `json:"pricingPerHour" binding:"omitempty,gte=0"` // Hourly price of that service
}

// Request struct for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`    // Email must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// Response struct for authentication
type AuthResponse struct {
	Token string       `json:"token"` // JWT token
	User  *domain.User `json:"user"`  // Logged in user
}

// Request struct for profile edits; nil fields are left untouched
type UpdateUserRequest struct {
	Name        *string `json:"name"`
	Email       *string `json:"email" binding:"omitempty,email"`
	ServiceType *string `json:"serviceType"`
	Address     *string `json:"address"`
	State       *string `json:"state"`
	District    *string `json:"district"`
	Pincode     *string `json:"pincode"`
	Phone       *string `json:"phone"`
}

// Request struct for password changes
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"` // Must match the stored hash
	NewPassword     string `json:"newPassword" binding:"required"`     // Replacement
}

var (
	pincodePattern = regexp.MustCompile(`^\d{6}$`)  // Six digits
	phonePattern   = regexp.MustCompile(`^\d{10}$`) // Ten digits
)

// normalizeRole maps registration roles; admins cannot self-register
func normalizeRole(role string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case "", "user", domain.RoleCustomer:
		return domain.RoleCustomer, true
	case domain.RoleProvider:
		return domain.RoleProvider, true
	}
	return "", false
}

// validateContact checks the optional pincode and phone formats
func validateContact(pincode, phone string) string {
	if pincode != "" && !pincodePattern.MatchString(pincode) {
		return "Pincode must be 6 digits"
	}
	if phone != "" && !phonePattern.MatchString(phone) {
		return "Phone must be 10 digits"
	}
	return ""
}

// RegisterHandler creates a customer or provider account. Providers start
// pending admin approval; their first service is created in the same transaction.
func RegisterHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		role, ok := normalizeRole(req.Role) // Validate role
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Role must be customer or provider"})
			return
		}
		// Validate password length
		if !utils.IsValidPassword(req.Password) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be 8-64 characters"})
			return
		}
		if msg := validateContact(req.Pincode, req.Phone); msg != "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": msg})
			return
		}
		// Hash the password before storing it
		hash, err := utils.HashPassword(req.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		user := domain.User{
			Name:        strings.TrimSpace(req.Name),
			Email:       req.Email,
			Password:    hash,
			Role:        role,
			Status:      domain.StatusActive,
			ServiceType: req.ServiceType,
			Address:     req.Address,
			State:       req.State,
			District:    req.District,
			Pincode:     req.Pincode,
			Phone:       req.Phone,
		}
		if role == domain.RoleProvider {
			user.Status = domain.StatusPending             // Waits for admin approval
			user.Verification = domain.VerificationPending // Not yet verified
		}
		ctx := c.Request.Context()
		// Create the user and the provider's service atomically
		err = db.Transaction(func(tx *gorm.DB) error {
			if err := store.NewGormUserRepository(tx).Create(ctx, &user); err != nil {
				return err
			}
			if role != domain.RoleProvider || strings.TrimSpace(req.ServiceName) == "" {
				return nil // Nothing else to create
			}
			svc := domain.Service{
				ProviderID:  user.ID,
				Name:        strings.TrimSpace(req.ServiceName),
				Description: req.ServiceDescription,
				Status:      domain.ServiceAvailable,
			}
			if req.PricingPerHour != nil {
				svc.PricingPerHour = *req.PricingPerHour
			}
			return store.NewGormServiceRepository(tx).Create(ctx, &svc)
		})
		if err != nil {
			if domain.KindOf(err) == domain.KindConflict {
				c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
				return
			}
			respondError(c, err, "register user")
			return
		}
		invalidateUserListings(ctx, rdb)
		logrus.WithFields(logrus.Fields{
			"user_id": user.ID,
			"role":    user.Role,
			"status":  user.Status,
		}).Info("User registered")
		c.JSON(http.StatusCreated, user) // Return the new user
	}
}

// LoginHandler authenticates a user and returns a JWT token
func LoginHandler(users store.UserRepository, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		user, err := users.FindByEmail(c.Request.Context(), req.Email) // Fetch user from database
		if err != nil {
			if domain.KindOf(err) == domain.KindNotFound {
				// If user not found, return unauthorized
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
				return
			}
			respondError(c, err, "log in")
			return
		}
		// Compare provided password with stored hash
		if !utils.CheckPassword(user.Password, req.Password) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		// Disabled accounts and unapproved providers cannot log in
		if user.Status == domain.StatusInactive {
			c.JSON(http.StatusForbidden, gin.H{"error": "Account is inactive"})
			return
		}
		if user.IsProvider() && user.Status != domain.StatusActive {
			c.JSON(http.StatusForbidden, gin.H{"error": "Provider account is awaiting approval"})
			return
		}
		// Generate JWT token
		token, err := utils.GenerateJWT(user.ID, user.Role, jwtSecret)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		// Return the token in the response
		c.JSON(http.StatusOK, AuthResponse{Token: token, User: user})
	}
}

// GetUserHandler returns a user's profile
func GetUserHandler(users store.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id") // User id from path
		if !ok {
			return
		}
		user, err := users.FindByID(c.Request.Context(), id)
		if err != nil {
			respondError(c, err, "fetch user")
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// UpdateUserHandler edits a profile. Callers may edit themselves; admins may edit anyone.
func UpdateUserHandler(users store.UserRepository, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id") // User id from path
		if !ok || !requireSelfOrAdmin(c, id) {
			return
		}
		var req UpdateUserRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		ctx := c.Request.Context()
		user, err := users.FindByID(ctx, id)
		if err != nil {
			respondError(c, err, "update user")
			return
		}
		// Email must stay unique across accounts
		if req.Email != nil && !strings.EqualFold(strings.TrimSpace(*req.Email), user.Email) {
			other, err := users.FindByEmail(ctx, *req.Email)
			if err == nil && other.ID != user.ID {
				c.JSON(http.StatusConflict, gin.H{"error": "Email already in use"})
				return
			}
			if err != nil && domain.KindOf(err) != domain.KindNotFound {
				respondError(c, err, "update user")
				return
			}
			user.Email = *req.Email
		}
		pincode, phone := user.Pincode, user.Phone
		if req.Pincode != nil {
			pincode = *req.Pincode
		}
		if req.Phone != nil {
			phone = *req.Phone
		}
		if msg := validateContact(pincode, phone); msg != "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": msg})
			return
		}
		user.Pincode, user.Phone = pincode, phone
		applyString(&user.Name, req.Name)
		applyString(&user.ServiceType, req.ServiceType)
		applyString(&user.Address, req.Address)
		applyString(&user.State, req.State)
		applyString(&user.District, req.District)
		if err := users.Update(ctx, user); err != nil {
			if domain.KindOf(err) == domain.KindConflict {
				c.JSON(http.StatusConflict, gin.H{"error": "Email already in use"})
				return
			}
			respondError(c, err, "update user")
			return
		}
		invalidateUserListings(ctx, rdb)
		c.JSON(http.StatusOK, user)
	}
}

// ChangePasswordHandler replaces the caller's password after checking the current one
func ChangePasswordHandler(users store.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id") // User id from path
		if !ok {
			return
		}
		if uid, _ := middleware.CurrentUserID(c); uid != id {
			c.JSON(http.StatusForbidden, gin.H{"error": "You can only change your own password"})
			return
		}
		var req ChangePasswordRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		if !utils.IsValidPassword(req.NewPassword) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be 8-64 characters"})
			return
		}
		ctx := c.Request.Context()
		user, err := users.FindByID(ctx, id)
		if err != nil {
			respondError(c, err, "change password")
			return
		}
		if !utils.CheckPassword(user.Password, req.CurrentPassword) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Current password is incorrect"})
			return
		}
		hash, err := utils.HashPassword(req.NewPassword)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		user.Password = hash
		if err := users.Update(ctx, user); err != nil {
			respondError(c, err, "change password")
			return
		}
		logrus.WithField("user_id", user.ID).Info("Password changed")
		c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
	}
}

// requireSelfOrAdmin writes 403 unless the caller is the target user or an admin
func requireSelfOrAdmin(c *gin.Context, id uint) bool {
	uid, _ := middleware.CurrentUserID(c)
	if uid == id || middleware.CurrentRole(c) == domain.RoleAdmin {
		return true
	}
	c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	return false
}

func applyString(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

// invalidateUserListings drops cached admin user pages
func invalidateUserListings(ctx context.Context, rdb *redis.Client) {
	if err := utils.DeleteCachePattern(ctx, rdb, usersCachePrefix+"*"); err != nil {
		logrus.WithError(err).Warn("Failed to invalidate user listing cache")
	}
}
