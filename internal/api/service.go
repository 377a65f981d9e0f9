package api

import (
	"local_services/internal/domain"     // Importing domain models
	"local_services/internal/middleware" // Caller identity
	"local_services/internal/store"      // Repositories
	"net/http"                           // HTTP status codes
	"strings"                            // String manipulation

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// CreateServiceRequest represents a new catalog entry
type CreateServiceRequest struct {
	ProviderID     uint    `json:"providerId"`                     // Owner, only read for admins
	Name           string  `json:"serviceName" binding:"required"` // Service name
	Description    string  `json:"description"`                    // Description
	PricingPerHour float64 `json:"pricingPerHour" binding:"gte=0"` // Hourly price
	Status         string  `json:"status"`                         // AVAILABLE (default) or NOT_AVAILABLE
}

// UpdateServiceRequest is a partial service edit; nil fields are left untouched
type UpdateServiceRequest struct {
	Name           *string  `json:"serviceName"`
	Description    *string  `json:"description"`
	PricingPerHour *float64 `json:"pricingPerHour" binding:"omitempty,gte=0"`
	Status         *string  `json:"status"`
}

// ListServicesHandler lists a provider's services when providerId is given,
// otherwise searches active providers' services by name (q) and pincode.
func ListServicesHandler(services store.ServiceRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		providerID, ok := optionalUintQuery(c, "providerId") // Provider filter
		if !ok {
			return
		}
		var (
			result []domain.Service
			err    error
		)
		if providerID != nil {
			result, err = services.ListByProvider(c.Request.Context(), *providerID)
		} else {
			result, err = services.Search(c.Request.Context(), c.Query("q"), c.Query("pincode"))
		}
		if err != nil {
			respondError(c, err, "fetch services")
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// CreateServiceHandler adds a service. Providers create their own; admins name the provider.
func CreateServiceHandler(services store.ServiceRepository, users store.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateServiceRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		uid, _ := middleware.CurrentUserID(c)
		providerID := uid // Providers own what they create
		switch middleware.CurrentRole(c) {
		case domain.RoleProvider:
		case domain.RoleAdmin:
			providerID = req.ProviderID
		default:
			c.JSON(http.StatusForbidden, gin.H{"error": "Only providers can create services"})
			return
		}
		ctx := c.Request.Context()
		provider, err := users.FindByID(ctx, providerID)
		if err != nil || !provider.IsProvider() {
			if err != nil && domain.KindOf(err) != domain.KindNotFound {
				respondError(c, err, "create service")
				return
			}
			c.JSON(http.StatusNotFound, gin.H{"error": "Provider not found"})
			return
		}
		status := domain.ServiceAvailable
		if req.Status != "" {
			status = strings.ToUpper(strings.TrimSpace(req.Status))
		}
		if !domain.IsValidAvailability(status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			return
		}
		svc := domain.Service{
			ProviderID:     providerID,
			Name:           strings.TrimSpace(req.Name),
			Description:    req.Description,
			PricingPerHour: req.PricingPerHour,
			Status:         status,
		}
		if err := services.Create(ctx, &svc); err != nil {
			respondError(c, err, "create service")
			return
		}
		logrus.WithFields(logrus.Fields{
			"service_id":  svc.ID,
			"provider_id": svc.ProviderID,
		}).Info("Service created")
		c.JSON(http.StatusCreated, svc)
	}
}

// UpdateServiceHandler edits a service owned by the caller, or any service for admins
func UpdateServiceHandler(services store.ServiceRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id") // Service id from path
		if !ok {
			return
		}
		var req UpdateServiceRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		ctx := c.Request.Context()
		svc, err := services.FindByID(ctx, id)
		if err != nil {
			respondError(c, err, "update service")
			return
		}
		if !requireSelfOrAdmin(c, svc.ProviderID) {
			return
		}
		if req.Status != nil {
			status := strings.ToUpper(strings.TrimSpace(*req.Status))
			if !domain.IsValidAvailability(status) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
				return
			}
			svc.Status = status
		}
		if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
			svc.Name = strings.TrimSpace(*req.Name)
		}
		if req.Description != nil {
			svc.Description = *req.Description
		}
		if req.PricingPerHour != nil {
			svc.PricingPerHour = *req.PricingPerHour
		}
		if err := services.Update(ctx, svc); err != nil {
			respondError(c, err, "update service")
			return
		}
		c.JSON(http.StatusOK, svc)
	}
}
