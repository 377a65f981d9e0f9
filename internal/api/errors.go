package api

import (
	"local_services/internal/domain" // Importing domain models
	"net/http"                       // HTTP status codes
	"strconv"                        // String conversion

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// statusFor maps a domain error kind onto an HTTP status
func statusFor(kind domain.Kind) int {
	switch kind {
	case domain.KindValidation, domain.KindSignatureMismatch:
		return http.StatusBadRequest
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindConflict:
		return http.StatusConflict
	case domain.KindUpstream:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// respondError writes err as a JSON error body. Internal errors are logged
// and rendered as "Failed to <action>".
func respondError(c *gin.Context, err error, action string) {
	kind := domain.KindOf(err)
	if kind == domain.KindInternal {
		logrus.WithFields(logrus.Fields{
			"request_id": c.GetString("requestID"),
			"action":     action,
			"error":      err.Error(),
		}).Error("Request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action})
		return
	}
	if kind == domain.KindUpstream {
		logrus.WithFields(logrus.Fields{
			"request_id": c.GetString("requestID"),
			"action":     action,
			"error":      err.Error(),
		}).Warn("Upstream call failed")
	}
	c.JSON(statusFor(kind), gin.H{"error": domain.MessageOf(err)})
}

// idParam reads a positive numeric path parameter, writing 400 when it is malformed
func idParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return uint(v), true
}

// optionalUintQuery reads an optional numeric query parameter
func optionalUintQuery(c *gin.Context, name string) (*uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true // Not provided
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return nil, false
	}
	id := uint(v)
	return &id, true
}
