package api

import (
	"local_services/internal/booking" // Booking lifecycle engine
	"net/http"                        // HTTP status codes
	"strings"                         // String manipulation
	"time"                            // Booking dates

	"github.com/gin-gonic/gin" // Gin web framework
)

// CreateBookingRequest represents a new booking
type CreateBookingRequest struct {
	UserID       *uint   `json:"userId"`                       // Customer, optional
	ServiceID    uint    `json:"serviceId" binding:"required"` // Booked service
	Address      string  `json:"address"`                      // Where the work happens
	ProviderNote *string `json:"providerNote"`                 // Initial provider note
	UserNote     *string `json:"userNote"`                     // Initial customer note
	Date         string  `json:"date"`                         // Scheduled time, defaults to now
}

// AcceptBookingRequest represents a provider accepting a booking
type AcceptBookingRequest struct {
	Amount       any     `json:"amount"`       // Number or numeric string
	ProviderNote *string `json:"providerNote"` // Optional note replacing the current one
}

// VerifyPaymentRequest carries the gateway checkout result
type VerifyPaymentRequest struct {
	PaymentID         string `json:"paymentId"`
	OrderID           string `json:"orderId"`
	Signature         string `json:"signature"`
	RazorpayPaymentID string `json:"razorpay_payment_id"` // Names used by the checkout widget
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpaySignature string `json:"razorpay_signature"`
}

// input merges both naming schemes, preferring the short names
func (r VerifyPaymentRequest) input() booking.VerifyInput {
	return booking.VerifyInput{
		PaymentID: firstNonEmpty(r.PaymentID, r.RazorpayPaymentID),
		OrderID:   firstNonEmpty(r.OrderID, r.RazorpayOrderID),
		Signature: firstNonEmpty(r.Signature, r.RazorpaySignature),
	}
}

// bookingDateLayouts are accepted for the date field, zone-less forms are read as UTC
var bookingDateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02"}

// parseBookingDate parses an optional booking date
func parseBookingDate(raw string) (*time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, true // Defaults to now
	}
	for _, layout := range bookingDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, true
		}
	}
	return nil, false
}

// CreateBookingHandler books a service
func CreateBookingHandler(engine *booking.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateBookingRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "serviceId is required"})
			return
		}
		date, ok := parseBookingDate(req.Date) // Parse the optional date
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date"})
			return
		}
		b, err := engine.Create(c.Request.Context(), booking.CreateInput{
			ServiceID:    req.ServiceID,
			UserID:       req.UserID,
			Address:      req.Address,
			ProviderNote: req.ProviderNote,
			UserNote:     req.UserNote,
			Date:         date,
		})
		if err != nil {
			respondError(c, err, "create booking")
			return
		}
		c.JSON(http.StatusCreated, b) // Return the new booking
	}
}

// AcceptBookingHandler sets the provider's amount and opens a payment order
func AcceptBookingHandler(engine *booking.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id") // Booking id from path
		if !ok {
			return
		}
		var req AcceptBookingRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		amount, err := booking.ParseAmount(req.Amount) // Accept numbers and numeric strings
		if err != nil {
			respondError(c, err, "accept booking")
			return
		}
		summary, err := engine.Accept(c.Request.Context(), id, amount, req.ProviderNote)
		if err != nil {
			respondError(c, err, "accept booking")
			return
		}
		// Return the booking with the key the client needs for checkout
		c.JSON(http.StatusOK, gin.H{"booking": summary, "keyId": engine.KeyID()})
	}
}

// VerifyPaymentHandler confirms a gateway payment and marks the booking paid
func VerifyPaymentHandler(engine *booking.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id") // Booking id from path
		if !ok {
			return
		}
		var req VerifyPaymentRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		b, err := engine.VerifyPayment(c.Request.Context(), id, req.input())
		if err != nil {
			respondError(c, err, "verify payment")
			return
		}
		c.JSON(http.StatusOK, gin.H{"booking": b}) // Return the paid booking
	}
}

// GetOrderHandler returns the payment order attached to a booking
func GetOrderHandler(engine *booking.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id") // Booking id from path
		if !ok {
			return
		}
		info, err := engine.OrderInfo(c.Request.Context(), id)
		if err != nil {
			respondError(c, err, "fetch order")
			return
		}
		c.JSON(http.StatusOK, info)
	}
}

// ListBookingsHandler lists bookings, filtered by userId or else providerId
func ListBookingsHandler(engine *booking.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := optionalUintQuery(c, "userId") // Customer filter
		if !ok {
			return
		}
		providerID, ok := optionalUintQuery(c, "providerId") // Provider filter
		if !ok {
			return
		}
		bookings, err := engine.List(c.Request.Context(), userID, providerID)
		if err != nil {
			respondError(c, err, "fetch bookings")
			return
		}
		c.JSON(http.StatusOK, bookings)
	}
}

// UpdateBookingStatusHandler sets a booking's status from the status query parameter
func UpdateBookingStatusHandler(engine *booking.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id") // Booking id from path
		if !ok {
			return
		}
		status, exists := c.GetQuery("status") // Required query parameter
		if !exists {
			c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
			return
		}
		b, err := engine.UpdateStatus(c.Request.Context(), id, status)
		if err != nil {
			respondError(c, err, "update booking status")
			return
		}
		c.JSON(http.StatusOK, b)
	}
}

// PatchBookingHandler applies a partial JSON update. Also serves the JSON note endpoint.
func PatchBookingHandler(engine *booking.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id") // Booking id from path
		if !ok {
			return
		}
		var req booking.PatchInput // Absent and null fields are told apart
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		b, err := engine.Patch(c.Request.Context(), id, req)
		if err != nil {
			respondError(c, err, "update booking")
			return
		}
		c.JSON(http.StatusOK, b)
	}
}

// PatchBookingFormHandler is the form-encoded variant of PatchBookingHandler.
// A field that is present is set, even when empty.
func PatchBookingFormHandler(engine *booking.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c, "id") // Booking id from path
		if !ok {
			return
		}
		var in booking.PatchInput // Built from whichever form fields were sent
		if v, exists := c.GetPostForm("status"); exists {
			in.Status = &v
		}
		if v, exists := c.GetPostForm("providerNote"); exists {
			in.ProviderNote = booking.Present(v)
		}
		if v, exists := c.GetPostForm("userNote"); exists {
			in.UserNote = booking.Present(v)
		}
		b, err := engine.Patch(c.Request.Context(), id, in)
		if err != nil {
			respondError(c, err, "update booking")
			return
		}
		c.JSON(http.StatusOK, b)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
