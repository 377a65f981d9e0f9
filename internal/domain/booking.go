package domain

import (
	"strings"
	"time"
)

// BookingStatus is the lifecycle state of a booking
type BookingStatus string

const (
	BookingBooked          BookingStatus = "BOOKED"           // Created by a customer
	BookingAwaitingPayment BookingStatus = "AWAITING_PAYMENT" // Provider set an amount
	BookingPaid            BookingStatus = "PAID"             // Payment signature verified
	BookingInProgress      BookingStatus = "IN_PROGRESS"      // Work started
	BookingCompleted       BookingStatus = "COMPLETED"        // Work finished
	BookingCancelled       BookingStatus = "CANCELLED"        // Cancelled by either side
)

// BookingStatuses lists every known status
var BookingStatuses = []BookingStatus{
	BookingBooked,
	BookingAwaitingPayment,
	BookingPaid,
	BookingInProgress,
	BookingCompleted,
	BookingCancelled,
}

// ParseBookingStatus normalizes s and reports whether it names a known status
func ParseBookingStatus(s string) (BookingStatus, bool) {
	candidate := BookingStatus(strings.ToUpper(strings.TrimSpace(s)))
	for _, st := range BookingStatuses {
		if st == candidate {
			return st, true
		}
	}
	return "", false
}

// Booking Model
type Booking struct {
	ID             uint          `gorm:"primaryKey" json:"id"`                                   // Primary key
	UserID         *uint         `gorm:"index" json:"userId"`                                    // Customer, optional
	User           *User         `gorm:"constraint:OnDelete:SET NULL;" json:"user,omitempty"`    // Customer relation
	ServiceID      uint          `gorm:"not null;index" json:"serviceId"`                        // Booked service
	Service        *Service      `gorm:"constraint:OnDelete:RESTRICT;" json:"service,omitempty"` // Service relation
	ProviderID     uint          `gorm:"not null;index" json:"providerId"`                       // Copy of Service.ProviderID taken at creation
	Date           time.Time     `json:"date"`                                                   // Scheduled time
	Address        string        `json:"address"`                                                // Where the work happens
	ProviderNote   *string       `gorm:"size:1000" json:"providerNote"`                          // Written by the provider
	UserNote       *string       `gorm:"size:1000" json:"userNote"`                              // Written by the customer
	Status         BookingStatus `gorm:"size:32;not null;index" json:"status"`                   // Lifecycle state
	ProviderAmount *float64      `json:"providerAmount"`                                         // Amount requested by the provider
	PaymentOrderID *string       `gorm:"size:64" json:"paymentOrderId"`                          // Gateway order id
	PaymentID      *string       `gorm:"size:64" json:"paymentId"`                               // Gateway payment id
	CreatedAt      time.Time     `json:"createdAt"`                                              // Creation time
	UpdatedAt      time.Time     `json:"updatedAt"`                                              // Last update time
}

// NewBookingParams carries the inputs of NewBooking
type NewBookingParams struct {
	Service      *Service   // Required, must carry its provider id
	User         *User      // Optional customer
	Address      string     // Optional address
	ProviderNote *string    // Optional provider note
	UserNote     *string    // Optional customer note
	Date         *time.Time // Scheduled time, defaults to Now
	Now          time.Time  // Creation time
}

// NewBooking builds a BOOKED booking and pins ProviderID to the service's provider.
func NewBooking(p NewBookingParams) (*Booking, error) {
	if p.Service == nil || p.Service.ID == 0 {
		return nil, Validation("Invalid serviceId")
	}
	if p.Service.ProviderID == 0 {
		return nil, Validation("Service has no provider")
	}
	if p.Service.Provider != nil && p.Service.Provider.ID != p.Service.ProviderID {
		return nil, Validation("Service provider mismatch")
	}
	b := &Booking{
		ServiceID:    p.Service.ID,
		Service:      p.Service,
		ProviderID:   p.Service.ProviderID,
		Address:      p.Address,
		ProviderNote: p.ProviderNote,
		UserNote:     p.UserNote,
		Status:       BookingBooked,
		Date:         p.Now,
	}
	if p.Date != nil && !p.Date.IsZero() {
		b.Date = *p.Date
	}
	if p.User != nil {
		b.UserID = &p.User.ID
		b.User = p.User
	}
	return b, nil
}
