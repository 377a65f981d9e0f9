// Package booking implements the booking lifecycle: creation, provider
// acceptance with payment order creation, payment verification and status
// edits.
package booking

import (
	"context"
	"strconv"
	"strings"
	"time"

	"local_services/internal/domain"
	"local_services/internal/metrics"
	"local_services/internal/payment"
	"local_services/internal/store"

	"github.com/sirupsen/logrus"
)

// ServiceFinder resolves catalog entries
type ServiceFinder interface {
	FindByID(ctx context.Context, id uint) (*domain.Service, error)
}

// UserFinder resolves customers
type UserFinder interface {
	FindByID(ctx context.Context, id uint) (*domain.User, error)
}

// Engine owns every booking state transition
type Engine struct {
	bookings store.BookingRepository
	services ServiceFinder
	users    UserFinder
	gateway  payment.Gateway
	now      func() time.Time
}

// NewEngine wires the engine to its stores and payment gateway
func NewEngine(bookings store.BookingRepository, services ServiceFinder, users UserFinder, gateway payment.Gateway) *Engine {
	return &Engine{
		bookings: bookings,
		services: services,
		users:    users,
		gateway:  gateway,
		now:      time.Now,
	}
}

// CreateInput carries a new booking request
type CreateInput struct {
	ServiceID    uint
	UserID       *uint
	Address      string
	ProviderNote *string
	UserNote     *string
	Date         *time.Time
}

// Summary is the flat projection returned after acceptance
type Summary struct {
	ID             uint                 `json:"id"`
	Status         domain.BookingStatus `json:"status"`
	ProviderAmount *float64             `json:"providerAmount"`
	PaymentOrderID *string              `json:"paymentOrderId"`
	PaymentID      *string              `json:"paymentId"`
	ProviderID     uint                 `json:"providerId"`
	ServiceID      uint                 `json:"serviceId,omitempty"`
	ServiceName    string               `json:"serviceName,omitempty"`
	UserID         *uint                `json:"userId,omitempty"`
	UserName       string               `json:"userName,omitempty"`
}

// OrderInfo is what a checkout client needs to open the gateway's payment form
type OrderInfo struct {
	OrderID  *string  `json:"orderId"`
	Amount   *float64 `json:"amount"`
	Currency string   `json:"currency"`
	KeyID    string   `json:"keyId"`
}

// VerifyInput carries the values returned by the gateway after checkout
type VerifyInput struct {
	PaymentID string
	OrderID   string
	Signature string
}

// Create books a service. An unknown service is a validation error; an
// unknown customer id is dropped and the booking is created without a user.
func (e *Engine) Create(ctx context.Context, in CreateInput) (*domain.Booking, error) {
	if in.ServiceID == 0 {
		return nil, domain.Validation("serviceId is required")
	}
	svc, err := e.services.FindByID(ctx, in.ServiceID)
	if err != nil {
		if domain.KindOf(err) == domain.KindNotFound {
			return nil, domain.Validation("Invalid serviceId")
		}
		return nil, err
	}

	var customer *domain.User
	if in.UserID != nil {
		u, err := e.users.FindByID(ctx, *in.UserID)
		switch {
		case err == nil:
			customer = u
		case domain.KindOf(err) == domain.KindNotFound:
			logrus.WithFields(logrus.Fields{
				"user_id":    *in.UserID,
				"service_id": in.ServiceID,
			}).Warn("Booking user not found, creating booking without user")
		default:
			return nil, err
		}
	}

	b, err := domain.NewBooking(domain.NewBookingParams{
		Service:      svc,
		User:         customer,
		Address:      in.Address,
		ProviderNote: in.ProviderNote,
		UserNote:     in.UserNote,
		Date:         in.Date,
		Now:          e.now(),
	})
	if err != nil {
		return nil, err
	}
	if err := e.bookings.Create(ctx, b); err != nil {
		return nil, err
	}
	e.transitioned(b, "create")
	return b, nil
}

// Accept records the provider's amount, moves the booking to AWAITING_PAYMENT
// and, when the gateway is configured, opens a payment order for it.
// The status change is persisted before the gateway call and is kept when
// the call fails; the caller then gets an Upstream error.
func (e *Engine) Accept(ctx context.Context, id uint, amount float64, note *string) (*Summary, error) {
	minor, err := MinorUnits(amount)
	if err != nil {
		return nil, err
	}
	b, err := e.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	b.ProviderAmount = &amount
	if note != nil {
		b.ProviderNote = note
	}
	b.Status = domain.BookingAwaitingPayment
	if err := e.bookings.Save(ctx, b); err != nil {
		return nil, err
	}
	e.transitioned(b, "accept")

	if !e.gateway.Enabled() {
		metrics.IncPaymentOrder(metrics.OrderSkipped)
		return Summarize(b), nil
	}

	order, err := e.gateway.CreateOrder(ctx, payment.OrderRequest{
		Amount:   minor,
		Currency: e.gateway.Currency(),
		Receipt:  Receipt(b.ID),
	})
	if err != nil {
		metrics.IncPaymentOrder(metrics.OrderFailed)
		logrus.WithFields(logrus.Fields{
			"booking_id": b.ID,
			"amount":     minor,
			"error":      err.Error(),
		}).Error("Failed to create payment order")
		return nil, err
	}
	metrics.IncPaymentOrder(metrics.OrderCreated)

	b.PaymentOrderID = &order.ID
	if err := e.bookings.Save(ctx, b); err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"booking_id": b.ID,
		"order_id":   order.ID,
		"amount":     minor,
	}).Info("Payment order created")
	return Summarize(b), nil
}

// VerifyPayment checks the gateway signature and marks the booking PAID
func (e *Engine) VerifyPayment(ctx context.Context, id uint, in VerifyInput) (*domain.Booking, error) {
	in.PaymentID = strings.TrimSpace(in.PaymentID)
	in.OrderID = strings.TrimSpace(in.OrderID)
	if in.PaymentID == "" || in.OrderID == "" || strings.TrimSpace(in.Signature) == "" {
		return nil, domain.Validation("Missing payment verification parameters")
	}
	ok := e.gateway.Verify(in.OrderID, in.PaymentID, in.Signature)
	metrics.IncPaymentVerification(ok)
	if !ok {
		logrus.WithFields(logrus.Fields{
			"booking_id": id,
			"order_id":   in.OrderID,
			"payment_id": in.PaymentID,
		}).Warn("Payment signature mismatch")
		return nil, domain.SignatureMismatch("Invalid signature")
	}

	b, err := e.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	b.PaymentID = &in.PaymentID
	b.Status = domain.BookingPaid
	if err := e.bookings.Save(ctx, b); err != nil {
		return nil, err
	}
	e.transitioned(b, "verify")
	return b, nil
}

// OrderInfo reports the payment order attached to a booking
func (e *Engine) OrderInfo(ctx context.Context, id uint) (*OrderInfo, error) {
	b, err := e.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &OrderInfo{
		OrderID:  b.PaymentOrderID,
		Amount:   b.ProviderAmount,
		Currency: e.gateway.Currency(),
		KeyID:    e.gateway.KeyID(),
	}, nil
}

// KeyID is the public gateway key handed to checkout clients
func (e *Engine) KeyID() string {
	return e.gateway.KeyID()
}

// List filters by customer when userID is set, otherwise by provider when
// providerID is set, otherwise returns every booking.
func (e *Engine) List(ctx context.Context, userID, providerID *uint) ([]domain.Booking, error) {
	if userID != nil {
		return e.bookings.ListByUser(ctx, *userID)
	}
	if providerID != nil {
		bookings, err := e.bookings.ListByProvider(ctx, *providerID)
		if err == nil {
			return bookings, nil
		}
		logrus.WithFields(logrus.Fields{
			"provider_id": *providerID,
			"error":       err.Error(),
		}).Warn("Provider column lookup failed, falling back to service join")
		return e.bookings.ListByServiceProvider(ctx, *providerID)
	}
	return e.bookings.ListAll(ctx)
}

// UpdateStatus sets the status directly. Any known status is accepted from any state.
func (e *Engine) UpdateStatus(ctx context.Context, id uint, status string) (*domain.Booking, error) {
	st, ok := domain.ParseBookingStatus(status)
	if !ok {
		return nil, invalidStatus(status)
	}
	b, err := e.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	b.Status = st
	if err := e.bookings.Save(ctx, b); err != nil {
		return nil, err
	}
	e.transitioned(b, "update_status")
	return b, nil
}

// Patch applies a partial update; see PatchInput for field semantics
func (e *Engine) Patch(ctx context.Context, id uint, in PatchInput) (*domain.Booking, error) {
	var status domain.BookingStatus
	if in.Status != nil {
		st, ok := domain.ParseBookingStatus(*in.Status)
		if !ok {
			return nil, invalidStatus(*in.Status)
		}
		status = st
	}
	b, err := e.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	changed := status != "" && status != b.Status
	if status != "" {
		b.Status = status
	}
	if in.ProviderNote.Set {
		b.ProviderNote = in.ProviderNote.Value
	}
	if in.UserNote.Set {
		b.UserNote = in.UserNote.Value
	}
	if err := e.bookings.Save(ctx, b); err != nil {
		return nil, err
	}
	if changed {
		e.transitioned(b, "patch")
	}
	return b, nil
}

// Summarize projects a booking into a Summary using only what is already loaded
func Summarize(b *domain.Booking) *Summary {
	s := &Summary{
		ID:             b.ID,
		Status:         b.Status,
		ProviderAmount: b.ProviderAmount,
		PaymentOrderID: b.PaymentOrderID,
		PaymentID:      b.PaymentID,
		ProviderID:     b.ProviderID,
		ServiceID:      b.ServiceID,
		UserID:         b.UserID,
	}
	if b.Service != nil {
		s.ServiceName = b.Service.Name
	}
	if b.User != nil {
		s.UserName = b.User.Name
	}
	return s
}

// Receipt tags a payment order with its booking
func Receipt(id uint) string {
	return "booking_" + strconv.FormatUint(uint64(id), 10)
}

func invalidStatus(s string) error {
	return domain.Validation("Invalid status " + strconv.Quote(s))
}

func (e *Engine) transitioned(b *domain.Booking, action string) {
	metrics.IncBookingTransition(string(b.Status))
	logrus.WithFields(logrus.Fields{
		"booking_id":  b.ID,
		"provider_id": b.ProviderID,
		"status":      b.Status,
		"action":      action,
	}).Info("Booking transition")
}
