// Package metrics exposes Prometheus counters for the booking lifecycle,
// the payment gateway and reviews.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "local_services"

var (
	once sync.Once

	bookingTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_transitions_total",
			Help:      "Count of bookings moved into each status.",
		},
		[]string{"status"},
	)

	paymentOrders = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payment_orders_total",
			Help:      "Count of payment order attempts by outcome.",
		},
		[]string{"outcome"},
	)

	paymentVerifications = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payment_verifications_total",
			Help:      "Count of payment signature checks by outcome.",
		},
		[]string{"outcome"},
	)

	reviewsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reviews_created_total",
			Help:      "Count of provider reviews created.",
		},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(bookingTransitions, paymentOrders, paymentVerifications, reviewsCreated)
	})
}

func IncBookingTransition(status string) {
	bookingTransitions.WithLabelValues(status).Inc()
}

// Payment order outcomes
const (
	OrderCreated = "created"
	OrderFailed  = "failed"
	OrderSkipped = "skipped" // gateway keys not configured
)

func IncPaymentOrder(outcome string) {
	paymentOrders.WithLabelValues(outcome).Inc()
}

func IncPaymentVerification(accepted bool) {
	outcome := "rejected"
	if accepted {
		outcome = "accepted"
	}
	paymentVerifications.WithLabelValues(outcome).Inc()
}

func IncReviewCreated() {
	reviewsCreated.Inc()
}
