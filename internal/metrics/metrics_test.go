package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	Register()
	Register() // second call is a no-op

	before := testutil.ToFloat64(bookingTransitions.WithLabelValues("PAID"))
	IncBookingTransition("PAID")
	assert.Equal(t, before+1, testutil.ToFloat64(bookingTransitions.WithLabelValues("PAID")))

	accepted := testutil.ToFloat64(paymentVerifications.WithLabelValues("accepted"))
	rejected := testutil.ToFloat64(paymentVerifications.WithLabelValues("rejected"))
	IncPaymentVerification(true)
	IncPaymentVerification(false)
	IncPaymentVerification(false)
	assert.Equal(t, accepted+1, testutil.ToFloat64(paymentVerifications.WithLabelValues("accepted")))
	assert.Equal(t, rejected+2, testutil.ToFloat64(paymentVerifications.WithLabelValues("rejected")))

	skipped := testutil.ToFloat64(paymentOrders.WithLabelValues(OrderSkipped))
	IncPaymentOrder(OrderSkipped)
	assert.Equal(t, skipped+1, testutil.ToFloat64(paymentOrders.WithLabelValues(OrderSkipped)))

	reviews := testutil.ToFloat64(reviewsCreated)
	IncReviewCreated()
	assert.Equal(t, reviews+1, testutil.ToFloat64(reviewsCreated))
}
