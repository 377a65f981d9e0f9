package payment

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const knownSignature = "c4ba7785e595b717abd8b4847eaf30e97f23acbdbe1b8f5cbbf17d28d63b068f"

func TestSignKnownVector(t *testing.T) {
	sig := Sign("order_1", "pay_1", "s3cr3t")
	assert.Len(t, sig, 64)
	assert.Equal(t, knownSignature, sig)
}

func TestVerifySignature(t *testing.T) {
	cases := []struct {
		name      string
		orderID   string
		paymentID string
		signature string
		secret    string
		want      bool
	}{
		{"exact match", "order_1", "pay_1", knownSignature, "s3cr3t", true},
		{"upper case hex", "order_1", "pay_1", strings.ToUpper(knownSignature), "s3cr3t", true},
		{"swapped ids", "pay_1", "order_1", knownSignature, "s3cr3t", false},
		{"wrong secret", "order_1", "pay_1", knownSignature, "other", false},
		{"truncated", "order_1", "pay_1", knownSignature[:63], "s3cr3t", false},
		{"empty signature", "order_1", "pay_1", "", "s3cr3t", false},
		{"empty secret", "order_1", "pay_1", Sign("order_1", "pay_1", ""), "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, VerifySignature(tc.orderID, tc.paymentID, tc.signature, tc.secret))
		})
	}
}
