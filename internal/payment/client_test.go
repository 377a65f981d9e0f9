package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"local_services/internal/config"
	"local_services/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(config.PaymentConfig{
		KeyID:     "rzp_test_key",
		KeySecret: "s3cr3t",
		BaseURL:   server.URL + "/",
	}, server.Client())
}

func TestCreateOrder(t *testing.T) {
	var got map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/orders", r.URL.Path)
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "rzp_test_key", user)
		assert.Equal(t, "s3cr3t", pass)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(map[string]any{"id": "order_42", "amount": 12550, "currency": "INR", "status": "created"})
	})

	order, err := client.CreateOrder(context.Background(), OrderRequest{Amount: 12550, Currency: "INR", Receipt: "booking_7"})
	require.NoError(t, err)
	assert.Equal(t, "order_42", order.ID)
	assert.Equal(t, int64(12550), order.Amount)
	assert.EqualValues(t, 12550, got["amount"])
	assert.Equal(t, "INR", got["currency"])
	assert.Equal(t, "booking_7", got["receipt"])
	assert.EqualValues(t, 1, got["payment_capture"])
}

func TestCreateOrderUpstreamFailures(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"non 2xx": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":{"code":"BAD_REQUEST_ERROR"}}`))
		},
		"missing id": func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"amount":100}`))
		},
		"garbage body": func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`not json`))
		},
	}
	for name, handler := range cases {
		t.Run(name, func(t *testing.T) {
			client := newTestClient(t, handler)
			_, err := client.CreateOrder(context.Background(), OrderRequest{Amount: 100, Currency: "INR", Receipt: "booking_1"})
			require.Error(t, err)
			assert.Equal(t, domain.KindUpstream, domain.KindOf(err))
		})
	}
}

func TestCreateOrderUnreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client := NewClient(config.PaymentConfig{KeyID: "k", KeySecret: "s", BaseURL: url}, nil)
	_, err := client.CreateOrder(context.Background(), OrderRequest{Amount: 100, Currency: "INR", Receipt: "booking_1"})
	require.Error(t, err)
	assert.Equal(t, domain.KindUpstream, domain.KindOf(err))
}

func TestCreateOrderRejectsZeroAmount(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("gateway must not be called")
	})
	_, err := client.CreateOrder(context.Background(), OrderRequest{Amount: 0, Currency: "INR"})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestClientDefaults(t *testing.T) {
	client := NewClient(config.PaymentConfig{KeyID: "id"}, nil)
	assert.Equal(t, "INR", client.Currency())
	assert.Equal(t, "id", client.KeyID())
	assert.False(t, client.Enabled())
	assert.False(t, client.Verify("order_1", "pay_1", knownSignature))
}
