// Package payment talks to the remote payment gateway: it creates orders
// priced in minor units and verifies checkout signatures.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"local_services/internal/config"
	"local_services/internal/domain"

	"github.com/sirupsen/logrus"
)

// OrderRequest describes an order to create. Amount is in minor units.
type OrderRequest struct {
	Amount   int64
	Currency string
	Receipt  string
}

// Order is the gateway's view of a created order
type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// Gateway is the order-creation and verification surface used by the booking engine
type Gateway interface {
	Enabled() bool
	KeyID() string
	Currency() string
	CreateOrder(ctx context.Context, req OrderRequest) (*Order, error)
	Verify(orderID, paymentID, signature string) bool
}

// Client is the HTTP implementation of Gateway
type Client struct {
	cfg  config.PaymentConfig
	http *http.Client
}

// NewClient builds a client; a nil httpClient falls back to a plain http.Client
func NewClient(cfg config.PaymentConfig, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if cfg.Currency == "" {
		cfg.Currency = "INR"
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Client{cfg: cfg, http: httpClient}
}

// Enabled reports whether keys are configured; without them no orders are created
func (c *Client) Enabled() bool { return c.cfg.Enabled() }

// KeyID is the public key handed to checkout clients
func (c *Client) KeyID() string { return c.cfg.KeyID }

// Currency is the fixed order currency
func (c *Client) Currency() string { return c.cfg.Currency }

// Verify checks a checkout signature against the shared secret
func (c *Client) Verify(orderID, paymentID, signature string) bool {
	return VerifySignature(orderID, paymentID, signature, c.cfg.KeySecret)
}

// CreateOrder posts a new order. Transport errors, non-2xx responses and
// responses without an order id all come back as domain Upstream errors.
func (c *Client) CreateOrder(ctx context.Context, req OrderRequest) (*Order, error) {
	if req.Amount < 1 {
		return nil, domain.Validation("Amount too small after conversion; must be at least 0.01")
	}
	payload, err := json.Marshal(map[string]any{
		"amount":          req.Amount,
		"currency":        req.Currency,
		"receipt":         req.Receipt,
		"payment_capture": 1,
	})
	if err != nil {
		return nil, fmt.Errorf("encode order: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/v1/orders", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build order request: %w", err)
	}
	httpReq.SetBasicAuth(c.cfg.KeyID, c.cfg.KeySecret)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, domain.Upstream("Failed to create payment order", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return nil, domain.Upstream("Failed to read payment order response", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logrus.WithFields(logrus.Fields{
			"status":  resp.StatusCode,
			"receipt": req.Receipt,
			"body":    string(body),
		}).Warn("Payment order creation rejected")
		return nil, domain.Upstream("Payment order creation failed", fmt.Errorf("gateway status %d", resp.StatusCode))
	}
	var order Order
	if err := json.Unmarshal(body, &order); err != nil {
		return nil, domain.Upstream("Payment order response unreadable", err)
	}
	if order.ID == "" {
		return nil, domain.Upstream("Payment response missing order id", nil)
	}
	return &order, nil
}
