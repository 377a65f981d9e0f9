package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("APP_PORT", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("PAYMENT_KEY_ID", "")
	t.Setenv("PAYMENT_KEY_SECRET", "")
	t.Setenv("PAYMENT_CURRENCY", "")
	t.Setenv("CORS_ORIGINS", "")

	cfg := LoadConfig()
	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Equal(t, "INR", cfg.Payment.Currency)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORSOrigins)
	assert.False(t, cfg.Payment.Enabled())
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("RATE_LIMIT_PER_MIN", "not-a-number")
	t.Setenv("PAYMENT_KEY_ID", "rzp_test_key")
	t.Setenv("PAYMENT_KEY_SECRET", "s3cr3t")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example ,")

	cfg := LoadConfig()
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, 200, cfg.RateLimit)
	assert.True(t, cfg.Payment.Enabled())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestPaymentConfigEnabledNeedsBothKeys(t *testing.T) {
	assert.False(t, PaymentConfig{KeyID: "id"}.Enabled())
	assert.False(t, PaymentConfig{KeySecret: "secret"}.Enabled())
	assert.False(t, PaymentConfig{KeyID: "  ", KeySecret: "secret"}.Enabled())
	assert.True(t, PaymentConfig{KeyID: "id", KeySecret: "secret"}.Enabled())
}
