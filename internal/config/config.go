package config

import (
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"strings" // For splitting list values

	"github.com/joho/godotenv" // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort        string   // Application port
	DBDriver       string   // mysql or postgres
	DBUser         string   // Database user
	DBPassword     string   // Database password
	DBHost         string   // Database host
	DBPort         string   // Database port
	DBName         string   // Database name
	DBMaxOpenConns int      // Connection pool size
	DBMaxIdleConns int      // Idle connections kept in the pool
	JWTSecret      string   // JWT secret key
	RedisAddr      string   // Redis server address
	RedisPass      string   // Redis password
	RedisDB        int      // Redis database number
	IsProd         bool     // Is production environment
	CORSOrigins    []string // Allowed browser origins
	RateLimit      int      // Requests per minute per client IP, 0 disables
	SeedEnabled    bool     // Seed the catalog on migrate
	Payment        PaymentConfig
}

// PaymentConfig holds the payment gateway credentials
type PaymentConfig struct {
	KeyID     string // Public key id, handed to clients for checkout
	KeySecret string // Shared secret for basic auth and signature verification
	BaseURL   string // Gateway API base URL
	Currency  string // Order currency
}

// Enabled reports whether both gateway keys are present
func (p PaymentConfig) Enabled() bool {
	return strings.TrimSpace(p.KeyID) != "" && strings.TrimSpace(p.KeySecret) != ""
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	return &Config{
		AppPort:        getEnv("APP_PORT", "8080"),                                 // Application port
		DBDriver:       getEnv("DB_DRIVER", "mysql"),                               // Database driver
		DBUser:         os.Getenv("DB_USER"),                                       // Database user
		DBPassword:     os.Getenv("DB_PASSWORD"),                                   // Database password
		DBHost:         getEnv("DB_HOST", "127.0.0.1"),                             // Database host
		DBPort:         os.Getenv("DB_PORT"),                                       // Database port
		DBName:         os.Getenv("DB_NAME"),                                       // Database name
		DBMaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 10),                         // Pool size
		DBMaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 5),                          // Idle pool size
		JWTSecret:      os.Getenv("JWT_SECRET"),                                    // JWT secret key
		RedisAddr:      getEnv("REDIS_ADDR", "127.0.0.1:6379"),                     // Redis server address
		RedisPass:      os.Getenv("REDIS_PASS"),                                    // Redis password
		RedisDB:        getEnvInt("REDIS_DB", 0),                                   // Redis database number
		IsProd:         os.Getenv("IS_PROD") == "true",                             // Is production environment
		CORSOrigins:    splitList(getEnv("CORS_ORIGINS", "http://localhost:5173")), // Frontend origins
		RateLimit:      getEnvInt("RATE_LIMIT_PER_MIN", 200),                       // Per-IP request budget
		SeedEnabled:    os.Getenv("SEED_ENABLED") == "true",                        // Catalog seeding
		Payment: PaymentConfig{
			KeyID:     os.Getenv("PAYMENT_KEY_ID"),                            // Gateway key id
			KeySecret: os.Getenv("PAYMENT_KEY_SECRET"),                        // Gateway secret
			BaseURL:   getEnv("PAYMENT_BASE_URL", "https://api.razorpay.com"), // Gateway API
			Currency:  getEnv("PAYMENT_CURRENCY", "INR"),                      // Order currency
		},
	}
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
