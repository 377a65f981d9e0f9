package main

import (
	"context"                            // context package is needed for Redis operations
	"local_services/internal/api"        // Custom package for API handlers
	"local_services/internal/booking"    // Booking lifecycle engine
	"local_services/internal/config"     // Custom package for configuration
	"local_services/internal/db"         // Database connection
	"local_services/internal/metrics"    // Prometheus counters
	"local_services/internal/middleware" // Custom package for middleware
	"local_services/internal/payment"    // Payment gateway client
	"local_services/internal/review"     // Review aggregate
	"local_services/internal/store"      // Repositories
	"time"                               // Timeouts

	"github.com/gin-contrib/cors"                             // CORS middleware
	"github.com/gin-gonic/gin"                                // Gin web framework
	"github.com/prometheus/client_golang/prometheus/promhttp" // Metrics endpoint
	"github.com/redis/go-redis/v9"                            // Redis client
	"github.com/sirupsen/logrus"                              // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	if cfg.IsProd {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	// Connect to the database
	gdb, err := db.Open(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection
	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	metrics.Register() // Register Prometheus collectors

	// Wire repositories, payment gateway and domain services
	st := store.New(gdb)
	gateway := payment.NewClient(cfg.Payment, nil) // Bounded by the request context only
	if !gateway.Enabled() {
		logrus.Warn("Payment keys not configured, accepted bookings will not get payment orders")
	}
	engine := booking.NewEngine(st.Bookings, st.Services, st.Users, gateway)
	reviews := review.NewAggregate(st.Reviews, st.Users, redisClient)

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.New() // Gin router instance
	r.Use(middleware.Recovery(), middleware.RequestLogger())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.NewRateLimiter(cfg.RateLimit).Middleware())

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	r.GET("/metrics", gin.WrapH(promhttp.Handler())) // Prometheus scrape endpoint
	api.RegisterRoutes(r, api.Deps{
		DB:        gdb,
		Redis:     redisClient,
		Store:     st,
		Bookings:  engine,
		Reviews:   reviews,
		JWTSecret: cfg.JWTSecret,
	})

	logrus.WithField("port", cfg.AppPort).Info("Server running") // Log server start
	if err := r.Run(":" + cfg.AppPort); err != nil {             // Start the server on port cfg.AppPort
		logrus.Fatalf("server stopped: %v", err)
	}
}
