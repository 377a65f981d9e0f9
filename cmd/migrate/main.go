package main

import (
	"context"                        // Request context for the repositories
	"errors"                         // Argument errors
	"flag"                           // Command line flags
	"local_services/internal/config" // Custom import path (Config)
	"local_services/internal/db"     // Custom import path (Database)
	"local_services/internal/domain" // Importing domain models
	"local_services/internal/store"  // Repositories
	"local_services/internal/utils"  // Password hashing

	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// Main entry point for migration
func main() {
	seed := flag.Bool("seed", false, "seed the service catalog when it is empty")
	adminEmail := flag.String("admin-email", "", "create an admin account with this email")
	adminPassword := flag.String("admin-password", "", "password for -admin-email")
	flag.Parse()

	cfg := config.LoadConfig() // Load configuration
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	gdb, err := db.Open(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		logrus.Fatalf("migration failed: %v", err)
	}

	if *seed || cfg.SeedEnabled {
		if _, err := db.Seed(gdb); err != nil {
			logrus.Fatalf("seeding failed: %v", err)
		}
	}

	if *adminEmail != "" {
		if err := createAdmin(store.New(gdb).Users, *adminEmail, *adminPassword); err != nil {
			logrus.Fatalf("failed to create admin: %v", err)
		}
	}
}

// createAdmin adds an admin account; admins cannot register through the API
func createAdmin(users store.UserRepository, email, password string) error {
	if !utils.IsValidPassword(password) {
		return errors.New("admin password must be 8-64 characters")
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}
	admin := domain.User{
		Name:     "Administrator",
		Email:    email,
		Password: hash,
		Role:     domain.RoleAdmin,
		Status:   domain.StatusActive,
	}
	if err := users.Create(context.Background(), &admin); err != nil {
		return err
	}
	logrus.WithField("user_id", admin.ID).Info("Admin created")
	return nil
}
