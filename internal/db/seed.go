package db

import (
	"local_services/internal/domain" // Importing domain models
	"local_services/internal/utils"  // Password hashing

	"github.com/sirupsen/logrus"
	"gorm.io/gorm" // GORM ORM library
)

// SeedProviderEmail identifies the provider that owns the seeded catalog
const SeedProviderEmail = "seed.provider@localservices.dev"

var seedServices = []domain.Service{
	{Name: "Electrician", Description: "Qualified electricians for home and office.", PricingPerHour: 400},
	{Name: "Plumber", Description: "Experienced plumbers for all plumbing needs.", PricingPerHour: 350},
	{Name: "Cleaning", Description: "Home and office cleaning services.", PricingPerHour: 200},
	{Name: "Carpenter", Description: "Skilled carpenters for furniture and repairs.", PricingPerHour: 300},
}

// Seed fills an empty catalog with a demo provider and its services.
// It returns the number of services created.
func Seed(gdb *gorm.DB) (int, error) {
	var count int64 // Existing services
	if err := gdb.Model(&domain.Service{}).Count(&count).Error; err != nil {
		return 0, err
	}
	if count > 0 {
		logrus.WithField("services", count).Info("Catalog not empty, skipping seed")
		return 0, nil
	}
	hash, err := utils.HashPassword("changeme123")
	if err != nil {
		return 0, err
	}
	created := 0
	err = gdb.Transaction(func(tx *gorm.DB) error {
		provider := domain.User{
			Name:         "Seed Provider",
			Email:        SeedProviderEmail,
			Password:     hash,
			Role:         domain.RoleProvider,
			Status:       domain.StatusActive,
			Verification: domain.VerificationVerified,
		}
		// Reuse the seed provider if an earlier seed created it
		if err := tx.Where("email = ?", SeedProviderEmail).FirstOrCreate(&provider).Error; err != nil {
			return err
		}
		for _, s := range seedServices {
			svc := s
			svc.ProviderID = provider.ID
			svc.Status = domain.ServiceAvailable
			if err := tx.Create(&svc).Error; err != nil {
				return err
			}
			created++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	logrus.WithField("services", created).Info("Catalog seeded")
	return created, nil
}
