package domain

// Service availability
const (
	ServiceAvailable    = "AVAILABLE"
	ServiceNotAvailable = "NOT_AVAILABLE"
)

// Service Model
type Service struct {
	ID             uint    `gorm:"primaryKey" json:"id"`                                                     // Primary key
	ProviderID     uint    `gorm:"not null;index" json:"providerId"`                                         // Owning provider
	Provider       *User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"provider,omitempty"` // Back-reference to the provider
	Name           string  `gorm:"not null" json:"serviceName"`                                              // Service name
	Description    string  `gorm:"size:1000" json:"description"`                                             // Free text description
	PricingPerHour float64 `gorm:"not null;default:0" json:"pricingPerHour"`                                 // Hourly price
	Status         string  `gorm:"size:16;not null;default:AVAILABLE" json:"status"`                         // AVAILABLE or NOT_AVAILABLE
}

// IsValidAvailability checks a service status against the known set
func IsValidAvailability(status string) bool {
	return status == ServiceAvailable || status == ServiceNotAvailable
}
