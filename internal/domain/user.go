package domain

import "time"

// Roles a user can hold
const (
	RoleCustomer = "customer" // Books services
	RoleProvider = "provider" // Offers services
	RoleAdmin    = "admin"    // Approves providers
)

// Account statuses
const (
	StatusPending  = "pending"  // Provider awaiting admin approval
	StatusActive   = "active"   // Account enabled
	StatusInactive = "inactive" // Account disabled by an admin
)

// Provider verification states
const (
	VerificationPending  = "pending"
	VerificationVerified = "verified"
)

// User Model
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`                          // Primary key
	Name         string    `gorm:"not null" json:"name"`                          // Display name
	Email        string    `gorm:"uniqueIndex;size:191;not null" json:"email"`    // Unique email
	Password     string    `gorm:"not null" json:"-"`                             // Hashed password, never serialized
	Role         string    `gorm:"size:16;not null;default:customer" json:"role"` // customer, provider or admin
	Status       string    `gorm:"size:16;not null;default:active" json:"status"` // pending, active or inactive
	Verification string    `gorm:"size:16" json:"verification,omitempty"`         // Provider verification state
	ServiceType  string    `json:"serviceType,omitempty"`                         // Trade offered by a provider
	Address      string    `json:"address,omitempty"`                             // Street address
	State        string    `json:"state,omitempty"`                               // State
	District     string    `json:"district,omitempty"`                            // District
	Pincode      string    `gorm:"size:6;index" json:"pincode,omitempty"`         // Six digit postal code
	Phone        string    `gorm:"size:10" json:"phone,omitempty"`                // Ten digit phone number
	CreatedAt    time.Time `json:"createdAt"`                                     // Registration time
}

// IsProvider reports whether the user offers services
func (u *User) IsProvider() bool {
	return u.Role == RoleProvider
}

// IsValidRole checks role against the known set
func IsValidRole(role string) bool {
	switch role {
	case RoleCustomer, RoleProvider, RoleAdmin:
		return true
	}
	return false
}

// IsValidStatus checks an account status against the known set
func IsValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusActive, StatusInactive:
		return true
	}
	return false
}
