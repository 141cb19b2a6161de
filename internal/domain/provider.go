package domain

import (
	"time"

	"github.com/m04kA/SMC-MarketplaceBooking/pkg/types"
)

// ProviderStatus verification status set by moderation
type ProviderStatus string

const (
	ProviderPending   ProviderStatus = "pending"
	ProviderApproved  ProviderStatus = "approved"
	ProviderSuspended ProviderStatus = "suspended"
)

// Profile marketplace user profile
type Profile struct {
	ID          int64
	UserID      string // id in the external auth system
	FirstName   *string
	LastName    *string
	PhoneNumber *string
	Location    *string
	UserType    Role
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ServiceProvider provider business profile
type ServiceProvider struct {
	ID                 int64
	ProfileID          int64
	BusinessName       string
	Description        *string
	ExperienceYears    *int
	HourlyRate         *float64
	ServiceRadius      *int
	Skills             []string
	VerificationStatus ProviderStatus
	AverageRating      float64
	TotalReviews       int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// IsApproved returns true if the provider may receive bookings
func (p *ServiceProvider) IsApproved() bool {
	return p.VerificationStatus == ProviderApproved
}

// AvailabilityRule weekly working window of a provider
// DayOfWeek: 0 = Sunday ... 6 = Saturday, matching time.Weekday
type AvailabilityRule struct {
	ID          int64
	ProviderID  int64
	DayOfWeek   int
	StartTime   types.TimeString
	EndTime     types.TimeString
	IsAvailable bool
}

// Weekday returns the rule's day as time.Weekday
func (r *AvailabilityRule) Weekday() time.Weekday {
	return time.Weekday(r.DayOfWeek)
}
