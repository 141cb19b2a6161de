package onboard_provider

import (
	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/service/providers/models"
)

// OnboardRequest HTTP request model
type OnboardRequest struct {
	BusinessName    string   `json:"businessName" validate:"required,max=200"`
	Description     *string  `json:"description,omitempty" validate:"omitempty,max=2000"`
	ExperienceYears *int     `json:"experienceYears,omitempty" validate:"omitempty,min=0,max=80"`
	HourlyRate      *float64 `json:"hourlyRate,omitempty" validate:"omitempty,gte=0"`
	ServiceRadius   *int     `json:"serviceRadius,omitempty" validate:"omitempty,gt=0"`
	Skills          []string `json:"skills,omitempty" validate:"max=50,dive,required,max=100"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *OnboardRequest) ToServiceRequest(actor domain.Actor) *models.OnboardRequest {
	return &models.OnboardRequest{
		Actor:           actor,
		BusinessName:    r.BusinessName,
		Description:     r.Description,
		ExperienceYears: r.ExperienceYears,
		HourlyRate:      r.HourlyRate,
		ServiceRadius:   r.ServiceRadius,
		Skills:          r.Skills,
	}
}
