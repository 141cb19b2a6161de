package update_availability

import (
	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/service/availability/models"
)

// UpdateAvailabilityRequest HTTP request model, полный недельный шаблон
type UpdateAvailabilityRequest struct {
	Rules []RuleRequest `json:"rules" validate:"max=7,dive"`
}

// RuleRequest рабочее окно дня недели
type RuleRequest struct {
	DayOfWeek   int    `json:"dayOfWeek" validate:"min=0,max=6"`
	StartTime   string `json:"startTime" validate:"required"`
	EndTime     string `json:"endTime" validate:"required"`
	IsAvailable bool   `json:"isAvailable"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateAvailabilityRequest) ToServiceRequest(actor domain.Actor, providerID int64) *models.ReplaceRequest {
	rules := make([]models.RuleRequest, len(r.Rules))
	for i, rr := range r.Rules {
		rules[i] = models.RuleRequest{
			DayOfWeek:   rr.DayOfWeek,
			StartTime:   rr.StartTime,
			EndTime:     rr.EndTime,
			IsAvailable: rr.IsAvailable,
		}
	}

	return &models.ReplaceRequest{
		Actor:      actor,
		ProviderID: providerID,
		Rules:      rules,
	}
}
