package check_availability

import (
	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
	checkAvailability "github.com/m04kA/SMC-MarketplaceBooking/internal/usecase/check_availability"
)

// AvailabilityCheckResponse HTTP response model
type AvailabilityCheckResponse struct {
	ProviderID      int64  `json:"providerId"`
	Date            string `json:"date"`
	StartTime       string `json:"startTime"`
	DurationMinutes int    `json:"durationMinutes"`
	Available       bool   `json:"available"`
	Reason          string `json:"reason,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkAvailability.Response) *AvailabilityCheckResponse {
	return &AvailabilityCheckResponse{
		ProviderID:      resp.ProviderID,
		Date:            resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Available:       resp.Available,
		Reason:          string(resp.Reason),
	}
}
