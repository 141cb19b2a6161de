package check_availability

import (
	"time"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/availability"
	"github.com/m04kA/SMC-MarketplaceBooking/pkg/types"
)

// Request проверяемый слот исполнителя
type Request struct {
	ProviderID      int64
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int // 0 означает длительность по умолчанию
}

// Response вердикт: свободен ли слот и почему нет
type Response struct {
	ProviderID      int64
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Available       bool
	Reason          availability.Reason
}
