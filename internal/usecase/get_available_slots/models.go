package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-MarketplaceBooking/pkg/types"
)

// Request модель запроса на получение свободного времени исполнителя
type Request struct {
	ProviderID      int64     // ID исполнителя
	Date            time.Time // Дата без времени
	DurationMinutes int       // Длительность работы, 0 означает длительность по умолчанию
}

// Response модель ответа со списком свободных слотов
type Response struct {
	ProviderID      int64
	Date            time.Time
	DurationMinutes int
	Slots           []Slot
}

// Slot свободный интервал, с которого можно начать бронирование
type Slot struct {
	StartTime types.TimeString
	EndTime   types.TimeString
}
