package transition_booking

import (
	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
)

// Request модель запроса на смену статуса
type Request struct {
	Actor              domain.Actor
	BookingID          int64
	Status             string  // Целевой статус как пришёл от клиента API
	ProviderNotes      *string // Только для исполнителя
	CancellationReason *string // Только при отмене
}

// Response результат перехода
type Response struct {
	Booking *domain.Booking
	Changed bool // false, если бронирование уже было в целевом статусе
}

// Результаты для метрики переходов
const (
	resultApplied  = "applied"
	resultNoop     = "noop"
	resultRejected = "rejected"
	resultConflict = "conflict"
)
