package create_booking

import (
	"time"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
	"github.com/m04kA/SMC-MarketplaceBooking/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	Actor           domain.Actor     // Кто создаёт (должен быть клиентом)
	ListingID       int64            // ID услуги
	Date            time.Time        // Дата без времени
	StartTime       types.TimeString // Время начала, "10:00"
	DurationMinutes *int             // Если не указано, берётся из услуги
	Notes           *string          // Комментарий клиента
}

// Response модель ответа с созданным бронированием
type Response struct {
	Booking *domain.Booking
}
