package get_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/api/handlers"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/api/middleware"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/service/bookings"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgBookingNotFound  = "бронирование не найдено"
	msgMissingActor     = "отсутствует ID или роль пользователя"
	msgNotParticipant   = "бронирование доступно только его клиенту и исполнителю"
)

// Handler отдаёт карточку бронирования одной из его сторон
type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("GET /bookings/{id} - Missing actor headers")
		handlers.RespondUnauthorized(w, msgMissingActor)
		return
	}

	bookingID, err := handlers.PathID(r, "bookingId")
	if err != nil {
		h.logger.Warn("GET /bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	// Клиент видит свои бронирования, исполнитель те, что на его аккаунт
	booking, err := h.service.GetByID(r.Context(), bookingID, actor)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /bookings/{id} - Not a participant: booking_id=%d, profile_id=%d, role=%s",
				bookingID, actor.ProfileID, actor.Role)
			handlers.RespondForbidden(w, msgNotParticipant)

		default:
			h.logger.Error("GET /bookings/{id} - Failed to load booking: booking_id=%d, profile_id=%d, error=%v",
				bookingID, actor.ProfileID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/{id} - Booking shown to %s: booking_id=%d, profile_id=%d, status=%s",
		actor.Role, booking.ID, actor.ProfileID, booking.Status)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
