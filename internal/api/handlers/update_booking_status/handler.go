package update_booking_status

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/api/handlers"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/api/middleware"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/availability"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/lifecycle"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/service/bookings/models"
	transitionBooking "github.com/m04kA/SMC-MarketplaceBooking/internal/usecase/transition_booking"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgValidationFailed   = "некорректные поля запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "бронирование не найдено"
	msgForbidden          = "доступ запрещен"
	msgUnknownStatus      = "неизвестный статус бронирования"
	msgInvalidTransition  = "переход в этот статус недоступен"
	msgInvalidPatch       = "поля запроса не подходят к выбранному статусу"
	msgConflict           = "бронирование было изменено, обновите данные"
	msgSlotConflict       = "это время уже занято другим бронированием"
	msgSlotUnavailable    = "время бронирования больше не доступно"
	msgInvalidInput       = "некорректные параметры запроса"
)

type Handler struct {
	useCase TransitionBookingUseCase
	logger  Logger
}

func NewHandler(useCase TransitionBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/status
// Повтор уже применённого перехода отвечает 200 с текущим бронированием
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathID(r, "bookingId")
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/status - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("PATCH /bookings/{id}/status - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if fields := handlers.Validate(req); fields != nil {
		h.logger.Warn("PATCH /bookings/{id}/status - Validation failed: %v", fields)
		handlers.RespondValidationError(w, msgValidationFailed, fields)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(actor, bookingID))
	if err != nil {
		switch {
		case errors.Is(err, transitionBooking.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/status - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, transitionBooking.ErrAccessDenied):
			h.logger.Warn("PATCH /bookings/{id}/status - Access denied: booking_id=%d, user_id=%d",
				bookingID, actor.ProfileID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, lifecycle.ErrUnknownStatus):
			handlers.RespondBadRequest(w, msgUnknownStatus)

		case errors.Is(err, lifecycle.ErrInvalidTransition):
			h.logger.Warn("PATCH /bookings/{id}/status - Invalid transition: booking_id=%d, target=%s, role=%s",
				bookingID, req.Status, actor.Role)
			handlers.RespondConflict(w, msgInvalidTransition)

		case errors.Is(err, lifecycle.ErrInvalidPatch):
			handlers.RespondBadRequest(w, msgInvalidPatch)

		case errors.Is(err, transitionBooking.ErrConflict):
			h.logger.Warn("PATCH /bookings/{id}/status - Concurrent modification: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgConflict)

		case errors.Is(err, availability.ErrSlotConflict):
			handlers.RespondConflict(w, msgSlotConflict)

		case errors.Is(err, availability.ErrProviderUnavailableThatDay),
			errors.Is(err, availability.ErrOutsideAvailability),
			errors.Is(err, availability.ErrPastDate):
			handlers.RespondBadRequest(w, msgSlotUnavailable)

		case errors.Is(err, transitionBooking.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /bookings/{id}/status - Failed to update status: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/status - Booking status updated: booking_id=%d, status=%s, changed=%t",
		bookingID, result.Booking.Status, result.Changed)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainBooking(result.Booking))
}
