package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/api/handlers"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/api/middleware"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/availability"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/lifecycle"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-MarketplaceBooking/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgValidationFailed   = "некорректные поля запроса"
	msgInvalidDateTime    = "некорректная дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgClientOnly         = "бронировать услуги могут только клиенты"
	msgListingNotFound    = "услуга не найдена"
	msgProviderNotFound   = "исполнитель не найден"
	msgProviderNotReady   = "исполнитель ещё не прошёл проверку"
	msgSlotConflict       = "выбранное время уже занято"
	msgUnavailableDay     = "исполнитель не работает в этот день"
	msgOutsideHours       = "выбранное время выходит за рабочие часы исполнителя"
	msgPastDate           = "нельзя забронировать прошедшее время"
	msgInvalidInput       = "некорректные параметры бронирования"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if fields := handlers.Validate(req); fields != nil {
		h.logger.Warn("POST /bookings - Validation failed: %v", fields)
		handlers.RespondValidationError(w, msgValidationFailed, fields)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(actor)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrSlotConflict):
			h.logger.Warn("POST /bookings - Slot conflict: client_id=%d, listing_id=%d", actor.ProfileID, req.ListingID)
			handlers.RespondConflict(w, msgSlotConflict)

		case errors.Is(err, availability.ErrProviderUnavailableThatDay):
			handlers.RespondBadRequest(w, msgUnavailableDay)

		case errors.Is(err, availability.ErrOutsideAvailability):
			handlers.RespondBadRequest(w, msgOutsideHours)

		case errors.Is(err, availability.ErrPastDate):
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, lifecycle.ErrClientRoleRequired):
			h.logger.Warn("POST /bookings - Non-client actor: profile_id=%d, role=%s", actor.ProfileID, actor.Role)
			handlers.RespondForbidden(w, msgClientOnly)

		case errors.Is(err, createBooking.ErrListingNotFound), errors.Is(err, lifecycle.ErrListingInactive):
			h.logger.Warn("POST /bookings - Listing unavailable: listing_id=%d", req.ListingID)
			handlers.RespondNotFound(w, msgListingNotFound)

		case errors.Is(err, createBooking.ErrProviderNotFound):
			handlers.RespondNotFound(w, msgProviderNotFound)

		case errors.Is(err, lifecycle.ErrProviderNotApproved):
			h.logger.Warn("POST /bookings - Provider not approved: listing_id=%d", req.ListingID)
			handlers.RespondNotFound(w, msgProviderNotReady)

		case errors.Is(err, createBooking.ErrInvalidInput), errors.Is(err, availability.ErrInvalidCandidate):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: client_id=%d, listing_id=%d, error=%v",
				actor.ProfileID, req.ListingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, client_id=%d, listing_id=%d",
		result.Booking.ID, actor.ProfileID, req.ListingID)
	handlers.RespondJSON(w, http.StatusCreated, models.FromDomainBooking(result.Booking))
}
