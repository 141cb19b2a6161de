package update_listing

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/api/handlers"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/api/middleware"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/service/listings"
)

const (
	msgInvalidListingID   = "некорректный ID услуги"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgValidationFailed   = "некорректные поля запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgListingNotFound    = "услуга не найдена"
	msgForbidden          = "изменять услугу может только её исполнитель"
	msgInvalidInput       = "некорректные данные услуги"
)

type Handler struct {
	service ListingService
	logger  Logger
}

func NewHandler(service ListingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/listings/{listingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	listingID, err := handlers.PathID(r, "listingId")
	if err != nil {
		h.logger.Warn("PUT /listings/{id} - Invalid listing ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidListingID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateListingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /listings/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if fields := handlers.Validate(req); fields != nil {
		handlers.RespondValidationError(w, msgValidationFailed, fields)
		return
	}

	listing, err := h.service.Update(r.Context(), req.ToServiceRequest(listingID, actor))
	if err != nil {
		switch {
		case errors.Is(err, listings.ErrListingNotFound):
			handlers.RespondNotFound(w, msgListingNotFound)

		case errors.Is(err, listings.ErrAccessDenied), errors.Is(err, listings.ErrProviderNotFound):
			h.logger.Warn("PUT /listings/{id} - Access denied: listing_id=%d, user_id=%d", listingID, actor.ProfileID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, listings.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /listings/{id} - Failed to update listing: listing_id=%d, error=%v", listingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /listings/{id} - Listing updated: listing_id=%d", listingID)
	handlers.RespondJSON(w, http.StatusOK, listing)
}
