package create_listing

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/api/handlers"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/api/middleware"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/service/listings"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgValidationFailed   = "некорректные поля запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotProvider        = "публиковать услуги может только исполнитель"
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

// Handle POST /api/v1/listings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateListingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /listings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if fields := handlers.Validate(req); fields != nil {
		handlers.RespondValidationError(w, msgValidationFailed, fields)
		return
	}

	listing, err := h.service.Create(r.Context(), req.ToServiceRequest(actor))
	if err != nil {
		switch {
		case errors.Is(err, listings.ErrProviderNotFound), errors.Is(err, listings.ErrAccessDenied):
			h.logger.Warn("POST /listings - Not a provider: user_id=%d", actor.ProfileID)
			handlers.RespondForbidden(w, msgNotProvider)

		case errors.Is(err, listings.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /listings - Failed to create listing: user_id=%d, error=%v", actor.ProfileID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /listings - Listing created: listing_id=%d, provider_id=%d", listing.ID, listing.ProviderID)
	handlers.RespondJSON(w, http.StatusCreated, listing)
}
