package set_listing_active

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
)

// SetActiveRequest HTTP request model
type SetActiveRequest struct {
	IsActive *bool `json:"isActive" validate:"required"`
}

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

// Handle PATCH /api/v1/listings/{listingId}/active
// Неактивная услуга не видна клиентам и не принимает новые бронирования
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	listingID, err := handlers.PathID(r, "listingId")
	if err != nil {
		h.logger.Warn("PATCH /listings/{id}/active - Invalid listing ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidListingID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req SetActiveRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /listings/{id}/active - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if fields := handlers.Validate(req); fields != nil {
		handlers.RespondValidationError(w, msgValidationFailed, fields)
		return
	}

	listing, err := h.service.SetActive(r.Context(), listingID, *req.IsActive, actor)
	if err != nil {
		switch {
		case errors.Is(err, listings.ErrListingNotFound):
			handlers.RespondNotFound(w, msgListingNotFound)

		case errors.Is(err, listings.ErrAccessDenied), errors.Is(err, listings.ErrProviderNotFound):
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("PATCH /listings/{id}/active - Failed to toggle listing: listing_id=%d, error=%v", listingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /listings/{id}/active - Listing toggled: listing_id=%d, active=%t", listingID, listing.IsActive)
	handlers.RespondJSON(w, http.StatusOK, listing)
}
