package get_listing

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/api/handlers"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/service/listings"
)

const (
	msgInvalidListingID = "некорректный ID услуги"
	msgListingNotFound  = "услуга не найдена"
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

// Handle GET /api/v1/listings/{listingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	listingID, err := handlers.PathID(r, "listingId")
	if err != nil {
		h.logger.Warn("GET /listings/{id} - Invalid listing ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidListingID)
		return
	}

	listing, err := h.service.GetByID(r.Context(), listingID)
	if err != nil {
		if errors.Is(err, listings.ErrListingNotFound) {
			handlers.RespondNotFound(w, msgListingNotFound)
			return
		}
		h.logger.Error("GET /listings/{id} - Failed to get listing: listing_id=%d, error=%v", listingID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, listing)
}
