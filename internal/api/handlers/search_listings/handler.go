package search_listings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/api/handlers"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/service/listings"
)

const (
	msgInvalidParams = "некорректные параметры поиска"
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

// Handle GET /api/v1/listings
// Query params: categoryId, minPrice, maxPrice, minRating, sort (newest|rating|price_low|price_high), limit, offset
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceReq, err := ToServiceRequest(r)
	if err != nil {
		h.logger.Warn("GET /listings - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.Search(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, listings.ErrInvalidInput):
			h.logger.Warn("GET /listings - Rejected filters: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /listings - Failed to search listings: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /listings - Search returned %d listings", len(result.Listings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
