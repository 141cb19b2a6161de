package get_provider_listings

import (
	"net/http"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/api/handlers"
)

const (
	msgInvalidProviderID = "некорректный ID исполнителя"
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

// Handle GET /api/v1/providers/{providerId}/listings
// Возвращает только активные услуги исполнителя
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	providerID, err := handlers.PathID(r, "providerId")
	if err != nil {
		h.logger.Warn("GET /providers/{id}/listings - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	result, err := h.service.GetByProvider(r.Context(), providerID)
	if err != nil {
		h.logger.Error("GET /providers/{id}/listings - Failed to get listings: provider_id=%d, error=%v", providerID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
