package check_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/api/handlers"
	checkAvailability "github.com/m04kA/SMC-MarketplaceBooking/internal/usecase/check_availability"
	"github.com/m04kA/SMC-MarketplaceBooking/pkg/types"
)

const (
	msgInvalidProviderID = "некорректный ID исполнителя"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime       = "некорректный формат времени, ожидается HH:MM"
	msgInvalidDuration   = "некорректная длительность"
	msgProviderNotFound  = "исполнитель не найден"
)

type Handler struct {
	useCase CheckAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/providers/{providerId}/availability/check
// Query params: date, time (обязательные), duration (минуты, опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	providerID, err := handlers.PathID(r, "providerId")
	if err != nil {
		h.logger.Warn("GET /providers/{id}/availability/check - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	date, err := handlers.QueryDate(r, "date")
	if err != nil || date == nil {
		h.logger.Warn("GET /providers/{id}/availability/check - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	startTime, err := types.NewTimeStringFromString(r.URL.Query().Get("time"))
	if err != nil {
		h.logger.Warn("GET /providers/{id}/availability/check - Invalid time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	duration, err := handlers.QueryInt(r, "duration", 0)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDuration)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &checkAvailability.Request{
		ProviderID:      providerID,
		Date:            *date,
		StartTime:       startTime,
		DurationMinutes: duration,
	})
	if err != nil {
		switch {
		case errors.Is(err, checkAvailability.ErrProviderNotFound):
			handlers.RespondNotFound(w, msgProviderNotFound)

		case errors.Is(err, checkAvailability.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidDuration)

		default:
			h.logger.Error("GET /providers/{id}/availability/check - Failed to check: provider_id=%d, error=%v",
				providerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
