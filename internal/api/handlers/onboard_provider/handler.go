package onboard_provider

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/api/handlers"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/api/middleware"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/service/providers"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgValidationFailed   = "некорректные поля запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgProfileNotFound    = "профиль не найден"
	msgProviderRoleOnly   = "стать исполнителем может только профиль с ролью исполнителя"
	msgAlreadyProvider    = "профиль уже зарегистрирован как исполнитель"
	msgInvalidInput       = "некорректные данные исполнителя"
)

type Handler struct {
	service ProviderService
	logger  Logger
}

func NewHandler(service ProviderService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/providers
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req OnboardRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /providers - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if fields := handlers.Validate(req); fields != nil {
		handlers.RespondValidationError(w, msgValidationFailed, fields)
		return
	}

	provider, err := h.service.Onboard(r.Context(), req.ToServiceRequest(actor))
	if err != nil {
		switch {
		case errors.Is(err, providers.ErrProfileNotFound):
			handlers.RespondNotFound(w, msgProfileNotFound)

		case errors.Is(err, providers.ErrAccessDenied):
			handlers.RespondForbidden(w, msgProviderRoleOnly)

		case errors.Is(err, providers.ErrProviderExists):
			handlers.RespondConflict(w, msgAlreadyProvider)

		case errors.Is(err, providers.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /providers - Failed to onboard: profile_id=%d, error=%v", actor.ProfileID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /providers - Provider onboarded: provider_id=%d, profile_id=%d", provider.ID, actor.ProfileID)
	handlers.RespondJSON(w, http.StatusCreated, provider)
}
