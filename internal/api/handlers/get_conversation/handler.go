package get_conversation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/api/handlers"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/api/middleware"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/service/messages"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/service/messages/models"
)

const (
	msgInvalidProfileID = "некорректный ID собеседника"
	msgInvalidBookingID = "некорректный ID бронирования"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgBookingNotFound  = "бронирование не найдено"
	msgForbidden        = "переписка по бронированию доступна только его сторонам"
)

type Handler struct {
	service MessageService
	logger  Logger
}

func NewHandler(service MessageService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/messages/{profileId}?bookingId=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	otherID, err := handlers.PathID(r, "profileId")
	if err != nil {
		h.logger.Warn("GET /messages/{id} - Invalid profile ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfileID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	bookingID, err := handlers.QueryInt64(r, "bookingId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	conversation, err := h.service.GetConversation(r.Context(), &models.ConversationRequest{
		Actor:     actor,
		OtherID:   otherID,
		BookingID: bookingID,
	})
	if err != nil {
		switch {
		case errors.Is(err, messages.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, messages.ErrAccessDenied):
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /messages/{id} - Failed to get conversation: user_id=%d, other_id=%d, error=%v",
				actor.ProfileID, otherID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, conversation)
}
