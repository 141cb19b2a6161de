package send_message

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/api/handlers"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/api/middleware"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/service/messages"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgValidationFailed   = "некорректные поля запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgReceiverNotFound   = "получатель не найден"
	msgBookingNotFound    = "бронирование не найдено"
	msgForbidden          = "переписка по бронированию доступна только его сторонам"
	msgInvalidInput       = "некорректное сообщение"
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

// Handle POST /api/v1/messages
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req SendMessageRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /messages - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if fields := handlers.Validate(req); fields != nil {
		handlers.RespondValidationError(w, msgValidationFailed, fields)
		return
	}

	msg, err := h.service.Send(r.Context(), req.ToServiceRequest(actor))
	if err != nil {
		switch {
		case errors.Is(err, messages.ErrReceiverNotFound):
			handlers.RespondNotFound(w, msgReceiverNotFound)

		case errors.Is(err, messages.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, messages.ErrAccessDenied):
			h.logger.Warn("POST /messages - Access denied: sender_id=%d, receiver_id=%d", actor.ProfileID, req.ReceiverID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, messages.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /messages - Failed to send message: sender_id=%d, error=%v", actor.ProfileID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, msg)
}
