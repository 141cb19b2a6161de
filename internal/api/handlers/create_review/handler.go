package create_review

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/api/handlers"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/api/middleware"
	createReview "github.com/m04kA/SMC-MarketplaceBooking/internal/usecase/create_review"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgValidationFailed   = "некорректные поля запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "бронирование не найдено"
	msgForbidden          = "оставить отзыв может только клиент бронирования"
	msgNotCompleted       = "отзыв можно оставить только после завершения работы"
	msgAlreadyReviewed    = "отзыв на это бронирование уже оставлен"
	msgInvalidInput       = "некорректный отзыв"
)

type Handler struct {
	useCase CreateReviewUseCase
	logger  Logger
}

func NewHandler(useCase CreateReviewUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/review
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathID(r, "bookingId")
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/review - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateReviewRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/review - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if fields := handlers.Validate(req); fields != nil {
		handlers.RespondValidationError(w, msgValidationFailed, fields)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &createReview.Request{
		Actor:     actor,
		BookingID: bookingID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		switch {
		case errors.Is(err, createReview.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, createReview.ErrAccessDenied):
			h.logger.Warn("POST /bookings/{id}/review - Access denied: booking_id=%d, user_id=%d", bookingID, actor.ProfileID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, createReview.ErrBookingNotCompleted):
			handlers.RespondConflict(w, msgNotCompleted)

		case errors.Is(err, createReview.ErrAlreadyReviewed):
			handlers.RespondConflict(w, msgAlreadyReviewed)

		case errors.Is(err, createReview.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings/{id}/review - Failed to create review: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/review - Review created: review_id=%d, booking_id=%d",
		result.Review.ID, bookingID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
