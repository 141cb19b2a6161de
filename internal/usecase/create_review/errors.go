package create_review

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("create_review: booking not found")

	// ErrAccessDenied возвращается, когда отзыв пытается оставить не клиент бронирования
	ErrAccessDenied = errors.New("create_review: only the booking client can leave a review")

	// ErrBookingNotCompleted возвращается, когда работа по бронированию ещё не завершена
	ErrBookingNotCompleted = errors.New("create_review: booking is not completed")

	// ErrAlreadyReviewed возвращается при повторном отзыве
	ErrAlreadyReviewed = errors.New("create_review: booking already reviewed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_review: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_review: internal error")
)
