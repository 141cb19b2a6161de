package transition_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("transition_booking: booking not found")

	// ErrAccessDenied возвращается, когда пользователь не является стороной бронирования
	ErrAccessDenied = errors.New("transition_booking: access denied")

	// ErrConflict возвращается, когда статус изменили параллельно
	ErrConflict = errors.New("transition_booking: booking was modified concurrently")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("transition_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("transition_booking: internal error")
)
