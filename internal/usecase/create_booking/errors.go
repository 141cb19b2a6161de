package create_booking

import "errors"

var (
	// ErrListingNotFound возвращается, когда услуга не найдена
	ErrListingNotFound = errors.New("create_booking: listing not found")

	// ErrProviderNotFound возвращается, когда исполнитель услуги не найден
	ErrProviderNotFound = errors.New("create_booking: provider not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
