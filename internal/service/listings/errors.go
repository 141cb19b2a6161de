package listings

import "errors"

var (
	// ErrListingNotFound возвращается, когда услуга не найдена или снята с публикации
	ErrListingNotFound = errors.New("listing not found")

	// ErrProviderNotFound возвращается, когда у профиля нет аккаунта исполнителя
	ErrProviderNotFound = errors.New("provider not found")

	// ErrAccessDenied возвращается, когда услугу меняет не её исполнитель
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
