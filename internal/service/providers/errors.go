package providers

import "errors"

var (
	// ErrProviderNotFound возвращается, когда исполнитель не найден
	ErrProviderNotFound = errors.New("provider not found")

	// ErrProfileNotFound возвращается, когда профиль пользователя не найден
	ErrProfileNotFound = errors.New("profile not found")

	// ErrProviderExists возвращается, когда профиль уже зарегистрирован исполнителем
	ErrProviderExists = errors.New("provider already exists")

	// ErrAccessDenied возвращается, когда профиль не имеет роли исполнителя
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
