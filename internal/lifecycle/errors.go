package lifecycle

import "errors"

var (
	// ErrInvalidTransition переход не разрешён из текущего статуса или для роли
	ErrInvalidTransition = errors.New("lifecycle: invalid transition")

	// ErrUnknownStatus запрошен неизвестный статус
	ErrUnknownStatus = errors.New("lifecycle: unknown status")

	// ErrListingInactive услуга снята с публикации
	ErrListingInactive = errors.New("lifecycle: listing is inactive")

	// ErrProviderNotApproved исполнитель не прошёл модерацию
	ErrProviderNotApproved = errors.New("lifecycle: provider is not approved")

	// ErrListingProviderMismatch услуга принадлежит другому исполнителю
	ErrListingProviderMismatch = errors.New("lifecycle: listing does not belong to provider")

	// ErrClientRoleRequired бронирование может создать только клиент
	ErrClientRoleRequired = errors.New("lifecycle: only clients can create bookings")

	// ErrInvalidPatch поля изменения не подходят к переходу
	ErrInvalidPatch = errors.New("lifecycle: invalid patch for transition")
)
