package availability

import "errors"

var (
	// ErrProviderUnavailableThatDay у исполнителя нет рабочего окна в этот день недели
	ErrProviderUnavailableThatDay = errors.New("availability: provider unavailable that day")

	// ErrOutsideAvailability время не помещается в рабочее окно дня
	ErrOutsideAvailability = errors.New("availability: outside availability window")

	// ErrSlotConflict время пересекается с другим активным бронированием
	ErrSlotConflict = errors.New("availability: slot conflict")

	// ErrPastDate дата или время уже прошли
	ErrPastDate = errors.New("availability: date is in the past")

	// ErrInvalidCandidate некорректные параметры проверяемого слота
	ErrInvalidCandidate = errors.New("availability: invalid candidate")

	// ErrInvalidRules некорректный набор правил доступности
	ErrInvalidRules = errors.New("availability: invalid rules")
)
