package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/availability"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
)

// generateSlots перебирает начала слотов от начала рабочего окна с шагом step
// и оставляет только те, которые проходят полную проверку доступности.
// Если в этот день у исполнителя нет окна, список пуст
func generateSlots(
	rules []*domain.AvailabilityRule,
	bookings []*domain.Booking,
	date time.Time,
	duration int,
	step int,
	now time.Time,
) ([]Slot, error) {
	window := windowForDay(rules, date.Weekday())
	if window == nil {
		return []Slot{}, nil
	}

	slots := make([]Slot, 0)
	current := window.StartTime

	for current.IsBefore(window.EndTime) {
		end, err := current.AddMinutes(duration)
		if err != nil || end.IsAfter(window.EndTime) {
			break
		}

		err = availability.Check(rules, bookings, availability.Candidate{
			Date:            date,
			StartTime:       current,
			DurationMinutes: duration,
		}, now)
		if err == nil {
			slots = append(slots, Slot{StartTime: current, EndTime: end})
		} else if availability.ReasonOf(err) == availability.ReasonNone {
			return nil, err
		}

		next, err := current.AddMinutes(step)
		if err != nil {
			break
		}
		current = next
	}

	return slots, nil
}

// windowForDay возвращает рабочее окно дня или nil, если день выходной
func windowForDay(rules []*domain.AvailabilityRule, day time.Weekday) *domain.AvailabilityRule {
	for _, rule := range rules {
		if rule.Weekday() == day && rule.IsAvailable {
			return rule
		}
	}
	return nil
}
