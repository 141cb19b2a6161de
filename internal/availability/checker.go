package availability

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
	"github.com/m04kA/SMC-MarketplaceBooking/pkg/types"
)

// Reason тип отказа для ответа API
type Reason string

const (
	ReasonNone                       Reason = ""
	ReasonProviderUnavailableThatDay Reason = "provider_unavailable_that_day"
	ReasonOutsideAvailability        Reason = "outside_availability"
	ReasonSlotConflict               Reason = "slot_conflict"
	ReasonPastDate                   Reason = "past_date"
)

// Candidate проверяемый слот
type Candidate struct {
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
	// ExcludeBookingID не учитывать это бронирование (повторная проверка при подтверждении)
	ExcludeBookingID int64
}

// Verdict результат проверки
type Verdict struct {
	Available bool
	Reason    Reason
}

// Check проверяет слот по правилам и существующим бронированиям.
// Порядок проверок: день недели, рабочее окно, пересечения, прошедшая дата
func Check(rules []*domain.AvailabilityRule, bookings []*domain.Booking, c Candidate, now time.Time) error {
	if c.Date.IsZero() || c.DurationMinutes <= 0 {
		return fmt.Errorf("%w: date and positive duration are required", ErrInvalidCandidate)
	}
	if err := c.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCandidate, err)
	}

	// 1. Есть ли рабочее окно в этот день недели
	rule := ruleForDay(rules, c.Date.Weekday())
	if rule == nil || !rule.IsAvailable {
		return fmt.Errorf("%w: %s", ErrProviderUnavailableThatDay, c.Date.Weekday())
	}

	// 2. Слот целиком внутри окна. Переход через полночь считается выходом за окно
	end, err := c.StartTime.AddMinutes(c.DurationMinutes)
	if err != nil {
		return fmt.Errorf("%w: slot %s+%dm crosses midnight", ErrOutsideAvailability, c.StartTime, c.DurationMinutes)
	}
	if c.StartTime.IsBefore(rule.StartTime) || end.IsAfter(rule.EndTime) {
		return fmt.Errorf("%w: slot %s-%s, window %s-%s", ErrOutsideAvailability, c.StartTime, end, rule.StartTime, rule.EndTime)
	}

	// 3. Пересечение с активными бронированиями той же даты
	for _, b := range bookings {
		if b.ID == c.ExcludeBookingID && c.ExcludeBookingID != 0 {
			continue
		}
		if !b.Status.BlocksSlot() || !isSameDay(b.ScheduledDate, c.Date) {
			continue
		}
		bookingEnd, err := b.EndTime()
		if err != nil {
			return fmt.Errorf("%w: booking id=%d has invalid time: %v", ErrInvalidCandidate, b.ID, err)
		}
		if overlaps(c.StartTime, end, b.ScheduledTime, bookingEnd) {
			return fmt.Errorf("%w: overlaps booking id=%d %s-%s", ErrSlotConflict, b.ID, b.ScheduledTime, bookingEnd)
		}
	}

	// 4. Дата в прошлом или сегодняшнее время уже наступило
	if isDateInPast(c.Date, now) {
		return fmt.Errorf("%w: %s", ErrPastDate, c.Date.Format(domain.DateFormat))
	}
	if isSameDay(c.Date, now) && !c.StartTime.IsAfter(types.NewTimeString(now)) {
		return fmt.Errorf("%w: %s %s already started", ErrPastDate, c.Date.Format(domain.DateFormat), c.StartTime)
	}

	return nil
}

// Evaluate то же, что Check, но в виде вердикта для публичного API.
// Ошибки, не являющиеся отказом, возвращаются как есть
func Evaluate(rules []*domain.AvailabilityRule, bookings []*domain.Booking, c Candidate, now time.Time) (Verdict, error) {
	err := Check(rules, bookings, c, now)
	if err == nil {
		return Verdict{Available: true}, nil
	}
	if reason := ReasonOf(err); reason != ReasonNone {
		return Verdict{Available: false, Reason: reason}, nil
	}
	return Verdict{}, err
}

// ReasonOf переводит ошибку проверки в тип отказа
func ReasonOf(err error) Reason {
	switch {
	case errors.Is(err, ErrProviderUnavailableThatDay):
		return ReasonProviderUnavailableThatDay
	case errors.Is(err, ErrOutsideAvailability):
		return ReasonOutsideAvailability
	case errors.Is(err, ErrSlotConflict):
		return ReasonSlotConflict
	case errors.Is(err, ErrPastDate):
		return ReasonPastDate
	default:
		return ReasonNone
	}
}

// overlaps проверка пересечения открытых интервалов: касание границ не конфликт
func overlaps(startA, endA, startB, endB types.TimeString) bool {
	return startA.IsBefore(endB) && endA.IsAfter(startB)
}

func ruleForDay(rules []*domain.AvailabilityRule, day time.Weekday) *domain.AvailabilityRule {
	for _, r := range rules {
		if r.Weekday() == day {
			return r
		}
	}
	return nil
}

// isDateInPast сравнивает только даты, без времени
func isDateInPast(date, now time.Time) bool {
	d := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	n := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return d.Before(n)
}

func isSameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
