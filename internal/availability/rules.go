package availability

import (
	"fmt"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
)

// ValidateRules проверяет недельный шаблон: день 0..6, не больше одного правила на день,
// у доступного дня начало раньше конца
func ValidateRules(rules []*domain.AvailabilityRule) error {
	seen := make(map[int]bool, len(rules))

	for _, r := range rules {
		if r.DayOfWeek < 0 || r.DayOfWeek > 6 {
			return fmt.Errorf("%w: day_of_week %d out of range", ErrInvalidRules, r.DayOfWeek)
		}
		if seen[r.DayOfWeek] {
			return fmt.Errorf("%w: duplicate rule for day %d", ErrInvalidRules, r.DayOfWeek)
		}
		seen[r.DayOfWeek] = true

		if err := r.StartTime.Validate(); err != nil {
			return fmt.Errorf("%w: day %d start: %v", ErrInvalidRules, r.DayOfWeek, err)
		}
		if err := r.EndTime.Validate(); err != nil {
			return fmt.Errorf("%w: day %d end: %v", ErrInvalidRules, r.DayOfWeek, err)
		}
		if r.IsAvailable && !r.StartTime.IsBefore(r.EndTime) {
			return fmt.Errorf("%w: day %d start %s must be before end %s", ErrInvalidRules, r.DayOfWeek, r.StartTime, r.EndTime)
		}
	}

	return nil
}
