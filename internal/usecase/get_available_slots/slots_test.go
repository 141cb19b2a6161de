package get_available_slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
	"github.com/m04kA/SMC-MarketplaceBooking/pkg/types"
)

var monday = time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

func mondayRules(start, end types.TimeString) []*domain.AvailabilityRule {
	return []*domain.AvailabilityRule{
		{ProviderID: 5, DayOfWeek: int(time.Monday), StartTime: start, EndTime: end, IsAvailable: true},
	}
}

func starts(slots []Slot) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.StartTime.String()
	}
	return out
}

func TestGenerateSlots_SkipsBookedTime(t *testing.T) {
	bookings := []*domain.Booking{{
		ID: 1, ScheduledDate: monday, ScheduledTime: "10:00", DurationMinutes: 60, Status: domain.StatusPending,
	}}
	now := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

	slots, err := generateSlots(mondayRules("09:00", "12:00"), bookings, monday, 60, 30, now)

	require.NoError(t, err)
	// 09:30 и 10:30 пересекаются с 10:00-11:00, 09:00 и 11:00 касаются границ
	assert.Equal(t, []string{"09:00", "11:00"}, starts(slots))
	assert.Equal(t, "12:00", slots[1].EndTime.String())
}

func TestGenerateSlots_CancelledBookingDoesNotBlock(t *testing.T) {
	bookings := []*domain.Booking{{
		ID: 1, ScheduledDate: monday, ScheduledTime: "09:00", DurationMinutes: 60, Status: domain.StatusCancelled,
	}}
	now := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

	slots, err := generateSlots(mondayRules("09:00", "10:00"), bookings, monday, 60, 30, now)

	require.NoError(t, err)
	assert.Equal(t, []string{"09:00"}, starts(slots))
}

func TestGenerateSlots_TodayDropsStartedSlots(t *testing.T) {
	now := time.Date(2025, 3, 3, 10, 15, 0, 0, time.UTC)

	slots, err := generateSlots(mondayRules("09:00", "12:00"), nil, monday, 60, 30, now)

	require.NoError(t, err)
	assert.Equal(t, []string{"10:30", "11:00"}, starts(slots))
}

func TestGenerateSlots_DayOff(t *testing.T) {
	now := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

	slots, err := generateSlots(mondayRules("09:00", "17:00"), nil, monday.AddDate(0, 0, 1), 60, 30, now)

	require.NoError(t, err)
	assert.Empty(t, slots)
}
