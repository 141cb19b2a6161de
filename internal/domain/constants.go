package domain

// Default values
const (
	DefaultDurationMinutes = 60
	SlotStepMinutes        = 30 // step of generated start times
)

// Business validation constants
const (
	MinDurationMinutes          = 15
	MaxDurationMinutes          = 720 // 12 hours
	MinRating                   = 1
	MaxRating                   = 5
	MaxNotesLength              = 1000
	MaxCancellationReasonLength = 500
	MaxReviewCommentLength      = 2000
	MaxMessageLength            = 4000
	MaxListingTitleLength       = 200
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses statuses that occupy a provider's time
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}

// InactiveStatuses terminal statuses
var InactiveStatuses = []BookingStatus{
	StatusCompleted,
	StatusCancelled,
}
