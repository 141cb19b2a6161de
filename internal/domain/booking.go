package domain

import (
	"time"

	"github.com/m04kA/SMC-MarketplaceBooking/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// ParseBookingStatus converts a raw string into a known status
func ParseBookingStatus(s string) (BookingStatus, bool) {
	switch BookingStatus(s) {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return BookingStatus(s), true
	}
	return "", false
}

// IsTerminal returns true for statuses that admit no further transitions
func (s BookingStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// BlocksSlot returns true if a booking in this status occupies provider time
func (s BookingStatus) BlocksSlot() bool {
	return s == StatusPending || s == StatusConfirmed
}

// Booking represents a client's reservation of a provider listing
type Booking struct {
	ID              int64
	ClientID        int64 // profile id of the client
	ProviderID      int64 // service_providers.id
	ListingID       int64
	ScheduledDate   time.Time
	ScheduledTime   types.TimeString
	DurationMinutes int
	TotalPrice      *float64
	ClientNotes     *string
	ProviderNotes   *string
	Status          BookingStatus

	// Version увеличивается при каждом условном обновлении статуса
	Version int64

	CancellationReason *string
	CancelledBy        *Role
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EndTime returns scheduled time plus duration
func (b *Booking) EndTime() (types.TimeString, error) {
	return b.ScheduledTime.AddMinutes(b.DurationMinutes)
}

// IsActive returns true if the booking still blocks provider time
func (b *Booking) IsActive() bool {
	return b.Status.BlocksSlot()
}

// BookingStatusPatch optional fields written together with a status change
type BookingStatusPatch struct {
	ProviderNotes      *string
	CancellationReason *string
	CancelledBy        *Role
	CancelledAt        *time.Time
}

// ProviderBookingsFilter фильтр бронирований исполнителя
type ProviderBookingsFilter struct {
	ProviderID      int64          // Обязательный параметр
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать завершённые и отменённые
}

// IsSingleDay returns true when the filter targets exactly one date
func (f ProviderBookingsFilter) IsSingleDay() bool {
	return f.StartDate != nil && f.EndDate != nil && f.StartDate.Equal(*f.EndDate)
}
