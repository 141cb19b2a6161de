package domain

import (
	"time"

	"github.com/m04kA/SMC-MarketplaceBooking/pkg/types"
)

// EventKind booking lifecycle event type
type EventKind string

const (
	EventBookingRequest   EventKind = "booking_request"
	EventBookingConfirmed EventKind = "booking_confirmed"
	EventBookingCancelled EventKind = "booking_cancelled"
	EventBookingCompleted EventKind = "booking_completed"
)

// BookingLifecycleEvent notification payload emitted after a successful change
type BookingLifecycleEvent struct {
	Kind          EventKind
	Recipient     Role
	BookingID     int64
	ClientID      int64
	ProviderID    int64
	ListingID     int64
	Status        BookingStatus
	ScheduledDate time.Time
	ScheduledTime types.TimeString
	OccurredAt    time.Time
}

// NewLifecycleEvent builds an event from a booking snapshot
func NewLifecycleEvent(kind EventKind, recipient Role, b *Booking, at time.Time) BookingLifecycleEvent {
	return BookingLifecycleEvent{
		Kind:          kind,
		Recipient:     recipient,
		BookingID:     b.ID,
		ClientID:      b.ClientID,
		ProviderID:    b.ProviderID,
		ListingID:     b.ListingID,
		Status:        b.Status,
		ScheduledDate: b.ScheduledDate,
		ScheduledTime: b.ScheduledTime,
		OccurredAt:    at,
	}
}
