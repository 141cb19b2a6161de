package notification

import (
	"time"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
)

// SchemaVersion версия формата события
const SchemaVersion = "1"

// EventPayload тело сообщения для сервиса рассылки писем
type EventPayload struct {
	Type          string    `json:"type"`
	Recipient     string    `json:"recipient"`
	BookingID     int64     `json:"bookingId"`
	ClientID      int64     `json:"clientId"`
	ProviderID    int64     `json:"providerId"`
	ListingID     int64     `json:"listingId"`
	Status        string    `json:"status"`
	ScheduledDate string    `json:"scheduledDate"`
	ScheduledTime string    `json:"scheduledTime"`
	OccurredAt    time.Time `json:"occurredAt"`
}

// FromDomainEvent конвертирует доменное событие в payload
func FromDomainEvent(e domain.BookingLifecycleEvent) EventPayload {
	return EventPayload{
		Type:          string(e.Kind),
		Recipient:     string(e.Recipient),
		BookingID:     e.BookingID,
		ClientID:      e.ClientID,
		ProviderID:    e.ProviderID,
		ListingID:     e.ListingID,
		Status:        string(e.Status),
		ScheduledDate: e.ScheduledDate.Format(domain.DateFormat),
		ScheduledTime: e.ScheduledTime.String(),
		OccurredAt:    e.OccurredAt.UTC(),
	}
}
