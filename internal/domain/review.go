package domain

import "time"

// Review rating left by a client after a completed booking
type Review struct {
	ID         int64
	BookingID  int64
	ReviewerID int64
	ProviderID int64
	Rating     int
	Comment    *string
	CreatedAt  time.Time
}

// Message direct message between profiles, optionally tied to a booking
type Message struct {
	ID         int64
	SenderID   int64
	ReceiverID int64
	BookingID  *int64
	Content    string
	CreatedAt  time.Time
}
