package models

import (
	"time"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
)

// SendRequest запрос на отправку сообщения
type SendRequest struct {
	Actor      domain.Actor
	ReceiverID int64
	BookingID  *int64
	Content    string
}

// ConversationRequest запрос переписки с другим профилем
type ConversationRequest struct {
	Actor     domain.Actor
	OtherID   int64
	BookingID *int64
}

// MessageResponse сообщение
type MessageResponse struct {
	ID         int64     `json:"id"`
	SenderID   int64     `json:"senderId"`
	ReceiverID int64     `json:"receiverId"`
	BookingID  *int64    `json:"bookingId,omitempty"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ConversationResponse переписка в хронологическом порядке
type ConversationResponse struct {
	Messages []MessageResponse `json:"messages"`
}

// FromDomainMessage конвертирует domain модель в DTO
func FromDomainMessage(m *domain.Message) MessageResponse {
	return MessageResponse{
		ID:         m.ID,
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		BookingID:  m.BookingID,
		Content:    m.Content,
		CreatedAt:  m.CreatedAt,
	}
}
