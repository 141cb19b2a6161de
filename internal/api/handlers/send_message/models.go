package send_message

import (
	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/service/messages/models"
)

// SendMessageRequest HTTP request model
type SendMessageRequest struct {
	ReceiverID int64  `json:"receiverId" validate:"required,gt=0"`
	BookingID  *int64 `json:"bookingId,omitempty" validate:"omitempty,gt=0"`
	Content    string `json:"content" validate:"required,max=4000"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *SendMessageRequest) ToServiceRequest(actor domain.Actor) *models.SendRequest {
	return &models.SendRequest{
		Actor:      actor,
		ReceiverID: r.ReceiverID,
		BookingID:  r.BookingID,
		Content:    r.Content,
	}
}
