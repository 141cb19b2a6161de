package get_conversation

import (
	"context"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/service/messages/models"
)

type MessageService interface {
	GetConversation(ctx context.Context, req *models.ConversationRequest) (*models.ConversationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
