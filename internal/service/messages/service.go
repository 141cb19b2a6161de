package messages

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-MarketplaceBooking/internal/infra/storage/booking"
	profileRepo "github.com/m04kA/SMC-MarketplaceBooking/internal/infra/storage/profile"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/service/messages/models"
)

// Service сервис личных сообщений
type Service struct {
	messageRepo  MessageRepository
	profileRepo  ProfileRepository
	bookingRepo  BookingRepository
	providerRepo ProviderRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса сообщений
func NewService(
	messageRepo MessageRepository,
	profileRepo ProfileRepository,
	bookingRepo BookingRepository,
	providerRepo ProviderRepository,
	logger Logger,
) *Service {
	return &Service{
		messageRepo:  messageRepo,
		profileRepo:  profileRepo,
		bookingRepo:  bookingRepo,
		providerRepo: providerRepo,
		logger:       logger,
	}
}

// Send отправляет сообщение другому профилю
// Сообщение по бронированию могут писать друг другу только его клиент и исполнитель
func (s *Service) Send(ctx context.Context, req *models.SendRequest) (*models.MessageResponse, error) {
	s.logger.Info("Send: sender=%d, receiver=%d, booking=%v", req.Actor.ProfileID, req.ReceiverID, req.BookingID)

	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, fmt.Errorf("%w: content is required", ErrInvalidInput)
	}
	if len([]rune(content)) > domain.MaxMessageLength {
		return nil, fmt.Errorf("%w: content longer than %d characters", ErrInvalidInput, domain.MaxMessageLength)
	}
	if req.ReceiverID <= 0 || req.ReceiverID == req.Actor.ProfileID {
		return nil, fmt.Errorf("%w: invalid receiver", ErrInvalidInput)
	}

	if _, err := s.profileRepo.GetByID(ctx, req.ReceiverID); err != nil {
		if errors.Is(err, profileRepo.ErrProfileNotFound) {
			s.logger.Warn("Send: receiver profile id=%d not found", req.ReceiverID)
			return nil, ErrReceiverNotFound
		}
		s.logger.Error("Send: failed to get profile id=%d: %v", req.ReceiverID, err)
		return nil, fmt.Errorf("%w: Send - failed to get profile: %v", ErrInternal, err)
	}

	if req.BookingID != nil {
		if err := s.checkBookingParticipants(ctx, *req.BookingID, req.Actor.ProfileID, req.ReceiverID); err != nil {
			return nil, err
		}
	}

	created, err := s.messageRepo.Create(ctx, &domain.Message{
		SenderID:   req.Actor.ProfileID,
		ReceiverID: req.ReceiverID,
		BookingID:  req.BookingID,
		Content:    content,
	})
	if err != nil {
		s.logger.Error("Send: repository error: %v", err)
		return nil, fmt.Errorf("%w: Send - repository error: %v", ErrInternal, err)
	}

	resp := models.FromDomainMessage(created)
	return &resp, nil
}

// GetConversation возвращает переписку текущего профиля с другим профилем
func (s *Service) GetConversation(ctx context.Context, req *models.ConversationRequest) (*models.ConversationResponse, error) {
	s.logger.Info("GetConversation: profile=%d with=%d, booking=%v", req.Actor.ProfileID, req.OtherID, req.BookingID)

	if req.OtherID <= 0 || req.OtherID == req.Actor.ProfileID {
		return nil, fmt.Errorf("%w: invalid conversation partner", ErrInvalidInput)
	}

	if req.BookingID != nil {
		if err := s.checkBookingParticipants(ctx, *req.BookingID, req.Actor.ProfileID, req.OtherID); err != nil {
			return nil, err
		}
	}

	messages, err := s.messageRepo.GetConversation(ctx, req.Actor.ProfileID, req.OtherID, req.BookingID)
	if err != nil {
		s.logger.Error("GetConversation: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetConversation - repository error: %v", ErrInternal, err)
	}

	resp := &models.ConversationResponse{Messages: make([]models.MessageResponse, 0, len(messages))}
	for _, m := range messages {
		resp.Messages = append(resp.Messages, models.FromDomainMessage(m))
	}

	return resp, nil
}

// checkBookingParticipants проверяет, что оба профиля являются сторонами бронирования
func (s *Service) checkBookingParticipants(ctx context.Context, bookingID, profileA, profileB int64) error {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("checkBookingParticipants: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("checkBookingParticipants: failed to get booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	provider, err := s.providerRepo.GetByID(ctx, booking.ProviderID)
	if err != nil {
		s.logger.Error("checkBookingParticipants: failed to get provider id=%d: %v", booking.ProviderID, err)
		return fmt.Errorf("%w: failed to get provider: %v", ErrInternal, err)
	}

	pair := func(a, b int64) bool {
		return (a == booking.ClientID && b == provider.ProfileID) || (a == provider.ProfileID && b == booking.ClientID)
	}
	if !pair(profileA, profileB) {
		s.logger.Warn("checkBookingParticipants: profiles %d and %d are not parties of booking id=%d", profileA, profileB, bookingID)
		return ErrAccessDenied
	}

	return nil
}
