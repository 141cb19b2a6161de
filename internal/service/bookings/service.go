package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-MarketplaceBooking/internal/infra/storage/booking"
	providerRepo "github.com/m04kA/SMC-MarketplaceBooking/internal/infra/storage/provider"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/service/bookings/models"
)

// Service сервис для чтения бронирований
type Service struct {
	bookingRepo  BookingRepository
	providerRepo ProviderRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	providerRepo ProviderRepository,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		providerRepo: providerRepo,
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
// Бронирование видят только его клиент и исполнитель
func (s *Service) GetByID(ctx context.Context, id int64, actor domain.Actor) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for profile=%d(%s)", id, actor.ProfileID, actor.Role)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if err := s.checkParticipant(ctx, booking, actor); err != nil {
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// GetMyBookings возвращает бронирования текущего пользователя в зависимости от роли
func (s *Service) GetMyBookings(ctx context.Context, req *models.GetMyBookingsRequest) (*models.BookingListResponse, error) {
	if req.Actor.IsProvider() {
		return s.GetProviderBookings(ctx, req)
	}
	return s.GetClientBookings(ctx, req)
}

// GetClientBookings получает историю бронирований клиента
// Опционально фильтрует по статусу
func (s *Service) GetClientBookings(ctx context.Context, req *models.GetMyBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetClientBookings: fetching bookings for client=%d, status=%v", req.Actor.ProfileID, req.Status)

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetClientBookings: invalid status=%s for client=%d", *req.Status, req.Actor.ProfileID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByClientID(ctx, req.Actor.ProfileID, domainStatus)
	if err != nil {
		s.logger.Error("GetClientBookings: repository error for client=%d: %v", req.Actor.ProfileID, err)
		return nil, fmt.Errorf("%w: GetClientBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetClientBookings: successfully fetched %d bookings for client=%d", len(bookings), req.Actor.ProfileID)
	return models.FromDomainBookingList(bookings), nil
}

// GetProviderBookings получает заявки на услуги исполнителя с фильтрацией
// по периоду, статусу и включению неактивных бронирований
func (s *Service) GetProviderBookings(ctx context.Context, req *models.GetMyBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := fmt.Sprintf("GetProviderBookings: fetching bookings for profile=%d", req.Actor.ProfileID)
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info(logMsg)

	provider, err := s.providerRepo.GetByProfileID(ctx, req.Actor.ProfileID)
	if err != nil {
		if errors.Is(err, providerRepo.ErrProviderNotFound) {
			s.logger.Warn("GetProviderBookings: profile=%d has no provider account", req.Actor.ProfileID)
			return nil, ErrProviderNotFound
		}
		s.logger.Error("GetProviderBookings: failed to get provider for profile=%d: %v", req.Actor.ProfileID, err)
		return nil, fmt.Errorf("%w: GetProviderBookings - failed to get provider: %v", ErrInternal, err)
	}

	filter, err := req.ToProviderFilter(provider.ID)
	if err != nil {
		s.logger.Warn("GetProviderBookings: invalid filter for provider=%d: %v", provider.ID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByProviderWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetProviderBookings: repository error for provider=%d: %v", provider.ID, err)
		return nil, fmt.Errorf("%w: GetProviderBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetProviderBookings: successfully fetched %d bookings for provider=%d", len(bookings), provider.ID)
	return models.FromDomainBookingList(bookings), nil
}

// Вспомогательные методы

// checkParticipant проверяет, что пользователь является клиентом или исполнителем бронирования
func (s *Service) checkParticipant(ctx context.Context, booking *domain.Booking, actor domain.Actor) error {
	if actor.IsClient() && booking.ClientID == actor.ProfileID {
		return nil
	}

	if actor.IsProvider() {
		provider, err := s.providerRepo.GetByProfileID(ctx, actor.ProfileID)
		if err != nil && !errors.Is(err, providerRepo.ErrProviderNotFound) {
			s.logger.Error("checkParticipant: failed to get provider for profile=%d: %v", actor.ProfileID, err)
			return fmt.Errorf("%w: checkParticipant - failed to get provider: %v", ErrInternal, err)
		}
		if err == nil && provider.ID == booking.ProviderID {
			return nil
		}
	}

	s.logger.Warn("checkParticipant: access denied for profile=%d(%s) to booking id=%d",
		actor.ProfileID, actor.Role, booking.ID)
	return ErrAccessDenied
}
