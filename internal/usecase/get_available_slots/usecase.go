package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
	providerRepo "github.com/m04kA/SMC-MarketplaceBooking/internal/infra/storage/provider"
)

// UseCase use case для получения свободного времени исполнителя на дату
type UseCase struct {
	bookingRepo      BookingRepository
	availabilityRepo AvailabilityRepository
	providerRepo     ProviderRepository
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	availabilityRepo AvailabilityRepository,
	providerRepo ProviderRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		availabilityRepo: availabilityRepo,
		providerRepo:     providerRepo,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: provider=%d, date=%s, duration=%d",
		req.ProviderID, req.Date.Format(domain.DateFormat), req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	duration := req.DurationMinutes
	if duration == 0 {
		duration = domain.DefaultDurationMinutes
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Проверяем исполнителя
	if _, err := uc.providerRepo.GetByID(ctx, req.ProviderID); err != nil {
		if errors.Is(err, providerRepo.ErrProviderNotFound) {
			uc.logger.Warn("GetAvailableSlots: provider id=%d not found", req.ProviderID)
			return nil, ErrProviderNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get provider id=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to get provider: %v", ErrInternal, err)
	}

	// 4. Недельный шаблон
	rules, err := uc.availabilityRepo.GetByProvider(ctx, req.ProviderID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get availability for provider=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to get availability: %v", ErrInternal, err)
	}

	// 5. Активные бронирования на дату
	bookings, err := uc.bookingRepo.ListActiveByProviderAndDate(ctx, req.ProviderID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings for provider=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 6. Генерируем слоты и отбрасываем занятые
	slots, err := generateSlots(rules, bookings, req.Date, duration, domain.SlotStepMinutes, now)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	uc.logger.Info("GetAvailableSlots: provider=%d has %d free slots on %s",
		req.ProviderID, len(slots), req.Date.Format(domain.DateFormat))

	return &Response{
		ProviderID:      req.ProviderID,
		Date:            req.Date,
		DurationMinutes: duration,
		Slots:           slots,
	}, nil
}
