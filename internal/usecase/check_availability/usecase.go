package check_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/availability"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
	providerRepo "github.com/m04kA/SMC-MarketplaceBooking/internal/infra/storage/provider"
)

// UseCase публичная проверка доступности слота исполнителя
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

// Execute возвращает вердикт по слоту. Отказ не является ошибкой
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckAvailability: provider=%d, date=%s, time=%s, duration=%d",
		req.ProviderID, req.Date.Format(domain.DateFormat), req.StartTime, req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckAvailability: validation failed: %v", err)
		return nil, err
	}

	duration := req.DurationMinutes
	if duration == 0 {
		duration = domain.DefaultDurationMinutes
	}

	// 2. Исполнитель должен существовать
	if _, err := uc.providerRepo.GetByID(ctx, req.ProviderID); err != nil {
		if errors.Is(err, providerRepo.ErrProviderNotFound) {
			uc.logger.Warn("CheckAvailability: provider id=%d not found", req.ProviderID)
			return nil, ErrProviderNotFound
		}
		uc.logger.Error("CheckAvailability: failed to get provider id=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to get provider: %v", ErrInternal, err)
	}

	// 3. Шаблон и бронирования на дату
	rules, err := uc.availabilityRepo.GetByProvider(ctx, req.ProviderID)
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to get availability for provider=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to get availability: %v", ErrInternal, err)
	}

	bookings, err := uc.bookingRepo.ListActiveByProviderAndDate(ctx, req.ProviderID, req.Date)
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to get bookings for provider=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 4. Вердикт
	verdict, err := availability.Evaluate(rules, bookings, availability.Candidate{
		Date:            req.Date,
		StartTime:       req.StartTime,
		DurationMinutes: duration,
	}, uc.timeProvider.Now())
	if err != nil {
		uc.logger.Error("CheckAvailability: evaluation failed for provider=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	uc.logger.Info("CheckAvailability: provider=%d available=%t reason=%s", req.ProviderID, verdict.Available, verdict.Reason)

	return &Response{
		ProviderID:      req.ProviderID,
		Date:            req.Date,
		StartTime:       req.StartTime,
		DurationMinutes: duration,
		Available:       verdict.Available,
		Reason:          verdict.Reason,
	}, nil
}
