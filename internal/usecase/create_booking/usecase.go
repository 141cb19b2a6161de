package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/availability"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
	listingRepo "github.com/m04kA/SMC-MarketplaceBooking/internal/infra/storage/listing"
	providerRepo "github.com/m04kA/SMC-MarketplaceBooking/internal/infra/storage/provider"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/lifecycle"
	"github.com/m04kA/SMC-MarketplaceBooking/pkg/txmanager"
)

// UseCase use case для создания бронирования
type UseCase struct {
	engine           *lifecycle.Engine
	bookingRepo      BookingRepository
	availabilityRepo AvailabilityRepository
	listingRepo      ListingRepository
	providerRepo     ProviderRepository
	notifier         Notifier
	txManager        TransactionManager
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	engine *lifecycle.Engine,
	bookingRepo BookingRepository,
	availabilityRepo AvailabilityRepository,
	listingRepo ListingRepository,
	providerRepo ProviderRepository,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		engine:           engine,
		bookingRepo:      bookingRepo,
		availabilityRepo: availabilityRepo,
		listingRepo:      listingRepo,
		providerRepo:     providerRepo,
		notifier:         notifier,
		txManager:        txManager,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case создания бронирования
// Проверка слота и вставка выполняются в одной сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: client=%d, listing=%d, date=%s, time=%s",
		req.Actor.ProfileID, req.ListingID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем услугу
	listing, err := uc.listingRepo.GetByID(ctx, req.ListingID)
	if err != nil {
		if errors.Is(err, listingRepo.ErrListingNotFound) {
			uc.logger.Warn("CreateBooking: listing id=%d not found", req.ListingID)
			return nil, ErrListingNotFound
		}
		uc.logger.Error("CreateBooking: failed to get listing id=%d: %v", req.ListingID, err)
		return nil, fmt.Errorf("%w: failed to get listing: %v", ErrInternal, err)
	}

	// 4. Получаем исполнителя услуги
	provider, err := uc.providerRepo.GetByID(ctx, listing.ProviderID)
	if err != nil {
		if errors.Is(err, providerRepo.ErrProviderNotFound) {
			uc.logger.Warn("CreateBooking: provider id=%d not found", listing.ProviderID)
			return nil, ErrProviderNotFound
		}
		uc.logger.Error("CreateBooking: failed to get provider id=%d: %v", listing.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to get provider: %v", ErrInternal, err)
	}

	// 5. Собираем бронирование: роль, активность услуги, модерация исполнителя, цена
	booking, intent, err := uc.engine.NewBooking(lifecycle.CreateRequest{
		Actor:           req.Actor,
		ListingID:       req.ListingID,
		ScheduledDate:   req.Date,
		ScheduledTime:   req.StartTime,
		DurationMinutes: req.DurationMinutes,
		ClientNotes:     req.Notes,
	}, listing, provider)
	if err != nil {
		uc.logger.Warn("CreateBooking: rejected for client=%d, listing=%d: %v", req.Actor.ProfileID, req.ListingID, err)
		return nil, err
	}

	if err := validateDuration(booking.DurationMinutes); err != nil {
		uc.logger.Warn("CreateBooking: listing id=%d has unsupported duration: %v", listing.ID, err)
		return nil, err
	}

	var result *domain.Booking

	// 6. Проверка слота и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Недельный шаблон исполнителя
		rules, err := uc.availabilityRepo.GetByProvider(txCtx, provider.ID)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get availability for provider=%d: %v", provider.ID, err)
			return fmt.Errorf("%w: failed to get availability: %w", ErrInternal, err)
		}

		// 6.2. Активные бронирования исполнителя на дату (FOR UPDATE)
		bookings, err := uc.bookingRepo.ListActiveByProviderAndDate(txCtx, provider.ID, req.Date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings for provider=%d: %v", provider.ID, err)
			return fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
		}

		// 6.3. Проверяем доступность слота
		candidate := availability.Candidate{
			Date:            req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: booking.DurationMinutes,
		}
		if err := availability.Check(rules, bookings, candidate, now); err != nil {
			uc.logger.Warn("CreateBooking: slot rejected for provider=%d: %v", provider.ID, err)
			return err
		}

		// 6.4. Сохраняем бронирование
		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		// Параллельная транзакция заняла тот же день исполнителя
		if errors.Is(err, txmanager.ErrSerializationFailure) {
			uc.logger.Warn("CreateBooking: concurrent booking for provider=%d on %s", provider.ID, req.Date.Format(domain.DateFormat))
			return nil, fmt.Errorf("%w: %v", availability.ErrSlotConflict, err)
		}
		return nil, err
	}

	// 7. Уведомляем исполнителя о новой заявке только после коммита
	uc.notifier.Notify(ctx, domain.NewLifecycleEvent(intent.Kind, intent.Recipient, result, now))

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	return &Response{Booking: result}, nil
}
