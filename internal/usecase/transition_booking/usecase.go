package transition_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/availability"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-MarketplaceBooking/internal/infra/storage/booking"
	providerRepo "github.com/m04kA/SMC-MarketplaceBooking/internal/infra/storage/provider"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/lifecycle"
	"github.com/m04kA/SMC-MarketplaceBooking/pkg/txmanager"
)

// UseCase use case смены статуса бронирования
type UseCase struct {
	engine           *lifecycle.Engine
	bookingRepo      BookingRepository
	availabilityRepo AvailabilityRepository
	providerRepo     ProviderRepository
	notifier         Notifier
	metrics          MetricsRecorder
	txManager        TransactionManager
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	engine *lifecycle.Engine,
	bookingRepo BookingRepository,
	availabilityRepo AvailabilityRepository,
	providerRepo ProviderRepository,
	notifier Notifier,
	metrics MetricsRecorder,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		engine:           engine,
		bookingRepo:      bookingRepo,
		availabilityRepo: availabilityRepo,
		providerRepo:     providerRepo,
		notifier:         notifier,
		metrics:          metrics,
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

// Execute переводит бронирование в новый статус
// Статус в БД меняется только если он не изменился с момента чтения (compare-and-swap).
// Повтор уже применённого перехода возвращает текущее бронирование без изменений и уведомлений
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("TransitionBooking: booking=%d, target=%s, actor=%d(%s)",
		req.BookingID, req.Status, req.Actor.ProfileID, req.Actor.Role)

	// 1. Валидация входных данных
	target, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("TransitionBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	var decision *lifecycle.Decision
	var result *domain.Booking

	// 3. Чтение, проверка и запись в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Получаем бронирование
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("TransitionBooking: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("TransitionBooking: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
		}

		// 3.2. Менять статус могут только стороны бронирования
		if err := uc.checkParticipant(txCtx, booking, req.Actor); err != nil {
			return err
		}

		// 3.3. Проверяем переход
		decision, err = uc.engine.Decide(*booking, req.Actor, lifecycle.TransitionRequest{
			Target:             target,
			ProviderNotes:      req.ProviderNotes,
			CancellationReason: req.CancellationReason,
		}, now)
		if err != nil {
			uc.logger.Warn("TransitionBooking: booking id=%d %s -> %s rejected: %v", booking.ID, booking.Status, target, err)
			uc.metrics.RecordTransition(string(booking.Status), string(target), resultRejected)
			return err
		}

		if !decision.Changed {
			result = booking
			return nil
		}

		// 3.4. При подтверждении слот проверяется заново без учёта самого бронирования
		if decision.To == domain.StatusConfirmed {
			if err := uc.revalidateSlot(txCtx, booking, now); err != nil {
				uc.metrics.RecordTransition(string(decision.From), string(decision.To), resultRejected)
				return err
			}
		}

		// 3.5. Условное обновление статуса
		updated, err := uc.bookingRepo.ConditionalUpdate(txCtx, booking.ID, decision.From, decision.To, decision.Patch)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrStatusConflict) {
				return err
			}
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			uc.logger.Error("TransitionBooking: failed to update booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to update booking: %w", ErrInternal, err)
		}

		result = updated
		return nil
	})

	if err != nil {
		if errors.Is(err, bookingRepo.ErrStatusConflict) || errors.Is(err, txmanager.ErrSerializationFailure) {
			return uc.resolveConflict(ctx, req, target, err)
		}
		return nil, err
	}

	if !decision.Changed {
		uc.logger.Info("TransitionBooking: booking id=%d already %s, nothing to do", result.ID, result.Status)
		uc.metrics.RecordTransition(string(decision.From), string(decision.To), resultNoop)
		return &Response{Booking: result, Changed: false}, nil
	}

	uc.metrics.RecordTransition(string(decision.From), string(decision.To), resultApplied)

	// 4. Уведомления только после коммита
	for _, intent := range decision.Intents {
		uc.notifier.Notify(ctx, domain.NewLifecycleEvent(intent.Kind, intent.Recipient, result, now))
	}

	uc.logger.Info("TransitionBooking: booking id=%d moved %s -> %s, version=%d",
		result.ID, decision.From, decision.To, result.Version)

	return &Response{Booking: result, Changed: true}, nil
}

// checkParticipant проверяет, что actor является клиентом или исполнителем бронирования
func (uc *UseCase) checkParticipant(ctx context.Context, booking *domain.Booking, actor domain.Actor) error {
	switch actor.Role {
	case domain.RoleClient:
		if booking.ClientID == actor.ProfileID {
			return nil
		}
	case domain.RoleProvider:
		provider, err := uc.providerRepo.GetByProfileID(ctx, actor.ProfileID)
		if err != nil {
			if errors.Is(err, providerRepo.ErrProviderNotFound) {
				uc.logger.Warn("TransitionBooking: profile=%d has no provider account", actor.ProfileID)
				return ErrAccessDenied
			}
			uc.logger.Error("TransitionBooking: failed to get provider for profile=%d: %v", actor.ProfileID, err)
			return fmt.Errorf("%w: failed to get provider: %w", ErrInternal, err)
		}
		if provider.ID == booking.ProviderID {
			return nil
		}
	}

	uc.logger.Warn("TransitionBooking: access denied for profile=%d(%s) to booking id=%d",
		actor.ProfileID, actor.Role, booking.ID)
	return ErrAccessDenied
}

// revalidateSlot повторно проверяет доступность слота перед подтверждением
func (uc *UseCase) revalidateSlot(ctx context.Context, booking *domain.Booking, now time.Time) error {
	rules, err := uc.availabilityRepo.GetByProvider(ctx, booking.ProviderID)
	if err != nil {
		uc.logger.Error("TransitionBooking: failed to get availability for provider=%d: %v", booking.ProviderID, err)
		return fmt.Errorf("%w: failed to get availability: %w", ErrInternal, err)
	}

	bookings, err := uc.bookingRepo.ListActiveByProviderAndDate(ctx, booking.ProviderID, booking.ScheduledDate)
	if err != nil {
		uc.logger.Error("TransitionBooking: failed to get bookings for provider=%d: %v", booking.ProviderID, err)
		return fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
	}

	err = availability.Check(rules, bookings, availability.Candidate{
		Date:             booking.ScheduledDate,
		StartTime:        booking.ScheduledTime,
		DurationMinutes:  booking.DurationMinutes,
		ExcludeBookingID: booking.ID,
	}, now)
	if err != nil {
		uc.logger.Warn("TransitionBooking: booking id=%d cannot be confirmed: %v", booking.ID, err)
		return err
	}

	return nil
}

// resolveConflict перечитывает бронирование после проигранной гонки.
// Если параллельный запрос уже перевёл его в целевой статус, результат тот же
func (uc *UseCase) resolveConflict(ctx context.Context, req *Request, target domain.BookingStatus, cause error) (*Response, error) {
	bookingID := req.BookingID

	current, err := uc.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		uc.logger.Error("TransitionBooking: failed to re-read booking id=%d after conflict: %v", bookingID, err)
		return nil, fmt.Errorf("%w: %v", ErrConflict, cause)
	}

	if err := uc.checkParticipant(ctx, current, req.Actor); err != nil {
		return nil, err
	}

	if current.Status == target {
		uc.logger.Info("TransitionBooking: booking id=%d already moved to %s concurrently", bookingID, target)
		uc.metrics.RecordTransition(string(target), string(target), resultNoop)
		return &Response{Booking: current, Changed: false}, nil
	}

	uc.logger.Warn("TransitionBooking: booking id=%d conflict, current status=%s: %v", bookingID, current.Status, cause)
	uc.metrics.RecordTransition(string(current.Status), string(target), resultConflict)
	return nil, fmt.Errorf("%w: current status %s", ErrConflict, current.Status)
}
