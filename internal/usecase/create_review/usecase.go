package create_review

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-MarketplaceBooking/internal/infra/storage/booking"
	reviewRepo "github.com/m04kA/SMC-MarketplaceBooking/internal/infra/storage/review"
)

// UseCase use case создания отзыва о выполненной работе
type UseCase struct {
	bookingRepo  BookingRepository
	reviewRepo   ReviewRepository
	providerRepo ProviderRepository
	txManager    TransactionManager
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	reviewRepo ReviewRepository,
	providerRepo ProviderRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		reviewRepo:   reviewRepo,
		providerRepo: providerRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// Execute сохраняет отзыв и пересчитывает рейтинг исполнителя в одной транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReview: booking=%d, reviewer=%d, rating=%d", req.BookingID, req.Actor.ProfileID, req.Rating)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReview: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем бронирование
	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("CreateReview: booking id=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("CreateReview: failed to get booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	// 3. Отзыв оставляет только клиент и только после завершения
	if !req.Actor.IsClient() || booking.ClientID != req.Actor.ProfileID {
		uc.logger.Warn("CreateReview: profile=%d is not the client of booking id=%d", req.Actor.ProfileID, booking.ID)
		return nil, ErrAccessDenied
	}

	if booking.Status != domain.StatusCompleted {
		uc.logger.Warn("CreateReview: booking id=%d has status=%s", booking.ID, booking.Status)
		return nil, ErrBookingNotCompleted
	}

	resp := &Response{}

	// 4. Отзыв и пересчёт рейтинга
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// Блокировка исполнителя: рейтинг пересчитывается по всем отзывам, включая параллельные
		if err := uc.providerRepo.LockForRatingUpdate(txCtx, booking.ProviderID); err != nil {
			uc.logger.Error("CreateReview: failed to lock provider=%d: %v", booking.ProviderID, err)
			return fmt.Errorf("%w: failed to lock provider: %v", ErrInternal, err)
		}

		created, err := uc.reviewRepo.Create(txCtx, &domain.Review{
			BookingID:  booking.ID,
			ReviewerID: req.Actor.ProfileID,
			ProviderID: booking.ProviderID,
			Rating:     req.Rating,
			Comment:    req.Comment,
		})
		if err != nil {
			if errors.Is(err, reviewRepo.ErrReviewExists) {
				uc.logger.Warn("CreateReview: booking id=%d already reviewed", booking.ID)
				return ErrAlreadyReviewed
			}
			uc.logger.Error("CreateReview: failed to create review: %v", err)
			return fmt.Errorf("%w: failed to create review: %v", ErrInternal, err)
		}

		ratings, err := uc.reviewRepo.GetRatingsByProvider(txCtx, booking.ProviderID)
		if err != nil {
			uc.logger.Error("CreateReview: failed to get ratings for provider=%d: %v", booking.ProviderID, err)
			return fmt.Errorf("%w: failed to get ratings: %v", ErrInternal, err)
		}

		average, total := ratingSummary(ratings)
		if err := uc.providerRepo.UpdateRatingSummary(txCtx, booking.ProviderID, average, total); err != nil {
			uc.logger.Error("CreateReview: failed to update rating for provider=%d: %v", booking.ProviderID, err)
			return fmt.Errorf("%w: failed to update rating: %v", ErrInternal, err)
		}

		resp.Review = created
		resp.AverageRating = average
		resp.TotalReviews = total
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateReview: review id=%d saved, provider=%d rating=%.2f (%d reviews)",
		resp.Review.ID, booking.ProviderID, resp.AverageRating, resp.TotalReviews)

	return resp, nil
}
