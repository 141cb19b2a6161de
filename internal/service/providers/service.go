package providers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
	profileRepo "github.com/m04kA/SMC-MarketplaceBooking/internal/infra/storage/profile"
	providerRepo "github.com/m04kA/SMC-MarketplaceBooking/internal/infra/storage/provider"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/service/providers/models"
)

const maxBusinessNameLength = 200

// Service сервис исполнителей
type Service struct {
	providerRepo ProviderRepository
	profileRepo  ProfileRepository
	reviewRepo   ReviewRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса исполнителей
func NewService(
	providerRepo ProviderRepository,
	profileRepo ProfileRepository,
	reviewRepo ReviewRepository,
	logger Logger,
) *Service {
	return &Service{
		providerRepo: providerRepo,
		profileRepo:  profileRepo,
		reviewRepo:   reviewRepo,
		logger:       logger,
	}
}

// Onboard регистрирует профиль как исполнителя
// Новый исполнитель получает статус pending и не принимает заявок до модерации
func (s *Service) Onboard(ctx context.Context, req *models.OnboardRequest) (*models.ProviderResponse, error) {
	s.logger.Info("Onboard: profile=%d, business=%q", req.Actor.ProfileID, req.BusinessName)

	// 1. Валидация входных данных
	if err := validateOnboard(req); err != nil {
		s.logger.Warn("Onboard: validation failed: %v", err)
		return nil, err
	}

	// 2. Профиль должен существовать и иметь роль исполнителя
	profile, err := s.profileRepo.GetByID(ctx, req.Actor.ProfileID)
	if err != nil {
		if errors.Is(err, profileRepo.ErrProfileNotFound) {
			s.logger.Warn("Onboard: profile id=%d not found", req.Actor.ProfileID)
			return nil, ErrProfileNotFound
		}
		s.logger.Error("Onboard: failed to get profile id=%d: %v", req.Actor.ProfileID, err)
		return nil, fmt.Errorf("%w: Onboard - failed to get profile: %v", ErrInternal, err)
	}

	if !req.Actor.IsProvider() || profile.UserType != domain.RoleProvider {
		s.logger.Warn("Onboard: profile id=%d has role %s", profile.ID, profile.UserType)
		return nil, ErrAccessDenied
	}

	// 3. Создаём исполнителя
	created, err := s.providerRepo.Create(ctx, &domain.ServiceProvider{
		ProfileID:          profile.ID,
		BusinessName:       strings.TrimSpace(req.BusinessName),
		Description:        req.Description,
		ExperienceYears:    req.ExperienceYears,
		HourlyRate:         req.HourlyRate,
		ServiceRadius:      req.ServiceRadius,
		Skills:             req.Skills,
		VerificationStatus: domain.ProviderPending,
	})
	if err != nil {
		if errors.Is(err, providerRepo.ErrProviderExists) {
			s.logger.Warn("Onboard: profile id=%d is already a provider", profile.ID)
			return nil, ErrProviderExists
		}
		s.logger.Error("Onboard: failed to create provider for profile=%d: %v", profile.ID, err)
		return nil, fmt.Errorf("%w: Onboard - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Onboard: provider id=%d created for profile=%d, awaiting verification", created.ID, profile.ID)
	return models.FromDomainProvider(created), nil
}

// GetByID возвращает карточку исполнителя
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ProviderResponse, error) {
	s.logger.Info("GetByID: fetching provider id=%d", id)

	provider, err := s.getProvider(ctx, id)
	if err != nil {
		return nil, err
	}

	return models.FromDomainProvider(provider), nil
}

// GetReviews возвращает отзывы исполнителя, новые первыми
func (s *Service) GetReviews(ctx context.Context, providerID int64) (*models.ReviewListResponse, error) {
	s.logger.Info("GetReviews: fetching reviews for provider=%d", providerID)

	provider, err := s.getProvider(ctx, providerID)
	if err != nil {
		return nil, err
	}

	reviews, err := s.reviewRepo.GetByProvider(ctx, providerID)
	if err != nil {
		s.logger.Error("GetReviews: repository error for provider=%d: %v", providerID, err)
		return nil, fmt.Errorf("%w: GetReviews - repository error: %v", ErrInternal, err)
	}

	resp := &models.ReviewListResponse{
		ProviderID:    provider.ID,
		AverageRating: provider.AverageRating,
		TotalReviews:  provider.TotalReviews,
		Reviews:       make([]models.ReviewResponse, 0, len(reviews)),
	}
	for _, r := range reviews {
		resp.Reviews = append(resp.Reviews, models.FromDomainReview(r))
	}

	return resp, nil
}

func (s *Service) getProvider(ctx context.Context, id int64) (*domain.ServiceProvider, error) {
	provider, err := s.providerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, providerRepo.ErrProviderNotFound) {
			s.logger.Warn("getProvider: provider id=%d not found", id)
			return nil, ErrProviderNotFound
		}
		s.logger.Error("getProvider: repository error for provider id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: getProvider - repository error: %v", ErrInternal, err)
	}
	return provider, nil
}

func validateOnboard(req *models.OnboardRequest) error {
	name := strings.TrimSpace(req.BusinessName)
	if name == "" {
		return fmt.Errorf("%w: business name is required", ErrInvalidInput)
	}
	if len([]rune(name)) > maxBusinessNameLength {
		return fmt.Errorf("%w: business name longer than %d characters", ErrInvalidInput, maxBusinessNameLength)
	}
	if req.ExperienceYears != nil && *req.ExperienceYears < 0 {
		return fmt.Errorf("%w: experience must not be negative", ErrInvalidInput)
	}
	if req.HourlyRate != nil && *req.HourlyRate < 0 {
		return fmt.Errorf("%w: hourly rate must not be negative", ErrInvalidInput)
	}
	if req.ServiceRadius != nil && *req.ServiceRadius <= 0 {
		return fmt.Errorf("%w: service radius must be positive", ErrInvalidInput)
	}
	return nil
}
