package availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/availability"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
	providerRepo "github.com/m04kA/SMC-MarketplaceBooking/internal/infra/storage/provider"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/service/availability/models"
)

// Service сервис недельного шаблона доступности исполнителя
type Service struct {
	availabilityRepo AvailabilityRepository
	providerRepo     ProviderRepository
	txManager        TransactionManager
	logger           Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(
	availabilityRepo AvailabilityRepository,
	providerRepo ProviderRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		availabilityRepo: availabilityRepo,
		providerRepo:     providerRepo,
		txManager:        txManager,
		logger:           logger,
	}
}

// Get возвращает недельный шаблон исполнителя
func (s *Service) Get(ctx context.Context, providerID int64) (*models.AvailabilityResponse, error) {
	s.logger.Info("Get: fetching availability for provider=%d", providerID)

	if _, err := s.getProvider(ctx, providerID); err != nil {
		return nil, err
	}

	rules, err := s.availabilityRepo.GetByProvider(ctx, providerID)
	if err != nil {
		s.logger.Error("Get: repository error for provider=%d: %v", providerID, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainRules(providerID, rules), nil
}

// Replace полностью заменяет недельный шаблон
// Доступно только самому исполнителю
func (s *Service) Replace(ctx context.Context, req *models.ReplaceRequest) (*models.AvailabilityResponse, error) {
	s.logger.Info("Replace: replacing %d rules for provider=%d by profile=%d",
		len(req.Rules), req.ProviderID, req.Actor.ProfileID)

	// 1. Конвертируем и валидируем правила
	rules, err := req.ToDomainRules()
	if err != nil {
		s.logger.Warn("Replace: invalid rule time for provider=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := availability.ValidateRules(rules); err != nil {
		s.logger.Warn("Replace: invalid rules for provider=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 2. Проверяем владельца
	provider, err := s.getProvider(ctx, req.ProviderID)
	if err != nil {
		return nil, err
	}

	if !req.Actor.IsProvider() || provider.ProfileID != req.Actor.ProfileID {
		s.logger.Warn("Replace: profile=%d is not the owner of provider=%d", req.Actor.ProfileID, req.ProviderID)
		return nil, ErrAccessDenied
	}

	// 3. Удаление старого и вставка нового шаблона атомарно
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		return s.availabilityRepo.ReplaceForProvider(txCtx, req.ProviderID, rules)
	})
	if err != nil {
		s.logger.Error("Replace: failed to replace rules for provider=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: Replace - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Replace: successfully replaced availability for provider=%d", req.ProviderID)
	return models.FromDomainRules(req.ProviderID, rules), nil
}

// getProvider получает исполнителя с трансляцией ошибок репозитория
func (s *Service) getProvider(ctx context.Context, providerID int64) (*domain.ServiceProvider, error) {
	provider, err := s.providerRepo.GetByID(ctx, providerID)
	if err != nil {
		if errors.Is(err, providerRepo.ErrProviderNotFound) {
			s.logger.Warn("getProvider: provider id=%d not found", providerID)
			return nil, ErrProviderNotFound
		}
		s.logger.Error("getProvider: failed to get provider id=%d: %v", providerID, err)
		return nil, fmt.Errorf("%w: failed to get provider: %v", ErrInternal, err)
	}
	return provider, nil
}
