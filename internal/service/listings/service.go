package listings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
	listingRepo "github.com/m04kA/SMC-MarketplaceBooking/internal/infra/storage/listing"
	providerRepo "github.com/m04kA/SMC-MarketplaceBooking/internal/infra/storage/provider"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/service/listings/models"
	"github.com/m04kA/SMC-MarketplaceBooking/pkg/ptr"
)

// Service сервис услуг исполнителей
type Service struct {
	listingRepo  ListingRepository
	providerRepo ProviderRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса услуг
func NewService(listingRepo ListingRepository, providerRepo ProviderRepository, logger Logger) *Service {
	return &Service{
		listingRepo:  listingRepo,
		providerRepo: providerRepo,
		logger:       logger,
	}
}

// Create публикует новую услугу от имени исполнителя текущего профиля
func (s *Service) Create(ctx context.Context, req *models.CreateListingRequest) (*models.ListingResponse, error) {
	s.logger.Info("Create: creating listing %q by profile=%d", req.Title, req.Actor.ProfileID)

	provider, err := s.actorProvider(ctx, req.Actor)
	if err != nil {
		return nil, err
	}

	listing := &domain.ServiceListing{
		ProviderID:      provider.ID,
		CategoryID:      req.CategoryID,
		Title:           req.Title,
		Description:     req.Description,
		Price:           req.Price,
		PriceType:       domain.PriceType(req.PriceType),
		DurationMinutes: req.DurationMinutes,
		Location:        req.Location,
		IsActive:        true,
	}

	if err := validateListing(listing); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	created, err := s.listingRepo.Create(ctx, listing)
	if err != nil {
		s.logger.Error("Create: repository error for provider=%d: %v", provider.ID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created listing id=%d for provider=%d", created.ID, provider.ID)
	return models.FromDomainListing(created), nil
}

// GetByID возвращает опубликованную услугу
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ListingResponse, error) {
	s.logger.Info("GetByID: fetching listing id=%d", id)

	listing, err := s.getListing(ctx, id)
	if err != nil {
		return nil, err
	}

	if !listing.IsActive {
		s.logger.Warn("GetByID: listing id=%d is inactive", id)
		return nil, ErrListingNotFound
	}

	return models.FromDomainListing(listing), nil
}

// GetByProvider возвращает опубликованные услуги исполнителя
func (s *Service) GetByProvider(ctx context.Context, providerID int64) (*models.ListingListResponse, error) {
	s.logger.Info("GetByProvider: fetching listings for provider=%d", providerID)

	listings, err := s.listingRepo.GetByProvider(ctx, providerID, true)
	if err != nil {
		s.logger.Error("GetByProvider: repository error for provider=%d: %v", providerID, err)
		return nil, fmt.Errorf("%w: GetByProvider - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainListingList(listings), nil
}

// Search ищет в каталоге опубликованные услуги одобренных исполнителей
func (s *Service) Search(ctx context.Context, req *models.SearchListingsRequest) (*models.ListingListResponse, error) {
	filter, err := toSearchFilter(req)
	if err != nil {
		s.logger.Warn("Search: validation failed: %v", err)
		return nil, err
	}

	s.logger.Info("Search: category=%v, price=[%v, %v], minRating=%v, sort=%s, limit=%d, offset=%d",
		ptr.Value(filter.CategoryID), ptr.Value(filter.MinPrice), ptr.Value(filter.MaxPrice),
		ptr.Value(filter.MinRating), filter.Sort, filter.Limit, filter.Offset)

	listings, err := s.listingRepo.Search(ctx, filter)
	if err != nil {
		s.logger.Error("Search: repository error: %v", err)
		return nil, fmt.Errorf("%w: Search - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainListingList(listings), nil
}

// Update изменяет услугу
// Доступно только исполнителю услуги
func (s *Service) Update(ctx context.Context, req *models.UpdateListingRequest) (*models.ListingResponse, error) {
	s.logger.Info("Update: updating listing id=%d by profile=%d", req.ListingID, req.Actor.ProfileID)

	listing, err := s.ownedListing(ctx, req.ListingID, req.Actor)
	if err != nil {
		return nil, err
	}

	req.Apply(listing)

	if err := validateListing(listing); err != nil {
		s.logger.Warn("Update: validation failed for listing id=%d: %v", req.ListingID, err)
		return nil, err
	}

	updated, err := s.listingRepo.Update(ctx, listing)
	if err != nil {
		if errors.Is(err, listingRepo.ErrListingNotFound) {
			return nil, ErrListingNotFound
		}
		s.logger.Error("Update: repository error for listing id=%d: %v", req.ListingID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated listing id=%d", req.ListingID)
	return models.FromDomainListing(updated), nil
}

// SetActive публикует или снимает услугу с публикации
// Снятая услуга не принимает новых бронирований, существующие не затрагиваются
func (s *Service) SetActive(ctx context.Context, listingID int64, active bool, actor domain.Actor) (*models.ListingResponse, error) {
	s.logger.Info("SetActive: listing id=%d active=%t by profile=%d", listingID, active, actor.ProfileID)

	listing, err := s.ownedListing(ctx, listingID, actor)
	if err != nil {
		return nil, err
	}

	if err := s.listingRepo.SetActive(ctx, listingID, active); err != nil {
		if errors.Is(err, listingRepo.ErrListingNotFound) {
			return nil, ErrListingNotFound
		}
		s.logger.Error("SetActive: repository error for listing id=%d: %v", listingID, err)
		return nil, fmt.Errorf("%w: SetActive - repository error: %v", ErrInternal, err)
	}

	listing.IsActive = active
	return models.FromDomainListing(listing), nil
}

// Вспомогательные методы

func (s *Service) getListing(ctx context.Context, id int64) (*domain.ServiceListing, error) {
	listing, err := s.listingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, listingRepo.ErrListingNotFound) {
			s.logger.Warn("getListing: listing id=%d not found", id)
			return nil, ErrListingNotFound
		}
		s.logger.Error("getListing: repository error for listing id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: getListing - repository error: %v", ErrInternal, err)
	}
	return listing, nil
}

// ownedListing возвращает услугу, если она принадлежит исполнителю actor
func (s *Service) ownedListing(ctx context.Context, id int64, actor domain.Actor) (*domain.ServiceListing, error) {
	provider, err := s.actorProvider(ctx, actor)
	if err != nil {
		if errors.Is(err, ErrProviderNotFound) {
			return nil, ErrAccessDenied
		}
		return nil, err
	}

	listing, err := s.getListing(ctx, id)
	if err != nil {
		return nil, err
	}

	if listing.ProviderID != provider.ID {
		s.logger.Warn("ownedListing: provider=%d is not the owner of listing id=%d", provider.ID, id)
		return nil, ErrAccessDenied
	}

	return listing, nil
}

// actorProvider возвращает аккаунт исполнителя текущего профиля
func (s *Service) actorProvider(ctx context.Context, actor domain.Actor) (*domain.ServiceProvider, error) {
	if !actor.IsProvider() {
		s.logger.Warn("actorProvider: profile=%d has role %s", actor.ProfileID, actor.Role)
		return nil, ErrAccessDenied
	}

	provider, err := s.providerRepo.GetByProfileID(ctx, actor.ProfileID)
	if err != nil {
		if errors.Is(err, providerRepo.ErrProviderNotFound) {
			s.logger.Warn("actorProvider: profile=%d has no provider account", actor.ProfileID)
			return nil, ErrProviderNotFound
		}
		s.logger.Error("actorProvider: failed to get provider for profile=%d: %v", actor.ProfileID, err)
		return nil, fmt.Errorf("%w: failed to get provider: %v", ErrInternal, err)
	}

	return provider, nil
}
