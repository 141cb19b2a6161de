package listings

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/service/listings/models"
)

// validateListing проверяет поля услуги перед записью
func validateListing(l *domain.ServiceListing) error {
	title := strings.TrimSpace(l.Title)
	if title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if len([]rune(title)) > domain.MaxListingTitleLength {
		return fmt.Errorf("%w: title longer than %d characters", ErrInvalidInput, domain.MaxListingTitleLength)
	}

	if _, ok := domain.ParsePriceType(string(l.PriceType)); !ok {
		return fmt.Errorf("%w: unknown price type %q", ErrInvalidInput, l.PriceType)
	}

	if l.Price != nil && *l.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}

	if l.DurationMinutes != nil {
		d := *l.DurationMinutes
		if d < domain.MinDurationMinutes || d > domain.MaxDurationMinutes {
			return fmt.Errorf("%w: duration must be between %d and %d minutes",
				ErrInvalidInput, domain.MinDurationMinutes, domain.MaxDurationMinutes)
		}
	}

	return nil
}

// toSearchFilter проверяет фильтры каталога и подставляет значения по умолчанию
func toSearchFilter(req *models.SearchListingsRequest) (domain.ListingSearchFilter, error) {
	sort, ok := domain.ParseListingSort(req.Sort)
	if !ok {
		return domain.ListingSearchFilter{}, fmt.Errorf("%w: unknown sort %q", ErrInvalidInput, req.Sort)
	}

	if req.MinPrice != nil && *req.MinPrice < 0 {
		return domain.ListingSearchFilter{}, fmt.Errorf("%w: minPrice must not be negative", ErrInvalidInput)
	}
	if req.MinPrice != nil && req.MaxPrice != nil && *req.MinPrice > *req.MaxPrice {
		return domain.ListingSearchFilter{}, fmt.Errorf("%w: minPrice greater than maxPrice", ErrInvalidInput)
	}

	if req.MinRating != nil && (*req.MinRating < domain.MinRating || *req.MinRating > domain.MaxRating) {
		return domain.ListingSearchFilter{}, fmt.Errorf("%w: minRating must be between %d and %d",
			ErrInvalidInput, domain.MinRating, domain.MaxRating)
	}

	limit := req.Limit
	if limit == 0 {
		limit = domain.DefaultSearchLimit
	}
	if limit < 0 || limit > domain.MaxSearchLimit {
		return domain.ListingSearchFilter{}, fmt.Errorf("%w: limit must be between 1 and %d", ErrInvalidInput, domain.MaxSearchLimit)
	}
	if req.Offset < 0 {
		return domain.ListingSearchFilter{}, fmt.Errorf("%w: offset must not be negative", ErrInvalidInput)
	}

	return domain.ListingSearchFilter{
		CategoryID: req.CategoryID,
		MinPrice:   req.MinPrice,
		MaxPrice:   req.MaxPrice,
		MinRating:  req.MinRating,
		Sort:       sort,
		Limit:      limit,
		Offset:     req.Offset,
	}, nil
}
