package domain

import "time"

// PriceType how a listing's price is applied
type PriceType string

const (
	PriceHourly PriceType = "hourly"
	PriceFixed  PriceType = "fixed"
	PriceDaily  PriceType = "daily"
)

// ParsePriceType converts a raw string into a known price type
func ParsePriceType(s string) (PriceType, bool) {
	switch PriceType(s) {
	case PriceHourly, PriceFixed, PriceDaily:
		return PriceType(s), true
	}
	return "", false
}

// ServiceListing bookable offer published by a provider
type ServiceListing struct {
	ID              int64
	ProviderID      int64
	CategoryID      *int64
	Title           string
	Description     *string
	Price           *float64
	PriceType       PriceType
	DurationMinutes *int
	Location        *string
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// EffectiveDuration returns requested duration, else the listing's, else the default
func (l *ServiceListing) EffectiveDuration(requested *int) int {
	if requested != nil && *requested > 0 {
		return *requested
	}
	if l.DurationMinutes != nil && *l.DurationMinutes > 0 {
		return *l.DurationMinutes
	}
	return DefaultDurationMinutes
}

// ListingSort ordering of catalog search results
type ListingSort string

const (
	SortNewest    ListingSort = "newest"
	SortRating    ListingSort = "rating"
	SortPriceLow  ListingSort = "price_low"
	SortPriceHigh ListingSort = "price_high"
)

// ParseListingSort converts a raw string into a known sort order, empty means newest
func ParseListingSort(s string) (ListingSort, bool) {
	switch ListingSort(s) {
	case "":
		return SortNewest, true
	case SortNewest, SortRating, SortPriceLow, SortPriceHigh:
		return ListingSort(s), true
	}
	return "", false
}

// Catalog search paging
const (
	DefaultSearchLimit = 20
	MaxSearchLimit     = 100
)

// ListingSearchFilter catalog search over active listings of approved providers
type ListingSearchFilter struct {
	CategoryID *int64
	MinPrice   *float64
	MaxPrice   *float64
	MinRating  *float64
	Sort       ListingSort
	Limit      int
	Offset     int
}
