package update_listing

import (
	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/service/listings/models"
)

// UpdateListingRequest HTTP request model
// Передаются только изменяемые поля
type UpdateListingRequest struct {
	CategoryID      *int64   `json:"categoryId,omitempty" validate:"omitempty,gt=0"`
	Title           *string  `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description     *string  `json:"description,omitempty" validate:"omitempty,max=5000"`
	Price           *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	PriceType       *string  `json:"priceType,omitempty" validate:"omitempty,oneof=hourly fixed daily"`
	DurationMinutes *int     `json:"durationMinutes,omitempty" validate:"omitempty,min=15,max=720"`
	Location        *string  `json:"location,omitempty" validate:"omitempty,max=500"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateListingRequest) ToServiceRequest(listingID int64, actor domain.Actor) *models.UpdateListingRequest {
	return &models.UpdateListingRequest{
		Actor:           actor,
		ListingID:       listingID,
		CategoryID:      r.CategoryID,
		Title:           r.Title,
		Description:     r.Description,
		Price:           r.Price,
		PriceType:       r.PriceType,
		DurationMinutes: r.DurationMinutes,
		Location:        r.Location,
	}
}
