package create_listing

import (
	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/service/listings/models"
)

// CreateListingRequest HTTP request model
type CreateListingRequest struct {
	CategoryID      *int64   `json:"categoryId,omitempty" validate:"omitempty,gt=0"`
	Title           string   `json:"title" validate:"required,max=200"`
	Description     *string  `json:"description,omitempty" validate:"omitempty,max=5000"`
	Price           *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	PriceType       string   `json:"priceType" validate:"required,oneof=hourly fixed daily"`
	DurationMinutes *int     `json:"durationMinutes,omitempty" validate:"omitempty,min=15,max=720"`
	Location        *string  `json:"location,omitempty" validate:"omitempty,max=500"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateListingRequest) ToServiceRequest(actor domain.Actor) *models.CreateListingRequest {
	return &models.CreateListingRequest{
		Actor:           actor,
		CategoryID:      r.CategoryID,
		Title:           r.Title,
		Description:     r.Description,
		Price:           r.Price,
		PriceType:       r.PriceType,
		DurationMinutes: r.DurationMinutes,
		Location:        r.Location,
	}
}
