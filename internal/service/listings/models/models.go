package models

import (
	"time"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
)

// Request модели

// CreateListingRequest запрос на публикацию услуги
type CreateListingRequest struct {
	Actor           domain.Actor
	CategoryID      *int64
	Title           string
	Description     *string
	Price           *float64
	PriceType       string
	DurationMinutes *int
	Location        *string
}

// UpdateListingRequest запрос на изменение услуги
// Все поля опциональны - обновляются только переданные значения
type UpdateListingRequest struct {
	Actor           domain.Actor
	ListingID       int64
	CategoryID      *int64
	Title           *string
	Description     *string
	Price           *float64
	PriceType       *string
	DurationMinutes *int
	Location        *string
}

// Apply переносит переданные поля в domain модель
func (r *UpdateListingRequest) Apply(l *domain.ServiceListing) {
	if r.CategoryID != nil {
		l.CategoryID = r.CategoryID
	}
	if r.Title != nil {
		l.Title = *r.Title
	}
	if r.Description != nil {
		l.Description = r.Description
	}
	if r.Price != nil {
		l.Price = r.Price
	}
	if r.PriceType != nil {
		l.PriceType = domain.PriceType(*r.PriceType)
	}
	if r.DurationMinutes != nil {
		l.DurationMinutes = r.DurationMinutes
	}
	if r.Location != nil {
		l.Location = r.Location
	}
}

// SearchListingsRequest фильтры каталога
// Пустые поля не ограничивают выдачу
type SearchListingsRequest struct {
	CategoryID *int64
	MinPrice   *float64
	MaxPrice   *float64
	MinRating  *float64
	Sort       string
	Limit      int
	Offset     int
}

// Response модели

// ListingResponse ответ с данными услуги
type ListingResponse struct {
	ID              int64     `json:"id"`
	ProviderID      int64     `json:"providerId"`
	CategoryID      *int64    `json:"categoryId,omitempty"`
	Title           string    `json:"title"`
	Description     *string   `json:"description,omitempty"`
	Price           *float64  `json:"price,omitempty"`
	PriceType       string    `json:"priceType"`
	DurationMinutes *int      `json:"durationMinutes,omitempty"`
	Location        *string   `json:"location,omitempty"`
	IsActive        bool      `json:"isActive"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// ListingListResponse ответ со списком услуг
type ListingListResponse struct {
	Listings []ListingResponse `json:"listings"`
}

// FromDomainListing конвертирует domain модель в DTO
func FromDomainListing(l *domain.ServiceListing) *ListingResponse {
	if l == nil {
		return nil
	}

	return &ListingResponse{
		ID:              l.ID,
		ProviderID:      l.ProviderID,
		CategoryID:      l.CategoryID,
		Title:           l.Title,
		Description:     l.Description,
		Price:           l.Price,
		PriceType:       string(l.PriceType),
		DurationMinutes: l.DurationMinutes,
		Location:        l.Location,
		IsActive:        l.IsActive,
		CreatedAt:       l.CreatedAt,
		UpdatedAt:       l.UpdatedAt,
	}
}

// FromDomainListingList конвертирует список domain моделей в DTO
func FromDomainListingList(listings []*domain.ServiceListing) *ListingListResponse {
	resp := &ListingListResponse{
		Listings: make([]ListingResponse, 0, len(listings)),
	}

	for _, l := range listings {
		if lr := FromDomainListing(l); lr != nil {
			resp.Listings = append(resp.Listings, *lr)
		}
	}

	return resp
}
