package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidPeriod возвращается, когда начало периода позже конца
	ErrInvalidPeriod = errors.New("invalid period")
)

// Request модели

// GetMyBookingsRequest запрос на получение бронирований текущего пользователя
// Клиент видит свои заявки, исполнитель видит заявки на свои услуги
type GetMyBookingsRequest struct {
	Actor           domain.Actor
	Status          *string    // Фильтр по статусу (опционально)
	StartDate       *time.Time // Начало периода, только для исполнителя
	EndDate         *time.Time // Конец периода, только для исполнителя
	IncludeInactive bool       // Включать завершённые и отменённые
}

// ToProviderFilter конвертирует request в domain фильтр исполнителя
func (r *GetMyBookingsRequest) ToProviderFilter(providerID int64) (domain.ProviderBookingsFilter, error) {
	filter := domain.ProviderBookingsFilter{
		ProviderID:      providerID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	if r.StartDate != nil && r.EndDate != nil && r.StartDate.After(*r.EndDate) {
		return filter, ErrInvalidPeriod
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID              int64    `json:"id"`
	ClientID        int64    `json:"clientId"`
	ProviderID      int64    `json:"providerId"`
	ListingID       int64    `json:"listingId"`
	ScheduledDate   string   `json:"scheduledDate"` // "2025-10-15"
	ScheduledTime   string   `json:"scheduledTime"` // "10:00"
	DurationMinutes int      `json:"durationMinutes"`
	TotalPrice      *float64 `json:"totalPrice,omitempty"`
	Status          string   `json:"status"`
	Version         int64    `json:"version"`
	ClientNotes     *string  `json:"clientNotes,omitempty"`
	ProviderNotes   *string  `json:"providerNotes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledBy        *string `json:"cancelledBy,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		ClientID:           b.ClientID,
		ProviderID:         b.ProviderID,
		ListingID:          b.ListingID,
		ScheduledDate:      b.ScheduledDate.Format(domain.DateFormat),
		ScheduledTime:      b.ScheduledTime.String(),
		DurationMinutes:    b.DurationMinutes,
		TotalPrice:         b.TotalPrice,
		Status:             string(b.Status),
		Version:            b.Version,
		ClientNotes:        b.ClientNotes,
		ProviderNotes:      b.ProviderNotes,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if b.CancelledBy != nil {
		by := string(*b.CancelledBy)
		resp.CancelledBy = &by
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s, ok := domain.ParseBookingStatus(status)
	if !ok {
		return "", ErrInvalidStatus
	}
	return s, nil
}
