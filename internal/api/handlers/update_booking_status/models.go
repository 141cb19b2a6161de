package update_booking_status

import (
	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
	transitionBooking "github.com/m04kA/SMC-MarketplaceBooking/internal/usecase/transition_booking"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status             string  `json:"status" validate:"required"`
	ProviderNotes      *string `json:"providerNotes,omitempty" validate:"omitempty,max=1000"`
	CancellationReason *string `json:"cancellationReason,omitempty" validate:"omitempty,max=500"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateStatusRequest) ToUseCaseRequest(actor domain.Actor, bookingID int64) *transitionBooking.Request {
	return &transitionBooking.Request{
		Actor:              actor,
		BookingID:          bookingID,
		Status:             r.Status,
		ProviderNotes:      r.ProviderNotes,
		CancellationReason: r.CancellationReason,
	}
}
