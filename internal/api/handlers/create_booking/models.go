package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
	createBooking "github.com/m04kA/SMC-MarketplaceBooking/internal/usecase/create_booking"
	"github.com/m04kA/SMC-MarketplaceBooking/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ListingID       int64   `json:"listingId" validate:"required,gt=0"`
	ScheduledDate   string  `json:"scheduledDate" validate:"required,datetime=2006-01-02"`
	ScheduledTime   string  `json:"scheduledTime" validate:"required"`
	DurationMinutes *int    `json:"durationMinutes,omitempty" validate:"omitempty,min=15,max=720"`
	Notes           *string `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(actor domain.Actor) (*createBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.ScheduledDate)
	if err != nil {
		return nil, fmt.Errorf("scheduledDate: %w", err)
	}

	startTime, err := types.NewTimeStringFromString(r.ScheduledTime)
	if err != nil {
		return nil, fmt.Errorf("scheduledTime: %w", err)
	}

	return &createBooking.Request{
		Actor:           actor,
		ListingID:       r.ListingID,
		Date:            date,
		StartTime:       startTime,
		DurationMinutes: r.DurationMinutes,
		Notes:           r.Notes,
	}, nil
}
