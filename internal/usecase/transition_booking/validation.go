package transition_booking

import (
	"fmt"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/lifecycle"
)

// validateRequest валидирует запрос и возвращает целевой статус
func validateRequest(req *Request) (domain.BookingStatus, error) {
	if req.BookingID <= 0 {
		return "", fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	if req.Actor.ProfileID <= 0 {
		return "", fmt.Errorf("%w: profileID must be positive", ErrInvalidInput)
	}

	target, ok := domain.ParseBookingStatus(req.Status)
	if !ok {
		return "", fmt.Errorf("%w: %q", lifecycle.ErrUnknownStatus, req.Status)
	}

	if req.ProviderNotes != nil && len([]rune(*req.ProviderNotes)) > domain.MaxNotesLength {
		return "", fmt.Errorf("%w: provider notes longer than %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	if req.CancellationReason != nil && len([]rune(*req.CancellationReason)) > domain.MaxCancellationReasonLength {
		return "", fmt.Errorf("%w: cancellation reason longer than %d characters",
			ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	return target, nil
}
