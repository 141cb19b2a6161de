package get_my_bookings

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/api/handlers"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
// date задаёт один день, from/to задают период
func ToServiceRequest(r *http.Request, actor domain.Actor) (*models.GetMyBookingsRequest, error) {
	req := &models.GetMyBookingsRequest{
		Actor:           actor,
		IncludeInactive: false, // По умолчанию только активные
	}

	q := r.URL.Query()

	if status := q.Get("status"); status != "" {
		req.Status = &status
	}

	date, err := handlers.QueryDate(r, "date")
	if err != nil {
		return nil, err
	}
	if date != nil {
		req.StartDate = date
		req.EndDate = date
	} else {
		if req.StartDate, err = handlers.QueryDate(r, "from"); err != nil {
			return nil, err
		}
		if req.EndDate, err = handlers.QueryDate(r, "to"); err != nil {
			return nil, err
		}
	}

	if raw := q.Get("includeInactive"); raw != "" {
		includeInactive, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid includeInactive value: %w", err)
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
