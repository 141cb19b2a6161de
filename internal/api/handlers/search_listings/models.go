package search_listings

import (
	"net/http"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/api/handlers"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/service/listings/models"
)

// ToServiceRequest собирает фильтры каталога из query параметров
func ToServiceRequest(r *http.Request) (*models.SearchListingsRequest, error) {
	req := &models.SearchListingsRequest{
		Sort: r.URL.Query().Get("sort"),
	}

	var err error
	if req.CategoryID, err = handlers.QueryInt64(r, "categoryId"); err != nil {
		return nil, err
	}
	if req.MinPrice, err = handlers.QueryFloat(r, "minPrice"); err != nil {
		return nil, err
	}
	if req.MaxPrice, err = handlers.QueryFloat(r, "maxPrice"); err != nil {
		return nil, err
	}
	if req.MinRating, err = handlers.QueryFloat(r, "minRating"); err != nil {
		return nil, err
	}
	if req.Limit, err = handlers.QueryInt(r, "limit", 0); err != nil {
		return nil, err
	}
	if req.Offset, err = handlers.QueryInt(r, "offset", 0); err != nil {
		return nil, err
	}

	return req, nil
}
