package search_listings

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/service/listings"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/service/listings/models"
)

type fakeService struct {
	err error
	got *models.SearchListingsRequest
}

func (f *fakeService) Search(_ context.Context, req *models.SearchListingsRequest) (*models.ListingListResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.ListingListResponse{
		Listings: []models.ListingResponse{{ID: 3, ProviderID: 5, Title: "Deep cleaning", PriceType: "hourly", IsActive: true}},
	}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(svc *fakeService, target string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/listings", NewHandler(svc, nopLogger{}).Handle).Methods(http.MethodGet)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestHandler_ParsesFilters(t *testing.T) {
	svc := &fakeService{}

	w := serve(svc, "/listings?categoryId=2&minPrice=100&maxPrice=200.5&minRating=4&sort=price_low&limit=10&offset=20")

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.got)
	assert.Equal(t, int64(2), *svc.got.CategoryID)
	assert.Equal(t, 100.0, *svc.got.MinPrice)
	assert.Equal(t, 200.5, *svc.got.MaxPrice)
	assert.Equal(t, 4.0, *svc.got.MinRating)
	assert.Equal(t, "price_low", svc.got.Sort)
	assert.Equal(t, 10, svc.got.Limit)
	assert.Equal(t, 20, svc.got.Offset)

	var resp models.ListingListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Listings, 1)
	assert.Equal(t, "Deep cleaning", resp.Listings[0].Title)
}

func TestHandler_NoFilters(t *testing.T) {
	svc := &fakeService{}

	w := serve(svc, "/listings")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, svc.got.CategoryID)
	assert.Nil(t, svc.got.MinPrice)
	assert.Nil(t, svc.got.MinRating)
	assert.Empty(t, svc.got.Sort)
	assert.Zero(t, svc.got.Limit)
}

func TestHandler_BadQuery(t *testing.T) {
	for _, target := range []string{
		"/listings?categoryId=abc",
		"/listings?minPrice=-10",
		"/listings?minRating=high",
		"/listings?limit=ten",
	} {
		svc := &fakeService{}
		w := serve(svc, target)
		assert.Equal(t, http.StatusBadRequest, w.Code, target)
		assert.Nil(t, svc.got, target)
	}
}

func TestHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "rejected filters", err: fmt.Errorf("%w: unknown sort", listings.ErrInvalidInput), wantStatus: http.StatusBadRequest},
		{name: "storage failure", err: listings.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(&fakeService{err: tt.err}, "/listings?sort=distance")
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
