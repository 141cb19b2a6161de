package create_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/api/middleware"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/availability"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/lifecycle"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-MarketplaceBooking/internal/usecase/create_booking"
)

type fakeUseCase struct {
	err error
	got *createBooking.Request
}

func (f *fakeUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &createBooking.Response{Booking: &domain.Booking{
		ID:            1,
		ClientID:      req.Actor.ProfileID,
		ListingID:     req.ListingID,
		ScheduledDate: req.Date,
		ScheduledTime: req.StartTime,
		Status:        domain.StatusPending,
		Version:       1,
	}}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const validBody = `{"listingId":3,"scheduledDate":"2030-06-03","scheduledTime":"10:00","durationMinutes":60}`

func serve(uc *fakeUseCase, body string, withActor bool) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(body))
	if withActor {
		r = r.WithContext(middleware.WithActor(r.Context(), domain.Actor{ProfileID: 10, Role: domain.RoleClient}))
	}
	w := httptest.NewRecorder()
	NewHandler(uc, nopLogger{}).Handle(w, r)
	return w
}

func TestHandler_Created(t *testing.T) {
	uc := &fakeUseCase{}

	w := serve(uc, validBody, true)

	require.Equal(t, http.StatusCreated, w.Code)
	var resp models.BookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "10:00", resp.ScheduledTime)

	require.NotNil(t, uc.got)
	assert.Equal(t, int64(3), uc.got.ListingID)
	assert.Equal(t, "2030-06-03", uc.got.Date.Format(domain.DateFormat))
	require.NotNil(t, uc.got.DurationMinutes)
	assert.Equal(t, 60, *uc.got.DurationMinutes)
}

func TestHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "slot taken", err: availability.ErrSlotConflict, wantStatus: http.StatusConflict},
		{name: "day off", err: availability.ErrProviderUnavailableThatDay, wantStatus: http.StatusBadRequest},
		{name: "outside hours", err: availability.ErrOutsideAvailability, wantStatus: http.StatusBadRequest},
		{name: "past", err: availability.ErrPastDate, wantStatus: http.StatusBadRequest},
		{name: "provider books", err: lifecycle.ErrClientRoleRequired, wantStatus: http.StatusForbidden},
		{name: "inactive listing", err: lifecycle.ErrListingInactive, wantStatus: http.StatusNotFound},
		{name: "missing listing", err: createBooking.ErrListingNotFound, wantStatus: http.StatusNotFound},
		{name: "provider not approved", err: lifecycle.ErrProviderNotApproved, wantStatus: http.StatusNotFound},
		{name: "missing provider", err: createBooking.ErrProviderNotFound, wantStatus: http.StatusNotFound},
		{name: "storage failure", err: createBooking.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(&fakeUseCase{err: tt.err}, validBody, true)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestHandler_RequestRejections(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		withActor  bool
		wantStatus int
	}{
		{name: "no identity", body: validBody, withActor: false, wantStatus: http.StatusUnauthorized},
		{name: "broken json", body: `{"listingId":`, withActor: true, wantStatus: http.StatusBadRequest},
		{name: "unknown field", body: `{"listingId":3,"price":1}`, withActor: true, wantStatus: http.StatusBadRequest},
		{name: "missing date", body: `{"listingId":3,"scheduledTime":"10:00"}`, withActor: true, wantStatus: http.StatusUnprocessableEntity},
		{name: "bad time", body: `{"listingId":3,"scheduledDate":"2030-06-03","scheduledTime":"25:99"}`, withActor: true, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeUseCase{}
			w := serve(uc, tt.body, tt.withActor)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Nil(t, uc.got)
		})
	}
}
