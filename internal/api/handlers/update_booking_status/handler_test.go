package update_booking_status

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/api/middleware"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/availability"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/lifecycle"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/service/bookings/models"
	transitionBooking "github.com/m04kA/SMC-MarketplaceBooking/internal/usecase/transition_booking"
)

type fakeUseCase struct {
	execute func(req *transitionBooking.Request) (*transitionBooking.Response, error)
	got     *transitionBooking.Request
}

func (f *fakeUseCase) Execute(_ context.Context, req *transitionBooking.Request) (*transitionBooking.Response, error) {
	f.got = req
	return f.execute(req)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(uc *fakeUseCase, body string, headers map[string]string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	protected := router.NewRoute().Subrouter()
	protected.Use(middleware.Auth(nopLogger{}))
	protected.HandleFunc("/bookings/{bookingId}/status", NewHandler(uc, nopLogger{}).Handle).Methods(http.MethodPatch)

	r := httptest.NewRequest(http.MethodPatch, "/bookings/7/status", strings.NewReader(body))
	for k, v := range headers {
		r.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	return w
}

func providerHeaders() map[string]string {
	return map[string]string{middleware.HeaderUserID: "20", middleware.HeaderUserRole: "provider"}
}

func TestHandler_Confirm(t *testing.T) {
	uc := &fakeUseCase{execute: func(req *transitionBooking.Request) (*transitionBooking.Response, error) {
		return &transitionBooking.Response{
			Booking: &domain.Booking{ID: req.BookingID, Status: domain.StatusConfirmed, ScheduledTime: "10:00", Version: 2},
			Changed: true,
		}, nil
	}}

	w := serve(uc, `{"status":"confirmed","providerNotes":"bring tools"}`, providerHeaders())

	require.Equal(t, http.StatusOK, w.Code)
	var resp models.BookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, int64(2), resp.Version)

	assert.Equal(t, int64(7), uc.got.BookingID)
	assert.Equal(t, domain.Actor{ProfileID: 20, Role: domain.RoleProvider}, uc.got.Actor)
	require.NotNil(t, uc.got.ProviderNotes)
	assert.Equal(t, "bring tools", *uc.got.ProviderNotes)
}

func TestHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "invalid transition", err: fmt.Errorf("%w: completed -> pending", lifecycle.ErrInvalidTransition), wantStatus: http.StatusConflict},
		{name: "lost race", err: transitionBooking.ErrConflict, wantStatus: http.StatusConflict},
		{name: "slot taken at confirm", err: availability.ErrSlotConflict, wantStatus: http.StatusConflict},
		{name: "unknown status", err: lifecycle.ErrUnknownStatus, wantStatus: http.StatusBadRequest},
		{name: "past date at confirm", err: availability.ErrPastDate, wantStatus: http.StatusBadRequest},
		{name: "not participant", err: transitionBooking.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "missing booking", err: transitionBooking.ErrBookingNotFound, wantStatus: http.StatusNotFound},
		{name: "storage failure", err: transitionBooking.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeUseCase{execute: func(*transitionBooking.Request) (*transitionBooking.Response, error) {
				return nil, tt.err
			}}

			w := serve(uc, `{"status":"confirmed"}`, providerHeaders())

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestHandler_RequestRejections(t *testing.T) {
	uc := &fakeUseCase{execute: func(*transitionBooking.Request) (*transitionBooking.Response, error) {
		t.Fatal("use case must not be called")
		return nil, nil
	}}

	assert.Equal(t, http.StatusUnauthorized, serve(uc, `{"status":"confirmed"}`, nil).Code)
	assert.Equal(t, http.StatusBadRequest, serve(uc, `{"status":`, providerHeaders()).Code)
	assert.Equal(t, http.StatusUnprocessableEntity, serve(uc, `{"status":""}`, providerHeaders()).Code)
}
