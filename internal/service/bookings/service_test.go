package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-MarketplaceBooking/internal/infra/storage/booking"
	providerRepo "github.com/m04kA/SMC-MarketplaceBooking/internal/infra/storage/provider"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-MarketplaceBooking/pkg/ptr"
)

type fakeBookingRepo struct {
	bookings   map[int64]*domain.Booking
	lastFilter domain.ProviderBookingsFilter
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b, nil
}

func (f *fakeBookingRepo) GetByClientID(_ context.Context, clientID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range f.bookings {
		if b.ClientID == clientID && (status == nil || b.Status == *status) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) GetByProviderWithFilter(_ context.Context, filter domain.ProviderBookingsFilter) ([]*domain.Booking, error) {
	f.lastFilter = filter
	var out []*domain.Booking
	for _, b := range f.bookings {
		if b.ProviderID == filter.ProviderID {
			out = append(out, b)
		}
	}
	return out, nil
}

type fakeProviderRepo struct {
	byProfile map[int64]*domain.ServiceProvider
}

func (f *fakeProviderRepo) GetByProfileID(_ context.Context, profileID int64) (*domain.ServiceProvider, error) {
	p, ok := f.byProfile[profileID]
	if !ok {
		return nil, providerRepo.ErrProviderNotFound
	}
	return p, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newService() (*Service, *fakeBookingRepo) {
	bookings := &fakeBookingRepo{bookings: map[int64]*domain.Booking{
		1: {ID: 1, ClientID: 10, ProviderID: 5, Status: domain.StatusPending, ScheduledTime: "10:00"},
		2: {ID: 2, ClientID: 11, ProviderID: 6, Status: domain.StatusCancelled, ScheduledTime: "12:00"},
	}}
	providers := &fakeProviderRepo{byProfile: map[int64]*domain.ServiceProvider{
		20: {ID: 5, ProfileID: 20},
		21: {ID: 6, ProfileID: 21},
	}}
	return NewService(bookings, providers, nopLogger{}), bookings
}

func TestService_GetByID_Access(t *testing.T) {
	tests := []struct {
		name    string
		actor   domain.Actor
		wantErr error
	}{
		{name: "client of booking", actor: domain.Actor{ProfileID: 10, Role: domain.RoleClient}},
		{name: "provider of booking", actor: domain.Actor{ProfileID: 20, Role: domain.RoleProvider}},
		{name: "other client", actor: domain.Actor{ProfileID: 11, Role: domain.RoleClient}, wantErr: ErrAccessDenied},
		{name: "other provider", actor: domain.Actor{ProfileID: 21, Role: domain.RoleProvider}, wantErr: ErrAccessDenied},
		{name: "provider without account", actor: domain.Actor{ProfileID: 99, Role: domain.RoleProvider}, wantErr: ErrAccessDenied},
		{name: "client id equal to provider profile", actor: domain.Actor{ProfileID: 20, Role: domain.RoleClient}, wantErr: ErrAccessDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newService()

			resp, err := svc.GetByID(context.Background(), 1, tt.actor)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(1), resp.ID)
			assert.Equal(t, "10:00", resp.ScheduledTime)
		})
	}
}

func TestService_GetByID_NotFound(t *testing.T) {
	svc, _ := newService()

	_, err := svc.GetByID(context.Background(), 42, domain.Actor{ProfileID: 10, Role: domain.RoleClient})

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestService_GetMyBookings_Client(t *testing.T) {
	svc, _ := newService()

	resp, err := svc.GetMyBookings(context.Background(), &models.GetMyBookingsRequest{
		Actor: domain.Actor{ProfileID: 10, Role: domain.RoleClient},
	})

	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, int64(1), resp.Bookings[0].ID)
}

func TestService_GetMyBookings_ProviderFilter(t *testing.T) {
	svc, bookings := newService()
	day := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

	resp, err := svc.GetMyBookings(context.Background(), &models.GetMyBookingsRequest{
		Actor:           domain.Actor{ProfileID: 21, Role: domain.RoleProvider},
		Status:          ptr.Ptr("cancelled"),
		StartDate:       &day,
		EndDate:         &day,
		IncludeInactive: true,
	})

	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, int64(6), bookings.lastFilter.ProviderID)
	require.NotNil(t, bookings.lastFilter.Status)
	assert.Equal(t, domain.StatusCancelled, *bookings.lastFilter.Status)
	assert.True(t, bookings.lastFilter.IsSingleDay())
}

func TestService_GetMyBookings_InvalidInput(t *testing.T) {
	svc, _ := newService()
	start := time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, -1)

	_, err := svc.GetMyBookings(context.Background(), &models.GetMyBookingsRequest{
		Actor:     domain.Actor{ProfileID: 20, Role: domain.RoleProvider},
		StartDate: &start,
		EndDate:   &end,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.GetMyBookings(context.Background(), &models.GetMyBookingsRequest{
		Actor:  domain.Actor{ProfileID: 10, Role: domain.RoleClient},
		Status: ptr.Ptr("no_show"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.GetMyBookings(context.Background(), &models.GetMyBookingsRequest{
		Actor: domain.Actor{ProfileID: 99, Role: domain.RoleProvider},
	})
	assert.ErrorIs(t, err, ErrProviderNotFound)
}
