package transition_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/availability"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-MarketplaceBooking/internal/infra/storage/booking"
	providerRepo "github.com/m04kA/SMC-MarketplaceBooking/internal/infra/storage/provider"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/lifecycle"
	"github.com/m04kA/SMC-MarketplaceBooking/pkg/ptr"
	"github.com/m04kA/SMC-MarketplaceBooking/pkg/txmanager"
	"github.com/m04kA/SMC-MarketplaceBooking/pkg/types"
)

const (
	clientProfileID   = int64(10)
	providerProfileID = int64(20)
	providerID        = int64(5)
)

// monday 2025-03-03
var bookingDate = time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

type fakeBookingRepo struct {
	getByID           func(ctx context.Context, id int64) (*domain.Booking, error)
	listActive        func(ctx context.Context, providerID int64, date time.Time) ([]*domain.Booking, error)
	conditionalUpdate func(ctx context.Context, id int64, expected, target domain.BookingStatus, patch domain.BookingStatusPatch) (*domain.Booking, error)
}

func (f *fakeBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return f.getByID(ctx, id)
}

func (f *fakeBookingRepo) ListActiveByProviderAndDate(ctx context.Context, providerID int64, date time.Time) ([]*domain.Booking, error) {
	if f.listActive == nil {
		return nil, nil
	}
	return f.listActive(ctx, providerID, date)
}

func (f *fakeBookingRepo) ConditionalUpdate(ctx context.Context, id int64, expected, target domain.BookingStatus, patch domain.BookingStatusPatch) (*domain.Booking, error) {
	return f.conditionalUpdate(ctx, id, expected, target, patch)
}

type fakeAvailabilityRepo struct {
	rules []*domain.AvailabilityRule
}

func (f *fakeAvailabilityRepo) GetByProvider(_ context.Context, _ int64) ([]*domain.AvailabilityRule, error) {
	return f.rules, nil
}

type fakeProviderRepo struct{}

func (f *fakeProviderRepo) GetByProfileID(_ context.Context, profileID int64) (*domain.ServiceProvider, error) {
	if profileID == providerProfileID {
		return &domain.ServiceProvider{ID: providerID, ProfileID: providerProfileID}, nil
	}
	return nil, providerRepo.ErrProviderNotFound
}

type fakeNotifier struct {
	events []domain.BookingLifecycleEvent
}

func (f *fakeNotifier) Notify(_ context.Context, event domain.BookingLifecycleEvent) {
	f.events = append(f.events, event)
}

type fakeMetrics struct {
	results []string
}

func (f *fakeMetrics) RecordTransition(_, _, result string) {
	f.results = append(f.results, result)
}

type fakeTxManager struct {
	err error
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		return err
	}
	return f.err
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type env struct {
	bookings *fakeBookingRepo
	notifier *fakeNotifier
	metrics  *fakeMetrics
	tx       *fakeTxManager
	uc       *UseCase
}

func newEnv(stored *domain.Booking) *env {
	e := &env{
		notifier: &fakeNotifier{},
		metrics:  &fakeMetrics{},
		tx:       &fakeTxManager{},
	}

	e.bookings = &fakeBookingRepo{
		getByID: func(_ context.Context, id int64) (*domain.Booking, error) {
			if stored == nil || id != stored.ID {
				return nil, bookingRepo.ErrBookingNotFound
			}
			copied := *stored
			return &copied, nil
		},
		conditionalUpdate: func(_ context.Context, id int64, expected, target domain.BookingStatus, patch domain.BookingStatusPatch) (*domain.Booking, error) {
			if stored.Status != expected {
				return nil, bookingRepo.ErrStatusConflict
			}
			stored.Status = target
			stored.Version++
			if patch.ProviderNotes != nil {
				stored.ProviderNotes = patch.ProviderNotes
			}
			if patch.CancelledAt != nil {
				stored.CancellationReason = patch.CancellationReason
				stored.CancelledBy = patch.CancelledBy
				stored.CancelledAt = patch.CancelledAt
			}
			copied := *stored
			return &copied, nil
		},
	}

	availabilityRepo := &fakeAvailabilityRepo{rules: []*domain.AvailabilityRule{
		{ProviderID: providerID, DayOfWeek: int(time.Monday), StartTime: "09:00", EndTime: "17:00", IsAvailable: true},
	}}

	e.uc = NewUseCase(
		lifecycle.NewEngine(lifecycle.DefaultPolicy()),
		e.bookings,
		availabilityRepo,
		&fakeProviderRepo{},
		e.notifier,
		e.metrics,
		e.tx,
		nopLogger{},
	).WithTimeProvider(fixedTime{t: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)})

	return e
}

func pendingBooking() *domain.Booking {
	return &domain.Booking{
		ID:              1,
		ClientID:        clientProfileID,
		ProviderID:      providerID,
		ListingID:       7,
		ScheduledDate:   bookingDate,
		ScheduledTime:   types.TimeString("10:00"),
		DurationMinutes: 60,
		Status:          domain.StatusPending,
		Version:         1,
	}
}

func providerActor() domain.Actor {
	return domain.Actor{ProfileID: providerProfileID, Role: domain.RoleProvider}
}

func clientActor() domain.Actor {
	return domain.Actor{ProfileID: clientProfileID, Role: domain.RoleClient}
}

func TestUseCase_ProviderConfirms(t *testing.T) {
	e := newEnv(pendingBooking())

	resp, err := e.uc.Execute(context.Background(), &Request{
		Actor:         providerActor(),
		BookingID:     1,
		Status:        "confirmed",
		ProviderNotes: ptr.Ptr("see you"),
	})

	require.NoError(t, err)
	assert.True(t, resp.Changed)
	assert.Equal(t, domain.StatusConfirmed, resp.Booking.Status)
	assert.Equal(t, int64(2), resp.Booking.Version)
	assert.Equal(t, "see you", *resp.Booking.ProviderNotes)

	require.Len(t, e.notifier.events, 1)
	assert.Equal(t, domain.EventBookingConfirmed, e.notifier.events[0].Kind)
	assert.Equal(t, domain.RoleClient, e.notifier.events[0].Recipient)
	assert.Equal(t, []string{resultApplied}, e.metrics.results)
}

func TestUseCase_RepeatedConfirmIsNoop(t *testing.T) {
	stored := pendingBooking()
	stored.Status = domain.StatusConfirmed
	e := newEnv(stored)

	resp, err := e.uc.Execute(context.Background(), &Request{Actor: providerActor(), BookingID: 1, Status: "confirmed"})

	require.NoError(t, err)
	assert.False(t, resp.Changed)
	assert.Equal(t, int64(1), resp.Booking.Version)
	assert.Empty(t, e.notifier.events)
	assert.Equal(t, []string{resultNoop}, e.metrics.results)
}

func TestUseCase_ClientCancelsNotifiesProvider(t *testing.T) {
	e := newEnv(pendingBooking())

	resp, err := e.uc.Execute(context.Background(), &Request{
		Actor:              clientActor(),
		BookingID:          1,
		Status:             "cancelled",
		CancellationReason: ptr.Ptr("changed plans"),
	})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, resp.Booking.Status)
	require.NotNil(t, resp.Booking.CancelledBy)
	assert.Equal(t, domain.RoleClient, *resp.Booking.CancelledBy)
	assert.Equal(t, "changed plans", *resp.Booking.CancellationReason)

	require.Len(t, e.notifier.events, 1)
	assert.Equal(t, domain.EventBookingCancelled, e.notifier.events[0].Kind)
	assert.Equal(t, domain.RoleProvider, e.notifier.events[0].Recipient)
}

func TestUseCase_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		stored  func() *domain.Booking
		req     Request
		wantErr error
	}{
		{
			name:    "client cannot confirm",
			stored:  pendingBooking,
			req:     Request{Actor: clientActor(), BookingID: 1, Status: "confirmed"},
			wantErr: lifecycle.ErrInvalidTransition,
		},
		{
			name:    "pending cannot complete",
			stored:  pendingBooking,
			req:     Request{Actor: providerActor(), BookingID: 1, Status: "completed"},
			wantErr: lifecycle.ErrInvalidTransition,
		},
		{
			name: "terminal booking cannot change",
			stored: func() *domain.Booking {
				b := pendingBooking()
				b.Status = domain.StatusCompleted
				return b
			},
			req:     Request{Actor: providerActor(), BookingID: 1, Status: "cancelled"},
			wantErr: lifecycle.ErrInvalidTransition,
		},
		{
			name: "confirmed cannot go back to pending",
			stored: func() *domain.Booking {
				b := pendingBooking()
				b.Status = domain.StatusConfirmed
				return b
			},
			req:     Request{Actor: providerActor(), BookingID: 1, Status: "pending"},
			wantErr: lifecycle.ErrInvalidTransition,
		},
		{
			name:    "unknown status",
			stored:  pendingBooking,
			req:     Request{Actor: providerActor(), BookingID: 1, Status: "archived"},
			wantErr: lifecycle.ErrUnknownStatus,
		},
		{
			name:    "stranger client",
			stored:  pendingBooking,
			req:     Request{Actor: domain.Actor{ProfileID: 99, Role: domain.RoleClient}, BookingID: 1, Status: "cancelled"},
			wantErr: ErrAccessDenied,
		},
		{
			name:    "profile without provider account",
			stored:  pendingBooking,
			req:     Request{Actor: domain.Actor{ProfileID: 99, Role: domain.RoleProvider}, BookingID: 1, Status: "confirmed"},
			wantErr: ErrAccessDenied,
		},
		{
			name:    "missing booking",
			stored:  pendingBooking,
			req:     Request{Actor: providerActor(), BookingID: 2, Status: "confirmed"},
			wantErr: ErrBookingNotFound,
		},
		{
			name:    "client sets provider notes",
			stored:  pendingBooking,
			req:     Request{Actor: clientActor(), BookingID: 1, Status: "cancelled", ProviderNotes: ptr.Ptr("x")},
			wantErr: lifecycle.ErrInvalidPatch,
		},
		{
			name:    "invalid id",
			stored:  pendingBooking,
			req:     Request{Actor: providerActor(), BookingID: 0, Status: "confirmed"},
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(tt.stored())

			_, err := e.uc.Execute(context.Background(), &tt.req)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, e.notifier.events)
		})
	}
}

func TestUseCase_ConfirmRevalidatesSlot(t *testing.T) {
	e := newEnv(pendingBooking())
	e.bookings.listActive = func(_ context.Context, _ int64, _ time.Time) ([]*domain.Booking, error) {
		confirmed := pendingBooking()
		confirmed.ID = 2
		confirmed.Status = domain.StatusConfirmed
		confirmed.ScheduledTime = "10:30"
		return []*domain.Booking{pendingBooking(), confirmed}, nil
	}

	_, err := e.uc.Execute(context.Background(), &Request{Actor: providerActor(), BookingID: 1, Status: "confirmed"})

	assert.ErrorIs(t, err, availability.ErrSlotConflict)
	assert.Empty(t, e.notifier.events)
	assert.Equal(t, []string{resultRejected}, e.metrics.results)
}

func TestUseCase_ConfirmIgnoresItselfWhenRevalidating(t *testing.T) {
	e := newEnv(pendingBooking())
	e.bookings.listActive = func(_ context.Context, _ int64, _ time.Time) ([]*domain.Booking, error) {
		return []*domain.Booking{pendingBooking()}, nil
	}

	resp, err := e.uc.Execute(context.Background(), &Request{Actor: providerActor(), BookingID: 1, Status: "confirmed"})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, resp.Booking.Status)
}

func TestUseCase_LostRaceToSameTargetIsNoop(t *testing.T) {
	stored := pendingBooking()
	e := newEnv(stored)
	e.bookings.conditionalUpdate = func(_ context.Context, _ int64, _, target domain.BookingStatus, _ domain.BookingStatusPatch) (*domain.Booking, error) {
		// параллельный запрос успел раньше
		stored.Status = target
		stored.Version = 2
		return nil, bookingRepo.ErrStatusConflict
	}

	resp, err := e.uc.Execute(context.Background(), &Request{Actor: clientActor(), BookingID: 1, Status: "cancelled"})

	require.NoError(t, err)
	assert.False(t, resp.Changed)
	assert.Equal(t, domain.StatusCancelled, resp.Booking.Status)
	assert.Empty(t, e.notifier.events)
}

func TestUseCase_LostRaceToDifferentTargetIsConflict(t *testing.T) {
	stored := pendingBooking()
	e := newEnv(stored)
	e.bookings.conditionalUpdate = func(_ context.Context, _ int64, _, _ domain.BookingStatus, _ domain.BookingStatusPatch) (*domain.Booking, error) {
		stored.Status = domain.StatusCancelled
		return nil, bookingRepo.ErrStatusConflict
	}

	_, err := e.uc.Execute(context.Background(), &Request{Actor: providerActor(), BookingID: 1, Status: "confirmed"})

	assert.ErrorIs(t, err, ErrConflict)
	assert.Empty(t, e.notifier.events)
	assert.Equal(t, []string{resultConflict}, e.metrics.results)
}

func TestUseCase_SerializationFailureIsConflict(t *testing.T) {
	e := newEnv(pendingBooking())
	e.tx.err = txmanager.ErrSerializationFailure

	reads := 0
	e.bookings.getByID = func(_ context.Context, _ int64) (*domain.Booking, error) {
		reads++
		b := pendingBooking()
		if reads > 1 {
			// после отката транзакции видим результат параллельного подтверждения
			b.Status = domain.StatusConfirmed
		}
		return b, nil
	}

	_, err := e.uc.Execute(context.Background(), &Request{Actor: clientActor(), BookingID: 1, Status: "cancelled"})

	assert.ErrorIs(t, err, ErrConflict)
	assert.Empty(t, e.notifier.events)
}
