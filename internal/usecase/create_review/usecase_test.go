package create_review

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-MarketplaceBooking/internal/infra/storage/booking"
	reviewRepo "github.com/m04kA/SMC-MarketplaceBooking/internal/infra/storage/review"
)

type fakeBookingRepo struct {
	booking *domain.Booking
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	if f.booking == nil || f.booking.ID != id {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return f.booking, nil
}

// callLog фиксирует порядок обращений к репозиториям внутри транзакции
type callLog []string

func (l *callLog) add(call string) {
	if l != nil {
		*l = append(*l, call)
	}
}

type fakeReviewRepo struct {
	ratings  []int
	reviewed map[int64]bool
	calls    *callLog
}

func (f *fakeReviewRepo) Create(_ context.Context, r *domain.Review) (*domain.Review, error) {
	if f.reviewed[r.BookingID] {
		return nil, reviewRepo.ErrReviewExists
	}
	f.calls.add("create")
	f.reviewed[r.BookingID] = true
	f.ratings = append(f.ratings, r.Rating)
	r.ID = int64(len(f.ratings))
	return r, nil
}

func (f *fakeReviewRepo) GetRatingsByProvider(_ context.Context, _ int64) ([]int, error) {
	f.calls.add("ratings")
	return f.ratings, nil
}

type fakeProviderRepo struct {
	average float64
	total   int
	lockErr error
	locked  []int64
	calls   *callLog
}

func (f *fakeProviderRepo) LockForRatingUpdate(_ context.Context, providerID int64) error {
	if f.lockErr != nil {
		return f.lockErr
	}
	f.calls.add("lock")
	f.locked = append(f.locked, providerID)
	return nil
}

func (f *fakeProviderRepo) UpdateRatingSummary(_ context.Context, _ int64, average float64, total int) error {
	f.calls.add("update")
	f.average = average
	f.total = total
	return nil
}

type inlineTx struct{}

func (inlineTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func completedBooking() *domain.Booking {
	return &domain.Booking{ID: 1, ClientID: 10, ProviderID: 5, Status: domain.StatusCompleted}
}

func client() domain.Actor {
	return domain.Actor{ProfileID: 10, Role: domain.RoleClient}
}

func TestUseCase_RecomputesRating(t *testing.T) {
	reviews := &fakeReviewRepo{ratings: []int{5, 4}, reviewed: map[int64]bool{}}
	providers := &fakeProviderRepo{}
	uc := NewUseCase(&fakeBookingRepo{booking: completedBooking()}, reviews, providers, inlineTx{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{Actor: client(), BookingID: 1, Rating: 4})

	require.NoError(t, err)
	assert.Equal(t, 4.33, resp.AverageRating)
	assert.Equal(t, 3, resp.TotalReviews)
	assert.Equal(t, 4.33, providers.average)
	assert.Equal(t, 3, providers.total)
	assert.Equal(t, int64(5), resp.Review.ProviderID)
}

func TestUseCase_LocksProviderBeforeReadingRatings(t *testing.T) {
	calls := &callLog{}
	reviews := &fakeReviewRepo{ratings: []int{3}, reviewed: map[int64]bool{}, calls: calls}
	providers := &fakeProviderRepo{calls: calls}
	uc := NewUseCase(&fakeBookingRepo{booking: completedBooking()}, reviews, providers, inlineTx{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{Actor: client(), BookingID: 1, Rating: 5})

	require.NoError(t, err)
	assert.Equal(t, []int64{5}, providers.locked)
	assert.Equal(t, callLog{"lock", "create", "ratings", "update"}, *calls)
}

func TestUseCase_LockFailureAbortsReview(t *testing.T) {
	reviews := &fakeReviewRepo{reviewed: map[int64]bool{}}
	providers := &fakeProviderRepo{lockErr: errors.New("lock timeout")}
	uc := NewUseCase(&fakeBookingRepo{booking: completedBooking()}, reviews, providers, inlineTx{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{Actor: client(), BookingID: 1, Rating: 5})

	assert.ErrorIs(t, err, ErrInternal)
	assert.Empty(t, reviews.ratings)
	assert.Zero(t, providers.total)
}

func TestUseCase_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		booking  func() *domain.Booking
		req      Request
		reviewed bool
		wantErr  error
	}{
		{
			name:    "not completed",
			booking: func() *domain.Booking { b := completedBooking(); b.Status = domain.StatusConfirmed; return b },
			req:     Request{Actor: client(), BookingID: 1, Rating: 5},
			wantErr: ErrBookingNotCompleted,
		},
		{
			name:    "provider cannot review",
			booking: completedBooking,
			req:     Request{Actor: domain.Actor{ProfileID: 10, Role: domain.RoleProvider}, BookingID: 1, Rating: 5},
			wantErr: ErrAccessDenied,
		},
		{
			name:    "other client",
			booking: completedBooking,
			req:     Request{Actor: domain.Actor{ProfileID: 11, Role: domain.RoleClient}, BookingID: 1, Rating: 5},
			wantErr: ErrAccessDenied,
		},
		{
			name:     "second review",
			booking:  completedBooking,
			req:      Request{Actor: client(), BookingID: 1, Rating: 5},
			reviewed: true,
			wantErr:  ErrAlreadyReviewed,
		},
		{
			name:    "rating out of range",
			booking: completedBooking,
			req:     Request{Actor: client(), BookingID: 1, Rating: 6},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "missing booking",
			booking: completedBooking,
			req:     Request{Actor: client(), BookingID: 2, Rating: 3},
			wantErr: ErrBookingNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reviews := &fakeReviewRepo{reviewed: map[int64]bool{1: tt.reviewed}}
			providers := &fakeProviderRepo{}
			uc := NewUseCase(&fakeBookingRepo{booking: tt.booking()}, reviews, providers, inlineTx{}, nopLogger{})

			_, err := uc.Execute(context.Background(), &tt.req)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, providers.total)
		})
	}
}

func TestRatingSummary(t *testing.T) {
	avg, total := ratingSummary(nil)
	assert.Zero(t, avg)
	assert.Zero(t, total)

	avg, total = ratingSummary([]int{1, 2, 2})
	assert.Equal(t, 1.67, avg)
	assert.Equal(t, 3, total)
}
