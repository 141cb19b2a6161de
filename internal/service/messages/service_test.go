package messages

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-MarketplaceBooking/internal/infra/storage/booking"
	profileRepo "github.com/m04kA/SMC-MarketplaceBooking/internal/infra/storage/profile"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/service/messages/models"
	"github.com/m04kA/SMC-MarketplaceBooking/pkg/ptr"
)

type fakeMessageRepo struct {
	messages []*domain.Message
}

func (f *fakeMessageRepo) Create(_ context.Context, m *domain.Message) (*domain.Message, error) {
	m.ID = int64(len(f.messages) + 1)
	f.messages = append(f.messages, m)
	return m, nil
}

func (f *fakeMessageRepo) GetConversation(_ context.Context, a, b int64, bookingID *int64) ([]*domain.Message, error) {
	var out []*domain.Message
	for _, m := range f.messages {
		between := (m.SenderID == a && m.ReceiverID == b) || (m.SenderID == b && m.ReceiverID == a)
		if between && (bookingID == nil || (m.BookingID != nil && *m.BookingID == *bookingID)) {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeProfileRepo struct{}

func (fakeProfileRepo) GetByID(_ context.Context, id int64) (*domain.Profile, error) {
	if id == 10 || id == 11 || id == 20 {
		return &domain.Profile{ID: id}, nil
	}
	return nil, profileRepo.ErrProfileNotFound
}

type fakeBookingRepo struct{}

func (fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	if id != 1 {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return &domain.Booking{ID: 1, ClientID: 10, ProviderID: 5}, nil
}

type fakeProviderRepo struct{}

func (fakeProviderRepo) GetByID(_ context.Context, id int64) (*domain.ServiceProvider, error) {
	return &domain.ServiceProvider{ID: id, ProfileID: 20}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newService() (*Service, *fakeMessageRepo) {
	repo := &fakeMessageRepo{}
	return NewService(repo, fakeProfileRepo{}, fakeBookingRepo{}, fakeProviderRepo{}, nopLogger{}), repo
}

func client(id int64) domain.Actor {
	return domain.Actor{ProfileID: id, Role: domain.RoleClient}
}

func TestService_SendAndRead(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	_, err := svc.Send(ctx, &models.SendRequest{Actor: client(10), ReceiverID: 20, BookingID: ptr.Ptr(int64(1)), Content: "hi"})
	require.NoError(t, err)
	_, err = svc.Send(ctx, &models.SendRequest{Actor: domain.Actor{ProfileID: 20, Role: domain.RoleProvider}, ReceiverID: 10, Content: " hello "})
	require.NoError(t, err)

	all, err := svc.GetConversation(ctx, &models.ConversationRequest{Actor: client(10), OtherID: 20})
	require.NoError(t, err)
	require.Len(t, all.Messages, 2)
	assert.Equal(t, "hello", all.Messages[1].Content)

	byBooking, err := svc.GetConversation(ctx, &models.ConversationRequest{Actor: client(10), OtherID: 20, BookingID: ptr.Ptr(int64(1))})
	require.NoError(t, err)
	assert.Len(t, byBooking.Messages, 1)
}

func TestService_Send_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		req     models.SendRequest
		wantErr error
	}{
		{name: "empty", req: models.SendRequest{Actor: client(10), ReceiverID: 20, Content: "   "}, wantErr: ErrInvalidInput},
		{name: "to self", req: models.SendRequest{Actor: client(10), ReceiverID: 10, Content: "x"}, wantErr: ErrInvalidInput},
		{name: "unknown receiver", req: models.SendRequest{Actor: client(10), ReceiverID: 99, Content: "x"}, wantErr: ErrReceiverNotFound},
		{name: "unknown booking", req: models.SendRequest{Actor: client(10), ReceiverID: 20, BookingID: ptr.Ptr(int64(2)), Content: "x"}, wantErr: ErrBookingNotFound},
		{name: "outsider on booking", req: models.SendRequest{Actor: client(11), ReceiverID: 20, BookingID: ptr.Ptr(int64(1)), Content: "x"}, wantErr: ErrAccessDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newService()

			_, err := svc.Send(context.Background(), &tt.req)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, repo.messages)
		})
	}
}
