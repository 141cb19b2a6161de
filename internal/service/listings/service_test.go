package listings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
	listingRepo "github.com/m04kA/SMC-MarketplaceBooking/internal/infra/storage/listing"
	providerRepo "github.com/m04kA/SMC-MarketplaceBooking/internal/infra/storage/provider"
	"github.com/m04kA/SMC-MarketplaceBooking/internal/service/listings/models"
	"github.com/m04kA/SMC-MarketplaceBooking/pkg/ptr"
)

type fakeListingRepo struct {
	listings  map[int64]*domain.ServiceListing
	searched  []domain.ListingSearchFilter
	searchErr error
}

func (f *fakeListingRepo) Create(_ context.Context, l *domain.ServiceListing) (*domain.ServiceListing, error) {
	l.ID = int64(len(f.listings) + 1)
	f.listings[l.ID] = l
	return l, nil
}

func (f *fakeListingRepo) GetByID(_ context.Context, id int64) (*domain.ServiceListing, error) {
	l, ok := f.listings[id]
	if !ok {
		return nil, listingRepo.ErrListingNotFound
	}
	cp := *l
	return &cp, nil
}

func (f *fakeListingRepo) GetByProvider(_ context.Context, providerID int64, activeOnly bool) ([]*domain.ServiceListing, error) {
	var out []*domain.ServiceListing
	for _, l := range f.listings {
		if l.ProviderID == providerID && (!activeOnly || l.IsActive) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeListingRepo) Search(_ context.Context, filter domain.ListingSearchFilter) ([]*domain.ServiceListing, error) {
	f.searched = append(f.searched, filter)
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	var out []*domain.ServiceListing
	for _, l := range f.listings {
		if l.IsActive {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeListingRepo) Update(_ context.Context, l *domain.ServiceListing) (*domain.ServiceListing, error) {
	f.listings[l.ID] = l
	return l, nil
}

func (f *fakeListingRepo) SetActive(_ context.Context, id int64, active bool) error {
	f.listings[id].IsActive = active
	return nil
}

type fakeProviderRepo struct{}

func (fakeProviderRepo) GetByProfileID(_ context.Context, profileID int64) (*domain.ServiceProvider, error) {
	switch profileID {
	case 20:
		return &domain.ServiceProvider{ID: 5, ProfileID: 20}, nil
	case 21:
		return &domain.ServiceProvider{ID: 6, ProfileID: 21}, nil
	}
	return nil, providerRepo.ErrProviderNotFound
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func provider(profileID int64) domain.Actor {
	return domain.Actor{ProfileID: profileID, Role: domain.RoleProvider}
}

func newService() (*Service, *fakeListingRepo) {
	repo := &fakeListingRepo{listings: map[int64]*domain.ServiceListing{}}
	return NewService(repo, fakeProviderRepo{}, nopLogger{}), repo
}

func TestService_CreateAndGet(t *testing.T) {
	svc, _ := newService()

	created, err := svc.Create(context.Background(), &models.CreateListingRequest{
		Actor:           provider(20),
		Title:           "Leak repair",
		Price:           ptr.Ptr(300.0),
		PriceType:       "hourly",
		DurationMinutes: ptr.Ptr(90),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), created.ProviderID)
	assert.True(t, created.IsActive)

	got, err := svc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Leak repair", got.Title)
}

func TestService_Create_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		req     models.CreateListingRequest
		wantErr error
	}{
		{name: "client role", req: models.CreateListingRequest{Actor: domain.Actor{ProfileID: 20, Role: domain.RoleClient}, Title: "x", PriceType: "fixed"}, wantErr: ErrAccessDenied},
		{name: "no provider account", req: models.CreateListingRequest{Actor: provider(99), Title: "x", PriceType: "fixed"}, wantErr: ErrProviderNotFound},
		{name: "empty title", req: models.CreateListingRequest{Actor: provider(20), Title: "  ", PriceType: "fixed"}, wantErr: ErrInvalidInput},
		{name: "unknown price type", req: models.CreateListingRequest{Actor: provider(20), Title: "x", PriceType: "weekly"}, wantErr: ErrInvalidInput},
		{name: "negative price", req: models.CreateListingRequest{Actor: provider(20), Title: "x", PriceType: "fixed", Price: ptr.Ptr(-1.0)}, wantErr: ErrInvalidInput},
		{name: "too long", req: models.CreateListingRequest{Actor: provider(20), Title: "x", PriceType: "fixed", DurationMinutes: ptr.Ptr(800)}, wantErr: ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newService()

			_, err := svc.Create(context.Background(), &tt.req)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, repo.listings)
		})
	}
}

func TestService_UpdateAndDeactivate(t *testing.T) {
	svc, repo := newService()
	repo.listings[1] = &domain.ServiceListing{ID: 1, ProviderID: 5, Title: "Old", PriceType: domain.PriceFixed, IsActive: true}

	updated, err := svc.Update(context.Background(), &models.UpdateListingRequest{
		Actor: provider(20), ListingID: 1, Title: ptr.Ptr("New"),
	})
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Title)
	assert.Equal(t, "fixed", updated.PriceType)

	_, err = svc.Update(context.Background(), &models.UpdateListingRequest{
		Actor: provider(21), ListingID: 1, Title: ptr.Ptr("Stolen"),
	})
	assert.ErrorIs(t, err, ErrAccessDenied)

	resp, err := svc.SetActive(context.Background(), 1, false, provider(20))
	require.NoError(t, err)
	assert.False(t, resp.IsActive)

	_, err = svc.GetByID(context.Background(), 1)
	assert.ErrorIs(t, err, ErrListingNotFound)

	list, err := svc.GetByProvider(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, list.Listings)
}

func TestService_Search_Defaults(t *testing.T) {
	svc, repo := newService()
	repo.listings[1] = &domain.ServiceListing{ID: 1, ProviderID: 5, Title: "Tiling", PriceType: domain.PriceFixed, IsActive: true}

	resp, err := svc.Search(context.Background(), &models.SearchListingsRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Listings, 1)
	assert.Equal(t, "Tiling", resp.Listings[0].Title)

	require.Len(t, repo.searched, 1)
	assert.Equal(t, domain.SortNewest, repo.searched[0].Sort)
	assert.Equal(t, domain.DefaultSearchLimit, repo.searched[0].Limit)
	assert.Zero(t, repo.searched[0].Offset)
}

func TestService_Search_PassesFilters(t *testing.T) {
	svc, repo := newService()

	_, err := svc.Search(context.Background(), &models.SearchListingsRequest{
		CategoryID: ptr.Ptr(int64(3)),
		MinPrice:   ptr.Ptr(100.0),
		MaxPrice:   ptr.Ptr(200.0),
		MinRating:  ptr.Ptr(4.5),
		Sort:       "price_high",
		Limit:      50,
		Offset:     50,
	})
	require.NoError(t, err)

	require.Len(t, repo.searched, 1)
	assert.Equal(t, domain.ListingSearchFilter{
		CategoryID: ptr.Ptr(int64(3)),
		MinPrice:   ptr.Ptr(100.0),
		MaxPrice:   ptr.Ptr(200.0),
		MinRating:  ptr.Ptr(4.5),
		Sort:       domain.SortPriceHigh,
		Limit:      50,
		Offset:     50,
	}, repo.searched[0])
}

func TestService_Search_Rejections(t *testing.T) {
	tests := []struct {
		name string
		req  models.SearchListingsRequest
	}{
		{name: "unknown sort", req: models.SearchListingsRequest{Sort: "distance"}},
		{name: "negative min price", req: models.SearchListingsRequest{MinPrice: ptr.Ptr(-5.0)}},
		{name: "inverted price range", req: models.SearchListingsRequest{MinPrice: ptr.Ptr(300.0), MaxPrice: ptr.Ptr(100.0)}},
		{name: "rating above scale", req: models.SearchListingsRequest{MinRating: ptr.Ptr(5.5)}},
		{name: "limit too large", req: models.SearchListingsRequest{Limit: domain.MaxSearchLimit + 1}},
		{name: "negative offset", req: models.SearchListingsRequest{Offset: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newService()

			_, err := svc.Search(context.Background(), &tt.req)

			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Empty(t, repo.searched)
		})
	}
}

func TestService_Search_RepositoryError(t *testing.T) {
	svc, repo := newService()
	repo.searchErr = listingRepo.ErrExecQuery

	_, err := svc.Search(context.Background(), &models.SearchListingsRequest{})
	assert.ErrorIs(t, err, ErrInternal)
}
