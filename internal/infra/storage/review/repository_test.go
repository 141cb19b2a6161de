package review

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
)

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	created := time.Date(2025, 3, 4, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`INSERT INTO reviews \(booking_id,reviewer_id,provider_id,rating,comment\)`).
		WithArgs(int64(1), int64(10), int64(5), 4, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(77), created))

	review, err := repo.Create(context.Background(), &domain.Review{
		BookingID:  1,
		ReviewerID: 10,
		ProviderID: 5,
		Rating:     4,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(77), review.ID)
	assert.Equal(t, created, review.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_Duplicate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectQuery(`INSERT INTO reviews`).
		WillReturnError(&pq.Error{Code: uniqueViolation})

	_, err = repo.Create(context.Background(), &domain.Review{BookingID: 1, ReviewerID: 10, ProviderID: 5, Rating: 5})

	assert.ErrorIs(t, err, ErrReviewExists)
}

func TestRepository_GetRatingsByProvider(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectQuery(`SELECT rating FROM reviews WHERE provider_id = \$1`).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"rating"}).AddRow(5).AddRow(4).AddRow(4))

	ratings, err := repo.GetRatingsByProvider(context.Background(), 5)

	require.NoError(t, err)
	assert.Equal(t, []int{5, 4, 4}, ratings)
}
