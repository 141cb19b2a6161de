package provider

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
	"github.com/m04kA/SMC-MarketplaceBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-MarketplaceBooking/pkg/psqlbuilder"
)

const uniqueViolation = "23505"

var columns = []string{
	"id",
	"profile_id",
	"business_name",
	"description",
	"experience_years",
	"hourly_rate",
	"service_radius",
	"skills",
	"verification_status",
	"average_rating",
	"total_reviews",
	"created_at",
	"updated_at",
}

// Repository репозиторий исполнителей
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create регистрирует профиль как исполнителя. Новый исполнитель ожидает модерации
func (r *Repository) Create(ctx context.Context, provider *domain.ServiceProvider) (*domain.ServiceProvider, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if provider.VerificationStatus == "" {
		provider.VerificationStatus = domain.ProviderPending
	}

	query, args, err := psqlbuilder.Insert("service_providers").
		Columns(
			"profile_id",
			"business_name",
			"description",
			"experience_years",
			"hourly_rate",
			"service_radius",
			"skills",
			"verification_status",
		).
		Values(
			provider.ProfileID,
			provider.BusinessName,
			provider.Description,
			provider.ExperienceYears,
			provider.HourlyRate,
			provider.ServiceRadius,
			pq.Array(provider.Skills),
			provider.VerificationStatus,
		).
		Suffix("RETURNING id, average_rating, total_reviews, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&provider.ID,
		&provider.AverageRating,
		&provider.TotalReviews,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrProviderExists
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	provider.CreatedAt = createdAt.Time
	provider.UpdatedAt = updatedAt.Time

	return provider, nil
}

// GetByID получает исполнителя по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.ServiceProvider, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByProfileID получает исполнителя по ID профиля владельца
func (r *Repository) GetByProfileID(ctx context.Context, profileID int64) (*domain.ServiceProvider, error) {
	return r.getOne(ctx, "GetByProfileID", squirrel.Eq{"profile_id": profileID})
}

// LockForRatingUpdate блокирует строку исполнителя до конца транзакции.
// Параллельные отзывы об одном исполнителе пересчитывают рейтинг по очереди
func (r *Repository) LockForRatingUpdate(ctx context.Context, providerID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id").
		From("service_providers").
		Where(squirrel.Eq{"id": providerID}).
		Suffix("FOR UPDATE").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: LockForRatingUpdate - build select query: %v", ErrBuildQuery, err)
	}

	var id int64
	err = executor.QueryRowContext(ctx, query, args...).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrProviderNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: LockForRatingUpdate - execute query: %v", ErrExecQuery, err)
	}

	return nil
}

// UpdateRatingSummary сохраняет пересчитанный средний рейтинг и количество отзывов
func (r *Repository) UpdateRatingSummary(ctx context.Context, providerID int64, average float64, total int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("service_providers").
		Set("average_rating", average).
		Set("total_reviews", total).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": providerID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateRatingSummary - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateRatingSummary - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateRatingSummary - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrProviderNotFound
	}

	return nil
}

func (r *Repository) getOne(ctx context.Context, method string, where squirrel.Eq) (*domain.ServiceProvider, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("service_providers").
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, method, err)
	}

	var provider domain.ServiceProvider
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&provider.ID,
		&provider.ProfileID,
		&provider.BusinessName,
		&provider.Description,
		&provider.ExperienceYears,
		&provider.HourlyRate,
		&provider.ServiceRadius,
		pq.Array(&provider.Skills),
		&provider.VerificationStatus,
		&provider.AverageRating,
		&provider.TotalReviews,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProviderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan provider: %v", ErrScanRow, method, err)
	}

	provider.CreatedAt = createdAt.Time
	provider.UpdatedAt = updatedAt.Time

	return &provider, nil
}
