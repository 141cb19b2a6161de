package listing

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
	"github.com/m04kA/SMC-MarketplaceBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-MarketplaceBooking/pkg/psqlbuilder"
)

var (
	// ErrListingNotFound возвращается, когда услуга не найдена
	ErrListingNotFound = errors.New("listing.repository: listing not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("listing.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("listing.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("listing.repository: failed to scan row")
)

var columns = []string{
	"id",
	"provider_id",
	"category_id",
	"title",
	"description",
	"price",
	"price_type",
	"duration_minutes",
	"location",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository репозиторий услуг исполнителей
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create публикует новую услугу
func (r *Repository) Create(ctx context.Context, listing *domain.ServiceListing) (*domain.ServiceListing, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("service_listings").
		Columns("provider_id", "category_id", "title", "description", "price", "price_type", "duration_minutes", "location", "is_active").
		Values(
			listing.ProviderID,
			listing.CategoryID,
			listing.Title,
			listing.Description,
			listing.Price,
			listing.PriceType,
			listing.DurationMinutes,
			listing.Location,
			listing.IsActive,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&listing.ID, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	listing.CreatedAt = createdAt.Time
	listing.UpdatedAt = updatedAt.Time

	return listing, nil
}

// GetByID получает услугу по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.ServiceListing, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("service_listings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	listing, err := scanListing(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrListingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan listing: %v", ErrScanRow, err)
	}

	return listing, nil
}

// GetByProvider возвращает услуги исполнителя
func (r *Repository) GetByProvider(ctx context.Context, providerID int64, activeOnly bool) ([]*domain.ServiceListing, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From("service_listings").
		Where(squirrel.Eq{"provider_id": providerID}).
		OrderBy("created_at DESC")

	if activeOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_active": true})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByProvider - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByProvider - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	listings := make([]*domain.ServiceListing, 0)
	for rows.Next() {
		listing, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByProvider - scan row: %v", ErrScanRow, err)
		}
		listings = append(listings, listing)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByProvider - rows error: %v", ErrScanRow, err)
	}

	return listings, nil
}

// Search ищет опубликованные услуги одобренных исполнителей по фильтру каталога
func (r *Repository) Search(ctx context.Context, filter domain.ListingSearchFilter) ([]*domain.ServiceListing, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(prefixed("l", columns)...).
		From("service_listings l").
		Join("service_providers p ON p.id = l.provider_id").
		Where(squirrel.Eq{
			"l.is_active":           true,
			"p.verification_status": domain.ProviderApproved,
		})

	if filter.CategoryID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"l.category_id": *filter.CategoryID})
	}
	if filter.MinPrice != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"l.price": *filter.MinPrice})
	}
	if filter.MaxPrice != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"l.price": *filter.MaxPrice})
	}
	if filter.MinRating != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"p.average_rating": *filter.MinRating})
	}

	switch filter.Sort {
	case domain.SortRating:
		selectBuilder = selectBuilder.OrderBy("p.average_rating DESC", "l.created_at DESC")
	case domain.SortPriceLow:
		selectBuilder = selectBuilder.OrderBy("l.price ASC NULLS LAST", "l.id ASC")
	case domain.SortPriceHigh:
		selectBuilder = selectBuilder.OrderBy("l.price DESC NULLS LAST", "l.id ASC")
	default:
		selectBuilder = selectBuilder.OrderBy("l.created_at DESC", "l.id DESC")
	}

	if filter.Limit > 0 {
		selectBuilder = selectBuilder.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		selectBuilder = selectBuilder.Offset(uint64(filter.Offset))
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Search - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: Search - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	listings := make([]*domain.ServiceListing, 0)
	for rows.Next() {
		listing, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: Search - scan row: %v", ErrScanRow, err)
		}
		listings = append(listings, listing)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: Search - rows error: %v", ErrScanRow, err)
	}

	return listings, nil
}

// Update перезаписывает изменяемые поля услуги
func (r *Repository) Update(ctx context.Context, listing *domain.ServiceListing) (*domain.ServiceListing, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("service_listings").
		Set("category_id", listing.CategoryID).
		Set("title", listing.Title).
		Set("description", listing.Description).
		Set("price", listing.Price).
		Set("price_type", listing.PriceType).
		Set("duration_minutes", listing.DurationMinutes).
		Set("location", listing.Location).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": listing.ID}).
		Suffix("RETURNING updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrListingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	listing.UpdatedAt = updatedAt.Time
	return listing, nil
}

// SetActive публикует или снимает услугу с публикации
func (r *Repository) SetActive(ctx context.Context, id int64, active bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("service_listings").
		Set("is_active", active).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetActive - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetActive - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetActive - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrListingNotFound
	}

	return nil
}

func prefixed(alias string, cols []string) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = alias + "." + c
	}
	return out
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanListing(row rowScanner) (*domain.ServiceListing, error) {
	var listing domain.ServiceListing
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&listing.ID,
		&listing.ProviderID,
		&listing.CategoryID,
		&listing.Title,
		&listing.Description,
		&listing.Price,
		&listing.PriceType,
		&listing.DurationMinutes,
		&listing.Location,
		&listing.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	listing.CreatedAt = createdAt.Time
	listing.UpdatedAt = updatedAt.Time

	return &listing, nil
}
