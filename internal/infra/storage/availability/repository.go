package availability

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
	"github.com/m04kA/SMC-MarketplaceBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-MarketplaceBooking/pkg/psqlbuilder"
)

// Repository недельные правила доступности исполнителей
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByProvider возвращает правила исполнителя, отсортированные по дню недели
func (r *Repository) GetByProvider(ctx context.Context, providerID int64) ([]*domain.AvailabilityRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"provider_id",
		"day_of_week",
		"start_time",
		"end_time",
		"is_available",
	).
		From("provider_availability").
		Where(squirrel.Eq{"provider_id": providerID}).
		OrderBy("day_of_week ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByProvider - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByProvider - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	rules := make([]*domain.AvailabilityRule, 0, 7)
	for rows.Next() {
		var rule domain.AvailabilityRule
		if err := rows.Scan(
			&rule.ID,
			&rule.ProviderID,
			&rule.DayOfWeek,
			&rule.StartTime,
			&rule.EndTime,
			&rule.IsAvailable,
		); err != nil {
			return nil, fmt.Errorf("%w: GetByProvider - scan row: %v", ErrScanRow, err)
		}
		rules = append(rules, &rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByProvider - rows error: %v", ErrScanRow, err)
	}

	return rules, nil
}

// ReplaceForProvider заменяет весь недельный шаблон исполнителя.
// Должен вызываться внутри транзакции: удаление и вставка видны только вместе
func (r *Repository) ReplaceForProvider(ctx context.Context, providerID int64, rules []*domain.AvailabilityRule) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("provider_availability").
		Where(squirrel.Eq{"provider_id": providerID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ReplaceForProvider - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceForProvider - execute delete: %v", ErrExecQuery, err)
	}

	if len(rules) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("provider_availability").
		Columns("provider_id", "day_of_week", "start_time", "end_time", "is_available")

	for _, rule := range rules {
		insertBuilder = insertBuilder.Values(providerID, rule.DayOfWeek, rule.StartTime, rule.EndTime, rule.IsAvailable)
	}

	query, args, err = insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceForProvider - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceForProvider - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}
