package message

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
	"github.com/m04kA/SMC-MarketplaceBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-MarketplaceBooking/pkg/psqlbuilder"
)

// Repository личные сообщения между профилями
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет сообщение
func (r *Repository) Create(ctx context.Context, msg *domain.Message) (*domain.Message, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("messages").
		Columns("sender_id", "receiver_id", "booking_id", "content").
		Values(msg.SenderID, msg.ReceiverID, msg.BookingID, msg.Content).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&msg.ID, &msg.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return msg, nil
}

// GetConversation возвращает переписку двух профилей в хронологическом порядке.
// bookingID сужает переписку до одного бронирования
func (r *Repository) GetConversation(ctx context.Context, profileA, profileB int64, bookingID *int64) ([]*domain.Message, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id", "sender_id", "receiver_id", "booking_id", "content", "created_at").
		From("messages").
		Where(squirrel.Or{
			squirrel.Eq{"sender_id": profileA, "receiver_id": profileB},
			squirrel.Eq{"sender_id": profileB, "receiver_id": profileA},
		})

	if bookingID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"booking_id": *bookingID})
	}

	query, args, err := selectBuilder.
		OrderBy("created_at ASC", "id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetConversation - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetConversation - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	messages := make([]*domain.Message, 0)
	for rows.Next() {
		var msg domain.Message
		if err := rows.Scan(&msg.ID, &msg.SenderID, &msg.ReceiverID, &msg.BookingID, &msg.Content, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: GetConversation - scan row: %v", ErrScanRow, err)
		}
		messages = append(messages, &msg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetConversation - rows error: %v", ErrScanRow, err)
	}

	return messages, nil
}
