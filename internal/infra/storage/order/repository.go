package order

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/baydesk/BayBookingService/internal/domain"
	"github.com/baydesk/BayBookingService/pkg/psqlbuilder"
	"github.com/baydesk/BayBookingService/pkg/txmanager"
)

var orderColumns = []string{
	"id",
	"booking_id",
	"seat_index",
	"menu_item_id",
	"custom_name",
	"custom_price",
	"quantity",
	"unit_price",
	"total_price",
	"created_at",
}

// Repository persists order items
type Repository struct {
	db txmanager.DBExecutor
}

// NewRepository creates an order item repository
func NewRepository(db txmanager.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts an order item
func (r *Repository) Create(ctx context.Context, item *domain.OrderItem) (*domain.OrderItem, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("order_items").
		Columns(
			"id",
			"booking_id",
			"seat_index",
			"menu_item_id",
			"custom_name",
			"custom_price",
			"quantity",
			"unit_price",
			"total_price",
		).
		Values(
			item.ID,
			item.BookingID,
			item.SeatIndex,
			item.MenuItemID,
			item.CustomName,
			item.CustomPrice,
			item.Quantity,
			item.UnitPrice,
			item.TotalPrice,
		).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	item.CreatedAt = createdAt.Time
	return item, nil
}

// GetByID fetches an order item by id
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.OrderItem, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(orderColumns...).
		From("order_items").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	item, err := scanOrderItem(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrOrderItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan order item: %v", ErrScanRow, err)
	}
	return item, nil
}

// ListBySeat returns a seat's order items in creation order
func (r *Repository) ListBySeat(ctx context.Context, bookingID string, seatIndex int) ([]*domain.OrderItem, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(orderColumns...).
		From("order_items").
		Where(squirrel.Eq{"booking_id": bookingID, "seat_index": seatIndex}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListBySeat - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBySeat - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanOrderItems(rows)
}

// ListByBooking returns all of a booking's order items in creation order
func (r *Repository) ListByBooking(ctx context.Context, bookingID string) ([]*domain.OrderItem, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(orderColumns...).
		From("order_items").
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBooking - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBooking - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanOrderItems(rows)
}

// Delete removes an order item
func (r *Repository) Delete(ctx context.Context, id string) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("order_items").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrOrderItemNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrderItem(row rowScanner) (*domain.OrderItem, error) {
	var item domain.OrderItem
	var createdAt sql.NullTime

	err := row.Scan(
		&item.ID,
		&item.BookingID,
		&item.SeatIndex,
		&item.MenuItemID,
		&item.CustomName,
		&item.CustomPrice,
		&item.Quantity,
		&item.UnitPrice,
		&item.TotalPrice,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	item.CreatedAt = createdAt.Time
	return &item, nil
}

func scanOrderItems(rows *sql.Rows) ([]*domain.OrderItem, error) {
	items := make([]*domain.OrderItem, 0)

	for rows.Next() {
		item, err := scanOrderItem(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanOrderItems - scan row: %v", ErrScanRow, err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanOrderItems - rows error: %v", ErrScanRow, err)
	}
	return items, nil
}
