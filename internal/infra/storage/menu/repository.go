package menu

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/baydesk/BayBookingService/internal/domain"
	"github.com/baydesk/BayBookingService/pkg/psqlbuilder"
	"github.com/baydesk/BayBookingService/pkg/txmanager"
)

var menuColumns = []string{
	"id",
	"name",
	"price",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository reads menu items. Menu management lives elsewhere; the
// ledger only needs price lookups at order time.
type Repository struct {
	db txmanager.DBExecutor
}

// NewRepository creates a menu repository
func NewRepository(db txmanager.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID fetches a menu item by id
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.MenuItem, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(menuColumns...).
		From("menu_items").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var m domain.MenuItem
	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&m.ID,
		&m.Name,
		&m.Price,
		&m.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrMenuItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan menu item: %v", ErrScanRow, err)
	}

	m.CreatedAt = createdAt.Time
	m.UpdatedAt = updatedAt.Time
	return &m, nil
}

// ListActive returns the sellable menu, alphabetized
func (r *Repository) ListActive(ctx context.Context) ([]*domain.MenuItem, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(menuColumns...).
		From("menu_items").
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	items := make([]*domain.MenuItem, 0)
	for rows.Next() {
		var m domain.MenuItem
		var createdAt, updatedAt sql.NullTime
		if err := rows.Scan(&m.ID, &m.Name, &m.Price, &m.IsActive, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("%w: ListActive - scan row: %v", ErrScanRow, err)
		}
		m.CreatedAt = createdAt.Time
		m.UpdatedAt = updatedAt.Time
		items = append(items, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActive - rows error: %v", ErrScanRow, err)
	}
	return items, nil
}
