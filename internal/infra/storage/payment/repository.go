package payment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/baydesk/BayBookingService/internal/domain"
	"github.com/baydesk/BayBookingService/pkg/psqlbuilder"
	"github.com/baydesk/BayBookingService/pkg/txmanager"
)

var paymentColumns = []string{
	"id",
	"booking_id",
	"seat_index",
	"method",
	"amount",
	"tip",
	"coupon_code",
	"voided",
	"voided_at",
	"applied_at",
	"created_at",
}

// Repository persists payments
type Repository struct {
	db txmanager.DBExecutor
}

// NewRepository creates a payment repository
func NewRepository(db txmanager.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts a payment. A unique-violation on the partial index over
// non-voided (booking_id, seat_index) rows maps to ErrDuplicatePayment.
func (r *Repository) Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("payments").
		Columns(
			"id",
			"booking_id",
			"seat_index",
			"method",
			"amount",
			"tip",
			"coupon_code",
			"applied_at",
		).
		Values(
			p.ID,
			p.BookingID,
			p.SeatIndex,
			p.Method,
			p.Amount,
			p.Tip,
			p.CouponCode,
			p.AppliedAt,
		).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicatePayment
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	p.CreatedAt = createdAt.Time
	return p, nil
}

// GetBySeat fetches the non-voided payment of one seat, if any. Inside a
// transaction the row is locked so settlement checks cannot race.
func (r *Repository) GetBySeat(ctx context.Context, bookingID string, seatIndex int) (*domain.Payment, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(paymentColumns...).
		From("payments").
		Where(squirrel.Eq{"booking_id": bookingID, "seat_index": seatIndex, "voided": false})

	if txmanager.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySeat - build select query: %v", ErrBuildQuery, err)
	}

	p, err := scanPayment(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySeat - scan payment: %v", ErrScanRow, err)
	}
	return p, nil
}

// GetByID fetches a payment by id
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(paymentColumns...).
		From("payments").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	p, err := scanPayment(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan payment: %v", ErrScanRow, err)
	}
	return p, nil
}

// ListByBooking returns all payments of a booking ordered by seat
func (r *Repository) ListByBooking(ctx context.Context, bookingID string) ([]*domain.Payment, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(paymentColumns...).
		From("payments").
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("seat_index ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBooking - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBooking - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanPayments(rows)
}

// CountNonVoided returns the number of live payments on a booking
func (r *Repository) CountNonVoided(ctx context.Context, bookingID string) (int, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("payments").
		Where(squirrel.Eq{"booking_id": bookingID, "voided": false}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountNonVoided - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountNonVoided - scan count: %v", ErrScanRow, err)
	}
	return count, nil
}

// CountPaidSeats returns how many distinct seats of a booking hold a
// non-voided payment.
func (r *Repository) CountPaidSeats(ctx context.Context, bookingID string) (int, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(DISTINCT seat_index)").
		From("payments").
		Where(squirrel.Eq{"booking_id": bookingID, "voided": false}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountPaidSeats - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountPaidSeats - scan count: %v", ErrScanRow, err)
	}
	return count, nil
}

// Void marks a payment voided after an external refund. Voiding frees the
// seat's slot under the partial unique index, so the seat can be settled
// again.
func (r *Repository) Void(ctx context.Context, id string) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("payments").
		Set("voided", true).
		Set("voided_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "voided": false}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Void - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Void - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Void - get rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrPaymentNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPayment(row rowScanner) (*domain.Payment, error) {
	var p domain.Payment
	var voidedAt sql.NullTime
	var createdAt sql.NullTime

	err := row.Scan(
		&p.ID,
		&p.BookingID,
		&p.SeatIndex,
		&p.Method,
		&p.Amount,
		&p.Tip,
		&p.CouponCode,
		&p.Voided,
		&voidedAt,
		&p.AppliedAt,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	if voidedAt.Valid {
		t := voidedAt.Time
		p.VoidedAt = &t
	}
	p.AppliedAt = p.AppliedAt.UTC()
	p.CreatedAt = createdAt.Time
	return &p, nil
}

func scanPayments(rows *sql.Rows) ([]*domain.Payment, error) {
	payments := make([]*domain.Payment, 0)

	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanPayments - scan row: %v", ErrScanRow, err)
		}
		payments = append(payments, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanPayments - rows error: %v", ErrScanRow, err)
	}
	return payments, nil
}
