package coupon

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/baydesk/BayBookingService/internal/domain"
	"github.com/baydesk/BayBookingService/pkg/psqlbuilder"
	"github.com/baydesk/BayBookingService/pkg/txmanager"
)

var couponColumns = []string{
	"id",
	"code",
	"description",
	"discount_amount",
	"status",
	"expires_at",
	"redeemed_at",
	"redeemed_booking_id",
	"redeemed_seat_index",
	"created_at",
	"updated_at",
}

// Repository persists coupons. Coupon creation is owned by the marketing
// side; this service only reads and transitions redemption state.
type Repository struct {
	db txmanager.DBExecutor
}

// NewRepository creates a coupon repository
func NewRepository(db txmanager.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByCode fetches a coupon by its public code. Inside a transaction the
// row is locked so redemption cannot race another settlement.
func (r *Repository) GetByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(couponColumns...).
		From("coupons").
		Where(squirrel.Eq{"code": code})

	if txmanager.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCode - build select query: %v", ErrBuildQuery, err)
	}

	c, err := scanCoupon(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrCouponNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCode - scan coupon: %v", ErrScanRow, err)
	}
	return c, nil
}

// MarkRedeemed performs the one-way ACTIVE -> REDEEMED transition and links
// the coupon to the settlement that consumed it. The status guard in the
// WHERE clause makes the transition safe against concurrent redemptions.
func (r *Repository) MarkRedeemed(ctx context.Context, id, bookingID string, seatIndex int, redeemedAt time.Time) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("coupons").
		Set("status", domain.CouponRedeemed).
		Set("redeemed_at", redeemedAt).
		Set("redeemed_booking_id", bookingID).
		Set("redeemed_seat_index", seatIndex).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.CouponActive}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkRedeemed - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkRedeemed - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkRedeemed - get rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrCouponNotActive
	}
	return nil
}

// MarkExpired transitions an ACTIVE coupon whose expiry has passed
func (r *Repository) MarkExpired(ctx context.Context, id string) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("coupons").
		Set("status", domain.CouponExpired).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.CouponActive}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkExpired - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkExpired - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkExpired - get rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrCouponNotActive
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCoupon(row rowScanner) (*domain.Coupon, error) {
	var c domain.Coupon
	var expiresAt, redeemedAt sql.NullTime
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&c.ID,
		&c.Code,
		&c.Description,
		&c.DiscountAmount,
		&c.Status,
		&expiresAt,
		&redeemedAt,
		&c.RedeemedBookingID,
		&c.RedeemedSeatIndex,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if expiresAt.Valid {
		t := expiresAt.Time.UTC()
		c.ExpiresAt = &t
	}
	if redeemedAt.Valid {
		t := redeemedAt.Time.UTC()
		c.RedeemedAt = &t
	}
	c.CreatedAt = createdAt.Time
	c.UpdatedAt = updatedAt.Time
	return &c, nil
}
