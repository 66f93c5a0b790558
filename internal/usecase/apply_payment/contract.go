package apply_payment

import (
	"context"
	"time"

	"github.com/baydesk/BayBookingService/internal/domain"
)

// BookingRepository is the booking storage contract.
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error
}

// PaymentRepository is the payment storage contract.
type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error)
	GetBySeat(ctx context.Context, bookingID string, seatIndex int) (*domain.Payment, error)
	CountPaidSeats(ctx context.Context, bookingID string) (int, error)
}

// CouponRepository is the coupon storage contract.
type CouponRepository interface {
	GetByCode(ctx context.Context, code string) (*domain.Coupon, error)
	MarkRedeemed(ctx context.Context, id, bookingID string, seatIndex int, redeemedAt time.Time) error
	MarkExpired(ctx context.Context, id string) error
}

// InvoiceCalculator recomputes a seat's bill from current storage state.
// Inside a transaction it sees the locked rows.
type InvoiceCalculator interface {
	ComputeSeatInvoice(ctx context.Context, bookingID string, seatIndex int) (*domain.SeatInvoice, error)
}

// TransactionManager runs functions inside database transactions.
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider supplies the current time (swapped out in tests).
type TimeProvider interface {
	Now() time.Time
}

// Logger is the logging contract.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider is the production clock.
type RealTimeProvider struct{}

// Now returns the current time.
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
