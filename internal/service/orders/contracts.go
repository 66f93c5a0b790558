package orders

import (
	"context"

	"github.com/baydesk/BayBookingService/internal/domain"
)

// BookingRepository is the booking storage contract the ledger needs.
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
}

// OrderRepository is the order item storage contract.
type OrderRepository interface {
	Create(ctx context.Context, item *domain.OrderItem) (*domain.OrderItem, error)
	GetByID(ctx context.Context, id string) (*domain.OrderItem, error)
	ListBySeat(ctx context.Context, bookingID string, seatIndex int) ([]*domain.OrderItem, error)
	ListByBooking(ctx context.Context, bookingID string) ([]*domain.OrderItem, error)
	Delete(ctx context.Context, id string) error
}

// PaymentRepository exposes the settlement state of a seat.
type PaymentRepository interface {
	GetBySeat(ctx context.Context, bookingID string, seatIndex int) (*domain.Payment, error)
}

// MenuRepository resolves menu items when a priced line is added.
type MenuRepository interface {
	GetByID(ctx context.Context, id string) (*domain.MenuItem, error)
}

// CouponRepository resolves the discount behind a redeemed coupon code.
type CouponRepository interface {
	GetByCode(ctx context.Context, code string) (*domain.Coupon, error)
}

// TransactionManager runs functions inside database transactions.
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger is the logging contract.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
