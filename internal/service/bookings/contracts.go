package bookings

import (
	"context"

	"github.com/baydesk/BayBookingService/internal/domain"
)

// BookingRepository is the booking storage contract.
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID string, status *domain.BookingStatus) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error
	Cancel(ctx context.Context, id string, reason string) error
	RelinkGuestByPhone(ctx context.Context, phone, userID string) (int64, error)
}

// PaymentRepository is the payment storage contract the lifecycle needs.
type PaymentRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Payment, error)
	CountNonVoided(ctx context.Context, bookingID string) (int, error)
	Void(ctx context.Context, id string) error
}

// TransactionManager runs functions inside database transactions.
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger is the logging contract.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
