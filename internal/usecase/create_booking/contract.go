package create_booking

import (
	"context"
	"time"

	"github.com/baydesk/BayBookingService/internal/domain"
	"github.com/baydesk/BayBookingService/internal/integrations/identity"
)

// BookingRepository is the booking storage contract.
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	ListByResourceWindow(ctx context.Context, filter domain.ResourceBookingsFilter) ([]*domain.Booking, error)
}

// IdentityClient resolves customers to registered accounts.
type IdentityClient interface {
	GetUser(ctx context.Context, userID string) (*identity.User, error)
	GetUserByPhone(ctx context.Context, phone string) (*identity.User, error)
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
