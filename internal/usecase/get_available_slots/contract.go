package get_available_slots

import (
	"context"
	"time"

	"github.com/baydesk/BayBookingService/internal/domain"
)

// BookingRepository is the booking storage contract.
type BookingRepository interface {
	ListByResourceWindow(ctx context.Context, filter domain.ResourceBookingsFilter) ([]*domain.Booking, error)
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
