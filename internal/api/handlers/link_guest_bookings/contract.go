package link_guest_bookings

import (
	"context"

	"github.com/baydesk/BayBookingService/internal/service/bookings/models"
)

type BookingService interface {
	LinkGuestBookings(ctx context.Context, req *models.LinkGuestBookingsRequest) (*models.LinkGuestBookingsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
