package get_seat_invoice

import (
	"context"

	"github.com/baydesk/BayBookingService/internal/service/orders/models"
)

type OrderService interface {
	GetSeatInvoice(ctx context.Context, bookingID string, seatIndex int) (*models.SeatInvoiceResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
