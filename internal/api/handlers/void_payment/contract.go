package void_payment

import "context"

type BookingService interface {
	VoidPayment(ctx context.Context, paymentID string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
