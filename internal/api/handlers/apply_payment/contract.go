package apply_payment

import (
	"context"

	applyPayment "github.com/baydesk/BayBookingService/internal/usecase/apply_payment"
)

type ApplyPaymentUseCase interface {
	Execute(ctx context.Context, req *applyPayment.Request) (*applyPayment.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
