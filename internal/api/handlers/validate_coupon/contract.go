package validate_coupon

import (
	"context"

	"github.com/baydesk/BayBookingService/internal/service/coupons"
)

type CouponService interface {
	Validate(ctx context.Context, code string) (*coupons.CouponResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
