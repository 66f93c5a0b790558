package coupons

import (
	"context"
	"time"

	"github.com/baydesk/BayBookingService/internal/domain"
)

// CouponRepository is the coupon storage contract.
type CouponRepository interface {
	GetByCode(ctx context.Context, code string) (*domain.Coupon, error)
	MarkExpired(ctx context.Context, id string) error
}

// TimeProvider supplies the current time.
type TimeProvider interface {
	Now() time.Time
}

// Logger is the logging contract.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
