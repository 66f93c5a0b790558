package coupons

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/baydesk/BayBookingService/internal/domain"
	couponRepo "github.com/baydesk/BayBookingService/internal/infra/storage/coupon"
)

// Service validates coupons for the API layer. Redemption itself happens
// inside the payment transaction, not here.
type Service struct {
	couponRepo CouponRepository
	clock      TimeProvider
	logger     Logger
}

// NewService creates a coupon service.
func NewService(couponRepo CouponRepository, clock TimeProvider, logger Logger) *Service {
	return &Service{
		couponRepo: couponRepo,
		clock:      clock,
		logger:     logger,
	}
}

// CouponResponse is the validation result shown before payment.
type CouponResponse struct {
	Code           string     `json:"code"`
	Description    string     `json:"description"`
	DiscountAmount float64    `json:"discountAmount"`
	Status         string     `json:"status"`
	ExpiresAt      *time.Time `json:"expiresAt,omitempty"`
}

// Validate checks whether a coupon can still be applied. A lapsed coupon is
// flagged EXPIRED on first sight, so later reads see the final state.
func (s *Service) Validate(ctx context.Context, code string) (*CouponResponse, error) {
	coupon, err := s.couponRepo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, couponRepo.ErrCouponNotFound) {
			s.logger.Warn("Validate: coupon code=%s not found", code)
			return nil, ErrCouponInvalid
		}
		s.logger.Error("Validate: repository error for code=%s: %v", code, err)
		return nil, fmt.Errorf("%w: Validate - repository error: %v", ErrInternal, err)
	}

	now := s.clock.Now()

	if coupon.Status == domain.CouponActive && coupon.IsExpired(now) {
		if err := s.couponRepo.MarkExpired(ctx, coupon.ID); err != nil && !errors.Is(err, couponRepo.ErrCouponNotActive) {
			s.logger.Error("Validate: failed to expire coupon code=%s: %v", code, err)
			return nil, fmt.Errorf("%w: Validate - expiring coupon: %v", ErrInternal, err)
		}
		s.logger.Info("Validate: coupon code=%s expired at %v", code, coupon.ExpiresAt)
		return nil, ErrCouponExpired
	}

	switch coupon.Status {
	case domain.CouponActive:
		return &CouponResponse{
			Code:           coupon.Code,
			Description:    coupon.Description,
			DiscountAmount: coupon.DiscountAmount,
			Status:         string(coupon.Status),
			ExpiresAt:      coupon.ExpiresAt,
		}, nil
	case domain.CouponExpired:
		return nil, ErrCouponExpired
	default:
		s.logger.Warn("Validate: coupon code=%s not redeemable, status=%s", code, coupon.Status)
		return nil, ErrCouponInvalid
	}
}
