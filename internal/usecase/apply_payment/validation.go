package apply_payment

import (
	"fmt"
	"strings"

	"github.com/baydesk/BayBookingService/internal/domain"
)

func validateRequest(req *Request) error {
	if strings.TrimSpace(req.BookingID) == "" {
		return fmt.Errorf("%w: bookingId is required", ErrInvalidInput)
	}
	if req.SeatIndex < domain.MinSeatIndex {
		return fmt.Errorf("%w: seat index must be >= %d", ErrInvalidInput, domain.MinSeatIndex)
	}
	if !domain.ValidPaymentMethod(domain.PaymentMethod(req.Method)) {
		return fmt.Errorf("%w: unknown payment method %q", ErrInvalidInput, req.Method)
	}
	if req.Amount < 0 {
		return fmt.Errorf("%w: amount must not be negative", ErrInvalidInput)
	}
	if req.Tip < 0 {
		return fmt.Errorf("%w: tip must not be negative", ErrInvalidInput)
	}
	if req.CouponCode != nil && strings.TrimSpace(*req.CouponCode) == "" {
		return fmt.Errorf("%w: coupon code must not be empty", ErrInvalidInput)
	}
	return nil
}
