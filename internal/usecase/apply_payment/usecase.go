package apply_payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/baydesk/BayBookingService/internal/domain"
	bookingRepo "github.com/baydesk/BayBookingService/internal/infra/storage/booking"
	couponRepo "github.com/baydesk/BayBookingService/internal/infra/storage/coupon"
	paymentRepo "github.com/baydesk/BayBookingService/internal/infra/storage/payment"
)

// UseCase settles one seat of a booking. Everything runs in a single
// serializable transaction: the amount check against a freshly recomputed
// invoice, coupon redemption, the payment insert, and auto-completion.
// The partial unique index on live payments makes retries land on
// ErrAlreadyPaid instead of double-charging.
type UseCase struct {
	bookingRepo  BookingRepository
	paymentRepo  PaymentRepository
	couponRepo   CouponRepository
	invoices     InvoiceCalculator
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase creates the settlement use case.
func NewUseCase(
	bookingRepo BookingRepository,
	paymentRepo PaymentRepository,
	couponRepo CouponRepository,
	invoices InvoiceCalculator,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		paymentRepo:  paymentRepo,
		couponRepo:   couponRepo,
		invoices:     invoices,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute applies one payment.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ApplyPayment: booking=%s seat=%d method=%s amount=%.2f",
		req.BookingID, req.SeatIndex, req.Method, req.Amount)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ApplyPayment: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	var result *Response

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: loading booking: %v", ErrInternal, err)
		}

		if booking.IsTerminal() {
			uc.logger.Warn("ApplyPayment: booking=%s is terminal, status=%s", req.BookingID, booking.Status)
			return ErrBookingClosed
		}
		if req.SeatIndex > booking.Players {
			return fmt.Errorf("%w: seat index %d exceeds player count %d",
				ErrInvalidInput, req.SeatIndex, booking.Players)
		}

		// Locks the seat's live payment row if one exists.
		_, err = uc.paymentRepo.GetBySeat(txCtx, req.BookingID, req.SeatIndex)
		if err == nil {
			uc.logger.Warn("ApplyPayment: booking=%s seat=%d already paid", req.BookingID, req.SeatIndex)
			return ErrAlreadyPaid
		}
		if !errors.Is(err, paymentRepo.ErrPaymentNotFound) {
			return fmt.Errorf("%w: checking settlement: %v", ErrInternal, err)
		}

		// The amount is always checked against a fresh recomputation, never
		// a client-supplied total.
		invoice, err := uc.invoices.ComputeSeatInvoice(txCtx, req.BookingID, req.SeatIndex)
		if err != nil {
			return fmt.Errorf("%w: computing invoice: %v", ErrInternal, err)
		}

		var coupon *domain.Coupon
		var discount float64
		if req.CouponCode != nil {
			coupon, err = uc.redeemableCoupon(txCtx, *req.CouponCode, now)
			if err != nil {
				return err
			}
			discount = coupon.DiscountAmount
		}

		amountDue := domain.RoundCents(invoice.Subtotal + invoice.Tax - discount)
		if amountDue < 0 {
			amountDue = 0
		}

		if !domain.AmountsMatch(req.Amount, amountDue) {
			uc.logger.Warn("ApplyPayment: amount mismatch for booking=%s seat=%d: tendered=%.2f due=%.2f",
				req.BookingID, req.SeatIndex, req.Amount, amountDue)
			return fmt.Errorf("%w: tendered %.2f, due %.2f", ErrAmountMismatch, req.Amount, amountDue)
		}

		payment := &domain.Payment{
			ID:         uuid.NewString(),
			BookingID:  req.BookingID,
			SeatIndex:  req.SeatIndex,
			Method:     domain.PaymentMethod(req.Method),
			Amount:     req.Amount,
			Tip:        req.Tip,
			CouponCode: req.CouponCode,
			AppliedAt:  now,
		}

		created, err := uc.paymentRepo.Create(txCtx, payment)
		if err != nil {
			if errors.Is(err, paymentRepo.ErrDuplicatePayment) {
				return ErrAlreadyPaid
			}
			return fmt.Errorf("%w: creating payment: %v", ErrInternal, err)
		}

		if coupon != nil {
			if err := uc.couponRepo.MarkRedeemed(txCtx, coupon.ID, req.BookingID, req.SeatIndex, now); err != nil {
				if errors.Is(err, couponRepo.ErrCouponNotActive) {
					return ErrCouponInvalid
				}
				return fmt.Errorf("%w: redeeming coupon: %v", ErrInternal, err)
			}
		}

		paidSeats, err := uc.paymentRepo.CountPaidSeats(txCtx, req.BookingID)
		if err != nil {
			return fmt.Errorf("%w: counting paid seats: %v", ErrInternal, err)
		}

		closed := false
		if paidSeats == booking.Players && now.After(booking.EndTime) && booking.CanTransitionTo(domain.StatusCompleted) {
			if err := uc.bookingRepo.UpdateStatus(txCtx, req.BookingID, domain.StatusCompleted); err != nil {
				return fmt.Errorf("%w: completing booking: %v", ErrInternal, err)
			}
			closed = true
		}

		result = buildResponse(created, amountDue, discount, paidSeats, booking.Players, closed)
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("ApplyPayment: payment id=%s applied, booking=%s seats %d/%d paid, closed=%t",
		result.PaymentID, req.BookingID, result.PaidSeats, result.TotalSeats, result.BookingClosed)
	return result, nil
}

// redeemableCoupon loads and checks a coupon inside the transaction. A
// lapsed coupon is flagged EXPIRED on first sight.
func (uc *UseCase) redeemableCoupon(ctx context.Context, code string, now time.Time) (*domain.Coupon, error) {
	coupon, err := uc.couponRepo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, couponRepo.ErrCouponNotFound) {
			uc.logger.Warn("ApplyPayment: coupon code=%s not found", code)
			return nil, ErrCouponInvalid
		}
		return nil, fmt.Errorf("%w: loading coupon: %v", ErrInternal, err)
	}

	if coupon.Status == domain.CouponActive && coupon.IsExpired(now) {
		if err := uc.couponRepo.MarkExpired(ctx, coupon.ID); err != nil && !errors.Is(err, couponRepo.ErrCouponNotActive) {
			return nil, fmt.Errorf("%w: expiring coupon: %v", ErrInternal, err)
		}
		return nil, ErrCouponExpired
	}
	if coupon.Status == domain.CouponExpired {
		return nil, ErrCouponExpired
	}
	if !coupon.CanRedeem(now) {
		uc.logger.Warn("ApplyPayment: coupon code=%s not redeemable, status=%s", code, coupon.Status)
		return nil, ErrCouponInvalid
	}

	return coupon, nil
}
