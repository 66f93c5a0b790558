package apply_payment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baydesk/BayBookingService/internal/domain"
	couponRepo "github.com/baydesk/BayBookingService/internal/infra/storage/coupon"
	paymentRepo "github.com/baydesk/BayBookingService/internal/infra/storage/payment"
)

type mockBookingRepo struct {
	GetByIDFunc      func(ctx context.Context, id string) (*domain.Booking, error)
	UpdateStatusFunc func(ctx context.Context, id string, status domain.BookingStatus) error
}

func (m *mockBookingRepo) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return confirmedBooking(), nil
}

func (m *mockBookingRepo) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status)
	}
	return nil
}

type mockPaymentRepo struct {
	CreateFunc         func(ctx context.Context, p *domain.Payment) (*domain.Payment, error)
	GetBySeatFunc      func(ctx context.Context, bookingID string, seatIndex int) (*domain.Payment, error)
	CountPaidSeatsFunc func(ctx context.Context, bookingID string) (int, error)
}

func (m *mockPaymentRepo) Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, p)
	}
	return p, nil
}

func (m *mockPaymentRepo) GetBySeat(ctx context.Context, bookingID string, seatIndex int) (*domain.Payment, error) {
	if m.GetBySeatFunc != nil {
		return m.GetBySeatFunc(ctx, bookingID, seatIndex)
	}
	return nil, paymentRepo.ErrPaymentNotFound
}

func (m *mockPaymentRepo) CountPaidSeats(ctx context.Context, bookingID string) (int, error) {
	if m.CountPaidSeatsFunc != nil {
		return m.CountPaidSeatsFunc(ctx, bookingID)
	}
	return 1, nil
}

type mockCouponRepo struct {
	GetByCodeFunc    func(ctx context.Context, code string) (*domain.Coupon, error)
	MarkRedeemedFunc func(ctx context.Context, id, bookingID string, seatIndex int, redeemedAt time.Time) error
	MarkExpiredFunc  func(ctx context.Context, id string) error
}

func (m *mockCouponRepo) GetByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	if m.GetByCodeFunc != nil {
		return m.GetByCodeFunc(ctx, code)
	}
	return nil, couponRepo.ErrCouponNotFound
}

func (m *mockCouponRepo) MarkRedeemed(ctx context.Context, id, bookingID string, seatIndex int, redeemedAt time.Time) error {
	if m.MarkRedeemedFunc != nil {
		return m.MarkRedeemedFunc(ctx, id, bookingID, seatIndex, redeemedAt)
	}
	return nil
}

func (m *mockCouponRepo) MarkExpired(ctx context.Context, id string) error {
	if m.MarkExpiredFunc != nil {
		return m.MarkExpiredFunc(ctx, id)
	}
	return nil
}

type mockInvoices struct {
	ComputeSeatInvoiceFunc func(ctx context.Context, bookingID string, seatIndex int) (*domain.SeatInvoice, error)
}

func (m *mockInvoices) ComputeSeatInvoice(ctx context.Context, bookingID string, seatIndex int) (*domain.SeatInvoice, error) {
	if m.ComputeSeatInvoiceFunc != nil {
		return m.ComputeSeatInvoiceFunc(ctx, bookingID, seatIndex)
	}
	return &domain.SeatInvoice{
		BookingID: bookingID,
		SeatIndex: seatIndex,
		BaseShare: 50,
		Subtotal:  62.99,
		Tax:       8.19,
	}, nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

var testNow = time.Date(2025, 7, 15, 20, 0, 0, 0, time.UTC)

func confirmedBooking() *domain.Booking {
	start := time.Date(2025, 7, 15, 17, 0, 0, 0, time.UTC)
	return &domain.Booking{
		ID:         "b1",
		ResourceID: "bay1",
		Players:    2,
		BasePrice:  100,
		TaxRate:    0.13,
		Status:     domain.StatusConfirmed,
		StartTime:  start,
		EndTime:    start.Add(2 * time.Hour),
	}
}

type testMocks struct {
	bookings *mockBookingRepo
	payments *mockPaymentRepo
	coupons  *mockCouponRepo
	invoices *mockInvoices
}

func newTestUseCase(m testMocks) *UseCase {
	if m.bookings == nil {
		m.bookings = &mockBookingRepo{}
	}
	if m.payments == nil {
		m.payments = &mockPaymentRepo{}
	}
	if m.coupons == nil {
		m.coupons = &mockCouponRepo{}
	}
	if m.invoices == nil {
		m.invoices = &mockInvoices{}
	}
	uc := NewUseCase(m.bookings, m.payments, m.coupons, m.invoices, fakeTxManager{}, nopLogger{})
	uc.timeProvider = fixedClock{testNow}
	return uc
}

func paymentRequest() *Request {
	return &Request{
		BookingID: "b1",
		SeatIndex: 1,
		Method:    "CARD",
		Amount:    71.18,
	}
}

func TestExecuteExactAmountSettlesSeat(t *testing.T) {
	var created *domain.Payment
	payments := &mockPaymentRepo{CreateFunc: func(ctx context.Context, p *domain.Payment) (*domain.Payment, error) {
		created = p
		return p, nil
	}}
	uc := newTestUseCase(testMocks{payments: payments})

	resp, err := uc.Execute(context.Background(), paymentRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, testNow, created.AppliedAt)
	assert.Equal(t, 71.18, resp.AmountDue)
	assert.Equal(t, 1, resp.PaidSeats)
	assert.Equal(t, 2, resp.TotalSeats)
	assert.False(t, resp.FullySettled)
	assert.False(t, resp.BookingClosed)
}

func TestExecuteShortPaymentRejected(t *testing.T) {
	uc := newTestUseCase(testMocks{})

	req := paymentRequest()
	req.Amount = 71.17
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrAmountMismatch)
}

func TestExecuteOverPaymentRejected(t *testing.T) {
	uc := newTestUseCase(testMocks{})

	req := paymentRequest()
	req.Amount = 71.19
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrAmountMismatch)
}

func TestExecuteSeatAlreadyPaid(t *testing.T) {
	payments := &mockPaymentRepo{GetBySeatFunc: func(ctx context.Context, bookingID string, seatIndex int) (*domain.Payment, error) {
		return &domain.Payment{ID: "p1", BookingID: bookingID, SeatIndex: seatIndex}, nil
	}}
	uc := newTestUseCase(testMocks{payments: payments})

	_, err := uc.Execute(context.Background(), paymentRequest())
	assert.ErrorIs(t, err, ErrAlreadyPaid)
}

func TestExecuteConcurrentDuplicateHitsUniqueIndex(t *testing.T) {
	payments := &mockPaymentRepo{CreateFunc: func(ctx context.Context, p *domain.Payment) (*domain.Payment, error) {
		return nil, paymentRepo.ErrDuplicatePayment
	}}
	uc := newTestUseCase(testMocks{payments: payments})

	_, err := uc.Execute(context.Background(), paymentRequest())
	assert.ErrorIs(t, err, ErrAlreadyPaid)
}

func TestExecuteTerminalBooking(t *testing.T) {
	bookings := &mockBookingRepo{GetByIDFunc: func(ctx context.Context, id string) (*domain.Booking, error) {
		b := confirmedBooking()
		b.Status = domain.StatusCompleted
		return b, nil
	}}
	uc := newTestUseCase(testMocks{bookings: bookings})

	_, err := uc.Execute(context.Background(), paymentRequest())
	assert.ErrorIs(t, err, ErrBookingClosed)
}

func TestExecuteSeatBeyondPlayerCount(t *testing.T) {
	uc := newTestUseCase(testMocks{})

	req := paymentRequest()
	req.SeatIndex = 3
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecuteCouponDiscountAndRedemption(t *testing.T) {
	expires := testNow.Add(24 * time.Hour)
	var redeemedID, redeemedBooking string
	var redeemedSeat int
	coupons := &mockCouponRepo{
		GetByCodeFunc: func(ctx context.Context, code string) (*domain.Coupon, error) {
			return &domain.Coupon{ID: "c1", Code: code, DiscountAmount: 5, Status: domain.CouponActive, ExpiresAt: &expires}, nil
		},
		MarkRedeemedFunc: func(ctx context.Context, id, bookingID string, seatIndex int, redeemedAt time.Time) error {
			redeemedID, redeemedBooking, redeemedSeat = id, bookingID, seatIndex
			return nil
		},
	}
	uc := newTestUseCase(testMocks{coupons: coupons})

	code := "SAVE5"
	req := paymentRequest()
	req.CouponCode = &code
	req.Amount = 66.18 // 71.18 - 5
	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 5.0, resp.Discount)
	assert.Equal(t, 66.18, resp.AmountDue)
	assert.Equal(t, "c1", redeemedID)
	assert.Equal(t, "b1", redeemedBooking)
	assert.Equal(t, 1, redeemedSeat)
}

func TestExecuteLapsedCouponRejectedAndExpired(t *testing.T) {
	expires := testNow.Add(-time.Hour)
	var expiredID string
	coupons := &mockCouponRepo{
		GetByCodeFunc: func(ctx context.Context, code string) (*domain.Coupon, error) {
			return &domain.Coupon{ID: "c1", Code: code, DiscountAmount: 5, Status: domain.CouponActive, ExpiresAt: &expires}, nil
		},
		MarkExpiredFunc: func(ctx context.Context, id string) error {
			expiredID = id
			return nil
		},
	}
	uc := newTestUseCase(testMocks{coupons: coupons})

	code := "LATE"
	req := paymentRequest()
	req.CouponCode = &code
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrCouponExpired)
	assert.Equal(t, "c1", expiredID)
}

func TestExecuteRedeemedCouponRejected(t *testing.T) {
	coupons := &mockCouponRepo{GetByCodeFunc: func(ctx context.Context, code string) (*domain.Coupon, error) {
		return &domain.Coupon{ID: "c1", Code: code, Status: domain.CouponRedeemed}, nil
	}}
	uc := newTestUseCase(testMocks{coupons: coupons})

	code := "USED"
	req := paymentRequest()
	req.CouponCode = &code
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrCouponInvalid)
}

func TestExecuteDiscountNeverPushesDueBelowZero(t *testing.T) {
	expires := testNow.Add(24 * time.Hour)
	coupons := &mockCouponRepo{GetByCodeFunc: func(ctx context.Context, code string) (*domain.Coupon, error) {
		return &domain.Coupon{ID: "c1", Code: code, DiscountAmount: 500, Status: domain.CouponActive, ExpiresAt: &expires}, nil
	}}
	uc := newTestUseCase(testMocks{coupons: coupons})

	code := "BIG"
	req := paymentRequest()
	req.CouponCode = &code
	req.Amount = 0
	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 0.0, resp.AmountDue)
}

func TestExecuteFinalSeatAfterEndTimeCompletesBooking(t *testing.T) {
	var updatedTo domain.BookingStatus
	bookings := &mockBookingRepo{UpdateStatusFunc: func(ctx context.Context, id string, status domain.BookingStatus) error {
		updatedTo = status
		return nil
	}}
	payments := &mockPaymentRepo{CountPaidSeatsFunc: func(ctx context.Context, bookingID string) (int, error) {
		return 2, nil
	}}
	uc := newTestUseCase(testMocks{bookings: bookings, payments: payments})

	req := paymentRequest()
	req.SeatIndex = 2
	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, resp.FullySettled)
	assert.True(t, resp.BookingClosed)
	assert.Equal(t, domain.StatusCompleted, updatedTo)
}

func TestExecuteFinalSeatBeforeEndTimeStaysOpen(t *testing.T) {
	bookings := &mockBookingRepo{GetByIDFunc: func(ctx context.Context, id string) (*domain.Booking, error) {
		b := confirmedBooking()
		b.EndTime = testNow.Add(time.Hour)
		return b, nil
	}}
	payments := &mockPaymentRepo{CountPaidSeatsFunc: func(ctx context.Context, bookingID string) (int, error) {
		return 2, nil
	}}
	uc := newTestUseCase(testMocks{bookings: bookings, payments: payments})

	resp, err := uc.Execute(context.Background(), paymentRequest())
	require.NoError(t, err)

	assert.True(t, resp.FullySettled)
	assert.False(t, resp.BookingClosed)
}

func TestExecuteValidation(t *testing.T) {
	uc := newTestUseCase(testMocks{})

	cases := []struct {
		name   string
		mutate func(req *Request)
	}{
		{"missing booking", func(req *Request) { req.BookingID = "" }},
		{"seat below minimum", func(req *Request) { req.SeatIndex = 0 }},
		{"unknown method", func(req *Request) { req.Method = "BARTER" }},
		{"negative amount", func(req *Request) { req.Amount = -1 }},
		{"negative tip", func(req *Request) { req.Tip = -1 }},
		{"blank coupon", func(req *Request) { code := " "; req.CouponCode = &code }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := paymentRequest()
			tc.mutate(req)
			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
