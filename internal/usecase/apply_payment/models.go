package apply_payment

import (
	"time"

	"github.com/baydesk/BayBookingService/internal/domain"
)

// Request settles one seat of a booking.
type Request struct {
	BookingID  string  `json:"-"`
	SeatIndex  int     `json:"seatIndex"`
	Method     string  `json:"method"`
	Amount     float64 `json:"amount"`
	Tip        float64 `json:"tip"`
	CouponCode *string `json:"couponCode,omitempty"`
}

// Response is the applied payment plus the booking's settlement progress.
type Response struct {
	PaymentID  string  `json:"paymentId"`
	BookingID  string  `json:"bookingId"`
	SeatIndex  int     `json:"seatIndex"`
	Method     string  `json:"method"`
	Amount     float64 `json:"amount"`
	Tip        float64 `json:"tip"`
	CouponCode *string `json:"couponCode,omitempty"`
	AmountDue  float64 `json:"amountDue"`
	Discount   float64 `json:"discount"`

	PaidSeats     int  `json:"paidSeats"`
	TotalSeats    int  `json:"totalSeats"`
	FullySettled  bool `json:"fullySettled"`
	BookingClosed bool `json:"bookingClosed"`

	AppliedAt time.Time `json:"appliedAt"`
}

func buildResponse(p *domain.Payment, amountDue, discount float64, paidSeats, totalSeats int, closed bool) *Response {
	return &Response{
		PaymentID:     p.ID,
		BookingID:     p.BookingID,
		SeatIndex:     p.SeatIndex,
		Method:        string(p.Method),
		Amount:        p.Amount,
		Tip:           p.Tip,
		CouponCode:    p.CouponCode,
		AmountDue:     amountDue,
		Discount:      discount,
		PaidSeats:     paidSeats,
		TotalSeats:    totalSeats,
		FullySettled:  paidSeats == totalSeats,
		BookingClosed: closed,
		AppliedAt:     p.AppliedAt,
	}
}
