package domain

import "time"

// PaymentMethod represents how a seat was settled
type PaymentMethod string

const (
	MethodCard PaymentMethod = "CARD"
	MethodCash PaymentMethod = "CASH"
)

// ValidPaymentMethod reports whether m is one of the closed set of methods
func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case MethodCard, MethodCash:
		return true
	default:
		return false
	}
}

// Payment records a settled seat. At most one non-voided payment may exist
// per (BookingID, SeatIndex); the storage layer enforces this with a partial
// unique index.
type Payment struct {
	ID        string
	BookingID string
	SeatIndex int

	Method PaymentMethod
	Amount float64
	Tip    float64

	// CouponCode is set when a coupon discount was applied as part of
	// this settlement.
	CouponCode *string

	Voided   bool
	VoidedAt *time.Time

	AppliedAt time.Time
	CreatedAt time.Time
}

// Covers reports whether the payment settles a seat total after discount,
// within the fixed cent tolerance.
func (p *Payment) Covers(totalDue float64) bool {
	return p.Amount+p.Tip >= totalDue-CentTolerance
}
