package domain

import "time"

// CouponStatus represents the redemption state of a coupon
type CouponStatus string

const (
	CouponActive   CouponStatus = "ACTIVE"
	CouponRedeemed CouponStatus = "REDEEMED"
	CouponExpired  CouponStatus = "EXPIRED"
)

// Coupon is a single-use flat discount. Redemption is a one-way
// ACTIVE -> REDEEMED transition permanently linked to one settlement.
type Coupon struct {
	ID             string
	Code           string
	Description    string
	DiscountAmount float64
	Status         CouponStatus
	ExpiresAt      *time.Time

	RedeemedAt        *time.Time
	RedeemedBookingID *string
	RedeemedSeatIndex *int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsExpired reports whether the coupon's expiry has passed at now.
// A coupon with no expiry never expires.
func (c *Coupon) IsExpired(now time.Time) bool {
	return c.ExpiresAt != nil && c.ExpiresAt.Before(now)
}

// CanRedeem returns true if the coupon may be applied to a settlement at now
func (c *Coupon) CanRedeem(now time.Time) bool {
	return c.Status == CouponActive && !c.IsExpired(now)
}
