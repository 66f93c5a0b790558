package domain

// SeatInvoice is the derived bill for one seat of a booking. It is never
// stored; every consumer recomputes it from the order items and the
// booking's base price share.
type SeatInvoice struct {
	BookingID string
	SeatIndex int

	Items []*OrderItem

	// BaseShare is this seat's portion of the booking's base price.
	BaseShare float64

	Subtotal float64
	TaxRate  float64
	Tax      float64
	Tip      float64
	Discount float64
	Total    float64

	Paid bool
}

// AmountDue is what a payment must match exactly (tip excluded, since the
// tip is chosen at payment time).
func (inv *SeatInvoice) AmountDue() float64 {
	return RoundCents(inv.Subtotal + inv.Tax - inv.Discount)
}
