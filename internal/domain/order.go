package domain

import "time"

// OrderItem is a line item attached to a booking, owned exclusively by it.
// Either MenuItemID is set (priced from the menu at creation time) or
// CustomName/CustomPrice describe an off-menu item.
type OrderItem struct {
	ID        string
	BookingID string
	SeatIndex int

	MenuItemID  *string
	CustomName  *string
	CustomPrice *float64

	Quantity   int
	UnitPrice  float64
	TotalPrice float64

	CreatedAt time.Time
}

// Name returns the display name of the item
func (o *OrderItem) Name() string {
	if o.CustomName != nil {
		return *o.CustomName
	}
	return ""
}

// MenuItem is a sellable product looked up when an order item is created
type MenuItem struct {
	ID       string
	Name     string
	Price    float64
	IsActive bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
