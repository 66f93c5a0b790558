package models

import (
	"time"

	"github.com/baydesk/BayBookingService/internal/domain"
)

// Request models

// AddItemRequest adds one line to a seat's ledger. Exactly one of MenuItemID
// or CustomName+CustomPrice must be set.
type AddItemRequest struct {
	SeatIndex   int      `json:"seatIndex"`
	MenuItemID  *string  `json:"menuItemId,omitempty"`
	CustomName  *string  `json:"customName,omitempty"`
	CustomPrice *float64 `json:"customPrice,omitempty"`
	Quantity    int      `json:"quantity"`
}

// Response models

// OrderItemResponse carries one ledger line to the API layer.
type OrderItemResponse struct {
	ID          string   `json:"id"`
	BookingID   string   `json:"bookingId"`
	SeatIndex   int      `json:"seatIndex"`
	MenuItemID  *string  `json:"menuItemId,omitempty"`
	CustomName  *string  `json:"customName,omitempty"`
	CustomPrice *float64 `json:"customPrice,omitempty"`
	Quantity    int      `json:"quantity"`
	UnitPrice   float64  `json:"unitPrice"`
	TotalPrice  float64  `json:"totalPrice"`

	CreatedAt time.Time `json:"createdAt"`
}

// SeatInvoiceResponse is the derived bill for one seat.
type SeatInvoiceResponse struct {
	BookingID string              `json:"bookingId"`
	SeatIndex int                 `json:"seatIndex"`
	Items     []OrderItemResponse `json:"items"`
	BaseShare float64             `json:"baseShare"`
	Subtotal  float64             `json:"subtotal"`
	TaxRate   float64             `json:"taxRate"`
	Tax       float64             `json:"tax"`
	Tip       float64             `json:"tip"`
	Discount  float64             `json:"discount"`
	Total     float64             `json:"total"`
	AmountDue float64             `json:"amountDue"`
	Paid      bool                `json:"paid"`
}

// Conversion helpers

// FromDomainOrderItem converts a domain order item into a response DTO.
func FromDomainOrderItem(item *domain.OrderItem) *OrderItemResponse {
	if item == nil {
		return nil
	}

	return &OrderItemResponse{
		ID:          item.ID,
		BookingID:   item.BookingID,
		SeatIndex:   item.SeatIndex,
		MenuItemID:  item.MenuItemID,
		CustomName:  item.CustomName,
		CustomPrice: item.CustomPrice,
		Quantity:    item.Quantity,
		UnitPrice:   item.UnitPrice,
		TotalPrice:  item.TotalPrice,
		CreatedAt:   item.CreatedAt,
	}
}

// FromDomainInvoice converts a derived seat invoice into a response DTO.
func FromDomainInvoice(inv *domain.SeatInvoice) *SeatInvoiceResponse {
	if inv == nil {
		return nil
	}

	items := make([]OrderItemResponse, 0, len(inv.Items))
	for _, item := range inv.Items {
		items = append(items, *FromDomainOrderItem(item))
	}

	return &SeatInvoiceResponse{
		BookingID: inv.BookingID,
		SeatIndex: inv.SeatIndex,
		Items:     items,
		BaseShare: inv.BaseShare,
		Subtotal:  inv.Subtotal,
		TaxRate:   inv.TaxRate,
		Tax:       inv.Tax,
		Tip:       inv.Tip,
		Discount:  inv.Discount,
		Total:     inv.Total,
		AmountDue: inv.AmountDue(),
		Paid:      inv.Paid,
	}
}
