package create_booking

import (
	"time"

	"github.com/baydesk/BayBookingService/internal/domain"
)

// Request admits one booking on one resource.
type Request struct {
	ResourceID    string  `json:"resourceId"`
	UserID        *string `json:"userId,omitempty"`
	CustomerName  string  `json:"customerName"`
	CustomerPhone string  `json:"customerPhone"`
	Date          string  `json:"date"`      // "YYYY-MM-DD" in venue-local time
	StartTime     string  `json:"startTime"` // "HH:MM" in venue-local time
	DurationHours int     `json:"durationHours"`
	Players       int     `json:"players"`
	Source        string  `json:"source"`
}

// Response is the admitted booking.
type Response struct {
	ID            string  `json:"id"`
	ResourceID    string  `json:"resourceId"`
	UserID        *string `json:"userId,omitempty"`
	CustomerName  string  `json:"customerName"`
	CustomerPhone string  `json:"customerPhone"`
	StartTime     string  `json:"startTime"` // ISO 8601
	EndTime       string  `json:"endTime"`   // ISO 8601
	Players       int     `json:"players"`
	BasePrice     float64 `json:"basePrice"`
	TaxRate       float64 `json:"taxRate"`
	Status        string  `json:"status"`
	Source        string  `json:"source"`

	CreatedAt time.Time `json:"createdAt"`
}

func fromDomain(b *domain.Booking) *Response {
	return &Response{
		ID:            b.ID,
		ResourceID:    b.ResourceID,
		UserID:        b.UserID,
		CustomerName:  b.CustomerName,
		CustomerPhone: b.CustomerPhone,
		StartTime:     b.StartTime.Format(time.RFC3339),
		EndTime:       b.EndTime.Format(time.RFC3339),
		Players:       b.Players,
		BasePrice:     b.BasePrice,
		TaxRate:       b.TaxRate,
		Status:        string(b.Status),
		Source:        string(b.Source),
		CreatedAt:     b.CreatedAt,
	}
}
