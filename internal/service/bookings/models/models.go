package models

import (
	"errors"
	"time"

	"github.com/baydesk/BayBookingService/internal/domain"
)

var (
	// ErrInvalidStatus is returned when a status string does not map to a
	// known booking status.
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request models

// CancelBookingRequest asks to cancel a booking.
type CancelBookingRequest struct {
	CancellationReason string `json:"cancellationReason"`
}

// GetUserBookingsRequest fetches a user's booking history.
type GetUserBookingsRequest struct {
	UserID string  `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// LinkGuestBookingsRequest attaches historic guest bookings to an account.
type LinkGuestBookingsRequest struct {
	UserID string `json:"userId"`
	Phone  string `json:"phone"`
}

// Response models

// BookingResponse carries booking data to the API layer.
type BookingResponse struct {
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

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse carries a list of bookings.
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// LinkGuestBookingsResponse reports how many guest bookings were attached.
type LinkGuestBookingsResponse struct {
	LinkedCount int64 `json:"linkedCount"`
}

// Conversion helpers

// ToDomainBookingStatus parses a status string.
func ToDomainBookingStatus(s string) (domain.BookingStatus, error) {
	status := domain.BookingStatus(s)
	switch status {
	case domain.StatusPending, domain.StatusConfirmed,
		domain.StatusCompleted, domain.StatusCancelled:
		return status, nil
	default:
		return "", ErrInvalidStatus
	}
}

// FromDomainBooking converts a domain booking into a response DTO.
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		ResourceID:         b.ResourceID,
		UserID:             b.UserID,
		CustomerName:       b.CustomerName,
		CustomerPhone:      b.CustomerPhone,
		StartTime:          b.StartTime.Format(time.RFC3339),
		EndTime:            b.EndTime.Format(time.RFC3339),
		Players:            b.Players,
		BasePrice:          b.BasePrice,
		TaxRate:            b.TaxRate,
		Status:             string(b.Status),
		Source:             string(b.Source),
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if b.CancelledAt != nil {
		cancelledAt := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledAt
	}

	return resp
}

// FromDomainBookingList converts a slice of domain bookings.
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}
	for _, b := range bookings {
		resp.Bookings = append(resp.Bookings, *FromDomainBooking(b))
	}
	return resp
}
