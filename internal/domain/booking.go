package domain

import "time"

// BookingStatus represents the lifecycle state of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "PENDING"
	StatusConfirmed BookingStatus = "CONFIRMED"
	StatusCompleted BookingStatus = "COMPLETED"
	StatusCancelled BookingStatus = "CANCELLED"
)

// BookingSource represents how the booking was taken
type BookingSource string

const (
	SourceWalkIn BookingSource = "WALK_IN"
	SourcePhone  BookingSource = "PHONE"
	SourceOnline BookingSource = "ONLINE"
)

// ValidBookingSource reports whether s is one of the closed set of sources
func ValidBookingSource(s BookingSource) bool {
	switch s {
	case SourceWalkIn, SourcePhone, SourceOnline:
		return true
	default:
		return false
	}
}

// Booking represents a reservation of a bay for a time window.
// StartTime and EndTime are absolute instants (UTC); venue-local
// interpretation goes through the civiltime resolver.
type Booking struct {
	ID         string
	ResourceID string

	// UserID is the registered owner; nil for guest bookings, which are
	// identified only by CustomerName/CustomerPhone.
	UserID        *string
	CustomerName  string
	CustomerPhone string

	StartTime time.Time
	EndTime   time.Time
	Players   int

	BasePrice float64
	TaxRate   float64

	Status BookingStatus
	Source BookingSource

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsGuest returns true if the booking has no registered owner
func (b *Booking) IsGuest() bool {
	return b.UserID == nil
}

// IsActive returns true if the booking still occupies its time window
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// IsTerminal returns true if no further lifecycle transitions are allowed
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCompleted || b.Status == StatusCancelled
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// AcceptsOrders returns true while order items may still be attached
func (b *Booking) AcceptsOrders() bool {
	return !b.IsTerminal()
}

// Overlaps reports whether [start, end) intersects the booking's window.
// Half-open intervals: back-to-back bookings do not overlap.
func (b *Booking) Overlaps(start, end time.Time) bool {
	return b.StartTime.Before(end) && start.Before(b.EndTime)
}

// CanTransitionTo validates a status transition against the lifecycle:
// PENDING -> CONFIRMED -> COMPLETED, CANCELLED reachable from any
// non-terminal state.
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	switch next {
	case StatusPending:
		return false
	case StatusConfirmed:
		return b.Status == StatusPending
	case StatusCompleted:
		return b.Status == StatusConfirmed
	case StatusCancelled:
		return !b.IsTerminal()
	default:
		return false
	}
}

// InitialStatus returns the status a new booking is created with.
// Walk-ins are taken at the counter by staff and start confirmed.
func InitialStatus(source BookingSource) BookingStatus {
	if source == SourceWalkIn {
		return StatusConfirmed
	}
	return StatusPending
}

// BaseShare returns the per-seat share of the booking's base price.
// The base fee is split evenly across all seats.
func (b *Booking) BaseShare() float64 {
	if b.Players <= 0 {
		return b.BasePrice
	}
	return b.BasePrice / float64(b.Players)
}

// ResourceBookingsFilter narrows booking lookups for availability checks
type ResourceBookingsFilter struct {
	ResourceID      string
	WindowStart     *time.Time // bookings ending after this instant
	WindowEnd       *time.Time // bookings starting before this instant
	Status          *BookingStatus
	IncludeInactive bool // include cancelled bookings
}
