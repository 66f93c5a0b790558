package get_available_slots

import (
	"context"
	"fmt"
	"time"

	"github.com/baydesk/BayBookingService/internal/config"
	"github.com/baydesk/BayBookingService/internal/domain"
	"github.com/baydesk/BayBookingService/pkg/civiltime"
)

// UseCase computes the slot grid of one resource for one venue-local date.
type UseCase struct {
	bookingRepo  BookingRepository
	resolver     *civiltime.Resolver
	venue        config.VenueConfig
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase creates the available-slots use case.
func NewUseCase(
	bookingRepo BookingRepository,
	resolver *civiltime.Resolver,
	venue config.VenueConfig,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		resolver:     resolver,
		venue:        venue,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute returns the slot grid for the requested date. A date in the past
// yields an empty grid; on the current date, slots that already ended are
// excluded.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: resource=%s date=%s", req.ResourceID, req.Date)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	date, err := civiltime.ParseCivilDate(req.Date)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: invalid date %q: %v", req.Date, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	now := uc.timeProvider.Now()

	resp := &Response{
		ResourceID: req.ResourceID,
		Date:       date.String(),
		Slots:      []Slot{},
	}

	// The whole requested day is already over.
	dayStart, dayEnd := uc.resolver.DateRange(date)
	if dayEnd.Before(now) {
		return resp, nil
	}

	weekday := time.Date(date.Year, date.Month, date.Day, 0, 0, 0, 0, time.UTC).Weekday()
	hours := uc.venue.Hours.ForWeekday(weekday)
	if !hours.IsOpen {
		uc.logger.Info("GetAvailableSlots: venue closed on %s", date)
		return resp, nil
	}

	marks, err := generateSlotMarks(uc.resolver, date, hours, uc.venue.SlotGranularityMinutes)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: slot generation failed: %v", err)
		return nil, fmt.Errorf("%w: generating slots: %v", ErrInternal, err)
	}

	// Drop slots that already ended.
	live := marks[:0]
	for _, mark := range marks {
		if mark.end.After(now) {
			live = append(live, mark)
		}
	}
	marks = live

	bookings, err := uc.bookingRepo.ListByResourceWindow(ctx, domain.ResourceBookingsFilter{
		ResourceID:  req.ResourceID,
		WindowStart: &dayStart,
		WindowEnd:   &dayEnd,
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list bookings: %v", err)
		return nil, fmt.Errorf("%w: listing bookings: %v", ErrInternal, err)
	}

	resp.Slots = buildSlots(marks, bookings)

	uc.logger.Info("GetAvailableSlots: %d slots for resource=%s date=%s", len(resp.Slots), req.ResourceID, date)
	return resp, nil
}
