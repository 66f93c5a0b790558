package get_available_slots

import (
	"fmt"
	"time"

	"github.com/baydesk/BayBookingService/internal/config"
	"github.com/baydesk/BayBookingService/internal/domain"
	"github.com/baydesk/BayBookingService/pkg/civiltime"
)

// slotMark is one grid position in venue-local minutes from midnight. The
// instants are resolved per-boundary, so on shift days a civil slot keeps
// its wall-clock label even when its real length is not the granularity.
type slotMark struct {
	startMinute int
	endMinute   int
	start       time.Time
	end         time.Time
}

// generateSlotMarks builds the full slot grid for one civil date from the
// venue's hours. Slots that would run past closing are dropped.
func generateSlotMarks(
	resolver *civiltime.Resolver,
	date civiltime.CivilDate,
	hours config.DayHours,
	granularityMinutes int,
) ([]slotMark, error) {
	if !hours.IsOpen {
		return []slotMark{}, nil
	}

	openHour, openMinute, err := hours.OpenClock()
	if err != nil {
		return nil, err
	}
	closeHour, closeMinute, err := hours.CloseClock()
	if err != nil {
		return nil, err
	}

	openAt := openHour*60 + openMinute
	closeAt := closeHour*60 + closeMinute

	marks := make([]slotMark, 0)
	for m := openAt; m+granularityMinutes <= closeAt; m += granularityMinutes {
		marks = append(marks, slotMark{
			startMinute: m,
			endMinute:   m + granularityMinutes,
			start:       resolveMinute(resolver, date, m),
			end:         resolveMinute(resolver, date, m+granularityMinutes),
		})
	}
	return marks, nil
}

// resolveMinute maps venue-local minutes from midnight to an instant.
// Minute 1440 is midnight of the following civil day.
func resolveMinute(resolver *civiltime.Resolver, date civiltime.CivilDate, minute int) time.Time {
	if minute >= 24*60 {
		date = date.AddDays(minute / (24 * 60))
		minute = minute % (24 * 60)
	}
	return resolver.FromCivil(date, minute/60, minute%60, 0, 0)
}

// buildSlots marks each grid position available unless an active booking
// overlaps it. Touching endpoints do not conflict.
func buildSlots(marks []slotMark, bookings []*domain.Booking) []Slot {
	slots := make([]Slot, 0, len(marks))
	for _, mark := range marks {
		available := true
		for _, b := range bookings {
			if !b.IsActive() {
				continue
			}
			if b.Overlaps(mark.start, mark.end) {
				available = false
				break
			}
		}

		slots = append(slots, Slot{
			StartTime:       formatClock(mark.startMinute),
			EndTime:         formatClock(mark.endMinute),
			DurationMinutes: mark.endMinute - mark.startMinute,
			Available:       available,
		})
	}
	return slots
}

// formatClock renders minutes from midnight as "HH:MM". Minute 1440 renders
// as "24:00" to match the venue hours notation.
func formatClock(minute int) string {
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}
