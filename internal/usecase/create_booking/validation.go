package create_booking

import (
	"fmt"
	"strings"

	"github.com/baydesk/BayBookingService/internal/domain"
)

func validateRequest(req *Request) error {
	if strings.TrimSpace(req.ResourceID) == "" {
		return fmt.Errorf("%w: resourceId is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.CustomerName) == "" {
		return fmt.Errorf("%w: customerName is required", ErrInvalidInput)
	}
	if normalizePhone(req.CustomerPhone) == "" {
		return fmt.Errorf("%w: customerPhone is required", ErrInvalidInput)
	}
	if req.DurationHours < domain.MinDurationHours || req.DurationHours > domain.MaxDurationHours {
		return fmt.Errorf("%w: duration must be between %d and %d hours",
			ErrInvalidInput, domain.MinDurationHours, domain.MaxDurationHours)
	}
	if req.Players < domain.MinPlayers || req.Players > domain.MaxPlayers {
		return fmt.Errorf("%w: players must be between %d and %d",
			ErrInvalidInput, domain.MinPlayers, domain.MaxPlayers)
	}
	if !domain.ValidBookingSource(domain.BookingSource(req.Source)) {
		return fmt.Errorf("%w: unknown booking source %q", ErrInvalidInput, req.Source)
	}
	return nil
}

// normalizePhone strips formatting so lookups and linkage compare digits
// only. A leading + is preserved.
func normalizePhone(phone string) string {
	var b strings.Builder
	for i, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		} else if r == '+' && i == 0 {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// parseClock parses "HH:MM".
func parseClock(s string) (hour, minute int, err error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, 0, fmt.Errorf("invalid clock time %q", s)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, 0, fmt.Errorf("clock time %q out of range", s)
	}
	return h, m, nil
}
