package domain

// Default configuration values
const (
	DefaultSlotGranularityMinutes = 60
	DefaultTaxRate                = 0.13
	DefaultHourlyRate             = 50.0
)

// Business validation constants
const (
	MinDurationHours = 1
	MaxDurationHours = 4
	MinPlayers       = 1
	MaxPlayers       = 4
	MinSeatIndex     = 1
	MinQuantity      = 1

	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
