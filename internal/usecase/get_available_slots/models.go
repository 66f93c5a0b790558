package get_available_slots

// Request asks for the slot grid of one resource on one venue-local date.
type Request struct {
	ResourceID string
	Date       string // "YYYY-MM-DD" in venue-local time
}

// Response is the slot grid for the requested date.
type Response struct {
	ResourceID string `json:"resourceId"`
	Date       string `json:"date"`
	Slots      []Slot `json:"slots"`
}

// Slot is one bookable window of the grid. Times are venue-local "HH:MM".
type Slot struct {
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	DurationMinutes int    `json:"durationMinutes"`
	Available       bool   `json:"available"`
}
