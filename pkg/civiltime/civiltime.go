// Package civiltime converts between absolute instants and the venue's
// wall-clock calendar. The venue operates in a single fixed time zone; the
// zone's offset rules are injected through the Resolver so results never
// depend on the process's own time zone setting.
package civiltime

import (
	"fmt"
	"time"
)

// CivilDate is a venue-local calendar date
type CivilDate struct {
	Year  int
	Month time.Month
	Day   int
}

// String formats the date as YYYY-MM-DD
func (d CivilDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// AddDays returns the date shifted by n calendar days
func (d CivilDate) AddDays(n int) CivilDate {
	// time.Date normalizes out-of-range days
	t := time.Date(d.Year, d.Month, d.Day+n, 0, 0, 0, 0, time.UTC)
	return CivilDate{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// ParseCivilDate parses a YYYY-MM-DD string
func ParseCivilDate(s string) (CivilDate, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return CivilDate{}, err
	}
	return CivilDate{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}

// CivilTime is a venue-local wall-clock date and time
type CivilTime struct {
	Date        CivilDate
	Hour        int
	Minute      int
	Second      int
	Millisecond int
}

// Resolver resolves instants against one versioned offset-rule table.
// It is pure and deterministic for a given table.
type Resolver struct {
	loc *time.Location
}

// NewResolver builds a resolver over an explicit offset-rule table
func NewResolver(loc *time.Location) *Resolver {
	return &Resolver{loc: loc}
}

// LoadResolver loads the named IANA zone (e.g. "America/Halifax")
func LoadResolver(name string) (*Resolver, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("civiltime: load zone %q: %w", name, err)
	}
	return &Resolver{loc: loc}, nil
}

// Location exposes the underlying rule table
func (r *Resolver) Location() *time.Location {
	return r.loc
}

// ToCivil converts an instant to the venue's wall clock
func (r *Resolver) ToCivil(t time.Time) CivilTime {
	lt := t.In(r.loc)
	return CivilTime{
		Date:        CivilDate{Year: lt.Year(), Month: lt.Month(), Day: lt.Day()},
		Hour:        lt.Hour(),
		Minute:      lt.Minute(),
		Second:      lt.Second(),
		Millisecond: lt.Nanosecond() / int(time.Millisecond),
	}
}

// ToCivilDate converts an instant to the venue-local calendar date
func (r *Resolver) ToCivilDate(t time.Time) CivilDate {
	return r.ToCivil(t).Date
}

// offsetAt returns the venue UTC offset in effect at instant t
func (r *Resolver) offsetAt(t time.Time) time.Duration {
	_, off := t.In(r.loc).Zone()
	return time.Duration(off) * time.Second
}

// FromCivil converts a venue wall-clock time to an instant using a two-pass
// fixed-point computation: the offset is first taken at the naive UTC
// interpretation of the wall clock, then re-derived at the resulting
// instant. When the two disagree the wall clock sits on a DST boundary and
// the corrected offset is applied once more. No further iteration is needed.
func (r *Resolver) FromCivil(d CivilDate, hour, minute, second, ms int) time.Time {
	naive := time.Date(d.Year, d.Month, d.Day, hour, minute, second, ms*int(time.Millisecond), time.UTC)

	first := r.offsetAt(naive)
	guess := naive.Add(-first)

	if corrected := r.offsetAt(guess); corrected != first {
		return naive.Add(-corrected)
	}
	return guess
}

// DayRange bounds the venue-local day containing t: [civil midnight,
// civil 23:59:59.999]. A spring-forward day is 23 wall-clock hours wide;
// the returned instants reflect that rather than a fixed 24h span.
func (r *Resolver) DayRange(t time.Time) (start, end time.Time) {
	d := r.ToCivilDate(t)
	return r.FromCivil(d, 0, 0, 0, 0), r.FromCivil(d, 23, 59, 59, 999)
}

// DateRange bounds an explicit venue-local calendar date
func (r *Resolver) DateRange(d CivilDate) (start, end time.Time) {
	return r.FromCivil(d, 0, 0, 0, 0), r.FromCivil(d, 23, 59, 59, 999)
}

// WeekRange bounds the venue-local week containing t. Weeks run
// Sunday through Saturday.
func (r *Resolver) WeekRange(t time.Time) (start, end time.Time) {
	d := r.ToCivilDate(t)
	weekday := time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).Weekday()
	first := d.AddDays(-int(weekday))
	last := first.AddDays(6)
	return r.FromCivil(first, 0, 0, 0, 0), r.FromCivil(last, 23, 59, 59, 999)
}

// MonthRange bounds a venue-local calendar month
func (r *Resolver) MonthRange(year int, month time.Month) (start, end time.Time) {
	lastDay := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	return r.FromCivil(CivilDate{Year: year, Month: month, Day: 1}, 0, 0, 0, 0),
		r.FromCivil(CivilDate{Year: year, Month: month, Day: lastDay}, 23, 59, 59, 999)
}

// TodayRange bounds the venue-local day containing the supplied clock
// reading.
func (r *Resolver) TodayRange(now time.Time) (start, end time.Time) {
	return r.DayRange(now)
}
