package civiltime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The venue zone. Halifax observes AST (UTC-4) in winter and ADT (UTC-3)
// in summer; in 2025 the spring-forward is Mar 9 and the fall-back Nov 2.
func halifax(t *testing.T) *Resolver {
	t.Helper()
	r, err := LoadResolver("America/Halifax")
	require.NoError(t, err)
	return r
}

func TestFromCivil_Winter(t *testing.T) {
	r := halifax(t)

	// 10:00 AST == 14:00 UTC
	got := r.FromCivil(CivilDate{2025, time.January, 15}, 10, 0, 0, 0)
	assert.Equal(t, time.Date(2025, time.January, 15, 14, 0, 0, 0, time.UTC), got.UTC())
}

func TestFromCivil_Summer(t *testing.T) {
	r := halifax(t)

	// 10:00 ADT == 13:00 UTC
	got := r.FromCivil(CivilDate{2025, time.July, 15}, 10, 0, 0, 0)
	assert.Equal(t, time.Date(2025, time.July, 15, 13, 0, 0, 0, time.UTC), got.UTC())
}

func TestFromCivil_SpringForwardBoundary(t *testing.T) {
	r := halifax(t)
	day := CivilDate{2025, time.March, 9}

	// 01:59 is still AST (UTC-4)
	before := r.FromCivil(day, 1, 59, 0, 0)
	assert.Equal(t, time.Date(2025, time.March, 9, 5, 59, 0, 0, time.UTC), before.UTC())

	// 03:00 is the first ADT minute (UTC-3)
	after := r.FromCivil(day, 3, 0, 0, 0)
	assert.Equal(t, time.Date(2025, time.March, 9, 6, 0, 0, 0, time.UTC), after.UTC())

	// The skipped hour collapses: wall clock 02:00-02:59 never happens,
	// so only one UTC hour separates 01:59 and 03:00.
	assert.Equal(t, time.Minute, after.Sub(before))
}

func TestRoundTrip_AcrossTransitions(t *testing.T) {
	r := halifax(t)

	instants := []time.Time{
		time.Date(2025, time.March, 9, 5, 30, 0, 0, time.UTC),     // 01:30 AST, pre spring-forward
		time.Date(2025, time.March, 9, 6, 15, 0, 0, time.UTC),     // 03:15 ADT, post spring-forward
		time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC),    // ordinary ADT day
		time.Date(2025, time.November, 2, 4, 30, 0, 0, time.UTC),  // 01:30 ADT, first occurrence
		time.Date(2025, time.November, 2, 7, 30, 0, 0, time.UTC),  // 03:30 AST, post fall-back
		time.Date(2025, time.December, 25, 3, 59, 59, 0, time.UTC),
	}

	for _, x := range instants {
		civil := r.ToCivil(x)
		back := r.FromCivil(civil.Date, civil.Hour, civil.Minute, civil.Second, civil.Millisecond)
		assert.True(t, back.Equal(x), "round trip mismatch: %v -> %+v -> %v", x, civil, back)
	}
}

func TestDayRange_SpringForwardDayIs23Hours(t *testing.T) {
	r := halifax(t)

	// Any instant inside the venue-local day 2025-03-09.
	probe := time.Date(2025, time.March, 9, 18, 0, 0, 0, time.UTC)
	start, end := r.DayRange(probe)

	assert.Equal(t, time.Date(2025, time.March, 9, 4, 0, 0, 0, time.UTC), start.UTC())
	assert.Equal(t, time.Date(2025, time.March, 10, 2, 59, 59, 999e6, time.UTC), end.UTC())

	// 23 wall-clock hours minus the final millisecond
	assert.Equal(t, 23*time.Hour-time.Millisecond, end.Sub(start))
}

func TestDayRange_FallBackDayIs25Hours(t *testing.T) {
	r := halifax(t)

	probe := time.Date(2025, time.November, 2, 18, 0, 0, 0, time.UTC)
	start, end := r.DayRange(probe)

	assert.Equal(t, 25*time.Hour-time.Millisecond, end.Sub(start))
}

func TestDayRange_AdjacentDaysNeverOverlap(t *testing.T) {
	r := halifax(t)

	// Walk a window covering both 2025 transitions.
	day := time.Date(2025, time.March, 7, 15, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		_, end := r.DayRange(day)
		nextStart, _ := r.DayRange(day.AddDate(0, 0, 1))
		assert.Equal(t, time.Millisecond, nextStart.Sub(end),
			"gap between day %d end and next start must be exactly 1ms", i)
		day = day.AddDate(0, 0, 1)
	}
}

func TestToCivilDate_LateEveningStaysOnVenueDay(t *testing.T) {
	r := halifax(t)

	// 23:00 ADT on July 15 is already July 16 in UTC; the venue-local
	// date must still report the 15th.
	x := time.Date(2025, time.July, 16, 2, 0, 0, 0, time.UTC)
	assert.Equal(t, CivilDate{2025, time.July, 15}, r.ToCivilDate(x))
}

func TestWeekRange(t *testing.T) {
	r := halifax(t)

	// 2025-07-16 is a Wednesday; the containing week runs Sun Jul 13
	// through Sat Jul 19.
	probe := r.FromCivil(CivilDate{2025, time.July, 16}, 12, 0, 0, 0)
	start, end := r.WeekRange(probe)

	assert.Equal(t, CivilDate{2025, time.July, 13}, r.ToCivilDate(start))
	assert.Equal(t, CivilDate{2025, time.July, 19}, r.ToCivilDate(end))
	assert.Equal(t, 0, r.ToCivil(start).Hour)
	assert.Equal(t, 23, r.ToCivil(end).Hour)
}

func TestMonthRange(t *testing.T) {
	r := halifax(t)

	start, end := r.MonthRange(2025, time.February)
	assert.Equal(t, CivilDate{2025, time.February, 1}, r.ToCivilDate(start))
	assert.Equal(t, CivilDate{2025, time.February, 28}, r.ToCivilDate(end))

	// March contains the spring-forward; boundaries stay on the civil month.
	start, end = r.MonthRange(2025, time.March)
	assert.Equal(t, CivilDate{2025, time.March, 1}, r.ToCivilDate(start))
	assert.Equal(t, CivilDate{2025, time.March, 31}, r.ToCivilDate(end))
}

func TestResolverIgnoresProcessZone(t *testing.T) {
	r := halifax(t)

	// Same instant expressed in different zones resolves identically.
	utc := time.Date(2025, time.July, 16, 2, 0, 0, 0, time.UTC)
	tokyo := utc.In(time.FixedZone("JST", 9*3600))

	assert.Equal(t, r.ToCivil(utc), r.ToCivil(tokyo))
}

func TestCivilDateHelpers(t *testing.T) {
	d, err := ParseCivilDate("2025-02-27")
	require.NoError(t, err)
	assert.Equal(t, CivilDate{2025, time.February, 27}, d)
	assert.Equal(t, CivilDate{2025, time.March, 2}, d.AddDays(3))
	assert.Equal(t, "2025-02-27", d.String())

	_, err = ParseCivilDate("27/02/2025")
	assert.Error(t, err)
}
