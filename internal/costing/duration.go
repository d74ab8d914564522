package costing

import (
	"fmt"
	"math"
	"time"
)

// DurationUnit selects the resolution of Duration.
type DurationUnit string

const (
	UnitDays   DurationUnit = "days"
	UnitMonths DurationUnit = "months"
)

// Duration returns the elapsed time between start and end in the given unit.
func Duration(start, end time.Time, unit DurationUnit) (int, error) {
	switch unit {
	case UnitDays:
		return DurationInDays(start, end), nil
	case UnitMonths:
		return DurationInMonths(start, end), nil
	}
	return 0, &ComputationError{Op: "duration", Field: "unit", Value: string(unit), Err: ErrInvalidUnit}
}

// DurationInDays returns the ceiling of the exact number of days from start to end.
// An end before start yields a negative count.
func DurationInDays(start, end time.Time) int {
	return int(math.Ceil(end.Sub(start).Hours() / 24))
}

// DurationInMonths returns the ceiling of the exact calendar-month difference from
// start to end. Month arithmetic clamps to the last day of shorter months, so
// Jan 31 -> Feb 28 is exactly one month. An end before start yields a negative count.
func DurationInMonths(start, end time.Time) int {
	end = end.In(start.Location())
	switch {
	case end.Equal(start):
		return 0
	case end.After(start):
		whole := wholeMonths(start, end)
		if addMonths(start, whole).Before(end) {
			return whole + 1
		}
		return whole
	default:
		// ceil(-(whole + fraction)) == -whole
		return -wholeMonths(end, start)
	}
}

// wholeMonths returns the largest n with addMonths(from, n) <= to. Requires from <= to.
func wholeMonths(from, to time.Time) int {
	n := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	for n > 0 && addMonths(from, n).After(to) {
		n--
	}
	return n
}

// addMonths adds n calendar months to t, clamping the day to the target month's length.
func addMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	target := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, t.Location())
	if last := daysIn(target.Year(), target.Month()); d > last {
		d = last
	}
	return time.Date(target.Year(), target.Month(), d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// monthStart returns midnight of the first day of t's month.
func monthStart(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

func monthKey(t time.Time) string {
	return fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month()))
}
