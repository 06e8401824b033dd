// Package timex implements the wall-clock text codec used everywhere an
// attendance timestamp crosses a boundary (database rows, API payloads),
// plus the interval arithmetic the reporting and validation code is built on.
//
// Timestamps are naive local time, rendered as "YYYY-MM-DD HH:MM:SS" with no
// offset; dates as "YYYY-MM-DD". Malformed input is reported as absence
// (ok == false), not as an error: callers are expected to reject the request.
package timex

import "time"

const (
	// Layout is the canonical timestamp representation.
	Layout = "2006-01-02 15:04:05"
	// DateLayout is the canonical calendar-date representation.
	DateLayout = "2006-01-02"
)

// Format renders t as "YYYY-MM-DD HH:MM:SS" in local wall-clock time.
func Format(t time.Time) string {
	return t.Format(Layout)
}

// FormatDate renders t as "YYYY-MM-DD".
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Parse is the inverse of Format. ok is false for malformed input.
func Parse(s string) (time.Time, bool) {
	t, err := time.ParseInLocation(Layout, s, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ParseDate is the inverse of FormatDate. ok is false for malformed input.
func ParseDate(s string) (time.Time, bool) {
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// DurationSeconds returns floor(end-start) in whole seconds, floored at
// zero. Either argument being nil yields 0, so open intervals contribute
// nothing. The result is never negative.
func DurationSeconds(start, end *time.Time) int64 {
	if start == nil || end == nil {
		return 0
	}
	d := int64(end.Sub(*start) / time.Second)
	if d < 0 {
		return 0
	}
	return d
}

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Intervals that merely touch do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// DaysInMonth returns the number of calendar days in the given month.
func DaysInMonth(year int, month time.Month) int {
	// day 0 of the next month is the last day of this one
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.Local).Day()
}

// MonthRange returns midnight of the first and last day of the given month.
func MonthRange(year int, month time.Month) (first, last time.Time) {
	first = time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	last = time.Date(year, month+1, 0, 0, 0, 0, 0, time.Local)
	return first, last
}
