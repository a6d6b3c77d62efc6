package timesheet

import (
	"fmt"
	"time"
)

// isoDate is the layout of every date key in an Entries snapshot.
const isoDate = "2006-01-02"

// Window selects the date range an aggregation operates over.
type Window int

const (
	WindowWeek Window = iota
	WindowMonth
)

func (w Window) String() string {
	if w == WindowMonth {
		return "month"
	}
	return "week"
}

// Noon normalizes t to 12:00:00 local time on the same calendar day. All
// calendar functions return noon-normalized times so that converting to an
// ISO key can never land on the neighboring day when the local zone is
// offset from UTC, and so two times for the same day compare equal.
func Noon(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, t.Location())
}

// StartOfWeek returns the Monday of the week containing t. Weeks run
// Monday through Sunday regardless of locale.
func StartOfWeek(t time.Time) time.Time {
	offset := 1 - int(t.Weekday())
	if t.Weekday() == time.Sunday {
		offset = -6
	}
	return Noon(t.AddDate(0, 0, offset))
}

// EndOfWeek returns the Sunday of the week containing t.
func EndOfWeek(t time.Time) time.Time {
	return Noon(StartOfWeek(t).AddDate(0, 0, 6))
}

// StartOfMonth returns the first day of t's month.
func StartOfMonth(t time.Time) time.Time {
	return Noon(time.Date(t.Year(), t.Month(), 1, 12, 0, 0, 0, t.Location()))
}

// EndOfMonth returns the last day of t's month, computed as day 0 of the
// following month so leap years and month lengths fall out of the rollover.
func EndOfMonth(t time.Time) time.Time {
	return Noon(time.Date(t.Year(), t.Month()+1, 0, 12, 0, 0, 0, t.Location()))
}

// DatesInRange returns every ISO date key from start to end inclusive, in
// ascending order. A start after end yields an empty slice.
func DatesInRange(start, end time.Time) []string {
	start, end = Noon(start), Noon(end)
	var dates []string
	for d := start; !d.After(end); d = Noon(d.AddDate(0, 0, 1)) {
		dates = append(dates, ISODate(d))
	}
	return dates
}

// ISODate formats t as its date key.
func ISODate(t time.Time) string {
	return Noon(t).Format(isoDate)
}

// ParseISODate parses a date key back into a noon-normalized local time.
func ParseISODate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(isoDate, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return Noon(t), nil
}

// WindowRange returns the inclusive bounds of the week or month containing
// the anchor date.
func WindowRange(w Window, anchor time.Time) (time.Time, time.Time) {
	if w == WindowMonth {
		return StartOfMonth(anchor), EndOfMonth(anchor)
	}
	return StartOfWeek(anchor), EndOfWeek(anchor)
}

// WindowDates returns the date keys of the window containing the anchor.
func WindowDates(w Window, anchor time.Time) []string {
	start, end := WindowRange(w, anchor)
	return DatesInRange(start, end)
}
