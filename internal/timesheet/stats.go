package timesheet

import (
	"math"
	"time"
)

// DailyHours returns the hours logged on the given day, or 0 when no entry
// exists for it.
func DailyHours(entries Entries, date time.Time) float64 {
	return entries[ISODate(date)].Hours
}

// DailyBilledHours returns the day's hours when they are marked billed.
func DailyBilledHours(entries Entries, date time.Time) float64 {
	e, ok := entries[ISODate(date)]
	if !ok || !e.Billed {
		return 0
	}
	return e.Hours
}

// DailyUnbilledHours returns the day's hours when they are marked unbilled.
func DailyUnbilledHours(entries Entries, date time.Time) float64 {
	e, ok := entries[ISODate(date)]
	if !ok || e.Billed {
		return 0
	}
	return e.Hours
}

// sumHours adds up entry hours over a set of date keys, optionally filtered
// by the billed flag.
func sumHours(entries Entries, dates []string, billed *bool) float64 {
	var total float64
	for _, key := range dates {
		e, ok := entries[key]
		if !ok {
			continue
		}
		if billed != nil && e.Billed != *billed {
			continue
		}
		total += e.Hours
	}
	return total
}

func billedFilter(b bool) *bool { return &b }

// WeeklyHours sums hours over the Monday–Sunday week containing the anchor.
func WeeklyHours(entries Entries, anchor time.Time) float64 {
	return sumHours(entries, WindowDates(WindowWeek, anchor), nil)
}

// WeeklyBilledHours sums billed hours over the anchor's week.
func WeeklyBilledHours(entries Entries, anchor time.Time) float64 {
	return sumHours(entries, WindowDates(WindowWeek, anchor), billedFilter(true))
}

// WeeklyUnbilledHours sums unbilled hours over the anchor's week.
func WeeklyUnbilledHours(entries Entries, anchor time.Time) float64 {
	return sumHours(entries, WindowDates(WindowWeek, anchor), billedFilter(false))
}

// MonthlyHours sums hours over the calendar month containing the anchor.
func MonthlyHours(entries Entries, anchor time.Time) float64 {
	return sumHours(entries, WindowDates(WindowMonth, anchor), nil)
}

// MonthlyBilledHours sums billed hours over the anchor's month.
func MonthlyBilledHours(entries Entries, anchor time.Time) float64 {
	return sumHours(entries, WindowDates(WindowMonth, anchor), billedFilter(true))
}

// MonthlyUnbilledHours sums unbilled hours over the anchor's month.
func MonthlyUnbilledHours(entries Entries, anchor time.Time) float64 {
	return sumHours(entries, WindowDates(WindowMonth, anchor), billedFilter(false))
}

// DaysWorked counts the dates in the set whose entry has hours > 0.
func DaysWorked(entries Entries, dates []string) int {
	count := 0
	for _, key := range dates {
		if entries[key].Hours > 0 {
			count++
		}
	}
	return count
}

// averageOver returns total hours divided by the number of worked days in
// the window, or 0 when no day was worked.
func averageOver(entries Entries, dates []string) float64 {
	worked := DaysWorked(entries, dates)
	if worked == 0 {
		return 0
	}
	return sumHours(entries, dates, nil) / float64(worked)
}

// WeeklyAverage returns the mean hours per worked day over the anchor's week.
func WeeklyAverage(entries Entries, anchor time.Time) float64 {
	return averageOver(entries, WindowDates(WindowWeek, anchor))
}

// MonthlyAverage returns the mean hours per worked day over the anchor's month.
func MonthlyAverage(entries Entries, anchor time.Time) float64 {
	return averageOver(entries, WindowDates(WindowMonth, anchor))
}

// BilledShare returns the billed and unbilled percentages of a split,
// rounded to whole percents. The unbilled side is derived from the
// billed one so the pair always sums to 100. Both are 0 when there
// are no hours at all.
func BilledShare(billed, unbilled float64) (int, int) {
	total := billed + unbilled
	if total <= 0 {
		return 0, 0
	}
	billedPct := int(math.Round(billed / total * 100))
	return billedPct, 100 - billedPct
}
