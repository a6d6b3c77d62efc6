package tui

import (
	"fmt"
	"math"
	"time"

	"github.com/avelin/worklog/internal/timesheet"
)

// viewState represents the currently active view.
type viewState int

const (
	viewLog viewState = iota
	viewCalendar
	viewStats
	viewPayments
	viewSettings
)

var viewNames = []string{"Log", "Calendar", "Stats", "Payments", "Settings"}

// --- Messages ---

type logDataMsg struct {
	entry    *timesheet.Entry
	snapshot timesheet.Entries
}

type calendarDataMsg struct {
	snapshot timesheet.Entries
}

type statsDataMsg struct {
	snapshot timesheet.Entries
}

type paymentsDataMsg struct {
	payments []timesheet.Payment
	total    float64
	currency string
}

type settingsDataMsg struct {
	dailyGoal float64
	currency  string
}

type entrySavedMsg struct {
	date string
}

type entryDeletedMsg struct {
	date string
}

type paymentSavedMsg struct{}

type statusMsg struct {
	text    string
	isError bool
}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

// FormatHours renders decimal hours the way the rest of the app displays
// them: quantized to the nearest half hour, as "7h" or "7h30". Negative or
// non-finite values render as "0h".
func FormatHours(hours float64) string {
	if math.IsNaN(hours) || hours < 0 {
		return "0h"
	}
	full := int(math.Floor(hours))
	minutes := int(math.Round((hours - float64(full)) * 60))

	switch {
	case minutes >= 45:
		return fmt.Sprintf("%dh", full+1)
	case minutes >= 15:
		return fmt.Sprintf("%dh30", full)
	default:
		return fmt.Sprintf("%dh", full)
	}
}

func formatHoursDecimal(hours float64) string {
	return fmt.Sprintf("%.1fh", hours)
}

func formatDayTitle(t time.Time) string {
	return t.Format("Monday, Jan 2 2006")
}

func formatShortDate(t time.Time) string {
	return t.Format("Jan 2")
}
