package timesheet

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.Local)
}

func TestNoon(t *testing.T) {
	late := time.Date(2024, 3, 11, 23, 59, 59, 0, time.Local)
	got := Noon(late)
	if got.Hour() != 12 || got.Minute() != 0 || got.Second() != 0 {
		t.Fatalf("Noon = %v, want 12:00:00", got)
	}
	if got.Year() != 2024 || got.Month() != time.March || got.Day() != 11 {
		t.Fatalf("Noon shifted the calendar day: %v", got)
	}
}

func TestStartOfWeek(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{"wednesday", date(2024, 3, 13), date(2024, 3, 11)},
		{"monday itself", date(2024, 3, 11), date(2024, 3, 11)},
		{"sunday rolls back six days", date(2024, 3, 17), date(2024, 3, 11)},
		{"crosses month boundary", date(2024, 3, 2), date(2024, 2, 26)},
		{"crosses year boundary", date(2025, 1, 1), date(2024, 12, 30)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StartOfWeek(tt.in)
			if !got.Equal(tt.want) {
				t.Errorf("StartOfWeek(%v) = %v, want %v", tt.in, got, tt.want)
			}
			if got.Weekday() != time.Monday {
				t.Errorf("StartOfWeek(%v) fell on %v", tt.in, got.Weekday())
			}
		})
	}
}

func TestEndOfWeekIsSunday(t *testing.T) {
	for day := 1; day <= 31; day++ {
		d := date(2024, 3, day)
		if wd := EndOfWeek(d).Weekday(); wd != time.Sunday {
			t.Errorf("EndOfWeek(%v) fell on %v", d, wd)
		}
	}
}

func TestWeekHasSevenDates(t *testing.T) {
	for day := 1; day <= 31; day++ {
		d := date(2024, 1, day)
		dates := DatesInRange(StartOfWeek(d), EndOfWeek(d))
		if len(dates) != 7 {
			t.Errorf("week of %v has %d dates", d, len(dates))
		}
	}
}

func TestMonthBounds(t *testing.T) {
	tests := []struct {
		in        time.Time
		wantStart string
		wantEnd   string
		wantDays  int
	}{
		{date(2024, 2, 15), "2024-02-01", "2024-02-29", 29}, // leap year
		{date(2023, 2, 10), "2023-02-01", "2023-02-28", 28},
		{date(2024, 3, 31), "2024-03-01", "2024-03-31", 31},
		{date(2024, 4, 1), "2024-04-01", "2024-04-30", 30},
		{date(2024, 12, 25), "2024-12-01", "2024-12-31", 31},
	}
	for _, tt := range tests {
		start, end := StartOfMonth(tt.in), EndOfMonth(tt.in)
		if got := ISODate(start); got != tt.wantStart {
			t.Errorf("StartOfMonth(%v) = %s, want %s", tt.in, got, tt.wantStart)
		}
		if got := ISODate(end); got != tt.wantEnd {
			t.Errorf("EndOfMonth(%v) = %s, want %s", tt.in, got, tt.wantEnd)
		}
		if got := len(DatesInRange(start, end)); got != tt.wantDays {
			t.Errorf("month of %v has %d dates, want %d", tt.in, got, tt.wantDays)
		}
	}
}

func TestDatesInRange(t *testing.T) {
	got := DatesInRange(date(2024, 12, 30), date(2025, 1, 2))
	want := []string{"2024-12-30", "2024-12-31", "2025-01-01", "2025-01-02"}
	if len(got) != len(want) {
		t.Fatalf("DatesInRange = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("DatesInRange[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestDatesInRangeStartAfterEnd(t *testing.T) {
	if got := DatesInRange(date(2024, 3, 12), date(2024, 3, 11)); len(got) != 0 {
		t.Fatalf("expected empty range, got %v", got)
	}
}

func TestISODateRoundTrip(t *testing.T) {
	for _, key := range []string{"2024-03-11", "2024-02-29", "2025-01-01"} {
		d, err := ParseISODate(key)
		if err != nil {
			t.Fatalf("ParseISODate(%s): %v", key, err)
		}
		if got := ISODate(d); got != key {
			t.Errorf("round trip %s -> %s", key, got)
		}
		if d.Hour() != 12 {
			t.Errorf("ParseISODate(%s) not noon-normalized: %v", key, d)
		}
	}
}

func TestParseISODateInvalid(t *testing.T) {
	if _, err := ParseISODate("not-a-date"); err == nil {
		t.Fatal("expected error for malformed date")
	}
}

func TestWindowDates(t *testing.T) {
	anchor := date(2024, 3, 13)
	if got := len(WindowDates(WindowWeek, anchor)); got != 7 {
		t.Errorf("week window has %d dates", got)
	}
	if got := len(WindowDates(WindowMonth, anchor)); got != 31 {
		t.Errorf("march window has %d dates", got)
	}
}

func TestWindowString(t *testing.T) {
	if WindowWeek.String() != "week" || WindowMonth.String() != "month" {
		t.Fatalf("unexpected window names: %s, %s", WindowWeek, WindowMonth)
	}
}
