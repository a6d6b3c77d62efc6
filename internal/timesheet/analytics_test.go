package timesheet

import (
	"testing"
	"time"
)

func TestLongestDay(t *testing.T) {
	entries := Entries{
		"2024-03-11": {Hours: 8},
		"2024-03-12": {Hours: 11.5},
		"2024-03-13": {Hours: 3},
	}
	dates := WindowDates(WindowWeek, date(2024, 3, 11))
	if got := LongestDay(entries, dates); !almostEqual(got, 11.5) {
		t.Errorf("LongestDay = %v, want 11.5", got)
	}
	if got := LongestDay(Entries{}, dates); got != 0 {
		t.Errorf("LongestDay over empty snapshot = %v", got)
	}
	if got := LongestDay(entries, nil); got != 0 {
		t.Errorf("LongestDay over empty window = %v", got)
	}
}

func TestMostFrequentWeekday(t *testing.T) {
	// Two Mondays and one Tuesday worked.
	entries := Entries{
		"2024-03-04": {Hours: 4}, // Monday
		"2024-03-11": {Hours: 6}, // Monday
		"2024-03-12": {Hours: 8}, // Tuesday
	}
	dates := WindowDates(WindowMonth, date(2024, 3, 1))
	if got := MostFrequentWeekday(entries, dates); got != time.Monday {
		t.Errorf("MostFrequentWeekday = %v, want Monday", got)
	}
}

func TestMostFrequentWeekdayTieBreak(t *testing.T) {
	// One Sunday and one Monday: the lower weekday index (Sunday) wins.
	entries := Entries{
		"2024-03-03": {Hours: 5}, // Sunday
		"2024-03-04": {Hours: 5}, // Monday
	}
	dates := WindowDates(WindowMonth, date(2024, 3, 1))
	if got := MostFrequentWeekday(entries, dates); got != time.Sunday {
		t.Errorf("tie break = %v, want Sunday", got)
	}
}

func TestMostFrequentWeekdayEmptyWindow(t *testing.T) {
	if got := MostFrequentWeekday(Entries{}, nil); got != time.Sunday {
		t.Errorf("empty window = %v, want Sunday", got)
	}
}

func TestAverageHoursPerWeekday(t *testing.T) {
	entries := Entries{
		"2024-03-04": {Hours: 4}, // Monday
		"2024-03-11": {Hours: 6}, // Monday
		"2024-03-12": {Hours: 8}, // Tuesday
		"2024-03-13": {Hours: 0}, // Wednesday, not worked
	}
	dates := WindowDates(WindowMonth, date(2024, 3, 1))
	avgs := AverageHoursPerWeekday(entries, dates)

	if !almostEqual(avgs[time.Monday], 5) {
		t.Errorf("Monday average = %v, want 5", avgs[time.Monday])
	}
	if !almostEqual(avgs[time.Tuesday], 8) {
		t.Errorf("Tuesday average = %v, want 8", avgs[time.Tuesday])
	}
	if avgs[time.Wednesday] != 0 {
		t.Errorf("Wednesday average = %v, want 0", avgs[time.Wednesday])
	}
	if avgs[time.Sunday] != 0 {
		t.Errorf("Sunday average = %v, want 0", avgs[time.Sunday])
	}
}

func TestWeeklySeries(t *testing.T) {
	entries := Entries{
		"2024-03-11": {Date: "2024-03-11", Hours: 8, Billed: true, Note: "acme api"},
		"2024-03-12": {Date: "2024-03-12", Hours: 4, Billed: false},
	}
	series := WeeklySeries(entries, date(2024, 3, 13))

	if len(series) != 7 {
		t.Fatalf("series length = %d, want 7", len(series))
	}
	if series[0].Date != "2024-03-11" || series[6].Date != "2024-03-17" {
		t.Fatalf("series runs %s..%s, want Mon..Sun", series[0].Date, series[6].Date)
	}
	if !almostEqual(series[0].BilledHours, 8) || series[0].UnbilledHours != 0 {
		t.Errorf("monday split = %+v", series[0])
	}
	if series[0].Note != "acme api" {
		t.Errorf("monday note = %q", series[0].Note)
	}
	if !almostEqual(series[1].UnbilledHours, 4) || series[1].BilledHours != 0 {
		t.Errorf("tuesday split = %+v", series[1])
	}
	if !almostEqual(series[1].Total, 4) {
		t.Errorf("tuesday total = %v", series[1].Total)
	}
	for i := 2; i < 7; i++ {
		if series[i].Total != 0 {
			t.Errorf("day %d should be zero-valued: %+v", i, series[i])
		}
	}
}

func TestWeeklySeriesMarksToday(t *testing.T) {
	now := time.Now()
	series := WeeklySeries(Entries{}, now)
	today := ISODate(now)
	for _, day := range series {
		if day.IsToday != (day.Date == today) {
			t.Errorf("IsToday mismatch for %s", day.Date)
		}
	}
}

func TestMonthlySeries(t *testing.T) {
	entries := Entries{
		"2024-03-02": {Hours: 6, Billed: true},
		"2024-03-05": {Hours: 4, Billed: false},
		"2024-03-20": {Hours: 8, Billed: true},
	}
	series := MonthlySeries(entries, date(2024, 3, 1))

	if len(series) != 2 {
		t.Fatalf("series length = %d, want 2 (empty buckets dropped)", len(series))
	}
	first := series[0]
	if first.Week != 1 || first.DaysWorked != 2 {
		t.Errorf("first bucket = %+v", first)
	}
	if !almostEqual(first.BilledHours, 6) || !almostEqual(first.UnbilledHours, 4) {
		t.Errorf("first bucket split = %+v", first)
	}
	if !almostEqual(first.Total, 10) {
		t.Errorf("first bucket total = %v", first.Total)
	}
	// 2024-03-20 is the 20th day of the month, so it lands in chunk 3.
	if series[1].Week != 3 || !almostEqual(series[1].Total, 8) {
		t.Errorf("second bucket = %+v", series[1])
	}
}

func TestMonthlySeriesFirstWeekOnly(t *testing.T) {
	// Entries only in the first 7 days produce exactly one bucket.
	entries := Entries{
		"2024-03-01": {Hours: 5, Billed: true},
		"2024-03-07": {Hours: 3, Billed: true},
	}
	series := MonthlySeries(entries, date(2024, 3, 15))
	if len(series) != 1 || series[0].Week != 1 {
		t.Fatalf("series = %+v, want single week-1 bucket", series)
	}
}

func TestMonthlySeriesEmpty(t *testing.T) {
	if series := MonthlySeries(Entries{}, date(2024, 3, 1)); len(series) != 0 {
		t.Fatalf("expected no buckets, got %+v", series)
	}
}

func TestMonthlySeriesSixthBucket(t *testing.T) {
	// The 31st of a 31-day month is index 30, so it lands in the fifth
	// 7-day chunk; all chunks stay within the fixed bucket array.
	entries := Entries{
		"2024-03-31": {Hours: 2, Billed: true},
	}
	series := MonthlySeries(entries, date(2024, 3, 1))
	if len(series) != 1 || series[0].Week != 5 {
		t.Fatalf("series = %+v, want single week-5 bucket", series)
	}
}

func TestProjectKey(t *testing.T) {
	tests := []struct {
		note string
		want string
	}{
		{"acme api rework", "acme"},
		{"  acme: retro", "acme"},
		{"[ops] oncall", "ops"},
		{"???", ""},
		{"", ""},
		{"Client42 invoicing", "Client42"},
	}
	for _, tt := range tests {
		if got := ProjectKey(tt.note); got != tt.want {
			t.Errorf("ProjectKey(%q) = %q, want %q", tt.note, got, tt.want)
		}
	}
}

func TestProjectDistribution(t *testing.T) {
	entries := Entries{
		"2024-03-11": {Hours: 8, Billed: true, Note: "acme api"},
		"2024-03-12": {Hours: 4, Billed: false, Note: "acme review"},
		"2024-03-13": {Hours: 2, Billed: true, Note: "umbrella audit"},
		"2024-03-14": {Hours: 6, Billed: true}, // no note, excluded
	}
	dates := WindowDates(WindowWeek, date(2024, 3, 11))
	shares := ProjectDistribution(entries, dates, DefaultTopProjects)

	if len(shares) != 2 {
		t.Fatalf("shares = %+v, want 2", shares)
	}
	if shares[0].Name != "acme" || !almostEqual(shares[0].Hours, 12) {
		t.Errorf("top share = %+v", shares[0])
	}
	if !almostEqual(shares[0].Percentage, 12.0/14*100) {
		t.Errorf("top percentage = %v", shares[0].Percentage)
	}
	if shares[1].Name != "umbrella" || !almostEqual(shares[1].Hours, 2) {
		t.Errorf("second share = %+v", shares[1])
	}
}

func TestProjectDistributionTopN(t *testing.T) {
	entries := Entries{}
	for i := 0; i < 8; i++ {
		key := ISODate(date(2024, 3, 11+i))
		entries[key] = Entry{Hours: float64(i + 1), Note: string(rune('a'+i)) + " work"}
	}
	dates := WindowDates(WindowMonth, date(2024, 3, 1))
	shares := ProjectDistribution(entries, dates, 3)
	if len(shares) != 3 {
		t.Fatalf("top-3 returned %d shares", len(shares))
	}
	if shares[0].Hours < shares[1].Hours || shares[1].Hours < shares[2].Hours {
		t.Errorf("shares not sorted descending: %+v", shares)
	}
}

func TestProjectDistributionFallback(t *testing.T) {
	entries := Entries{
		"2024-03-11": {Hours: 8, Billed: true}, // no notes anywhere
	}
	dates := WindowDates(WindowWeek, date(2024, 3, 11))
	shares := ProjectDistribution(entries, dates, DefaultTopProjects)

	if len(shares) != 3 {
		t.Fatalf("fallback shares = %+v, want demo set of 3", shares)
	}
	if shares[0].Name != "Project A" || !almostEqual(shares[0].Hours, 12) {
		t.Errorf("fallback top = %+v", shares[0])
	}
	if !almostEqual(shares[0].Percentage, 50) {
		t.Errorf("fallback percentage = %v", shares[0].Percentage)
	}
}
