package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/avelin/worklog/internal/store"
	"github.com/avelin/worklog/internal/timesheet"
)

// statsModel renders the aggregate view: a billed/unbilled bar chart over
// the selected window plus totals, averages and the project breakdown.
type statsModel struct {
	store  *store.Store
	width  int
	height int

	window   timesheet.Window
	anchor   time.Time
	snapshot timesheet.Entries

	chart barchart.Model
}

func newStatsModel(s *store.Store) statsModel {
	return statsModel{
		store:  s,
		window: timesheet.WindowWeek,
		anchor: timesheet.Noon(time.Now()),
		chart:  barchart.New(60, 12),
	}
}

func (m *statsModel) setSize(w, h int) {
	m.width = w
	m.height = h
	m.buildChart()
}

func (m statsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		snapshot, _ := m.store.Snapshot()
		return statsDataMsg{snapshot: snapshot}
	}
}

func (m statsModel) update(msg tea.Msg) (statsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case statsDataMsg:
		m.snapshot = msg.snapshot
		m.buildChart()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			m.anchor = m.shiftAnchor(-1)
			m.buildChart()
			return m, nil
		case key.Matches(msg, keys.Right):
			m.anchor = m.shiftAnchor(1)
			m.buildChart()
			return m, nil
		case key.Matches(msg, keys.Today):
			m.anchor = timesheet.Noon(time.Now())
			m.buildChart()
			return m, nil
		case key.Matches(msg, keys.Mode):
			if m.window == timesheet.WindowWeek {
				m.window = timesheet.WindowMonth
			} else {
				m.window = timesheet.WindowWeek
			}
			m.buildChart()
			return m, nil
		}
	}
	return m, nil
}

func (m statsModel) shiftAnchor(dir int) time.Time {
	if m.window == timesheet.WindowMonth {
		// Shift from the first of the month so day-29/30/31 anchors
		// cannot normalize across short months.
		return timesheet.Noon(timesheet.StartOfMonth(m.anchor).AddDate(0, dir, 0))
	}
	return timesheet.Noon(m.anchor.AddDate(0, 0, 7*dir))
}

func (m *statsModel) buildChart() {
	chartWidth := m.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 10
	if m.height > 32 {
		chartHeight = 14
	}

	m.chart = barchart.New(chartWidth, chartHeight)

	var bars []barchart.BarData
	if m.window == timesheet.WindowWeek {
		series := timesheet.WeeklySeries(m.snapshot, m.anchor)
		for i, day := range series {
			label := timesheet.WeeklySeriesLabels[i]
			if day.IsToday {
				label = "*" + label
			}
			bars = append(bars, barchart.BarData{
				Label:  label,
				Values: splitBarValues(day.BilledHours, day.UnbilledHours),
			})
		}
	} else {
		for _, bucket := range timesheet.MonthlySeries(m.snapshot, m.anchor) {
			bars = append(bars, barchart.BarData{
				Label:  fmt.Sprintf("W%d", bucket.Week),
				Values: splitBarValues(bucket.BilledHours, bucket.UnbilledHours),
			})
		}
	}

	if len(bars) == 0 {
		bars = []barchart.BarData{{
			Label:  "-",
			Values: []barchart.BarValue{{Name: "", Value: 0, Style: mutedStyle}},
		}}
	}

	m.chart.PushAll(bars)
	m.chart.Draw()
}

func splitBarValues(billed, unbilled float64) []barchart.BarValue {
	var values []barchart.BarValue
	if billed > 0 {
		values = append(values, barchart.BarValue{Name: "billed", Value: billed, Style: billedStyle})
	}
	if unbilled > 0 {
		values = append(values, barchart.BarValue{Name: "unbilled", Value: unbilled, Style: unbilledStyle})
	}
	if len(values) == 0 {
		values = []barchart.BarValue{{Name: "", Value: 0, Style: mutedStyle}}
	}
	return values
}

func (m statsModel) view() string {
	w := m.width - 4

	weekTab := inactiveTabStyle.Render("Week")
	monthTab := inactiveTabStyle.Render("Month")
	if m.window == timesheet.WindowWeek {
		weekTab = activeTabStyle.Render("Week")
	} else {
		monthTab = activeTabStyle.Render("Month")
	}
	modeTabs := lipgloss.JoinHorizontal(lipgloss.Bottom, weekTab, monthTab)

	start, end := timesheet.WindowRange(m.window, m.anchor)
	rangeLabel := mutedStyle.Render(fmt.Sprintf("%s — %s", formatShortDate(start), end.Format("Jan 2, 2006")))

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Stats"), "  ", modeTabs, "  ", rangeLabel,
	)

	legend := "  " + billedStyle.Render("■ billed") + "  " + unbilledStyle.Render("■ unbilled")

	nav := mutedStyle.Render("  ←/→: navigate  m: week/month  t: today")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", m.chart.View(), legend, "",
			m.renderTotals(), "", m.renderBreakdown(), "", nav,
		),
	)
}

func (m statsModel) renderTotals() string {
	var billed, unbilled float64
	if m.window == timesheet.WindowWeek {
		billed = timesheet.WeeklyBilledHours(m.snapshot, m.anchor)
		unbilled = timesheet.WeeklyUnbilledHours(m.snapshot, m.anchor)
	} else {
		billed = timesheet.MonthlyBilledHours(m.snapshot, m.anchor)
		unbilled = timesheet.MonthlyUnbilledHours(m.snapshot, m.anchor)
	}
	total := billed + unbilled
	billedPct, unbilledPct := timesheet.BilledShare(billed, unbilled)

	var avg float64
	if m.window == timesheet.WindowWeek {
		avg = timesheet.WeeklyAverage(m.snapshot, m.anchor)
	} else {
		avg = timesheet.MonthlyAverage(m.snapshot, m.anchor)
	}

	rows := []string{
		fmt.Sprintf("  %-18s %s", "Total", titleStyle.Render(FormatHours(total))),
		fmt.Sprintf("  %-18s %s (%d%%)", "Billed", billedStyle.Render(FormatHours(billed)), billedPct),
		fmt.Sprintf("  %-18s %s (%d%%)", "Unbilled", unbilledStyle.Render(FormatHours(unbilled)), unbilledPct),
		fmt.Sprintf("  %-18s %s", "Avg per day worked", formatHoursDecimal(avg)),
	}
	return strings.Join(rows, "\n")
}

func (m statsModel) renderBreakdown() string {
	dates := timesheet.WindowDates(m.window, m.anchor)

	worked := timesheet.DaysWorked(m.snapshot, dates)
	longest := timesheet.LongestDay(m.snapshot, dates)
	usual := "-"
	if worked > 0 {
		usual = timesheet.MostFrequentWeekday(m.snapshot, dates).String()
	}

	rows := []string{
		mutedStyle.Render(fmt.Sprintf("  %-16s %-10s %s", "Days worked", "Longest", "Usual day")),
		fmt.Sprintf("  %-16d %-10s %s", worked, FormatHours(longest), usual),
	}

	weekdayAvgs := timesheet.AverageHoursPerWeekday(m.snapshot, dates)
	var avgCells []string
	for i, label := range timesheet.WeeklySeriesLabels {
		wd := (i + 1) % 7 // labels run Mon..Sun, averages are indexed Sunday=0
		avgCells = append(avgCells, fmt.Sprintf("%s %s", mutedStyle.Render(label), formatHoursDecimal(weekdayAvgs[wd])))
	}
	rows = append(rows, "", "  "+strings.Join(avgCells, "  "))

	shares := timesheet.ProjectDistribution(m.snapshot, dates, timesheet.DefaultTopProjects)
	if len(shares) > 0 {
		rows = append(rows, "", mutedStyle.Render("  Projects"))
		for _, share := range shares {
			bar := strings.Repeat("█", int(share.Percentage/10))
			rows = append(rows, fmt.Sprintf("  %-12s %6s %3.0f%% %s",
				share.Name, FormatHours(share.Hours), share.Percentage, highlightStyle.Render(bar)))
		}
	}

	return strings.Join(rows, "\n")
}
