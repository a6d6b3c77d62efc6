package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/avelin/worklog/internal/store"
	"github.com/avelin/worklog/internal/timesheet"
)

// calendarModel renders a month of entries as a Monday-first grid with
// day cells shaded by intensity.
type calendarModel struct {
	store  *store.Store
	width  int
	height int

	selected time.Time // selected day, also anchors the visible month
	snapshot timesheet.Entries
}

func newCalendarModel(s *store.Store) calendarModel {
	return calendarModel{
		store:    s,
		selected: timesheet.Noon(time.Now()),
	}
}

func (m *calendarModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m calendarModel) refresh() tea.Cmd {
	return func() tea.Msg {
		snapshot, _ := m.store.Snapshot()
		return calendarDataMsg{snapshot: snapshot}
	}
}

func (m calendarModel) update(msg tea.Msg) (calendarModel, tea.Cmd) {
	switch msg := msg.(type) {
	case calendarDataMsg:
		m.snapshot = msg.snapshot
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			m.selected = timesheet.Noon(m.selected.AddDate(0, 0, -1))
		case key.Matches(msg, keys.Right):
			m.selected = timesheet.Noon(m.selected.AddDate(0, 0, 1))
		case key.Matches(msg, keys.Up):
			m.selected = timesheet.Noon(m.selected.AddDate(0, 0, -7))
		case key.Matches(msg, keys.Down):
			m.selected = timesheet.Noon(m.selected.AddDate(0, 0, 7))
		case key.Matches(msg, keys.Today):
			m.selected = timesheet.Noon(time.Now())
		}
	}
	return m, nil
}

func (m calendarModel) view() string {
	w := m.width - 4

	header := titleStyle.Render(m.selected.Format("January 2006"))
	monthTotal := timesheet.MonthlyHours(m.snapshot, m.selected)
	totalLabel := mutedStyle.Render("total ") + highlightStyle.Render(FormatHours(monthTotal))

	grid := m.renderGrid()
	legend := m.renderLegend()
	detail := m.renderDayDetail()
	nav := mutedStyle.Render("  ←/→: day  ↑/↓: week  t: today")

	content := lipgloss.JoinVertical(lipgloss.Left,
		header+"  "+totalLabel, "", grid, "", legend, "", detail, "", nav,
	)
	return panelStyle.Width(w).Render(content)
}

func (m calendarModel) renderGrid() string {
	var rows []string

	headings := make([]string, 7)
	for i, label := range timesheet.WeeklySeriesLabels {
		headings[i] = mutedStyle.Render(fmt.Sprintf(" %-3s", label))
	}
	rows = append(rows, strings.Join(headings, ""))

	start := timesheet.StartOfMonth(m.selected)
	end := timesheet.EndOfMonth(m.selected)
	selectedKey := timesheet.ISODate(m.selected)
	todayKey := timesheet.ISODate(time.Now())

	// Lead with blanks until the month's first weekday (Monday-first).
	lead := int(start.Weekday()) - 1
	if lead < 0 {
		lead = 6
	}

	var cells []string
	for i := 0; i < lead; i++ {
		cells = append(cells, "    ")
	}
	for _, dateKey := range timesheet.DatesInRange(start, end) {
		d, _ := timesheet.ParseISODate(dateKey)
		cells = append(cells, m.renderCell(d, dateKey, selectedKey, todayKey))
		if len(cells) == 7 {
			rows = append(rows, strings.Join(cells, ""))
			cells = nil
		}
	}
	if len(cells) > 0 {
		rows = append(rows, strings.Join(cells, ""))
	}

	return strings.Join(rows, "\n")
}

func (m calendarModel) renderCell(d time.Time, dateKey, selectedKey, todayKey string) string {
	label := fmt.Sprintf("%2d", d.Day())

	entry, ok := m.snapshot[dateKey]
	style := mutedStyle
	if ok && entry.Hours > 0 {
		style = intensityCellStyle(timesheet.IntensityColor(entry.Hours, entry.Billed))
	}
	if dateKey == todayKey {
		style = style.Underline(true)
	}
	if dateKey == selectedKey {
		style = style.Bold(true).Reverse(true)
	}

	return " " + style.Render(label) + " "
}

func (m calendarModel) renderLegend() string {
	samples := []float64{0, 2, 5, 7, 9}
	var billedCells, unbilledCells []string
	for _, h := range samples {
		billedCells = append(billedCells,
			intensityCellStyle(timesheet.IntensityColor(h, true)).Render("  "))
		unbilledCells = append(unbilledCells,
			intensityCellStyle(timesheet.IntensityColor(h, false)).Render("  "))
	}
	return fmt.Sprintf("  %s %s   %s %s",
		billedStyle.Render("billed"), strings.Join(billedCells, " "),
		unbilledStyle.Render("unbilled"), strings.Join(unbilledCells, " "),
	)
}

func (m calendarModel) renderDayDetail() string {
	title := titleStyle.Render(formatDayTitle(m.selected))

	entry, ok := m.snapshot[timesheet.ISODate(m.selected)]
	if !ok {
		return title + "\n" + mutedStyle.Render("  No hours logged")
	}

	status := billedStyle.Render("billed")
	if !entry.Billed {
		status = unbilledStyle.Render("unbilled")
	}
	detail := fmt.Sprintf("  %s  %s", titleStyle.Render(FormatHours(entry.Hours)), status)
	if entry.Note != "" {
		detail += mutedStyle.Render("  — " + entry.Note)
	}
	return title + "\n" + detail
}
