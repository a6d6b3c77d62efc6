package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/avelin/worklog/internal/store"
	"github.com/avelin/worklog/internal/timesheet"
)

// logModel is the daily entry screen: pick a day, log hours against it.
type logModel struct {
	store  *store.Store
	width  int
	height int

	selectedDate time.Time
	entry        *timesheet.Entry
	snapshot     timesheet.Entries

	formActive bool
	form       *huh.Form

	// Form field pointers (survive value copies)
	formHours  *string
	formBilled *bool
	formNote   *string
}

func newLogModel(s *store.Store) logModel {
	hours, note := "", ""
	billed := true
	return logModel{
		store:        s,
		selectedDate: timesheet.Noon(time.Now()),
		formHours:    &hours,
		formBilled:   &billed,
		formNote:     &note,
	}
}

func (m *logModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m logModel) Init() tea.Cmd {
	return m.refresh()
}

func (m logModel) refresh() tea.Cmd {
	date := timesheet.ISODate(m.selectedDate)
	return func() tea.Msg {
		entry, _ := m.store.GetEntryByDate(date)
		snapshot, _ := m.store.Snapshot()
		return logDataMsg{entry: entry, snapshot: snapshot}
	}
}

func (m logModel) update(msg tea.Msg) (logModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case logDataMsg:
		m.entry = msg.entry
		m.snapshot = msg.snapshot
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			m.selectedDate = timesheet.Noon(m.selectedDate.AddDate(0, 0, -1))
			return m, m.refresh()
		case key.Matches(msg, keys.Right):
			m.selectedDate = timesheet.Noon(m.selectedDate.AddDate(0, 0, 1))
			return m, m.refresh()
		case key.Matches(msg, keys.Today):
			m.selectedDate = timesheet.Noon(time.Now())
			return m, m.refresh()
		case key.Matches(msg, keys.Edit), key.Matches(msg, keys.New), key.Matches(msg, keys.Enter):
			return m.showEntryForm()
		case key.Matches(msg, keys.Delete):
			if m.entry != nil {
				date := timesheet.ISODate(m.selectedDate)
				m.store.DeleteEntry(date)
				return m, tea.Batch(
					m.refresh(),
					func() tea.Msg { return entryDeletedMsg{date: date} },
				)
			}
		}
	}
	return m, nil
}

func (m logModel) showEntryForm() (logModel, tea.Cmd) {
	*m.formHours = ""
	*m.formBilled = true
	*m.formNote = ""
	if m.entry != nil {
		*m.formHours = strconv.FormatFloat(m.entry.Hours, 'f', -1, 64)
		*m.formBilled = m.entry.Billed
		*m.formNote = m.entry.Note
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Hours worked").
				Placeholder("7.5").
				Value(m.formHours).
				Validate(validateHours),
			huh.NewConfirm().
				Title("Billable?").
				Affirmative("Billed").
				Negative("Unbilled").
				Value(m.formBilled),
			huh.NewInput().
				Title("Note (first word doubles as project)").
				Value(m.formNote),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

// validateHours keeps logged hours inside a calendar day. The computation
// core tolerates anything, but the input layer is where the range is held.
func validateHours(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("enter the hours worked")
	}
	h, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("not a number")
	}
	if h < 0 || h > 24 {
		return fmt.Errorf("hours must be between 0 and 24")
	}
	return nil
}

func (m logModel) updateForm(msg tea.Msg) (logModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		hours, _ := strconv.ParseFloat(strings.TrimSpace(*m.formHours), 64)
		date := timesheet.ISODate(m.selectedDate)
		entry := timesheet.Entry{
			Date:   date,
			Hours:  hours,
			Billed: *m.formBilled,
			Note:   strings.TrimSpace(*m.formNote),
		}
		if err := m.store.UpsertEntry(entry); err != nil {
			return m, func() tea.Msg {
				return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
			}
		}
		return m, tea.Batch(
			m.refresh(),
			func() tea.Msg { return entrySavedMsg{date: date} },
		)
	}

	return m, cmd
}

func (m logModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		title := titleStyle.Render("Log " + formatDayTitle(m.selectedDate))
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View())
		return activePanelStyle.Width(w).Render(content)
	}

	dayPanel := m.renderDayPanel(w)
	weekPanel := m.renderWeekPanel(w)

	return lipgloss.JoinVertical(lipgloss.Left, dayPanel, weekPanel)
}

func (m logModel) renderDayPanel(w int) string {
	title := titleStyle.Render(formatDayTitle(m.selectedDate))
	isToday := timesheet.ISODate(m.selectedDate) == timesheet.ISODate(time.Now())
	if isToday {
		title += highlightStyle.Render("  (today)")
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	if m.entry == nil {
		rows = append(rows, mutedStyle.Render("No hours logged. Press e to log this day."))
	} else {
		swatch := intensityCellStyle(
			timesheet.IntensityColor(m.entry.Hours, m.entry.Billed),
		).Render("  ")

		status := billedStyle.Render("billed")
		if !m.entry.Billed {
			status = unbilledStyle.Render("unbilled")
		}

		rows = append(rows, fmt.Sprintf("%s  %s  %s",
			swatch,
			titleStyle.Render(FormatHours(m.entry.Hours)),
			status,
		))
		if m.entry.Note != "" {
			rows = append(rows, "")
			rows = append(rows, mutedStyle.Render("Note: ")+normalItemStyle.Render(m.entry.Note))
		}

		goal := m.store.DailyGoal()
		rows = append(rows, "")
		if m.entry.Hours >= goal {
			rows = append(rows, successStyle.Render(fmt.Sprintf("Daily goal of %s reached", FormatHours(goal))))
		} else {
			rows = append(rows, warningStyle.Render(fmt.Sprintf("%s left to daily goal", FormatHours(goal-m.entry.Hours))))
		}
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("←/→: day  t: today  e: edit  d: delete"))

	if m.entry != nil {
		return activePanelStyle.Width(w).Render(strings.Join(rows, "\n"))
	}
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (m logModel) renderWeekPanel(w int) string {
	title := titleStyle.Render("This Week")
	total := timesheet.WeeklyHours(m.snapshot, m.selectedDate)
	billed := timesheet.WeeklyBilledHours(m.snapshot, m.selectedDate)
	unbilled := timesheet.WeeklyUnbilledHours(m.snapshot, m.selectedDate)
	avg := timesheet.WeeklyAverage(m.snapshot, m.selectedDate)

	start := timesheet.StartOfWeek(m.selectedDate)
	end := timesheet.EndOfWeek(m.selectedDate)
	rangeLabel := mutedStyle.Render(fmt.Sprintf("%s — %s", formatShortDate(start), formatShortDate(end)))

	rows := []string{
		fmt.Sprintf("%s  %s", title, rangeLabel),
		"",
		fmt.Sprintf("  Total     %s", highlightStyle.Render(FormatHours(total))),
		fmt.Sprintf("  Billed    %s", billedStyle.Render(FormatHours(billed))),
		fmt.Sprintf("  Unbilled  %s", unbilledStyle.Render(FormatHours(unbilled))),
		fmt.Sprintf("  Avg/day   %s", normalItemStyle.Render(formatHoursDecimal(avg))),
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
