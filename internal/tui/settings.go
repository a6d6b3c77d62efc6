package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/avelin/worklog/internal/store"
)

type settingsModel struct {
	store  *store.Store
	width  int
	height int

	settings   []store.Setting
	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	dailyGoal *string
	currency  *string
}

func newSettingsModel(s *store.Store) settingsModel {
	goal, cur := "", ""
	return settingsModel{
		store:     s,
		dailyGoal: &goal,
		currency:  &cur,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

func (s settingsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		goal := s.store.DailyGoal()
		currency := s.store.Currency()
		return settingsDataMsg{dailyGoal: goal, currency: currency}
	}
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsDataMsg:
		s.settings = []store.Setting{
			{Key: "daily_goal", Value: strconv.FormatFloat(msg.dailyGoal, 'f', -1, 64)},
			{Key: "currency", Value: msg.currency},
		}
		return s, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.Edit):
			return s.showForm()
		}
	}
	return s, nil
}

func validateDailyGoal(v string) error {
	goal, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || goal <= 0 || goal > 24 {
		return fmt.Errorf("enter hours between 0 and 24")
	}
	return nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	*s.dailyGoal = strconv.FormatFloat(s.store.DailyGoal(), 'f', -1, 64)
	*s.currency = s.store.Currency()

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Daily goal (hours)").Value(s.dailyGoal).Validate(validateDailyGoal),
			huh.NewInput().Title("Currency symbol").Value(s.currency),
		),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		s.saveSettings()
		return s, s.refresh()
	}

	return s, cmd
}

func (s settingsModel) saveSettings() {
	if goal := strings.TrimSpace(*s.dailyGoal); goal != "" {
		s.store.SetSetting("daily_goal", goal)
	}
	if cur := strings.TrimSpace(*s.currency); cur != "" {
		s.store.SetSetting("currency", cur)
	}
}

func (s settingsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		title := titleStyle.Render("Settings")
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View()),
		)
	}

	title := titleStyle.Render("Settings")
	hint := mutedStyle.Render("Press enter to edit settings")

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	for _, setting := range s.settings {
		label := lipgloss.NewStyle().Width(24).Render(setting.Key)
		value := highlightStyle.Render(formatSettingValue(setting.Key, setting.Value))
		rows = append(rows, fmt.Sprintf("  %s %s", label, value))
	}

	rows = append(rows, "")
	rows = append(rows, hint)

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func formatSettingValue(k, v string) string {
	if k == "daily_goal" {
		if goal, err := strconv.ParseFloat(v, 64); err == nil {
			return fmt.Sprintf("%.1f hours", goal)
		}
	}
	return v
}
