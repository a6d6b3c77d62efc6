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

// paymentsModel lists received payments newest first and lets the user
// record or remove one.
type paymentsModel struct {
	store  *store.Store
	width  int
	height int

	payments []timesheet.Payment
	total    float64
	currency string
	cursor   int

	formActive bool
	form       *huh.Form

	// Form field pointers (survive value copies)
	formDate   *string
	formAmount *string
	formNote   *string
}

func newPaymentsModel(s *store.Store) paymentsModel {
	date, amount, note := "", "", ""
	return paymentsModel{
		store:      s,
		currency:   "€",
		formDate:   &date,
		formAmount: &amount,
		formNote:   &note,
	}
}

func (p *paymentsModel) setSize(w, h int) {
	p.width = w
	p.height = h
}

func (p paymentsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		payments, _ := p.store.ListPayments()
		total, _ := p.store.TotalPayments()
		currency := p.store.Currency()
		return paymentsDataMsg{payments: payments, total: total, currency: currency}
	}
}

func (p paymentsModel) update(msg tea.Msg) (paymentsModel, tea.Cmd) {
	if p.formActive && p.form != nil {
		return p.updateForm(msg)
	}

	switch msg := msg.(type) {
	case paymentsDataMsg:
		p.payments = msg.payments
		p.total = msg.total
		p.currency = msg.currency
		if p.cursor >= len(p.payments) {
			p.cursor = max(0, len(p.payments)-1)
		}
		return p, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if p.cursor > 0 {
				p.cursor--
			}
		case key.Matches(msg, keys.Down):
			if p.cursor < len(p.payments)-1 {
				p.cursor++
			}
		case key.Matches(msg, keys.New):
			return p.showPaymentForm()
		case key.Matches(msg, keys.Delete):
			if len(p.payments) > 0 {
				id := p.payments[p.cursor].ID
				p.store.DeletePayment(id)
				return p, p.refresh()
			}
		}
	}
	return p, nil
}

func validateISODate(s string) error {
	if _, err := timesheet.ParseISODate(s); err != nil {
		return fmt.Errorf("use YYYY-MM-DD")
	}
	return nil
}

func validateAmount(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v <= 0 {
		return fmt.Errorf("enter a positive amount")
	}
	return nil
}

func (p paymentsModel) showPaymentForm() (paymentsModel, tea.Cmd) {
	*p.formDate = timesheet.ISODate(time.Now())
	*p.formAmount = ""
	*p.formNote = ""

	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Date").Description("YYYY-MM-DD").Value(p.formDate).Validate(validateISODate),
			huh.NewInput().Title(fmt.Sprintf("Amount (%s)", p.currency)).Value(p.formAmount).Validate(validateAmount),
			huh.NewInput().Title("Note").Value(p.formNote),
		),
	).WithShowHelp(true).WithShowErrors(true)

	p.formActive = true
	return p, p.form.Init()
}

func (p paymentsModel) updateForm(msg tea.Msg) (paymentsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			p.formActive = false
			p.form = nil
			return p, nil
		}
	}

	form, cmd := p.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		p.form = f
	}

	if p.form.State == huh.StateCompleted {
		p.formActive = false
		amount, err := strconv.ParseFloat(strings.TrimSpace(*p.formAmount), 64)
		if err == nil && amount > 0 {
			p.store.AddPayment(*p.formDate, amount, strings.TrimSpace(*p.formNote))
			return p, tea.Batch(p.refresh(), func() tea.Msg { return paymentSavedMsg{} })
		}
		return p, p.refresh()
	}

	return p, cmd
}

func (p paymentsModel) view() string {
	w := p.width - 4

	if p.formActive && p.form != nil {
		content := lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("New Payment"), "", p.form.View(),
		)
		return panelStyle.Width(w).Render(content)
	}

	title := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Payments"), "  ",
		successStyle.Render(fmt.Sprintf("total %.2f %s", p.total, p.currency)),
	)

	if len(p.payments) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No payments yet. Press n to record one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	header := mutedStyle.Render(fmt.Sprintf("  %-3s %-12s %12s  %s", "", "Date", "Amount", "Note"))
	rows = append(rows, header)

	for i, payment := range p.payments {
		cursor := "  "
		style := normalItemStyle
		if i == p.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		amount := fmt.Sprintf("%.2f %s", payment.Amount, p.currency)
		row := style.Render(fmt.Sprintf("%s  %-12s %12s", cursor, payment.Date, amount))
		if payment.Note != "" {
			row += "  " + mutedStyle.Render(payment.Note)
		}
		rows = append(rows, row)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  d: delete"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
