package view

import (
	"fmt"
	"slices"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MrJamesThe3rd/vipledger/internal/period"
)

// MonthSelectedMsg is emitted when the user confirms a month in a MonthPicker.
type MonthSelectedMsg struct {
	Month period.Month
}

// MonthPicker steps through months with ←/→ and years with ↑/↓.
// Years are limited to five either side of the current year.
type MonthPicker struct {
	month period.Month
	years []int
}

func NewMonthPicker(start period.Month) MonthPicker {
	return MonthPicker{
		month: start,
		years: period.YearChoices(period.CurrentMonth().Year),
	}
}

func (m MonthPicker) Month() period.Month { return m.month }

func (m MonthPicker) Update(msg tea.Msg) (MonthPicker, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "left", "h":
		m.step(m.month.Prev())
	case "right", "l":
		m.step(m.month.Next())
	case "up", "k":
		m.step(period.NewMonth(m.month.Month, m.month.Year+1))
	case "down", "j":
		m.step(period.NewMonth(m.month.Month, m.month.Year-1))
	case "t":
		m.month = period.CurrentMonth()
	case "enter":
		selected := m.month
		return m, func() tea.Msg { return MonthSelectedMsg{Month: selected} }
	}

	return m, nil
}

// step moves to next unless it falls outside the offered years.
func (m *MonthPicker) step(next period.Month) {
	if slices.Contains(m.years, next.Year) {
		m.month = next
	}
}

func (m MonthPicker) View() string {
	return fmt.Sprintf("◀  %s  ▶", activeStyle(period.FormatMonthYear(m.month)))
}

func (m MonthPicker) Help() string {
	return "←/→: month | ↑/↓: year | t: this month"
}
