package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/vipledger/internal/ledger"
	"github.com/MrJamesThe3rd/vipledger/internal/period"
)

var cardStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("63")).
	Padding(0, 2).
	Width(22)

type DashboardModel struct {
	CommonModel
	store  *ledger.Store
	picker MonthPicker
}

func NewDashboardModel(store *ledger.Store, month period.Month) DashboardModel {
	return DashboardModel{store: store, picker: NewMonthPicker(month)}
}

func (m DashboardModel) Title() string { return "Dashboard" }

func (m DashboardModel) ShortHelp() string {
	return "Esc: back | " + m.picker.Help()
}

// Month is the month currently shown, shared with the record screens.
func (m DashboardModel) Month() period.Month { return m.picker.Month() }

func (m DashboardModel) Init() tea.Cmd {
	return nil
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m, Back
	}

	m.picker, _ = m.picker.Update(msg)

	return m, nil
}

func (m DashboardModel) View() string {
	s := period.Summarize(m.store.Snapshot(), m.picker.Month())

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		card("Income", s.TotalIncome),
		card("Expenses", s.TotalExpenses),
		card("Advances", s.TotalAdvances),
		card("Salaries", s.TotalSalaries),
		card("Debts (all)", s.TotalDebts),
	)

	var categories strings.Builder
	categories.WriteString(titleStyle.Render("Expenses by category") + "\n")

	if len(s.Categories) == 0 {
		categories.WriteString(faintStyle.Render("No expenses this month.") + "\n")
	}

	for _, c := range s.Categories {
		fmt.Fprintf(&categories, "%-34s %s\n", c.Category, FormatAmount(c.Amount))
	}

	var employees strings.Builder
	employees.WriteString(titleStyle.Render("Salaries by employee") + "\n")

	for _, e := range s.Employees {
		fmt.Fprintf(&employees, "%-20s %s\n", e.Name, FormatAmount(e.Amount))
	}

	breakdown := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().PaddingRight(6).Render(categories.String()),
		employees.String(),
	)

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Dashboard")+"   "+m.picker.View(),
		"",
		cards,
		"",
		breakdown,
	))
}

func card(label string, amount float64) string {
	return cardStyle.Render(faintStyle.Render(label) + "\n" + lipgloss.NewStyle().Bold(true).Render(FormatAmount(amount)))
}
