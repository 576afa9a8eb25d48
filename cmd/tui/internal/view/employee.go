package view

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/table"

	"github.com/MrJamesThe3rd/vipledger/internal/ledger"
	"github.com/MrJamesThe3rd/vipledger/internal/period"
)

// employeePage lists the roster with each employee's pay for the picked month.
// Rows are keyed by name.
type employeePage struct{}

func (employeePage) title() string    { return "Employees" }
func (employeePage) monthly() bool    { return true }
func (employeePage) searchable() bool { return false }

func (employeePage) columns() []table.Column {
	return []table.Column{
		{Title: "Name", Width: 20},
		{Title: "Paid this month", Width: 16},
	}
}

func (employeePage) rows(store *ledger.Store, m period.Month, _ string) []pageRow {
	salaries := store.EmployeeSalaries()
	names := store.Employees()

	rows := make([]pageRow, 0, len(names))
	for _, name := range names {
		rows = append(rows, pageRow{id: name, cells: table.Row{
			name, FormatAmount(period.EmployeeMonthlyTotal(salaries, name, m.Month, m.Year)),
		}})
	}

	return rows
}

func (employeePage) footer(store *ledger.Store, _ period.Month) string {
	return faintStyle.Render(fmt.Sprintf("%d employees", len(store.Employees())))
}

func (employeePage) editor(store *ledger.Store, id string) (editor, bool) {
	if id != "" {
		return editor{}, false
	}

	var name string

	submit := func(ctx context.Context) error {
		return store.AddEmployee(ctx, name)
	}

	return editor{title: "Add Employee", form: newForm(requiredInput("Name", &name)), submit: submit}, true
}

func (employeePage) deletePrompt(_ *ledger.Store, id string) string {
	return fmt.Sprintf("Remove %s? Their amounts are removed from every salary record.", id)
}

func (employeePage) remove(ctx context.Context, store *ledger.Store, id string) error {
	return store.DeleteEmployee(ctx, id)
}
