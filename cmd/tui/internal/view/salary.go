package view

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/huh"

	"github.com/MrJamesThe3rd/vipledger/internal/ledger"
	"github.com/MrJamesThe3rd/vipledger/internal/period"
)

type salaryPage struct{}

func (salaryPage) title() string    { return "Salaries" }
func (salaryPage) monthly() bool    { return true }
func (salaryPage) searchable() bool { return false }

func (salaryPage) columns() []table.Column {
	return []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Total", Width: 12},
		{Title: "Paid", Width: 60},
	}
}

func (salaryPage) rows(store *ledger.Store, m period.Month, _ string) []pageRow {
	salaries := period.FilterByMonth(store.EmployeeSalaries(), m.Month, m.Year)
	period.SortByDateDesc(salaries)

	rows := make([]pageRow, 0, len(salaries))
	for _, s := range salaries {
		names := slices.Sorted(maps.Keys(s.Employees))

		paid := make([]string, 0, len(names))
		for _, name := range names {
			paid = append(paid, fmt.Sprintf("%s %s", name, FormatAmount(s.Employees[name])))
		}

		rows = append(rows, pageRow{id: s.ID, cells: table.Row{
			FormatDate(s.Date), FormatAmount(s.RecordAmount()), strings.Join(paid, ", "),
		}})
	}

	return rows
}

func (salaryPage) footer(store *ledger.Store, m period.Month) string {
	return fmt.Sprintf("Total salaries for %s: %s",
		period.FormatMonthYear(m), FormatAmount(period.TotalSalaries(store.EmployeeSalaries(), m.Month, m.Year)))
}

// editor offers one amount per roster employee. Adding on a date that already has a record
// merges into it; editing replaces the record's whole mapping.
func (salaryPage) editor(store *ledger.Store, id string) (editor, bool) {
	var (
		date     = ledger.Today().Display()
		names    = store.Employees()
		existing map[string]float64
		title    = "Add Salaries"
	)

	if id != "" {
		salary, ok := store.EmployeeSalary(id)
		if !ok {
			return editor{}, false
		}

		date, existing = salary.Date.Display(), salary.Employees
		title = "Edit Salaries"

		for name := range salary.Employees {
			if !slices.Contains(names, name) {
				names = append(names, name)
			}
		}
	}

	amounts := make([]string, len(names))
	fields := []huh.Field{dateInput("Date", &date, false)}

	for i, name := range names {
		if v, ok := existing[name]; ok {
			amounts[i] = plainAmount(v)
		}

		fields = append(fields, optionalAmountInput(name, &amounts[i]))
	}

	submit := func(ctx context.Context) error {
		var p parsed
		d := p.date(date)

		employees := make(map[string]float64)
		for i, name := range names {
			if strings.TrimSpace(amounts[i]) != "" {
				employees[name] = p.amount(amounts[i])
			}
		}

		if p.err != nil {
			return p.err
		}

		if id == "" {
			_, err := store.AddEmployeeSalary(ctx, ledger.SalaryParams{Date: d, Employees: employees})
			return err
		}

		return store.UpdateEmployeeSalary(ctx, id, ledger.SalaryPatch{Date: &d, Employees: employees})
	}

	return editor{title: title, form: newForm(fields...), submit: submit}, true
}

func (salaryPage) deletePrompt(store *ledger.Store, id string) string {
	salary, _ := store.EmployeeSalary(id)
	return fmt.Sprintf("Delete all salaries paid on %s?", FormatDate(salary.Date))
}

func (salaryPage) remove(ctx context.Context, store *ledger.Store, id string) error {
	return store.DeleteEmployeeSalary(ctx, id)
}
