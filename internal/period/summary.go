package period

import (
	"github.com/MrJamesThe3rd/vipledger/internal/ledger"
)

type CategoryAmount struct {
	Category ledger.ExpenseCategory `json:"category"`
	Amount   float64                `json:"amount"`
}

type EmployeeAmount struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// Summary bundles every figure the dashboard shows for one month. TotalDebts covers every
// outstanding debt, not just the month's.
type Summary struct {
	Month         Month            `json:"month"`
	Label         string           `json:"label"`
	TotalIncome   float64          `json:"totalIncome"`
	TotalExpenses float64          `json:"totalExpenses"`
	TotalAdvances float64          `json:"totalAdvances"`
	TotalSalaries float64          `json:"totalSalaries"`
	TotalDebts    float64          `json:"totalDebts"`
	Categories    []CategoryAmount `json:"categories"`
	Employees     []EmployeeAmount `json:"employees"`
}

// Summarize computes the month's summary. Categories follow their canonical order and
// only appear when they have expenses; employees follow roster order.
func Summarize(data ledger.Data, m Month) Summary {
	s := Summary{
		Month:         m,
		Label:         m.String(),
		TotalIncome:   TotalIncome(data.Incomes, m.Month, m.Year),
		TotalExpenses: TotalExpenses(data.Expenses, m.Month, m.Year),
		TotalAdvances: TotalAdvances(data.Advances, m.Month, m.Year),
		TotalSalaries: TotalSalaries(data.EmployeeSalaries, m.Month, m.Year),
		TotalDebts:    TotalDebts(data.Debts),
		Categories:    []CategoryAmount{},
		Employees:     make([]EmployeeAmount, 0, len(data.Employees)),
	}

	byCategory := ExpensesByCategory(data.Expenses, m.Month, m.Year)
	for _, c := range ledger.ExpenseCategories() {
		if amount, ok := byCategory[c]; ok {
			s.Categories = append(s.Categories, CategoryAmount{Category: c, Amount: amount})
		}
	}

	for _, name := range data.Employees {
		s.Employees = append(s.Employees, EmployeeAmount{
			Name:   name,
			Amount: EmployeeMonthlyTotal(data.EmployeeSalaries, name, m.Month, m.Year),
		})
	}

	return s
}
