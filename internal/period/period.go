// Package period reduces ledger records to monthly totals.
// Every function here is pure and safe for concurrent use.
package period

import (
	"time"

	"github.com/MrJamesThe3rd/vipledger/internal/ledger"
)

type Dated interface {
	RecordDate() ledger.Date
}

type Amounted interface {
	RecordAmount() float64
}

type Entry interface {
	Dated
	Amounted
}

// IsInMonth reports whether date falls between the first and the last day of the given
// month, both inclusive.
func IsInMonth(date ledger.Date, month time.Month, year int) bool {
	if date.IsZero() || month < time.January || month > time.December {
		return false
	}

	first := ledger.NewDate(year, month, 1)
	last := ledger.Date{Time: first.AddDate(0, 1, -1)}
	day := ledger.DateOf(date.Time)

	return !day.Before(first.Time) && !day.After(last.Time)
}

// FilterByMonth keeps the records dated within the month, in their original order.
func FilterByMonth[T Dated](records []T, month time.Month, year int) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		if IsInMonth(r.RecordDate(), month, year) {
			out = append(out, r)
		}
	}

	return out
}

func SumAmounts[T Amounted](records []T) float64 {
	var total float64
	for _, r := range records {
		total += r.RecordAmount()
	}

	return total
}

func monthTotal[T Entry](records []T, month time.Month, year int) float64 {
	return SumAmounts(FilterByMonth(records, month, year))
}

func TotalIncome(incomes []ledger.Income, month time.Month, year int) float64 {
	return monthTotal(incomes, month, year)
}

func TotalExpenses(expenses []ledger.Expense, month time.Month, year int) float64 {
	return monthTotal(expenses, month, year)
}

func TotalAdvances(advances []ledger.Advance, month time.Month, year int) float64 {
	return monthTotal(advances, month, year)
}

// TotalSalaries sums every employee amount of every salary record in the month.
func TotalSalaries(salaries []ledger.EmployeeSalary, month time.Month, year int) float64 {
	return monthTotal(salaries, month, year)
}

// TotalDebts sums all outstanding debts regardless of date.
func TotalDebts(debts []ledger.Debt) float64 {
	return SumAmounts(debts)
}

// ExpensesByCategory groups the month's expenses by category. Categories with no
// expenses in the month are absent from the result. Expenses whose category is not one
// of the known categories still count in TotalExpenses but are left out of the breakdown.
func ExpensesByCategory(expenses []ledger.Expense, month time.Month, year int) map[ledger.ExpenseCategory]float64 {
	out := make(map[ledger.ExpenseCategory]float64)

	for _, e := range FilterByMonth(expenses, month, year) {
		switch e.Category {
		case ledger.ExpenseSalaries,
			ledger.ExpenseCustomerRepairRefunds,
			ledger.ExpenseMaterialsEquipmentRepairs,
			ledger.ExpenseMarketingAdvertising,
			ledger.ExpenseUnnecessary,
			ledger.ExpenseOffice:
			out[e.Category] += e.Amount
		default:
			continue
		}
	}

	return out
}

// EmployeeMonthlyTotal sums what name was paid across the month's salary records.
func EmployeeMonthlyTotal(salaries []ledger.EmployeeSalary, name string, month time.Month, year int) float64 {
	var total float64
	for _, rec := range FilterByMonth(salaries, month, year) {
		total += rec.Employees[name]
	}

	return total
}
