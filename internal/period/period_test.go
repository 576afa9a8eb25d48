package period_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/vipledger/internal/ledger"
	"github.com/MrJamesThe3rd/vipledger/internal/period"
)

func income(amount float64, d ledger.Date) ledger.Income {
	return ledger.Income{Amount: amount, Description: "x", Category: ledger.IncomeDailySummary, Date: d}
}

func TestSumAmounts(t *testing.T) {
	assert.Zero(t, period.SumAmounts([]ledger.Income{}))
	assert.Zero(t, period.SumAmounts[ledger.Income](nil))

	incomes := []ledger.Income{
		income(10, ledger.NewDate(2025, 1, 1)),
		income(20.5, ledger.NewDate(2025, 2, 1)),
		income(0, ledger.NewDate(2025, 3, 1)),
	}
	assert.InDelta(t, 30.5, period.SumAmounts(incomes), 1e-9)
}

func TestIsInMonth(t *testing.T) {
	type testCase struct {
		name  string
		date  ledger.Date
		month time.Month
		year  int
		want  bool
	}

	tests := []testCase{
		{name: "FirstDay", date: ledger.NewDate(2025, time.March, 1), month: time.March, year: 2025, want: true},
		{name: "LastDay", date: ledger.NewDate(2025, time.March, 31), month: time.March, year: 2025, want: true},
		{name: "FirstDayNotInPrevious", date: ledger.NewDate(2025, time.March, 1), month: time.February, year: 2025},
		{name: "LastDayNotInNext", date: ledger.NewDate(2025, time.March, 31), month: time.April, year: 2025},
		{name: "LeapDay", date: ledger.NewDate(2024, time.February, 29), month: time.February, year: 2024, want: true},
		{name: "OtherYear", date: ledger.NewDate(2024, time.March, 10), month: time.March, year: 2025},
		{name: "DecemberLastDay", date: ledger.NewDate(2025, time.December, 31), month: time.December, year: 2025, want: true},
		{name: "JanuaryNotInPreviousDecember", date: ledger.NewDate(2025, time.January, 1), month: time.December, year: 2024},
		{name: "ZeroDate", date: ledger.Date{}, month: time.January, year: 1},
		{name: "InvalidMonth", date: ledger.NewDate(2025, time.January, 1), month: 13, year: 2024},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, period.IsInMonth(tt.date, tt.month, tt.year))
		})
	}
}

func TestFilterByMonth(t *testing.T) {
	incomes := []ledger.Income{
		income(1, ledger.NewDate(2025, time.January, 31)),
		income(2, ledger.NewDate(2025, time.February, 1)),
		income(3, ledger.NewDate(2025, time.January, 1)),
	}

	once := period.FilterByMonth(incomes, time.January, 2025)
	require.Len(t, once, 2)
	assert.Equal(t, 1.0, once[0].Amount)
	assert.Equal(t, 3.0, once[1].Amount)

	assert.Equal(t, once, period.FilterByMonth(once, time.January, 2025))
}

func TestTotalIncome(t *testing.T) {
	incomes := []ledger.Income{
		income(100, ledger.NewDate(2025, time.January, 5)),
		income(200, ledger.NewDate(2025, time.February, 1)),
	}

	assert.Equal(t, 100.0, period.TotalIncome(incomes, time.January, 2025))
	assert.Equal(t, 200.0, period.TotalIncome(incomes, time.February, 2025))
	assert.Equal(t, 0.0, period.TotalIncome(incomes, time.March, 2025))
}

func TestTotals(t *testing.T) {
	jan := ledger.NewDate(2025, time.January, 10)
	feb := ledger.NewDate(2025, time.February, 10)

	expenses := []ledger.Expense{
		{Amount: 50, Category: ledger.ExpenseOffice, Date: jan},
		{Amount: 25, Category: ledger.ExpenseSalaries, Date: feb},
	}
	advances := []ledger.Advance{
		{Name: "Ben", Amount: 300, PaymentType: ledger.PaymentCash, Date: jan},
		{Name: "Roi", Amount: 100, PaymentType: ledger.PaymentCheck, Date: jan},
	}
	salaries := []ledger.EmployeeSalary{
		{Date: jan, Employees: map[string]float64{"Avi": 100, "Mai": 50}},
		{Date: ledger.NewDate(2025, time.January, 20), Employees: map[string]float64{"Avi": 30}},
		{Date: feb, Employees: map[string]float64{"Avi": 999}},
	}
	debts := []ledger.Debt{
		{ClientName: "A", Amount: 10, DueDate: ledger.NewDate(2020, time.May, 1)},
		{ClientName: "B", Amount: 15},
	}

	assert.Equal(t, 50.0, period.TotalExpenses(expenses, time.January, 2025))
	assert.Equal(t, 400.0, period.TotalAdvances(advances, time.January, 2025))
	assert.Equal(t, 180.0, period.TotalSalaries(salaries, time.January, 2025))
	assert.Equal(t, 25.0, period.TotalDebts(debts))
	assert.Equal(t, 130.0, period.EmployeeMonthlyTotal(salaries, "Avi", time.January, 2025))
	assert.Equal(t, 0.0, period.EmployeeMonthlyTotal(salaries, "Shaked", time.January, 2025))
}

func TestExpensesByCategory(t *testing.T) {
	expenses := []ledger.Expense{
		{Amount: 50, Category: ledger.ExpenseOffice, Date: ledger.NewDate(2025, time.January, 3)},
		{Amount: 30, Category: ledger.ExpenseOffice, Date: ledger.NewDate(2025, time.January, 28)},
		{Amount: 500, Category: ledger.ExpenseMarketingAdvertising, Date: ledger.NewDate(2025, time.February, 1)},
	}

	got := period.ExpensesByCategory(expenses, time.January, 2025)
	assert.Equal(t, map[ledger.ExpenseCategory]float64{ledger.ExpenseOffice: 80}, got)
}

func TestExpensesByCategory_UnknownCategory(t *testing.T) {
	expenses := []ledger.Expense{
		{Amount: 80, Category: ledger.ExpenseOffice, Date: ledger.NewDate(2025, time.January, 3)},
		{Amount: 20, Category: "Travel", Date: ledger.NewDate(2025, time.January, 4)},
	}

	assert.Equal(t,
		map[ledger.ExpenseCategory]float64{ledger.ExpenseOffice: 80},
		period.ExpensesByCategory(expenses, time.January, 2025))
	assert.InDelta(t, 100.0, period.TotalExpenses(expenses, time.January, 2025), 1e-9)
}

func TestMonthNavigation(t *testing.T) {
	jan := period.NewMonth(time.January, 2025)

	assert.Equal(t, period.NewMonth(time.December, 2024), jan.Prev())
	assert.Equal(t, period.NewMonth(time.February, 2025), jan.Next())
	assert.Equal(t, period.NewMonth(time.January, 2026), period.NewMonth(time.December, 2025).Next())
	assert.Equal(t, "January 2025", period.FormatMonthYear(jan))
	assert.Equal(t, ledger.NewDate(2025, time.January, 31), jan.Last())

	years := period.YearChoices(2025)
	require.Len(t, years, 11)
	assert.Equal(t, 2020, years[0])
	assert.Equal(t, 2030, years[10])
}

func TestFormatCurrency(t *testing.T) {
	type testCase struct {
		amount float64
		want   string
	}

	tests := []testCase{
		{amount: 0, want: "₪0"},
		{amount: 999.4, want: "₪999"},
		{amount: 1234.5, want: "₪1,235"},
		{amount: 1250000, want: "₪1,250,000"},
		{amount: -40, want: "-₪40"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, period.FormatCurrency(tt.amount))
		})
	}
}

func TestSearch(t *testing.T) {
	incomes := []ledger.Income{
		{ID: "1", Description: "Morning register", Category: ledger.IncomeDailySummary, Date: ledger.NewDate(2025, time.January, 2)},
		{ID: "2", Description: "Month close", Category: ledger.IncomeMonthlySummary, Date: ledger.NewDate(2025, time.January, 31)},
		{ID: "3", Description: "Evening register", Category: ledger.IncomeDailySummary, Date: ledger.NewDate(2025, time.January, 15)},
	}

	ids := func(in []ledger.Income) []string {
		out := make([]string, 0, len(in))
		for _, i := range in {
			out = append(out, i.ID)
		}

		return out
	}

	assert.Equal(t, []string{"2", "3", "1"}, ids(period.Search(incomes, "")))
	assert.Equal(t, []string{"3", "1"}, ids(period.Search(incomes, "REGISTER")))
	assert.Equal(t, []string{"2"}, ids(period.Search(incomes, "monthly")))
	assert.Equal(t, []string{"3"}, ids(period.Search(incomes, "15/01")))
	assert.Equal(t, "1", incomes[0].ID)
}

func TestSummarize(t *testing.T) {
	data := ledger.DefaultData()
	data.Employees = []string{"Avi", "Mai"}
	data.Incomes = []ledger.Income{income(100, ledger.NewDate(2025, time.January, 5))}
	data.Expenses = []ledger.Expense{
		{Amount: 80, Category: ledger.ExpenseOffice, Date: ledger.NewDate(2025, time.January, 6)},
		{Amount: 20, Category: ledger.ExpenseSalaries, Date: ledger.NewDate(2025, time.January, 7)},
	}
	data.EmployeeSalaries = []ledger.EmployeeSalary{
		{Date: ledger.NewDate(2025, time.January, 8), Employees: map[string]float64{"Avi": 70}},
	}
	data.Debts = []ledger.Debt{{ClientName: "C", Amount: 5}}

	got := period.Summarize(data, period.NewMonth(time.January, 2025))

	assert.Equal(t, "January 2025", got.Label)
	assert.Equal(t, 100.0, got.TotalIncome)
	assert.Equal(t, 100.0, got.TotalExpenses)
	assert.Equal(t, 70.0, got.TotalSalaries)
	assert.Equal(t, 5.0, got.TotalDebts)
	assert.Equal(t, []period.CategoryAmount{
		{Category: ledger.ExpenseSalaries, Amount: 20},
		{Category: ledger.ExpenseOffice, Amount: 80},
	}, got.Categories)
	assert.Equal(t, []period.EmployeeAmount{{Name: "Avi", Amount: 70}, {Name: "Mai", Amount: 0}}, got.Employees)
}
