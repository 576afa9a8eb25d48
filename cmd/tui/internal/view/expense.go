package view

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/huh"

	"github.com/MrJamesThe3rd/vipledger/internal/ledger"
	"github.com/MrJamesThe3rd/vipledger/internal/period"
)

type expensePage struct{}

func (expensePage) title() string    { return "Expenses" }
func (expensePage) monthly() bool    { return true }
func (expensePage) searchable() bool { return true }

func (expensePage) columns() []table.Column {
	return []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Amount", Width: 12},
		{Title: "Category", Width: 34},
		{Title: "Description", Width: 36},
	}
}

func (expensePage) rows(store *ledger.Store, m period.Month, query string) []pageRow {
	expenses := period.Search(period.FilterByMonth(store.Expenses(), m.Month, m.Year), query)

	rows := make([]pageRow, 0, len(expenses))
	for _, e := range expenses {
		rows = append(rows, pageRow{id: e.ID, cells: table.Row{
			FormatDate(e.Date), FormatAmount(e.Amount), string(e.Category), e.Description,
		}})
	}

	return rows
}

func (expensePage) footer(store *ledger.Store, m period.Month) string {
	expenses := store.Expenses()
	byCategory := period.ExpensesByCategory(expenses, m.Month, m.Year)

	s := fmt.Sprintf("Total expenses for %s: %s",
		period.FormatMonthYear(m), FormatAmount(period.TotalExpenses(expenses, m.Month, m.Year)))

	for _, c := range ledger.ExpenseCategories() {
		if v, ok := byCategory[c]; ok {
			s += fmt.Sprintf("\n  %s: %s", c, FormatAmount(v))
		}
	}

	return s
}

func (expensePage) editor(store *ledger.Store, id string) (editor, bool) {
	var (
		amount      string
		description string
		category    = ledger.ExpenseOffice
		date        = ledger.Today().Display()
		title       = "Add Expense"
	)

	if id != "" {
		expense, ok := store.Expense(id)
		if !ok {
			return editor{}, false
		}

		amount, description, category, date = plainAmount(expense.Amount), expense.Description, expense.Category, expense.Date.Display()
		title = "Edit Expense"
	}

	form := newForm(
		amountInput("Amount (₪)", &amount),
		requiredInput("Description", &description),
		huh.NewSelect[ledger.ExpenseCategory]().
			Title("Category").
			Options(huh.NewOptions(ledger.ExpenseCategories()...)...).
			Value(&category),
		dateInput("Date", &date, false),
	)

	submit := func(ctx context.Context) error {
		var p parsed
		a, d := p.amount(amount), p.date(date)

		if p.err != nil {
			return p.err
		}

		if id == "" {
			_, err := store.AddExpense(ctx, ledger.ExpenseParams{Amount: a, Description: description, Category: category, Date: d})
			return err
		}

		return store.UpdateExpense(ctx, id, ledger.ExpensePatch{Amount: &a, Description: &description, Category: &category, Date: &d})
	}

	return editor{title: title, form: form, submit: submit}, true
}

func (expensePage) deletePrompt(store *ledger.Store, id string) string {
	expense, _ := store.Expense(id)
	return fmt.Sprintf("Delete expense %q of %s?", expense.Description, FormatAmount(expense.Amount))
}

func (expensePage) remove(ctx context.Context, store *ledger.Store, id string) error {
	return store.DeleteExpense(ctx, id)
}
