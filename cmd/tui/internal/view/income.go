package view

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/huh"

	"github.com/MrJamesThe3rd/vipledger/internal/ledger"
	"github.com/MrJamesThe3rd/vipledger/internal/period"
)

type incomePage struct{}

func (incomePage) title() string    { return "Income" }
func (incomePage) monthly() bool    { return true }
func (incomePage) searchable() bool { return true }

func (incomePage) columns() []table.Column {
	return []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Amount", Width: 12},
		{Title: "Category", Width: 18},
		{Title: "Description", Width: 40},
	}
}

func (incomePage) rows(store *ledger.Store, m period.Month, query string) []pageRow {
	incomes := period.Search(period.FilterByMonth(store.Incomes(), m.Month, m.Year), query)

	rows := make([]pageRow, 0, len(incomes))
	for _, i := range incomes {
		rows = append(rows, pageRow{id: i.ID, cells: table.Row{
			FormatDate(i.Date), FormatAmount(i.Amount), string(i.Category), i.Description,
		}})
	}

	return rows
}

func (incomePage) footer(store *ledger.Store, m period.Month) string {
	return fmt.Sprintf("Total income for %s: %s",
		period.FormatMonthYear(m), FormatAmount(period.TotalIncome(store.Incomes(), m.Month, m.Year)))
}

func (incomePage) editor(store *ledger.Store, id string) (editor, bool) {
	var (
		amount      string
		description string
		category    = ledger.IncomeDailySummary
		date        = ledger.Today().Display()
		title       = "Add Income"
	)

	if id != "" {
		income, ok := store.Income(id)
		if !ok {
			return editor{}, false
		}

		amount, description, category, date = plainAmount(income.Amount), income.Description, income.Category, income.Date.Display()
		title = "Edit Income"
	}

	form := newForm(
		amountInput("Amount (₪)", &amount),
		requiredInput("Description", &description),
		huh.NewSelect[ledger.IncomeCategory]().
			Title("Category").
			Options(huh.NewOptions(ledger.IncomeCategories()...)...).
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
			_, err := store.AddIncome(ctx, ledger.IncomeParams{Amount: a, Description: description, Category: category, Date: d})
			return err
		}

		return store.UpdateIncome(ctx, id, ledger.IncomePatch{Amount: &a, Description: &description, Category: &category, Date: &d})
	}

	return editor{title: title, form: form, submit: submit}, true
}

func (incomePage) deletePrompt(store *ledger.Store, id string) string {
	income, _ := store.Income(id)
	return fmt.Sprintf("Delete income %q of %s?", income.Description, FormatAmount(income.Amount))
}

func (incomePage) remove(ctx context.Context, store *ledger.Store, id string) error {
	return store.DeleteIncome(ctx, id)
}
