package view

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/huh"

	"github.com/MrJamesThe3rd/vipledger/internal/ledger"
	"github.com/MrJamesThe3rd/vipledger/internal/period"
)

type advancePage struct{}

func (advancePage) title() string    { return "Advances" }
func (advancePage) monthly() bool    { return true }
func (advancePage) searchable() bool { return true }

func (advancePage) columns() []table.Column {
	return []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Name", Width: 14},
		{Title: "Amount", Width: 12},
		{Title: "Payment", Width: 14},
		{Title: "Description", Width: 32},
	}
}

func (advancePage) rows(store *ledger.Store, m period.Month, query string) []pageRow {
	advances := period.Search(period.FilterByMonth(store.Advances(), m.Month, m.Year), query)

	rows := make([]pageRow, 0, len(advances))
	for _, a := range advances {
		rows = append(rows, pageRow{id: a.ID, cells: table.Row{
			FormatDate(a.Date), a.Name, FormatAmount(a.Amount), string(a.PaymentType), a.Description,
		}})
	}

	return rows
}

func (advancePage) footer(store *ledger.Store, m period.Month) string {
	return fmt.Sprintf("Total advances for %s: %s",
		period.FormatMonthYear(m), FormatAmount(period.TotalAdvances(store.Advances(), m.Month, m.Year)))
}

func (advancePage) editor(store *ledger.Store, id string) (editor, bool) {
	var (
		name        string
		amount      string
		description string
		paymentType = ledger.PaymentCash
		date        = ledger.Today().Display()
		title       = "Add Advance"
	)

	if id != "" {
		advance, ok := store.Advance(id)
		if !ok {
			return editor{}, false
		}

		name, amount, description = advance.Name, plainAmount(advance.Amount), advance.Description
		paymentType, date = advance.PaymentType, advance.Date.Display()
		title = "Edit Advance"
	}

	form := newForm(
		requiredInput("Name", &name).Suggestions(ledger.AdvanceNames),
		amountInput("Amount (₪)", &amount),
		huh.NewSelect[ledger.PaymentType]().
			Title("Payment type").
			Options(huh.NewOptions(ledger.PaymentTypes()...)...).
			Value(&paymentType),
		huh.NewInput().Title("Description").Value(&description),
		dateInput("Date", &date, false),
	)

	submit := func(ctx context.Context) error {
		var p parsed
		a, d := p.amount(amount), p.date(date)

		if p.err != nil {
			return p.err
		}

		if id == "" {
			_, err := store.AddAdvance(ctx, ledger.AdvanceParams{
				Name: name, Amount: a, Description: description, PaymentType: paymentType, Date: d,
			})

			return err
		}

		return store.UpdateAdvance(ctx, id, ledger.AdvancePatch{
			Name: &name, Amount: &a, Description: &description, PaymentType: &paymentType, Date: &d,
		})
	}

	return editor{title: title, form: form, submit: submit}, true
}

func (advancePage) deletePrompt(store *ledger.Store, id string) string {
	advance, _ := store.Advance(id)
	return fmt.Sprintf("Delete the %s advance to %s?", FormatAmount(advance.Amount), advance.Name)
}

func (advancePage) remove(ctx context.Context, store *ledger.Store, id string) error {
	return store.DeleteAdvance(ctx, id)
}
