package view

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/huh"

	"github.com/MrJamesThe3rd/vipledger/internal/ledger"
	"github.com/MrJamesThe3rd/vipledger/internal/period"
)

type debtPage struct{}

func (debtPage) title() string    { return "Debts" }
func (debtPage) monthly() bool    { return false }
func (debtPage) searchable() bool { return false }

func (debtPage) columns() []table.Column {
	return []table.Column{
		{Title: "Client", Width: 20},
		{Title: "Amount", Width: 12},
		{Title: "Due", Width: 12},
		{Title: "Updated", Width: 12},
		{Title: "Description", Width: 30},
	}
}

func (debtPage) rows(store *ledger.Store, _ period.Month, _ string) []pageRow {
	debts := store.Debts()

	rows := make([]pageRow, 0, len(debts))
	for _, d := range debts {
		rows = append(rows, pageRow{id: d.ID, cells: table.Row{
			d.ClientName, FormatAmount(d.Amount), FormatDate(d.DueDate), FormatDate(d.UpdatedDate), d.Description,
		}})
	}

	return rows
}

func (debtPage) footer(store *ledger.Store, _ period.Month) string {
	return fmt.Sprintf("Outstanding: %s", FormatAmount(period.TotalDebts(store.Debts())))
}

func (debtPage) editor(store *ledger.Store, id string) (editor, bool) {
	var (
		client      string
		amount      string
		description string
		due         string
		title       = "Add Debt"
	)

	if id != "" {
		debt, ok := store.Debt(id)
		if !ok {
			return editor{}, false
		}

		client, amount, description, due = debt.ClientName, plainAmount(debt.Amount), debt.Description, debt.DueDate.Display()
		title = "Edit Debt"
	}

	form := newForm(
		requiredInput("Client", &client),
		amountInput("Amount (₪)", &amount),
		huh.NewInput().Title("Description").Value(&description),
		dateInput("Due date (optional)", &due, true),
	)

	submit := func(ctx context.Context) error {
		var p parsed
		a, d := p.amount(amount), p.date(due)

		if p.err != nil {
			return p.err
		}

		if id == "" {
			_, err := store.AddDebt(ctx, ledger.DebtParams{ClientName: client, Amount: a, Description: description, DueDate: d})
			return err
		}

		return store.UpdateDebt(ctx, id, ledger.DebtPatch{ClientName: &client, Amount: &a, Description: &description, DueDate: &d})
	}

	return editor{title: title, form: form, submit: submit}, true
}

func (debtPage) deletePrompt(store *ledger.Store, id string) string {
	debt, _ := store.Debt(id)
	return fmt.Sprintf("Mark the %s debt of %s as settled?", FormatAmount(debt.Amount), debt.ClientName)
}

func (debtPage) remove(ctx context.Context, store *ledger.Store, id string) error {
	return store.DeleteDebt(ctx, id)
}
