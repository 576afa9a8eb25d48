package importer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MrJamesThe3rd/vipledger/internal/importer/sheet"
	"github.com/MrJamesThe3rd/vipledger/internal/ledger"
)

var ErrUnknownKind = errors.New("unknown import kind")

// Kind selects which record collection a CSV file is imported into.
type Kind string

const (
	KindIncomes  Kind = "incomes"
	KindExpenses Kind = "expenses"
	KindAdvances Kind = "advances"
)

func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindIncomes, KindExpenses, KindAdvances:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

func (k Kind) requiredColumns() []sheet.Column {
	switch k {
	case KindAdvances:
		return []sheet.Column{sheet.ColDate, sheet.ColAmount, sheet.ColName}
	default:
		return []sheet.Column{sheet.ColDate, sheet.ColAmount}
	}
}

// Batch holds the parsed rows of one file. Only the slice matching Kind is populated.
type Batch struct {
	Kind     Kind
	Charset  string
	Incomes  []ledger.IncomeParams
	Expenses []ledger.ExpenseParams
	Advances []ledger.AdvanceParams
	Skipped  []Skipped

	// lines holds the source line of each parsed record, in order.
	lines []int
}

func (b *Batch) Len() int {
	return len(b.Incomes) + len(b.Expenses) + len(b.Advances)
}

// Skipped explains why a source row was not imported.
type Skipped struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

func (b *Batch) add(kind Kind, row sheet.Row) error {
	amount, err := ledger.ParseAmount(row.Get(sheet.ColAmount))
	if err != nil {
		return err
	}

	date, err := ledger.ParseDate(row.Get(sheet.ColDate))
	if err != nil {
		return err
	}

	description := row.Get(sheet.ColDescription)

	switch kind {
	case KindIncomes:
		category := ledger.IncomeDailySummary
		if raw := row.Get(sheet.ColCategory); raw != "" {
			if category, err = matchIncomeCategory(raw); err != nil {
				return err
			}
		}

		if description == "" {
			description = string(category)
		}

		b.Incomes = append(b.Incomes, ledger.IncomeParams{
			Amount: amount, Description: description, Category: category, Date: date,
		})
	case KindExpenses:
		category, err := matchExpenseCategory(row.Get(sheet.ColCategory))
		if err != nil {
			return err
		}

		b.Expenses = append(b.Expenses, ledger.ExpenseParams{
			Amount: amount, Description: description, Category: category, Date: date,
		})
	case KindAdvances:
		paymentType, err := matchPaymentType(row.Get(sheet.ColPaymentType))
		if err != nil {
			return err
		}

		b.Advances = append(b.Advances, ledger.AdvanceParams{
			Name:        row.Get(sheet.ColName),
			Amount:      amount,
			Description: description,
			PaymentType: paymentType,
			Date:        date,
		})
	}

	b.lines = append(b.lines, row.Line)

	return nil
}

func (b *Batch) line(i int) int {
	if i < len(b.lines) {
		return b.lines[i]
	}

	return 0
}

func matchIncomeCategory(raw string) (ledger.IncomeCategory, error) {
	for _, c := range ledger.IncomeCategories() {
		if strings.EqualFold(string(c), strings.TrimSpace(raw)) {
			return c, nil
		}
	}

	return "", fmt.Errorf("income category %q: %w", raw, ledger.ErrInvalidCategory)
}

func matchExpenseCategory(raw string) (ledger.ExpenseCategory, error) {
	for _, c := range ledger.ExpenseCategories() {
		if strings.EqualFold(string(c), strings.TrimSpace(raw)) {
			return c, nil
		}
	}

	return "", fmt.Errorf("expense category %q: %w", raw, ledger.ErrInvalidCategory)
}

func matchPaymentType(raw string) (ledger.PaymentType, error) {
	for _, p := range ledger.PaymentTypes() {
		if strings.EqualFold(string(p), strings.TrimSpace(raw)) {
			return p, nil
		}
	}

	return "", fmt.Errorf("payment type %q: %w", raw, ledger.ErrInvalidPaymentType)
}
