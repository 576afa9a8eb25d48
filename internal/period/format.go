package period

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/MrJamesThe3rd/vipledger/internal/ledger"
)

// CurrencySymbol is the single currency every amount is kept in.
const CurrencySymbol = "₪"

var printer = message.NewPrinter(language.English)

// FormatCurrency renders an amount rounded to whole units with grouped thousands,
// e.g. 1234.5 as "₪1,235". The amount itself is not modified.
func FormatCurrency(amount float64) string {
	rounded := math.Round(amount)
	if rounded < 0 {
		return "-" + CurrencySymbol + printer.Sprint(number.Decimal(-rounded, number.MaxFractionDigits(0)))
	}

	return CurrencySymbol + printer.Sprint(number.Decimal(rounded, number.MaxFractionDigits(0)))
}

// FormatDisplayDate renders a date as dd/MM/yyyy.
func FormatDisplayDate(d ledger.Date) string {
	return d.Display()
}

// FormatMonthYear renders a month as "January 2025".
func FormatMonthYear(m Month) string {
	return m.String()
}
