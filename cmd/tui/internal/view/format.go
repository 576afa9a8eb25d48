package view

import (
	"context"
	"time"

	"github.com/MrJamesThe3rd/vipledger/internal/ledger"
	"github.com/MrJamesThe3rd/vipledger/internal/period"
)

const storeTimeout = 5 * time.Second

// FormatAmount renders an amount as whole shekels.
func FormatAmount(v float64) string {
	return period.FormatCurrency(v)
}

// FormatDate renders a date as dd/MM/yyyy.
func FormatDate(d ledger.Date) string {
	return period.FormatDisplayDate(d)
}

// StoreCtx returns a context with a standard timeout for slot writes.
func StoreCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), storeTimeout)
}
