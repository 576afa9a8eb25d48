package period

import (
	"fmt"
	"time"

	"github.com/MrJamesThe3rd/vipledger/internal/ledger"
)

// Month identifies a calendar month.
type Month struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

func NewMonth(month time.Month, year int) Month {
	return Month{Year: year, Month: month}
}

// CurrentMonth returns the month containing the current local date.
func CurrentMonth() Month {
	return MonthOf(ledger.Today())
}

func MonthOf(d ledger.Date) Month {
	return Month{Year: d.Year(), Month: d.Month()}
}

func (m Month) Valid() bool {
	return m.Month >= time.January && m.Month <= time.December
}

func (m Month) Prev() Month {
	if m.Month == time.January {
		return Month{Year: m.Year - 1, Month: time.December}
	}

	return Month{Year: m.Year, Month: m.Month - 1}
}

func (m Month) Next() Month {
	if m.Month == time.December {
		return Month{Year: m.Year + 1, Month: time.January}
	}

	return Month{Year: m.Year, Month: m.Month + 1}
}

func (m Month) Contains(d ledger.Date) bool {
	return IsInMonth(d, m.Month, m.Year)
}

// First and Last are the inclusive bounds of the month.
func (m Month) First() ledger.Date {
	return ledger.NewDate(m.Year, m.Month, 1)
}

func (m Month) Last() ledger.Date {
	return ledger.Date{Time: m.First().AddDate(0, 1, -1)}
}

// String renders the month as "January 2025".
func (m Month) String() string {
	return fmt.Sprintf("%s %d", m.Month, m.Year)
}

// YearChoices lists the years offered by month pickers: five either side of year.
func YearChoices(year int) []int {
	out := make([]int, 0, 11)
	for y := year - 5; y <= year+5; y++ {
		out = append(out, y)
	}

	return out
}
