package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one normalized statement row. Immutable once produced by
// the statement normalizer.
type Transaction struct {
	Date        time.Time       // zero when the date could not be parsed
	Description string          // "" when absent
	Type        string          // raw type text, used only as a sign hint upstream
	Amount      decimal.Decimal // negative = debit/outflow, positive = credit/inflow
}

// HasDate reports whether the transaction carries a parsed date.
func (t Transaction) HasDate() bool {
	return !t.Date.IsZero()
}

// Payee returns the normalized counterparty key: the trimmed, lowercased
// description. There is no separate identity system.
func (t Transaction) Payee() string {
	return strings.ToLower(strings.TrimSpace(t.Description))
}

// Table is an ordered transaction table, row order preserved from the
// source file. Not necessarily sorted by date.
type Table []Transaction

// MaxDate returns the latest date in the table, or a zero time when no row
// has a date.
func (tbl Table) MaxDate() time.Time {
	var max time.Time
	for _, t := range tbl {
		if t.HasDate() && t.Date.After(max) {
			max = t.Date
		}
	}
	return max
}

// Month is a calendar-month bucket key.
type Month struct {
	Year int
	Mon  time.Month
}

// MonthOf returns the bucket key for a date.
func MonthOf(d time.Time) Month {
	return Month{Year: d.Year(), Mon: d.Month()}
}

// Time returns the first instant of the month, for ordering and display.
func (m Month) Time() time.Time {
	return time.Date(m.Year, m.Mon, 1, 0, 0, 0, 0, time.UTC)
}
