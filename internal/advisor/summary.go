// Package advisor produces a numeric summary of a transaction table and
// turns it into markdown advice, either via a remote model or a
// deterministic local fallback. The core pipeline never depends on this
// package; it only consumes the canonical table shape.
package advisor

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/finsift-dev/finsift/internal/model"
)

// CategoryNet is a description bucket with its net amount.
type CategoryNet struct {
	Label string
	Net   decimal.Decimal
}

// MonthNet is one point of the monthly trend series.
type MonthNet struct {
	Month model.Month
	Net   decimal.Decimal
}

// Summary is the numeric view of a table handed to advice generation.
type Summary struct {
	Transactions int
	Total        decimal.Decimal
	Income       decimal.Decimal // sum of positive amounts
	Expense      decimal.Decimal // sum of negative amounts (negative)
	ByCategory   []CategoryNet   // net per description, descending
	Top          []model.Transaction
	Monthly      []MonthNet // chronological
}

const topTransactions = 10

// Summarize computes the advisory summary for a table.
func Summarize(table model.Table) Summary {
	s := Summary{Transactions: len(table)}

	byCat := make(map[string]decimal.Decimal)
	byMonth := make(map[model.Month]decimal.Decimal)
	for _, txn := range table {
		s.Total = s.Total.Add(txn.Amount)
		if txn.Amount.IsPositive() {
			s.Income = s.Income.Add(txn.Amount)
		}
		if txn.Amount.IsNegative() {
			s.Expense = s.Expense.Add(txn.Amount)
		}
		byCat[txn.Description] = byCat[txn.Description].Add(txn.Amount)
		if txn.HasDate() {
			m := model.MonthOf(txn.Date)
			byMonth[m] = byMonth[m].Add(txn.Amount)
		}
	}

	for label, net := range byCat {
		s.ByCategory = append(s.ByCategory, CategoryNet{Label: label, Net: net})
	}
	sort.SliceStable(s.ByCategory, func(a, b int) bool {
		if !s.ByCategory[a].Net.Equal(s.ByCategory[b].Net) {
			return s.ByCategory[a].Net.GreaterThan(s.ByCategory[b].Net)
		}
		return s.ByCategory[a].Label < s.ByCategory[b].Label
	})

	top := make([]model.Transaction, len(table))
	copy(top, table)
	sort.SliceStable(top, func(a, b int) bool {
		return top[a].Amount.Abs().GreaterThan(top[b].Amount.Abs())
	})
	if len(top) > topTransactions {
		top = top[:topTransactions]
	}
	s.Top = top

	for m, net := range byMonth {
		s.Monthly = append(s.Monthly, MonthNet{Month: m, Net: net})
	}
	sort.Slice(s.Monthly, func(a, b int) bool {
		return s.Monthly[a].Month.Time().Before(s.Monthly[b].Month.Time())
	})

	return s
}
