// Package risk estimates baseline income and applies suspicion heuristics
// over a normalized transaction table. Stateless: every scan recomputes
// from the table it is handed.
package risk

import (
	"github.com/shopspring/decimal"

	"github.com/finsift-dev/finsift/internal/model"
)

// EstimateMonthlyIncome computes a robust recurring-income estimate. Rows
// missing a date or (vacuously) an amount are excluded from this
// computation only. Months are bucketed by calendar month and summed; the
// estimate is the mean of net-positive month sums. When no month nets
// positive, it falls back to the mean of credit-only month sums. Zero
// means "undetermined".
//
// A plain all-months average would be dragged down by debt-heavy months;
// restricting to net-positive months approximates typical inflow.
func EstimateMonthlyIncome(table model.Table) decimal.Decimal {
	net := make(map[model.Month]decimal.Decimal)
	credits := make(map[model.Month]decimal.Decimal)
	hasCredit := make(map[model.Month]bool)

	for _, txn := range table {
		if !txn.HasDate() {
			continue
		}
		m := model.MonthOf(txn.Date)
		net[m] = net[m].Add(txn.Amount)
		if txn.Amount.IsPositive() {
			credits[m] = credits[m].Add(txn.Amount)
			hasCredit[m] = true
		}
	}

	var positive []decimal.Decimal
	for _, sum := range net {
		if sum.IsPositive() {
			positive = append(positive, sum)
		}
	}
	if len(positive) > 0 {
		return mean(positive)
	}

	var creditSums []decimal.Decimal
	for m := range hasCredit {
		creditSums = append(creditSums, credits[m])
	}
	if len(creditSums) > 0 {
		return mean(creditSums)
	}

	return decimal.Zero
}

func mean(vals []decimal.Decimal) decimal.Decimal {
	sum := decimal.Zero
	for _, v := range vals {
		sum = sum.Add(v)
	}
	return sum.Div(decimal.NewFromInt(int64(len(vals))))
}
