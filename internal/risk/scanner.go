package risk

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finsift-dev/finsift/internal/model"
)

// Reason codes, in severity-weight order.
const (
	CodeUnaffordable    = "unaffordable"
	CodeAnomalousAmount = "anomalous_amount"
	CodeNewPayee        = "new_payee"
	CodeFreqSmallTrans  = "freq_small_trans"
)

// Severity weights per triggered heuristic. Each heuristic contributes at
// most once per row.
const (
	weightUnaffordable = 100
	weightAnomalous    = 50
	weightNewPayee     = 20
	weightFreq         = 10
)

// Tunable defaults documented at the scanner boundary.
const (
	DefaultUnaffordableThreshold = 0.5
	DefaultOutlierZ              = 3.0
	DefaultRecentPayeeMonths     = 6
)

// Params are the caller-supplied scan tunables.
type Params struct {
	UnaffordableThreshold float64 // fraction of monthly income, in (0, 1]
	OutlierZ              float64 // z-score threshold, positive
	RecentPayeeMonths     int     // lookback window for known payees
}

// DefaultParams returns the documented default tunables.
func DefaultParams() Params {
	return Params{
		UnaffordableThreshold: DefaultUnaffordableThreshold,
		OutlierZ:              DefaultOutlierZ,
		RecentPayeeMonths:     DefaultRecentPayeeMonths,
	}
}

// Reason is one triggered heuristic with its human-readable message.
type Reason struct {
	Code    string
	Message string
}

// Flag references one suspicious transaction by its table position, with
// every reason that fired and the combined severity used for ranking.
// Flags are produced fresh per scan and never persisted by this package.
type Flag struct {
	Index       int
	Transaction model.Transaction
	Reasons     []Reason
	Severity    int
}

// Scan evaluates the four suspicion heuristics independently for every row
// and returns flags sorted by descending severity; ties keep original row
// order. An empty table yields an empty result, not an error.
func Scan(table model.Table, params Params) []Flag {
	if len(table) == 0 {
		return nil
	}

	income := EstimateMonthlyIncome(table)
	incomeF, _ := income.Float64()

	mean, std := amountStats(table)
	recent := recentPayees(table, params.RecentPayeeMonths)
	burst, groupSize := burstPayees(table)

	var flags []Flag
	for i, txn := range table {
		amtF, _ := txn.Amount.Float64()
		payee := txn.Payee()

		var reasons []Reason

		// Unaffordable: a single debit eating too much of a month's income.
		if income.IsPositive() && txn.Amount.IsNegative() {
			limit := decimal.NewFromFloat(params.UnaffordableThreshold).Mul(income)
			if txn.Amount.Abs().GreaterThan(limit) {
				reasons = append(reasons, Reason{
					Code: CodeUnaffordable,
					Message: fmt.Sprintf("Single payment %.2f is > %.0f%% of estimated monthly income (%.2f).",
						math.Abs(amtF), params.UnaffordableThreshold*100, incomeF),
				})
			}
		}

		// Anomalous amount: z-score on the signed amount.
		if std > 0 {
			z := (amtF - mean) / std
			if math.Abs(z) >= params.OutlierZ {
				reasons = append(reasons, Reason{
					Code:    CodeAnomalousAmount,
					Message: fmt.Sprintf("Transaction amount %.2f is an outlier (z=%.1f).", amtF, z),
				})
			}
		}

		// New payee: unseen description, and a debit or a large credit.
		if payee != "" && !recent[payee] {
			largeCredit := decimal.Zero
			if income.IsPositive() {
				largeCredit = income.Mul(decimal.NewFromFloat(0.2))
			}
			if txn.Amount.IsNegative() || txn.Amount.Abs().GreaterThan(largeCredit) {
				reasons = append(reasons, Reason{
					Code:    CodeNewPayee,
					Message: "Payee appears new (not seen in recent months).",
				})
			}
		}

		// Burst frequency: the payee had 4+ transactions inside some 7-day
		// window. Fires on every row of the matched payee group.
		if payee != "" && burst[payee] {
			reasons = append(reasons, Reason{
				Code:    CodeFreqSmallTrans,
				Message: fmt.Sprintf("Multiple (%d) transactions to same payee in a short window.", groupSize[payee]),
			})
		}

		if len(reasons) == 0 {
			continue
		}
		flags = append(flags, Flag{
			Index:       i,
			Transaction: txn,
			Reasons:     reasons,
			Severity:    severity(reasons),
		})
	}

	sort.SliceStable(flags, func(a, b int) bool {
		return flags[a].Severity > flags[b].Severity
	})
	return flags
}

func severity(reasons []Reason) int {
	score := 0
	for _, r := range reasons {
		switch r.Code {
		case CodeUnaffordable:
			score += weightUnaffordable
		case CodeAnomalousAmount:
			score += weightAnomalous
		case CodeNewPayee:
			score += weightNewPayee
		case CodeFreqSmallTrans:
			score += weightFreq
		}
	}
	return score
}

// amountStats returns the mean and population standard deviation (ddof=0)
// of all amounts.
func amountStats(table model.Table) (mean, std float64) {
	n := float64(len(table))
	sum := 0.0
	for _, txn := range table {
		f, _ := txn.Amount.Float64()
		sum += f
	}
	mean = sum / n

	variance := 0.0
	for _, txn := range table {
		f, _ := txn.Amount.Float64()
		variance += (f - mean) * (f - mean)
	}
	variance /= n
	return mean, math.Sqrt(variance)
}

// recentPayees builds the set of payees seen within months of the table's
// latest date. When no row carries a date, the whole table defines the set.
func recentPayees(table model.Table, months int) map[string]bool {
	payees := make(map[string]bool)

	maxDate := table.MaxDate()
	var cutoff time.Time
	if !maxDate.IsZero() {
		cutoff = maxDate.AddDate(0, -months, 0)
	}

	for _, txn := range table {
		if !maxDate.IsZero() {
			if !txn.HasDate() || txn.Date.Before(cutoff) {
				continue
			}
		}
		if p := txn.Payee(); p != "" {
			payees[p] = true
		}
	}
	return payees
}

// burstPayees returns which payees have 4+ dated transactions where some
// sliding window of 4 consecutive dates spans at most 7 days, plus each
// qualifying payee's total row count. One matched window anywhere marks
// the whole group.
func burstPayees(table model.Table) (burst map[string]bool, groupSize map[string]int) {
	burst = make(map[string]bool)
	groupSize = make(map[string]int)

	dates := make(map[string][]time.Time)
	for _, txn := range table {
		p := txn.Payee()
		if p == "" {
			continue
		}
		groupSize[p]++
		if txn.HasDate() {
			dates[p] = append(dates[p], txn.Date)
		}
	}

	const window = 4
	for p, ds := range dates {
		if groupSize[p] < window || len(ds) < window {
			continue
		}
		sort.Slice(ds, func(a, b int) bool { return ds[a].Before(ds[b]) })
		for i := 0; i+window-1 < len(ds); i++ {
			if ds[i+window-1].Sub(ds[i]) <= 7*24*time.Hour {
				burst[p] = true
				break
			}
		}
	}
	return burst, groupSize
}
