package risk

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/finsift-dev/finsift/internal/model"
)

func txnOn(date string, desc, amount string) model.Transaction {
	var d time.Time
	if date != "" {
		parsed, err := time.Parse("2006-01-02", date)
		if err != nil {
			panic(err)
		}
		d = parsed
	}
	return model.Transaction{
		Date:        d,
		Description: desc,
		Amount:      decimal.RequireFromString(amount),
	}
}

func TestEstimateMonthlyIncome_NetPositiveMonths(t *testing.T) {
	table := model.Table{
		txnOn("2025-01-05", "SALARY", "5000"),
		txnOn("2025-02-10", "RENT", "-200"),
		txnOn("2025-03-05", "SALARY", "7000"),
	}
	// February nets negative and is excluded from the mean.
	got := EstimateMonthlyIncome(table)
	assert.Equal(t, "6000", got.String())
}

func TestEstimateMonthlyIncome_CreditOnlyFallback(t *testing.T) {
	table := model.Table{
		txnOn("2025-01-05", "TRANSFER IN", "1000"),
		txnOn("2025-01-20", "EMI", "-3000"),
		txnOn("2025-02-05", "TRANSFER IN", "500"),
		txnOn("2025-02-20", "EMI", "-600"),
	}
	// Every month nets negative, so the estimate falls back to the mean
	// of per-month credit totals.
	got := EstimateMonthlyIncome(table)
	assert.Equal(t, "750", got.String())
}

func TestEstimateMonthlyIncome_Undetermined(t *testing.T) {
	assert.True(t, EstimateMonthlyIncome(nil).IsZero())

	allDebits := model.Table{
		txnOn("2025-01-05", "EMI", "-3000"),
	}
	assert.True(t, EstimateMonthlyIncome(allDebits).IsZero())
}

func TestEstimateMonthlyIncome_UndatedRowsExcluded(t *testing.T) {
	table := model.Table{
		txnOn("2025-01-05", "SALARY", "5000"),
		txnOn("", "MYSTERY CREDIT", "90000"),
	}
	got := EstimateMonthlyIncome(table)
	assert.Equal(t, "5000", got.String())
}
