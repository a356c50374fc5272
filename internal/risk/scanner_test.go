package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finsift-dev/finsift/internal/model"
)

func reasonCodes(f Flag) []string {
	codes := make([]string, len(f.Reasons))
	for i, r := range f.Reasons {
		codes[i] = r.Code
	}
	return codes
}

func TestScan_EmptyTable(t *testing.T) {
	assert.Empty(t, Scan(nil, DefaultParams()))
}

func TestScan_Unaffordable(t *testing.T) {
	// November nets to zero, so income comes from the credit-only
	// fallback: 1000. At threshold 0.5 the limit is 500.
	table := model.Table{
		txnOn("2025-11-01", "SALARY", "1000"),
		txnOn("2025-11-05", "NEW TV", "-600"),
		txnOn("2025-11-10", "GROCERIES", "-400"),
	}

	flags := Scan(table, DefaultParams())
	require.Len(t, flags, 1)
	assert.Equal(t, 1, flags[0].Index)
	assert.Equal(t, []string{CodeUnaffordable}, reasonCodes(flags[0]))
	assert.Equal(t, 100, flags[0].Severity)
	assert.Contains(t, flags[0].Reasons[0].Message, "estimated monthly income")
}

func TestScan_AnomalousAmount(t *testing.T) {
	table := model.Table{
		txnOn("2025-11-01", "COFFEE", "-10"),
		txnOn("2025-11-02", "LUNCH", "-12"),
		txnOn("2025-11-03", "SNACKS", "-9"),
		txnOn("2025-11-04", "PARKING", "-11"),
		txnOn("2025-11-05", "JEWELLERY", "-500"),
	}

	// Population std over 5 values caps |z| at 2.0, so the threshold is
	// lowered to catch the -500 row (z is about -2.0) and nothing else.
	params := DefaultParams()
	params.OutlierZ = 1.5

	flags := Scan(table, params)
	require.Len(t, flags, 1)
	assert.Equal(t, 4, flags[0].Index)
	assert.Equal(t, []string{CodeAnomalousAmount}, reasonCodes(flags[0]))
	assert.Equal(t, 50, flags[0].Severity)
}

func TestScan_NewPayeeOutsideRecentWindow(t *testing.T) {
	// OLDSHOP last appears in January; with the latest date in August and
	// a six-month lookback, it falls outside the known-payee set.
	table := model.Table{
		txnOn("2025-01-10", "OLDSHOP", "-50"),
		txnOn("2025-08-01", "SALARY AUG", "1000"),
		txnOn("2025-08-05", "GROCERIES", "-100"),
	}

	flags := Scan(table, DefaultParams())
	require.Len(t, flags, 1)
	assert.Equal(t, 0, flags[0].Index)
	assert.Equal(t, []string{CodeNewPayee}, reasonCodes(flags[0]))
	assert.Equal(t, 20, flags[0].Severity)
}

func TestScan_BurstFlagsWholePayeeGroup(t *testing.T) {
	// Four QUICKPAY rows land inside a 7-day window; the fifth is weeks
	// later but still gets flagged because the whole group is marked.
	table := model.Table{
		txnOn("2025-11-01", "QUICKPAY", "5"),
		txnOn("2025-11-02", "QUICKPAY", "5"),
		txnOn("2025-11-03", "QUICKPAY", "5"),
		txnOn("2025-11-05", "QUICKPAY", "5"),
		txnOn("2025-11-20", "QUICKPAY", "5"),
	}

	flags := Scan(table, DefaultParams())
	require.Len(t, flags, 5)
	for i, f := range flags {
		assert.Equal(t, i, f.Index, "ties keep row order")
		assert.Equal(t, []string{CodeFreqSmallTrans}, reasonCodes(f))
		assert.Equal(t, 10, f.Severity)
		assert.Contains(t, f.Reasons[0].Message, "(5)")
	}
}

func TestScan_NoBurstWhenWindowTooWide(t *testing.T) {
	table := model.Table{
		txnOn("2025-08-01", "QUICKPAY", "5"),
		txnOn("2025-09-01", "QUICKPAY", "5"),
		txnOn("2025-10-01", "QUICKPAY", "5"),
		txnOn("2025-11-01", "QUICKPAY", "5"),
	}
	assert.Empty(t, Scan(table, DefaultParams()))
}

func TestScan_SeverityOrdering(t *testing.T) {
	// MEGASTORE trips unaffordable plus anomalous (150), SALARY AUG only
	// anomalous (50), OLDSHOP only new-payee (20).
	table := model.Table{
		txnOn("2025-01-10", "OLDSHOP", "-50"),
		txnOn("2025-08-01", "SALARY AUG", "1000"),
		txnOn("2025-08-05", "MEGASTORE", "-800"),
	}

	params := DefaultParams()
	params.OutlierZ = 1.0

	flags := Scan(table, params)
	require.Len(t, flags, 3)

	assert.Equal(t, 2, flags[0].Index)
	assert.Equal(t, 150, flags[0].Severity)
	assert.ElementsMatch(t, []string{CodeUnaffordable, CodeAnomalousAmount}, reasonCodes(flags[0]))

	assert.Equal(t, 1, flags[1].Index)
	assert.Equal(t, 50, flags[1].Severity)

	assert.Equal(t, 0, flags[2].Index)
	assert.Equal(t, 20, flags[2].Severity)
}
