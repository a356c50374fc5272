package statement

import (
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func newTestNormalizer() *Normalizer {
	return New(zerolog.Nop())
}

func TestNormalize_MessyUPIStatement(t *testing.T) {
	data, err := os.ReadFile("../../testdata/messy_upi.csv")
	require.NoError(t, err)

	table, err := newTestNormalizer().Normalize(data, "messy_upi.csv")
	require.NoError(t, err)
	require.Len(t, table, 5)

	// Header sat on row 3 below title noise; footer and the unparseable
	// amount row were dropped.
	assert.Equal(t, "SWIGGY ORDER 8812", table[0].Description)
	assert.Equal(t, "-1234.5", table[0].Amount.String())
	assert.Equal(t, time.Date(2025, time.November, 16, 0, 0, 0, 0, time.UTC), table[0].Date)

	assert.Equal(t, "SALARY OCT", table[1].Description)
	assert.Equal(t, "50000", table[1].Amount.String())

	assert.Equal(t, "-450", table[2].Amount.String())

	// " cr"/" dr" suffixes in the raw amount text set the sign when the
	// type column is silent.
	assert.Equal(t, "250", table[3].Amount.String())
	assert.Equal(t, "-2000", table[4].Amount.String())
}

func TestNormalize_Idempotent(t *testing.T) {
	data, err := os.ReadFile("../../testdata/messy_upi.csv")
	require.NoError(t, err)

	n := newTestNormalizer()
	first, err := n.Normalize(data, "messy_upi.csv")
	require.NoError(t, err)
	second, err := n.Normalize(data, "messy_upi.csv")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestNormalize_SignInvariant(t *testing.T) {
	data, err := os.ReadFile("../../testdata/messy_upi.csv")
	require.NoError(t, err)

	table, err := newTestNormalizer().Normalize(data, "messy_upi.csv")
	require.NoError(t, err)

	for _, txn := range table {
		switch {
		case containsFold(txn.Type, "debit"), containsFold(txn.Type, "dr"):
			assert.True(t, txn.Amount.IsNegative(), "debit row %q must be negative", txn.Description)
		case containsFold(txn.Type, "credit"), containsFold(txn.Type, "cr"):
			assert.True(t, txn.Amount.IsPositive(), "credit row %q must be positive", txn.Description)
		}
	}
}

func TestNormalize_TypeBeatsRawSuffix(t *testing.T) {
	csv := "Date,Transaction Details,Type,Amount\n" +
		"16-11-2025,ODD ONE,Credit,100 dr\n"
	table, err := newTestNormalizer().Normalize([]byte(csv), "s.csv")
	require.NoError(t, err)
	require.Len(t, table, 1)
	assert.Equal(t, "100", table[0].Amount.String())
}

func TestNormalize_NativeFirstRowHeader(t *testing.T) {
	// Only one header keyword hits, so the keyword scan fails; the first
	// row is still accepted because its names carry statement vocabulary.
	csv := "Date,Payee,Value\n" +
		"16-11-2025,AMAZON,-1234.50\n"
	table, err := newTestNormalizer().Normalize([]byte(csv), "s.csv")
	require.NoError(t, err)
	require.Len(t, table, 1)
	assert.Equal(t, "AMAZON", table[0].Description)
	assert.Equal(t, "-1234.5", table[0].Amount.String())
}

func TestNormalize_MarkerRowStrategy(t *testing.T) {
	grid := RawGrid{
		{"statement dump"},
		{"posted", "transaction details breakdown"},
		{"16-11-2025", "AMAZON", "100"},
	}
	res, ok := markerRowHeader(grid)
	require.True(t, ok)
	assert.Equal(t, []string{"posted", "transaction details breakdown"}, res.header)
	require.Len(t, res.rows, 1)
}

func TestNormalize_NoHeader(t *testing.T) {
	csv := "just,some,cells\nmore,random,cells\n"
	_, err := newTestNormalizer().Normalize([]byte(csv), "s.csv")
	assert.ErrorIs(t, err, ErrNoHeader)
}

func TestNormalize_NoTransactionRows(t *testing.T) {
	csv := "Date,Transaction Details,Type,Amount\n" +
		"pending,none,,\n" +
		",,,\n"
	_, err := newTestNormalizer().Normalize([]byte(csv), "s.csv")
	assert.ErrorIs(t, err, ErrNoTransactionRows)
}

func TestNormalize_EmptyResult(t *testing.T) {
	// Rows pass the mask through their date cells but no amount parses.
	csv := "Date,Transaction Details,Type,Amount\n" +
		"16-11-2025,AMAZON,,xx\n" +
		"17-11-2025,SWIGGY,,--\n"
	_, err := newTestNormalizer().Normalize([]byte(csv), "s.csv")
	assert.ErrorIs(t, err, ErrEmptyResult)
}

func TestNormalize_CP1252Fallback(t *testing.T) {
	raw := []byte("Date,Transaction Details,Type,Amount\n16-11-2025,CAF")
	raw = append(raw, 0xC9) // É in cp1252, invalid as a lone utf-8 byte
	raw = append(raw, []byte(" PARIS,Debit,450\n")...)

	table, err := newTestNormalizer().Normalize(raw, "s.csv")
	require.NoError(t, err)
	require.Len(t, table, 1)
	assert.Equal(t, "CAFÉ PARIS", table[0].Description)
	assert.Equal(t, "-450", table[0].Amount.String())
}

func TestNormalize_UnreadableFile(t *testing.T) {
	// An empty file decodes under every encoding but yields no rows, so
	// every strategy fails and the attempts are reported together.
	_, err := newTestNormalizer().Normalize(nil, "s.csv")
	var unreadable *UnreadableFileError
	require.True(t, errors.As(err, &unreadable))
	assert.Contains(t, unreadable.Encodings, "cp1252")
}

func TestNormalize_CorruptWorkbook(t *testing.T) {
	_, err := newTestNormalizer().Normalize([]byte("not a zip archive"), "s.xlsx")
	var unreadable *UnreadableFileError
	assert.True(t, errors.As(err, &unreadable))
}

func TestNormalize_Workbook(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"MyBank Statement"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]interface{}{"Date", "Transaction Details", "Type", "Amount"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A4", &[]interface{}{"Nov 16, 2025", "AMAZON", "Debit", "₹1,234.50"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A5", &[]interface{}{"Nov 17, 2025", "SALARY", "Credit", "₹50,000"}))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	table, err := newTestNormalizer().Normalize(buf.Bytes(), "statement.xlsx")
	require.NoError(t, err)
	require.Len(t, table, 2)
	assert.Equal(t, "-1234.5", table[0].Amount.String())
	assert.Equal(t, "50000", table[1].Amount.String())
}

func TestNormalize_WholeRowDescriptionJoin(t *testing.T) {
	// No description column anywhere: the row's non-empty cells join up.
	csv := "Date,Amount\n16-11-2025,450\n"
	table, err := newTestNormalizer().Normalize([]byte(csv), "s.csv")
	require.NoError(t, err)
	require.Len(t, table, 1)
	assert.Equal(t, "16-11-2025 450", table[0].Description)
}

func containsFold(s, substr string) bool {
	return len(s) > 0 && len(substr) > 0 &&
		strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
