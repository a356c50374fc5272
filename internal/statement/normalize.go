// Package statement turns messy bank/UPI statement exports into the
// canonical transaction table. The input is a raw, headerless grid; header
// location and column-role inference are confined here so downstream
// consumers only ever see typed transactions.
package statement

import (
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/finsift-dev/finsift/internal/model"
)

// Normalizer reads raw statement bytes and produces a model.Table.
type Normalizer struct {
	log zerolog.Logger
}

// New creates a Normalizer. The logger only records which read and header
// strategies succeeded; it carries no load-bearing logic.
func New(log zerolog.Logger) *Normalizer {
	return &Normalizer{log: log}
}

// headerResult is the outcome of one header-detection strategy: the header
// names plus the data rows beneath them.
type headerResult struct {
	header []string
	rows   RawGrid
}

// Normalize turns raw file bytes into the canonical transaction table.
// filename is used only for extension sniffing. Failures are the typed
// pipeline errors in errors.go; individual bad cells never fail the run.
func (n *Normalizer) Normalize(data []byte, filename string) (model.Table, error) {
	grid, err := n.readGrid(data, filename)
	if err != nil {
		return nil, err
	}

	res, err := n.locateHeader(grid)
	if err != nil {
		return nil, err
	}

	cols, err := ResolveColumns(res.header, res.rows)
	if err != nil {
		return nil, err
	}

	// Row mask: keep rows whose date cell looks date-like or whose amount
	// cell has at least one digit. Everything else is title/footer noise.
	var retained [][]string
	for _, row := range res.rows {
		dateRaw := cellAt(row, cols.Date)
		amtRaw := cellAt(row, cols.Amount)
		if (dateRaw != "" && LooksLikeDate(dateRaw)) || (amtRaw != "" && HasDigit(amtRaw)) {
			retained = append(retained, row)
		}
	}
	if len(retained) == 0 {
		return nil, ErrNoTransactionRows
	}

	var table model.Table
	for _, row := range retained {
		txn, ok := extractRow(row, cols)
		if !ok {
			// Amount unparseable: the row is dropped, not an error.
			continue
		}
		table = append(table, txn)
	}
	if len(table) == 0 {
		return nil, ErrEmptyResult
	}

	n.log.Debug().
		Int("rows_in", len(res.rows)).
		Int("rows_retained", len(retained)).
		Int("rows_out", len(table)).
		Msg("statement normalized")
	return table, nil
}

func (n *Normalizer) readGrid(data []byte, filename string) (RawGrid, error) {
	if IsWorkbook(filename) {
		grid, err := readWorkbook(data)
		if err != nil {
			return nil, err
		}
		n.log.Debug().Str("reader", "workbook").Msg("grid read")
		return grid, nil
	}

	grid, encoding, err := readDelimited(data)
	if err != nil {
		return nil, err
	}
	n.log.Debug().Str("reader", "delimited").Str("encoding", encoding).Msg("grid read")
	return grid, nil
}

// locateHeader runs the ordered header-detection strategies: keyword row
// scan, then accepting the grid's own first row when its names carry
// statement vocabulary, then the literal "transaction details" marker row.
// Only exhaustion of the list is an error.
func (n *Normalizer) locateHeader(grid RawGrid) (headerResult, error) {
	if idx, ok := FindHeaderRow(grid); ok {
		n.log.Debug().Str("strategy", "keyword-scan").Int("row", idx).Msg("header located")
		return headerResult{header: grid[idx], rows: grid[idx+1:]}, nil
	}

	if res, ok := nativeFirstRowHeader(grid); ok {
		n.log.Debug().Str("strategy", "native-first-row").Msg("header located")
		return res, nil
	}

	if res, ok := markerRowHeader(grid); ok {
		n.log.Debug().Str("strategy", "marker-row").Msg("header located")
		return res, nil
	}

	return headerResult{}, ErrNoHeader
}

// nativeFirstRowHeader accepts the first row as the header when its column
// names contain any of amount/transaction/date as substrings, mirroring
// what a header-inferring tabular reader would have produced.
func nativeFirstRowHeader(grid RawGrid) (headerResult, bool) {
	if len(grid) == 0 {
		return headerResult{}, false
	}
	for _, name := range grid[0] {
		low := strings.ToLower(name)
		if strings.Contains(low, "amount") || strings.Contains(low, "transaction") || strings.Contains(low, "date") {
			return headerResult{header: grid[0], rows: grid[1:]}, true
		}
	}
	return headerResult{}, false
}

// markerRowHeader scans for a row containing the literal "transaction
// details" and treats it as the header, slicing the grid below it.
func markerRowHeader(grid RawGrid) (headerResult, bool) {
	for i, row := range grid {
		for _, cell := range row {
			if strings.Contains(strings.ToLower(cell), "transaction details") {
				return headerResult{header: row, rows: grid[i+1:]}, true
			}
		}
	}
	return headerResult{}, false
}

// extractRow builds one Transaction from a retained raw row. ok is false
// when the amount ends up unparseable.
func extractRow(row []string, cols Columns) (model.Transaction, bool) {
	amtRaw := cellAt(row, cols.Amount)
	amt, ok := ParseAmount(amtRaw)
	if !ok {
		return model.Transaction{}, false
	}

	var txn model.Transaction
	txn.Type = strings.TrimSpace(cellAt(row, cols.Type))
	txn.Amount = normalizeSign(amt, txn.Type, amtRaw)

	if d, ok := ParseDate(cellAt(row, cols.Date)); ok {
		txn.Date = d
	}

	if cols.Description >= 0 {
		txn.Description = strings.TrimSpace(cellAt(row, cols.Description))
	} else {
		// No description column anywhere: join every non-empty cell so the
		// row keeps some identity.
		var parts []string
		for _, cell := range row {
			if cell != "" {
				parts = append(parts, cell)
			}
		}
		txn.Description = strings.Join(parts, " ")
	}

	return txn, true
}

// normalizeSign applies the sign cascade: explicit type text beats
// cr/dr suffixes in the raw amount text, which beat the parsed sign.
func normalizeSign(amt decimal.Decimal, typ, amtRaw string) decimal.Decimal {
	t := strings.ToLower(typ)
	switch {
	case strings.Contains(t, "debit") || strings.Contains(t, "dr"):
		return amt.Abs().Neg()
	case strings.Contains(t, "credit") || strings.Contains(t, "cr"):
		return amt.Abs()
	}

	raw := strings.ToLower(amtRaw)
	switch {
	case strings.HasSuffix(raw, "cr") || strings.Contains(raw, " cr"):
		return amt.Abs()
	case strings.HasSuffix(raw, "dr") || strings.Contains(raw, " dr"):
		return amt.Abs().Neg()
	}
	return amt
}
