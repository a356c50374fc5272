package statement

import (
	"strings"
)

// headerKeywords are the substrings counted when scanning for a header row.
var headerKeywords = []string{
	"date", "transaction", "transaction details", "details",
	"type", "amount", "amt", "description", "narration",
}

// sniffSampleSize is how many non-empty values per column content sniffing
// inspects before giving up on that column.
const sniffSampleSize = 20

// FindHeaderRow scans the grid for the first row whose joined, lowercased
// cell text contains at least two distinct header keywords. Returns false
// when no row qualifies; the normalizer then falls back to its alternate
// strategies.
func FindHeaderRow(grid RawGrid) (int, bool) {
	for i, row := range grid {
		var parts []string
		for _, cell := range row {
			if cell != "" {
				parts = append(parts, strings.ToLower(cell))
			}
		}
		joined := strings.Join(parts, " ")

		hits := 0
		for _, kw := range headerKeywords {
			if strings.Contains(joined, kw) {
				hits++
			}
		}
		if hits >= 2 {
			return i, true
		}
	}
	return 0, false
}

// Columns maps each resolved role to a column index. -1 means unmapped;
// Description and Type may stay unmapped, Date and Amount may not.
type Columns struct {
	Date        int
	Description int
	Type        int
	Amount      int
}

// ResolveColumns infers which column plays each semantic role given the
// header names and the data rows below the header (used for content
// sniffing when names alone are not enough).
func ResolveColumns(header []string, rows RawGrid) (Columns, error) {
	cols := Columns{Date: -1, Description: -1, Type: -1, Amount: -1}

	low := make([]string, len(header))
	for i, h := range header {
		low[i] = strings.ToLower(strings.TrimSpace(h))
	}

	// Fast path: a date, a transaction/transaction-details and an amount
	// column all present by exact name.
	date := indexOfName(low, "date")
	desc := indexOfName(low, "transaction")
	if desc < 0 {
		desc = indexOfName(low, "transaction details")
	}
	amt := indexOfName(low, "amount")
	if date >= 0 && desc >= 0 && amt >= 0 {
		cols.Date = date
		cols.Description = desc
		cols.Amount = amt
		cols.Type = firstOfNames(low, "type", "txn type", "transaction type")
		return cols, nil
	}

	// Independent first-match keyword search per role.
	cols.Date = firstContaining(low, "date")
	cols.Description = firstContaining(low, "transaction", "details", "description", "narration")
	cols.Type = firstContaining(low, "type", "txn type", "transaction type")
	cols.Amount = firstContaining(low, "amount", "amt", "value")

	// Amount fallback: first column whose sampled values look money-like.
	if cols.Amount < 0 {
		cols.Amount = sniffColumn(rows, len(header), func(v string) bool {
			return HasCurrencyGlyph(v) || HasDigit(v)
		})
	}

	// Description fallback: first leftover column with any value at all.
	if cols.Description < 0 {
		for c := 0; c < len(header); c++ {
			if c == cols.Date || c == cols.Amount || c == cols.Type {
				continue
			}
			if columnHasValue(rows, c) {
				cols.Description = c
				break
			}
		}
	}

	if cols.Amount < 0 {
		return cols, &MissingColumnError{Role: RoleAmount}
	}

	// Date fallback: sniff for date-like content.
	if cols.Date < 0 {
		cols.Date = sniffColumn(rows, len(header), LooksLikeDate)
	}
	if cols.Date < 0 {
		return cols, &MissingColumnError{Role: RoleDate}
	}

	return cols, nil
}

func indexOfName(low []string, name string) int {
	for i, h := range low {
		if h == name {
			return i
		}
	}
	return -1
}

func firstOfNames(low []string, names ...string) int {
	for _, n := range names {
		if i := indexOfName(low, n); i >= 0 {
			return i
		}
	}
	return -1
}

// firstContaining returns the first column whose lowered name contains any
// keyword, scanning columns in order and keywords in priority order per
// column, matching the original resolution behavior.
func firstContaining(low []string, keywords ...string) int {
	for i, h := range low {
		for _, kw := range keywords {
			if strings.Contains(h, kw) {
				return i
			}
		}
	}
	return -1
}

// sniffColumn scans columns left to right and returns the first whose
// leading non-empty sampled values satisfy match.
func sniffColumn(rows RawGrid, width int, match func(string) bool) int {
	for c := 0; c < width; c++ {
		sampled := 0
		for _, row := range rows {
			if c >= len(row) || row[c] == "" {
				continue
			}
			if match(row[c]) {
				return c
			}
			sampled++
			if sampled >= sniffSampleSize {
				break
			}
		}
	}
	return -1
}

func columnHasValue(rows RawGrid, c int) bool {
	for _, row := range rows {
		if c < len(row) && row[c] != "" {
			return true
		}
	}
	return false
}
