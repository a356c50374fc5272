package statement

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
)

// RawGrid is an untyped rows-by-columns view of a statement file with no
// assumed header. Cells hold trimmed text; "" means missing. Rows may be
// ragged. The grid only exists during normalization.
type RawGrid [][]string

// workbookExts are the extensions routed to the spreadsheet reader.
var workbookExts = map[string]bool{
	".xls":  true,
	".xlsx": true,
}

// IsWorkbook reports whether the filename extension selects the
// spreadsheet reader instead of the delimited-text reader.
func IsWorkbook(filename string) bool {
	return workbookExts[strings.ToLower(filepath.Ext(filename))]
}

// encodingStrategy is one attempt at decoding delimited-text bytes.
type encodingStrategy struct {
	name   string
	decode func([]byte) ([]byte, error)
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// encodingStrategies is the fixed ordered list tried for delimited input.
var encodingStrategies = []encodingStrategy{
	{"utf-8", func(b []byte) ([]byte, error) {
		if !utf8.Valid(b) {
			return nil, fmt.Errorf("invalid utf-8")
		}
		return b, nil
	}},
	{"utf-8-sig", func(b []byte) ([]byte, error) {
		if !bytes.HasPrefix(b, utf8BOM) {
			return nil, fmt.Errorf("no utf-8 BOM")
		}
		b = bytes.TrimPrefix(b, utf8BOM)
		if !utf8.Valid(b) {
			return nil, fmt.Errorf("invalid utf-8 after BOM")
		}
		return b, nil
	}},
	{"cp1252", func(b []byte) ([]byte, error) {
		return charmap.Windows1252.NewDecoder().Bytes(b)
	}},
	{"latin1", func(b []byte) ([]byte, error) {
		return charmap.ISO8859_1.NewDecoder().Bytes(b)
	}},
}

// readDelimited parses CSV bytes into a RawGrid, trying each encoding
// strategy in order. Returns the grid and the name of the encoding that
// worked.
func readDelimited(data []byte) (RawGrid, string, error) {
	var names []string
	var lastErr error
	for _, enc := range encodingStrategies {
		names = append(names, enc.name)
		decoded, err := enc.decode(data)
		if err != nil {
			lastErr = err
			continue
		}
		grid, err := parseCSV(decoded)
		if err != nil {
			lastErr = err
			continue
		}
		return grid, enc.name, nil
	}
	return nil, "", &UnreadableFileError{Encodings: names, Err: lastErr}
}

func parseCSV(data []byte) (RawGrid, error) {
	// BOM may survive when the bytes were valid utf-8 and the utf-8
	// strategy won before utf-8-sig got a look.
	data = bytes.TrimPrefix(data, utf8BOM)

	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing delimited text: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("parsing delimited text: no rows")
	}
	return normalizeGrid(records), nil
}

// readWorkbook parses XLSX/XLS bytes into a RawGrid from the first sheet.
func readWorkbook(data []byte) (RawGrid, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, &UnreadableFileError{Err: fmt.Errorf("opening workbook: %w", err)}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &UnreadableFileError{Err: fmt.Errorf("workbook has no sheets")}
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, &UnreadableFileError{Err: fmt.Errorf("reading sheet %q: %w", sheets[0], err)}
	}
	return normalizeGrid(rows), nil
}

// normalizeGrid trims cells and collapses whitespace-only cells to "".
func normalizeGrid(records [][]string) RawGrid {
	grid := make(RawGrid, len(records))
	for i, row := range records {
		cells := make([]string, len(row))
		for j, cell := range row {
			cells[j] = strings.TrimSpace(cell)
		}
		grid[i] = cells
	}
	return grid
}

// cellAt returns row[col], or "" when the ragged row is too short.
func cellAt(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}
