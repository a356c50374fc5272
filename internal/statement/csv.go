package statement

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/finsift-dev/finsift/internal/model"
)

// Header is the CSV header for a normalized transaction table.
const Header = "date,description,type,amount"

const (
	numFields  = 4
	dateFormat = "2006-01-02"
	colDate    = 0
	colDesc    = 1
	colType    = 2
	colAmount  = 3
)

// WriteTable writes a normalized table as CSV (including header).
func WriteTable(w io.Writer, table model.Table) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, txn := range table {
		if err := cw.Write(MarshalTransaction(txn)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// ReadTable reads a normalized table previously written by WriteTable.
func ReadTable(r io.Reader) (model.Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading table CSV: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	var table model.Table
	for i, rec := range records[1:] {
		txn, err := UnmarshalTransaction(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		table = append(table, txn)
	}
	return table, nil
}

// MarshalTransaction converts a Transaction to a CSV row.
func MarshalTransaction(txn model.Transaction) []string {
	row := make([]string, numFields)
	if txn.HasDate() {
		row[colDate] = txn.Date.Format(dateFormat)
	}
	row[colDesc] = txn.Description
	row[colType] = txn.Type
	row[colAmount] = txn.Amount.String()
	return row
}

// UnmarshalTransaction converts a CSV row to a Transaction.
func UnmarshalTransaction(rec []string) (model.Transaction, error) {
	if len(rec) != numFields {
		return model.Transaction{}, fmt.Errorf("expected %d fields, got %d", numFields, len(rec))
	}

	var txn model.Transaction
	if rec[colDate] != "" {
		d, err := time.Parse(dateFormat, rec[colDate])
		if err != nil {
			return model.Transaction{}, fmt.Errorf("parsing date %q: %w", rec[colDate], err)
		}
		txn.Date = d
	}

	amt, ok := ParseAmount(rec[colAmount])
	if !ok {
		return model.Transaction{}, fmt.Errorf("parsing amount %q", rec[colAmount])
	}

	txn.Description = rec[colDesc]
	txn.Type = rec[colType]
	txn.Amount = amt
	return txn, nil
}
