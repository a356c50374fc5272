// Package auditlog appends freeze/alert decisions to an append-only CSV
// log. The scanner itself never writes here; only user decisions taken in
// the CLI do, so the log is an audit trail, not canonical state.
package auditlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Entry is one audit record: a decision about one flagged transaction.
type Entry struct {
	Timestamp   time.Time
	Index       int // position of the transaction in its table
	Date        string
	Description string
	Amount      string
	SMSSent     bool
	SMSInfo     string
}

// Header is the CSV header for freeze_requests.csv.
const Header = "timestamp,index,date,description,amount,sms_sent,sms_info"

const (
	numFields    = 7
	logDir       = "logs"
	logFile      = "logs/freeze_requests.csv"
	colTimestamp = 0
	colIndex     = 1
	colDate      = 2
	colDesc      = 3
	colAmount    = 4
	colSMSSent   = 5
	colSMSInfo   = 6
)

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colIndex] = strconv.Itoa(e.Index)
	row[colDate] = e.Date
	row[colDesc] = e.Description
	row[colAmount] = e.Amount
	row[colSMSSent] = strconv.FormatBool(e.SMSSent)
	row[colSMSInfo] = e.SMSInfo
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}
	idx, err := strconv.Atoi(record[colIndex])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing index %q: %w", record[colIndex], err)
	}
	sent, err := strconv.ParseBool(record[colSMSSent])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing sms_sent %q: %w", record[colSMSSent], err)
	}

	return Entry{
		Timestamp:   ts,
		Index:       idx,
		Date:        record[colDate],
		Description: record[colDesc],
		Amount:      record[colAmount],
		SMSSent:     sent,
		SMSInfo:     record[colSMSInfo],
	}, nil
}

// Append writes entries to <root>/logs/freeze_requests.csv, creating the
// file and header if needed.
func Append(root string, entries []Entry) error {
	dir := filepath.Join(root, logDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	path := filepath.Join(root, logFile)
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening audit log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}

	return cw.Error()
}

// Read returns all entries from <root>/logs/freeze_requests.csv, or an
// empty slice if the file does not exist.
func Read(root string) ([]Entry, error) {
	path := filepath.Join(root, logFile)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening audit log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading audit log CSV: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
