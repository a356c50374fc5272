package statement

import (
	"errors"
	"fmt"
	"strings"
)

// Pipeline-level failures. Cell-level parse failures never surface as
// errors; the row is dropped instead when the missing value lands on a
// mandatory field.
var (
	// ErrNoHeader means no header row could be located by any strategy.
	ErrNoHeader = errors.New("no header row found; check where the column names sit in the file")

	// ErrNoTransactionRows means the row mask eliminated every row before
	// parsing (no date-like or amount-like content anywhere).
	ErrNoTransactionRows = errors.New("file did not contain recognizable transaction rows (no dates or amounts found)")

	// ErrEmptyResult means every retained row lost its amount during
	// parsing and nothing survived.
	ErrEmptyResult = errors.New("no rows with a parseable amount survived normalization")
)

// Role is a semantic column role in a raw statement grid.
type Role string

const (
	RoleDate        Role = "date"
	RoleDescription Role = "description"
	RoleType        Role = "type"
	RoleAmount      Role = "amount"
)

// MissingColumnError reports that a mandatory role could not be resolved
// after keyword matching and content sniffing.
type MissingColumnError struct {
	Role Role
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("no %q column detected in the file after keyword and content matching", string(e.Role))
}

// UnreadableFileError reports that the raw bytes could not be parsed as a
// grid under any attempted strategy.
type UnreadableFileError struct {
	Encodings []string // encodings tried for delimited input, nil for workbooks
	Err       error    // last underlying error
}

func (e *UnreadableFileError) Error() string {
	if len(e.Encodings) > 0 {
		return fmt.Sprintf("unreadable file: tried encodings %s: %v", strings.Join(e.Encodings, ", "), e.Err)
	}
	return fmt.Sprintf("unreadable file: %v", e.Err)
}

func (e *UnreadableFileError) Unwrap() error { return e.Err }
