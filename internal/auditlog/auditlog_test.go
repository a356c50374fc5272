package auditlog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendRead_RoundTrip(t *testing.T) {
	root := t.TempDir()

	first := Entry{
		Timestamp:   time.Date(2025, time.November, 16, 10, 30, 0, 0, time.UTC),
		Index:       4,
		Date:        "2025-11-16",
		Description: "JEWELLERY STORE",
		Amount:      "-500",
		SMSSent:     true,
		SMSInfo:     "Sent message, SID=SM42",
	}
	require.NoError(t, Append(root, []Entry{first}))

	second := Entry{
		Timestamp:   time.Date(2025, time.November, 17, 9, 0, 0, 0, time.UTC),
		Index:       1,
		Description: "UNKNOWN PAYEE",
		Amount:      "-100",
		SMSInfo:     "sms send failed: missing Twilio credentials",
	}
	require.NoError(t, Append(root, []Entry{second}))

	got, err := Read(root)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, first, got[0])
	assert.Equal(t, second, got[1])
}

func TestAppend_WritesHeaderOnce(t *testing.T) {
	root := t.TempDir()
	e := Entry{Timestamp: time.Now().UTC().Truncate(time.Second), Index: 0, Amount: "-1"}

	require.NoError(t, Append(root, []Entry{e}))
	require.NoError(t, Append(root, []Entry{e}))

	raw, err := os.ReadFile(filepath.Join(root, "logs", "freeze_requests.csv"))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, Header, lines[0])
	assert.Equal(t, 1, strings.Count(string(raw), "timestamp,"))
}

func TestRead_MissingFile(t *testing.T) {
	got, err := Read(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUnmarshalEntry_BadRow(t *testing.T) {
	_, err := UnmarshalEntry([]string{"not-a-time", "0", "", "", "", "false", ""})
	assert.Error(t, err)

	_, err = UnmarshalEntry([]string{"too", "short"})
	assert.Error(t, err)
}
