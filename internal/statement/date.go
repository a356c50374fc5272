package statement

import (
	"regexp"
	"strings"
	"time"
)

// monthNameDateRE finds an embedded month-name date anywhere in a cell,
// in either order: "Nov 16, 2025" or "16 November 2025".
var monthNameDateRE = regexp.MustCompile(
	`(?i)\b(?:` +
		`(?:Jan(?:uary)?|Feb(?:ruary)?|Mar(?:ch)?|Apr(?:il)?|May|Jun(?:e)?|Jul(?:y)?|Aug(?:ust)?|Sep(?:t(?:ember)?)?|Oct(?:ober)?|Nov(?:ember)?|Dec(?:ember)?)\s*\d{1,2},?\s*\d{4}` +
		`|` +
		`\d{1,2}\s+(?:Jan(?:uary)?|Feb(?:ruary)?|Mar(?:ch)?|Apr(?:il)?|May|Jun(?:e)?|Jul(?:y)?|Aug(?:ust)?|Sep(?:t(?:ember)?)?|Oct(?:ober)?|Nov(?:ember)?|Dec(?:ember)?),?\s*\d{4}` +
		`)`)

// numericDateRE matches the generic DD-MM-YY(YY) / DD/MM/YY(YY) shape used
// by the row mask and by date-column sniffing.
var numericDateRE = regexp.MustCompile(`\d{2}[-/]\d{2}[-/]\d{2,4}`)

// embeddedLayouts is the fixed ordered list tried against a matched
// month-name substring. First success wins.
var embeddedLayouts = []string{
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"2 January 2006",
	"2-1-2006",
	"2/1/2006",
	"2006-1-2",
}

// freeformLayouts is the general-purpose fallback when no embedded
// month-name pattern is found or none of the fixed layouts fit.
var freeformLayouts = []string{
	"2006-01-02",
	"2006-1-2",
	"02-01-2006",
	"2-1-2006",
	"02/01/2006",
	"2/1/2006",
	"02-01-06",
	"02/01/06",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"2 January 2006",
	"2 Jan, 2006",
	"Jan 2 2006",
	"2006/01/02",
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// ParseDate parses a raw cell value into a calendar date. It first looks
// for an embedded month-name pattern and runs the fixed layout list over
// the matched substring; otherwise it falls back to a free-form attempt
// over common layouts. Returns false on total failure, never an error.
func ParseDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}

	if m := monthNameDateRE.FindString(s); m != "" {
		for _, layout := range embeddedLayouts {
			if d, err := time.Parse(layout, m); err == nil {
				return d, true
			}
		}
	}

	for _, layout := range freeformLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}

// LooksLikeDate reports whether a raw cell plausibly contains a date:
// either an embedded month-name pattern or the generic numeric shape.
func LooksLikeDate(raw string) bool {
	return monthNameDateRE.MatchString(raw) || numericDateRE.MatchString(raw)
}
