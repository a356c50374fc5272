package statement

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var rsWordRE = regexp.MustCompile(`(?i)\brs\.?`)

// ParseAmount parses a raw cell value into a numeric amount. It strips
// currency glyphs and thousands separators, then everything that is not a
// digit, '.' or '-'. The second return is false when no amount is present;
// parse failures never produce an error.
//
// Sign is taken verbatim from the text here; debit/credit renormalization
// happens later in the normalizer using the type hint.
func ParseAmount(raw string) (decimal.Decimal, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Decimal{}, false
	}

	s = rsWordRE.ReplaceAllString(s, "")
	s = strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r == '.', r == '-':
			return r
		default:
			return -1
		}
	}, s)

	if s == "" || s == "." || s == "-" {
		return decimal.Decimal{}, false
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

// HasDigit reports whether the raw cell contains at least one digit, the
// cheap "could be an amount" check used by the row mask and by column
// content sniffing.
func HasDigit(raw string) bool {
	return strings.ContainsAny(raw, "0123456789")
}

var currencyGlyphRE = regexp.MustCompile(`(?i)[₹$€£]|(?:^|\s)rs(?:\.|\s|$)`)

// HasCurrencyGlyph reports whether the raw cell contains a recognized
// currency marker.
func HasCurrencyGlyph(raw string) bool {
	return currencyGlyphRE.MatchString(raw)
}
