package statement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount_CurrencyAndSeparators(t *testing.T) {
	got, ok := ParseAmount("₹1,234.50")
	require.True(t, ok)
	assert.Equal(t, "1234.5", got.String())

	got, ok = ParseAmount("$2,000")
	require.True(t, ok)
	assert.Equal(t, "2000", got.String())

	got, ok = ParseAmount("Rs. -500")
	require.True(t, ok)
	assert.Equal(t, "-500", got.String())

	got, ok = ParseAmount("rs 750")
	require.True(t, ok)
	assert.Equal(t, "750", got.String())
}

func TestParseAmount_SignPreservedVerbatim(t *testing.T) {
	// Sign renormalization from type hints happens later; here the text
	// sign is kept as-is.
	got, ok := ParseAmount("-42.10")
	require.True(t, ok)
	assert.True(t, got.IsNegative())
}

func TestParseAmount_Empty(t *testing.T) {
	for _, raw := range []string{"", "   ", ".", "-", "--", "₹", "N/A"} {
		_, ok := ParseAmount(raw)
		assert.False(t, ok, "expected no amount for %q", raw)
	}
}

func TestParseAmount_SuffixLettersStripped(t *testing.T) {
	// "Cr"/"Dr" suffixes vanish in cleaning; the raw text is consulted
	// separately for the sign cascade.
	got, ok := ParseAmount("1,200 Cr")
	require.True(t, ok)
	assert.Equal(t, "1200", got.String())
}

func TestHasCurrencyGlyph(t *testing.T) {
	assert.True(t, HasCurrencyGlyph("₹500"))
	assert.True(t, HasCurrencyGlyph("$ 12"))
	assert.True(t, HasCurrencyGlyph("rs. 12"))
	assert.True(t, HasCurrencyGlyph("Rs 12"))
	assert.False(t, HasCurrencyGlyph("grocery run"))
}
