package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindPrice(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		want  string
		found bool
	}{
		{"pound with decimals", "Now only £49.99 today", "£49.99", true},
		{"euro comma decimals", "€476,00", "€476,00", true},
		{"dollar with thousands", "Price: $1,234.56", "$1,234.56", true},
		{"space after symbol", "£ 99", "£ 99", true},
		{"bare number ignored", "Rated 4.5 out of 5", "", false},
		{"no price", "Add to cart", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := FindPrice(tt.text)
			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePriceValue(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want float64
		ok   bool
	}{
		{"plain", "£49.99", 49.99, true},
		{"euro comma decimal", "€476,00", 476.00, true},
		{"euro comma decimal large", "€595,00", 595.00, true},
		{"us thousands", "$1,234.56", 1234.56, true},
		{"european thousands", "€1.234,56", 1234.56, true},
		{"comma thousands no decimals", "£1,234", 1234, true},
		{"repeated dot groups", "€1.234.567", 1234567, true},
		{"integer", "£595", 595, true},
		{"empty", "", 0, false},
		{"symbol only", "£", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParsePriceValue(tt.raw)
			require.Equal(t, tt.ok, ok)
			if ok {
				assert.InDelta(t, tt.want, got, 0.001)
			}
		})
	}
}

func TestCountPriceMatches(t *testing.T) {
	assert.Equal(t, 0, CountPriceMatches("no prices here"))
	assert.Equal(t, 2, CountPriceMatches("was £59.99 now £39.99"))
}

func TestExtractCurrency(t *testing.T) {
	assert.Equal(t, "£", ExtractCurrency("£49.99"))
	assert.Equal(t, "€", ExtractCurrency("€476,00"))
	assert.Equal(t, "$", ExtractCurrency("$12"))
	assert.Equal(t, "", ExtractCurrency("49.99"))
}
