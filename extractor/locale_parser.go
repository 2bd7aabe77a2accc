package extractor

import (
	"regexp"
	"strconv"
	"strings"
)

// priceRE matches a currency-prefixed numeric substring, e.g. "€476,00",
// "$1,234.56", "£ 99". The currency symbol is required: bare numbers on a
// retail page are more often ratings, quantities or years than prices.
var priceRE = regexp.MustCompile(`(?:£|\$|€)\s?[0-9][0-9.,]*`)

// FindPrice returns the first currency-prefixed price substring in text
func FindPrice(text string) (string, bool) {
	match := priceRE.FindString(text)
	if match == "" {
		return "", false
	}
	return strings.TrimSpace(match), true
}

// CountPriceMatches returns how many price substrings appear in text
func CountPriceMatches(text string) int {
	return len(priceRE.FindAllString(text, -1))
}

// ParsePriceValue extracts the numeric magnitude from a raw price string,
// handling both US/UK ("1,234.56") and European ("1.234,56") separator
// conventions. Returns false when no digits are present.
func ParsePriceValue(raw string) (float64, bool) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.NewReplacer("£", "", "$", "", "€", "", " ", "", " ", "").Replace(cleaned)
	if cleaned == "" {
		return 0, false
	}

	value, err := strconv.ParseFloat(normalizeSeparators(cleaned), 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

// normalizeSeparators converts locale-specific separators to a plain decimal
func normalizeSeparators(s string) string {
	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")

	switch {
	case lastComma >= 0 && lastDot >= 0:
		if lastComma > lastDot {
			// European: 1.234,56 -> 1234.56
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			// US/UK: 1,234.56 -> 1234.56
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastComma >= 0:
		// A comma followed by exactly two digits is a decimal separator
		// ("476,00"); anything else is a thousands separator ("1,234").
		if len(s)-lastComma-1 == 2 && strings.Count(s, ",") == 1 {
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastDot >= 0:
		// Repeated dot groups are European thousands separators ("1.234.567")
		if strings.Count(s, ".") > 1 {
			s = strings.ReplaceAll(s, ".", "")
		}
	}

	return strings.TrimSuffix(s, ".")
}

// ExtractCurrency returns the currency symbol of a raw price string
func ExtractCurrency(raw string) string {
	for _, symbol := range []string{"£", "$", "€"} {
		if strings.Contains(raw, symbol) {
			return symbol
		}
	}
	return ""
}
