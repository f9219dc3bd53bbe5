package csv

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var currencySuffix = regexp.MustCompile(`\s*(EUR|USD|GBP|PLN|CZK|HUF)\s*$`)

// ParsePrice parses a price string in US or European notation:
// "12.99", "12,99", "1.299,00", "1 299,00 EUR".
func ParsePrice(value string) (float64, error) {
	cleaned := strings.TrimSpace(value)
	if cleaned == "" {
		return 0, fmt.Errorf("empty price value")
	}

	// Strip currency symbols, currency codes and grouping spaces
	cleaned = strings.Map(func(r rune) rune {
		if r == '€' || r == '$' || r == '£' || r == ' ' || r == ' ' {
			return -1
		}
		return r
	}, cleaned)
	cleaned = currencySuffix.ReplaceAllString(strings.ToUpper(cleaned), "")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return 0, fmt.Errorf("no numeric value found in %q", value)
	}

	lastDot := strings.LastIndex(cleaned, ".")
	lastComma := strings.LastIndex(cleaned, ",")

	if lastComma > lastDot {
		// European: dots group thousands, comma is the decimal separator
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	} else if lastDot > lastComma {
		// US: commas group thousands
		cleaned = strings.ReplaceAll(cleaned, ",", "")
	}

	result, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q: %w", value, err)
	}
	return result, nil
}
