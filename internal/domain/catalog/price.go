package catalog

import (
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// PricePlaceholder is shown wherever a product has no price set.
const PricePlaceholder = "Price upon request"

// ParsePrice converts a formatted price string like "$12.00" into a
// decimal amount. A single leading currency symbol is stripped before
// parsing. An empty or unparseable price yields zero, never an error:
// products without a price are quoted individually, so they contribute
// nothing to computed totals.
func ParsePrice(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	if r, size := utf8.DecodeRuneInString(s); r != utf8.RuneError && !isPriceChar(r) {
		s = strings.TrimSpace(s[size:])
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// DisplayPrice returns the formatted price, or PricePlaceholder when
// the product has none.
func DisplayPrice(s string) string {
	if strings.TrimSpace(s) == "" {
		return PricePlaceholder
	}
	return s
}

func isPriceChar(r rune) bool {
	return (r >= '0' && r <= '9') || r == '.' || r == '-' || r == '+'
}
