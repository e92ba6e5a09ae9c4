package register

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// parseAmount reads a currency amount as an exact decimal. Thousand
// separators (commas, spaces or non-breaking spaces) are stripped; a trailing
// currency code is tolerated ("5,000.00 INR", "5 000.00").
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}

	if fields := strings.Fields(s); len(fields) > 1 && isAlpha(fields[len(fields)-1]) {
		s = strings.Join(fields[:len(fields)-1], " ")
	}

	s = strings.NewReplacer(",", "", " ", "", " ", "").Replace(s)

	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing amount %q: %w", s, err)
	}

	if !amount.IsPositive() {
		return decimal.Zero, fmt.Errorf("amount %q is not positive", s)
	}

	return amount, nil
}

func isAlpha(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}

	return true
}
