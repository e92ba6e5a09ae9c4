package register

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "Plain", input: "5000", want: "5000"},
		{name: "Decimal", input: "5000.50", want: "5000.5"},
		{name: "CommaThousands", input: "5,000.00", want: "5000"},
		{name: "SpaceThousands", input: "5 000.00", want: "5000"},
		{name: "NonBreakingSpaceThousands", input: "5 000.00", want: "5000"},
		{name: "IndianGrouping", input: "12,34,567.89", want: "1234567.89"},
		{name: "TrailingCurrencyCode", input: "5,000.00 INR", want: "5000"},
		{name: "SpaceThousandsWithCurrencyCode", input: "5 000.00 INR", want: "5000"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseAmount(tc.input)
			require.NoError(t, err)

			want, err := decimal.NewFromString(tc.want)
			require.NoError(t, err)
			assert.True(t, got.Equal(want), "parsed %s, want %s", got, want)
		})
	}
}

func TestParseAmount_Invalid(t *testing.T) {
	for _, input := range []string{"", "   ", "abc", "-5000", "0", "0.00"} {
		t.Run(input, func(t *testing.T) {
			_, err := parseAmount(input)
			assert.Error(t, err)
		})
	}
}
