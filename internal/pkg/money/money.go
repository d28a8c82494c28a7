package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Sum adds amounts with a decimal accumulator
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

// Format renders an amount in whole units with grouped thousands and a trailing " F".
// The fractional part is truncated, e.g. 15000.75 -> "15 000 F", -2500 -> "-2 500 F".
func Format(amount decimal.Decimal) string {
	whole := amount.Truncate(0)
	digits := whole.Abs().String()

	var b strings.Builder
	if whole.IsNegative() {
		b.WriteByte('-')
	}
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
	}
	b.WriteString(" F")
	return b.String()
}
