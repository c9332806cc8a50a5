package amountwords

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Grouped formats an amount with Indian digit grouping, e.g. 1234567.5 ->
// "12,34,567.50". Whole amounts have no decimal part.
func Grouped(amount decimal.Decimal) string {
	amount = amount.Round(2)
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Abs()
	}
	whole := amount.Truncate(0)
	digits := whole.String()

	var groups []string
	if len(digits) > 3 {
		head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
		for len(head) > 2 {
			groups = append([]string{head[len(head)-2:]}, groups...)
			head = head[:len(head)-2]
		}
		groups = append([]string{head}, groups...)
		groups = append(groups, tail)
	} else {
		groups = []string{digits}
	}
	out := sign + strings.Join(groups, ",")
	if frac := amount.Sub(whole); !frac.IsZero() {
		fixed := amount.StringFixed(2)
		out += fixed[len(fixed)-3:]
	}
	return out
}
