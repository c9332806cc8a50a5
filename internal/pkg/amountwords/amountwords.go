// Package amountwords spells rupee amounts in the Indian numbering system
// (Crore, Lakh, Thousand, Hundred), as printed on receipts.
package amountwords

import (
	"strings"

	"github.com/divan/num2words"
	"github.com/shopspring/decimal"
)

const (
	crore    = 10000000
	lakh     = 100000
	thousand = 1000
)

// Convert returns the title-cased words for n, e.g. 1234567 ->
// "Twelve Lakh Thirty Four Thousand Five Hundred Sixty Seven".
func Convert(n int64) string {
	if n == 0 {
		return "Zero"
	}
	if n < 0 {
		return "Minus " + Convert(-n)
	}
	return strings.TrimSpace(strings.Join(groups(n), " "))
}

// groups splits n into Indian place groups. Counts of crore above 99 recurse,
// so 1000000000 reads "One Hundred Crore".
func groups(n int64) []string {
	var parts []string
	if c := n / crore; c > 0 {
		parts = append(parts, groups(c)...)
		parts = append(parts, "Crore")
		n %= crore
	}
	if l := n / lakh; l > 0 {
		parts = append(parts, belowThousand(l), "Lakh")
		n %= lakh
	}
	if t := n / thousand; t > 0 {
		parts = append(parts, belowThousand(t), "Thousand")
		n %= thousand
	}
	if n > 0 {
		parts = append(parts, belowThousand(n))
	}
	return parts
}

func belowThousand(n int64) string {
	words := strings.ReplaceAll(num2words.Convert(int(n)), "-", " ")
	fields := strings.Fields(words)
	for i, f := range fields {
		fields[i] = strings.ToUpper(f[:1]) + f[1:]
	}
	return strings.Join(fields, " ")
}

// Rupees renders an amount the way the receipt prints it:
// "Indian Rupee Ten Thousand Only", with paise when present.
func Rupees(amount decimal.Decimal) string {
	amount = amount.Round(2)
	whole := amount.IntPart()
	paise := amount.Sub(decimal.NewFromInt(whole)).Mul(decimal.NewFromInt(100)).IntPart()
	out := "Indian Rupee " + Convert(whole)
	if paise > 0 {
		out += " and " + Convert(paise) + " Paise"
	}
	return out + " Only"
}
