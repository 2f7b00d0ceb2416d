package utils

import (
	"fmt"
	"strings"
)

// FormatAmount renders a minor-unit amount as "12.34 EUR".
func FormatAmount(cents int64, currency string) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	cur := strings.ToUpper(strings.TrimSpace(currency))
	if cur == "" {
		cur = "EUR"
	}
	return fmt.Sprintf("%s%d.%02d %s", sign, cents/100, cents%100, cur)
}

// SplitEven divides an amount across n participants so the parts sum exactly
// to the total; the first (total mod n) shares carry the extra cent.
func SplitEven(total int64, n int) []int64 {
	if n <= 0 {
		return nil
	}
	base := total / int64(n)
	rem := total % int64(n)
	out := make([]int64, n)
	for i := range out {
		out[i] = base
		if int64(i) < rem {
			out[i]++
		}
	}
	return out
}
