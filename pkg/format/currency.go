// Package format renders currency and percentage values for display.
package format

import (
	"fmt"
	"math"
	"strings"
)

// Currency returns a currency string with a dollar sign and thousands separators (e.g., "-$1,234.56").
func Currency(amount float64) string {
	if amount < 0 {
		return "-$" + groupDigits(math.Abs(amount))
	}
	return "$" + groupDigits(amount)
}

// NumericCurrency returns a currency string without a currency symbol but with separators (e.g., "-1,234.56").
func NumericCurrency(amount float64) string {
	if amount < 0 {
		return "-" + groupDigits(math.Abs(amount))
	}
	return groupDigits(amount)
}

// Percent renders a percentage value with two decimals (e.g., "4.50%").
func Percent(value float64) string {
	return fmt.Sprintf("%.2f%%", value)
}

func groupDigits(value float64) string {
	rendered := fmt.Sprintf("%.2f", value)
	dot := strings.IndexByte(rendered, '.')
	intPart, decPart := rendered[:dot], rendered[dot:]

	if len(intPart) <= 3 {
		return intPart + decPart
	}

	var b strings.Builder
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
	}
	for i := lead; i < len(intPart); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(intPart[i : i+3])
	}
	return b.String() + decPart
}
