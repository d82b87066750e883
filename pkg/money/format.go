// Package money formats amounts the way Colombian retail expects them:
// peso sign, dot as thousands separator, comma as decimal separator.
// 100000 renders as $100.000.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Format renders an amount as currency with no decimals, the default
// presentation across the app.
func Format(v decimal.Decimal) string {
	return formatParts(v, 0, true)
}

// FormatWithDecimals renders an amount as currency with two decimals, used
// where cent precision matters (receipts).
func FormatWithDecimals(v decimal.Decimal) string {
	return formatParts(v, 2, true)
}

// FormatNumber renders a plain number with thousands separators and the
// given number of decimals, without the currency sign.
func FormatNumber(v decimal.Decimal, decimals int32) string {
	return formatParts(v, decimals, false)
}

func formatParts(v decimal.Decimal, decimals int32, currency bool) string {
	fixed := v.Round(decimals).StringFixed(decimals)

	negative := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	intPart := fixed
	fracPart := ""
	if i := strings.IndexByte(fixed, '.'); i >= 0 {
		intPart, fracPart = fixed[:i], fixed[i+1:]
	}

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	if currency {
		b.WriteByte('$')
	}
	b.WriteString(groupThousands(intPart))
	if fracPart != "" {
		b.WriteByte(',')
		b.WriteString(fracPart)
	}
	return b.String()
}

func groupThousands(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}

	var b strings.Builder
	head := n % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
