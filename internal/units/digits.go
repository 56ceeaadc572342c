package units

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// groupedFractionDigits caps the fraction digits kept by GroupDigits
const groupedFractionDigits = 3

// GroupDigits groups the integer digits of value in threes separated by
// commas. The magnitude is unchanged; fraction digits are kept as written,
// up to three places.
func GroupDigits(value float64) string {
	switch {
	case math.IsNaN(value):
		return "NaN"
	case math.IsInf(value, 1):
		return "∞"
	case math.IsInf(value, -1):
		return "-∞"
	}

	text := decimal.NewFromFloat(value).Round(groupedFractionDigits).String()

	sign := ""
	if strings.HasPrefix(text, "-") {
		sign, text = "-", text[1:]
	}

	whole, frac, hasFrac := strings.Cut(text, ".")
	grouped := groupThousands(whole)
	if sign != "" && grouped == "0" && !hasFrac {
		sign = ""
	}
	if hasFrac {
		return sign + grouped + "." + frac
	}
	return sign + grouped
}

// groupThousands inserts a comma every three digits from the right
func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
