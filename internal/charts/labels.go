package charts

import (
	"strconv"
	"time"
)

// MonthLabels returns the twelve abbreviated month names, Jan to Dec
func MonthLabels() []string {
	labels := make([]string, 0, 12)
	for m := time.January; m <= time.December; m++ {
		labels = append(labels, m.String()[:3])
	}
	return labels
}

// YearLabels returns "Year 1".."Year n", or "Year 0".."Year n" when fromZero is
// set (cashflow charts include the investment year).
func YearLabels(n int, fromZero bool) []string {
	if n < 0 {
		n = 0
	}
	start := 1
	if fromZero {
		start = 0
	}

	labels := make([]string, 0, n-start+1)
	for y := start; y <= n; y++ {
		labels = append(labels, "Year "+strconv.Itoa(y))
	}
	return labels
}
