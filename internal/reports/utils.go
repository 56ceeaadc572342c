package reports

import (
	"renewcalc/internal/charts"
)

// ChartFileName is the image file name of a chart, e.g. "chart-cashflow.png"
func ChartFileName(spec charts.ChartSpec) string {
	return charts.ChartID(spec.Options.Title) + ".png"
}
