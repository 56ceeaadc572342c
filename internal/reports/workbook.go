package reports

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"renewcalc/internal/charts"
)

const (
	metricsSheet = "Summary"
	maxSheetName = 31
	chartAnchor  = "E2"
	headerCell   = "A1"
)

var sheetNameReplacer = strings.NewReplacer(
	"[", "(", "]", ")", ":", "-", "*", "", "?", "", "/", "-", `\`, "-",
)

// BuildWorkbook renders the view as an .xlsx workbook: a summary sheet with
// every metric and one sheet per chart holding its data and a native chart
func BuildWorkbook(view ResultsView) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", metricsSheet); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	if err := writeMetrics(f, view); err != nil {
		return nil, err
	}

	used := map[string]bool{metricsSheet: true}
	for _, spec := range view.Charts {
		name := uniqueSheetName(spec.Options.Title, used)
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("failed to add sheet %q: %w", name, err)
		}
		if err := writeChartSheet(f, name, spec); err != nil {
			return nil, fmt.Errorf("failed to write sheet %q: %w", name, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeMetrics(f *excelize.File, view ResultsView) error {
	rows := [][]interface{}{{view.Title}, {}, {"Group", "Metric", "Value"}}
	for _, m := range view.Metrics {
		rows = append(rows, []interface{}{m.Group, m.Label, m.Value})
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(metricsSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write summary row %d: %w", i+1, err)
		}
	}
	return f.SetColWidth(metricsSheet, "A", "C", 28)
}

func writeChartSheet(f *excelize.File, sheet string, spec charts.ChartSpec) error {
	header := []interface{}{spec.Options.XAxisTitle}
	for _, s := range spec.Series {
		header = append(header, s.Label)
	}
	if err := f.SetSheetRow(sheet, headerCell, &header); err != nil {
		return err
	}

	for i, label := range spec.Labels {
		row := []interface{}{label}
		for _, s := range spec.Series {
			if i < len(s.Data) {
				row = append(row, s.Data[i])
			} else {
				row = append(row, nil)
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	if len(spec.Labels) == 0 || len(spec.Series) == 0 {
		return nil
	}
	return addNativeChart(f, sheet, spec)
}

// addNativeChart draws bar series as a column chart and overlays line
// series as a combo chart
func addNativeChart(f *excelize.File, sheet string, spec charts.ChartSpec) error {
	quoted := "'" + strings.ReplaceAll(sheet, "'", "''") + "'"
	last := len(spec.Labels) + 1
	categories := fmt.Sprintf("%s!$A$2:$A$%d", quoted, last)

	var bars, lines []excelize.ChartSeries
	for i, s := range spec.Series {
		col, err := excelize.ColumnNumberToName(i + 2)
		if err != nil {
			return err
		}
		series := excelize.ChartSeries{
			Name:       fmt.Sprintf("%s!$%s$1", quoted, col),
			Categories: categories,
			Values:     fmt.Sprintf("%s!$%s$2:$%s$%d", quoted, col, col, last),
		}
		if s.Type == charts.Line {
			lines = append(lines, series)
		} else {
			bars = append(bars, series)
		}
	}

	legend := excelize.ChartLegend{Position: "none"}
	if spec.Options.ShowLegend || spec.MultiSeries() {
		legend.Position = "bottom"
	}
	chart := func(kind excelize.ChartType, series []excelize.ChartSeries) *excelize.Chart {
		return &excelize.Chart{
			Type:   kind,
			Series: series,
			Title:  []excelize.RichTextRun{{Text: spec.Options.Title}},
			Legend: legend,
			XAxis:  excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: spec.Options.XAxisTitle}}},
			YAxis:  excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: spec.Options.YAxisTitle}}},
		}
	}

	switch {
	case len(bars) == 0:
		return f.AddChart(sheet, chartAnchor, chart(excelize.Line, lines))
	case len(lines) == 0:
		return f.AddChart(sheet, chartAnchor, chart(excelize.Col, bars))
	default:
		return f.AddChart(sheet, chartAnchor, chart(excelize.Col, bars), chart(excelize.Line, lines))
	}
}

func uniqueSheetName(title string, used map[string]bool) string {
	base := strings.TrimSpace(sheetNameReplacer.Replace(title))
	if base == "" {
		base = "Chart"
	}
	if len(base) > maxSheetName {
		base = base[:maxSheetName]
	}

	name := base
	for i := 2; used[name]; i++ {
		suffix := fmt.Sprintf(" %d", i)
		trimmed := base
		if len(trimmed)+len(suffix) > maxSheetName {
			trimmed = trimmed[:maxSheetName-len(suffix)]
		}
		name = trimmed + suffix
	}
	used[name] = true
	return name
}
