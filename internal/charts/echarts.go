package charts

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"strings"
	"unicode"

	echarts "github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// ChartSnippet is an embeddable interactive chart.
// HTML is the go-echarts output wrapped in a titled chart container.
type ChartSnippet struct {
	ID    string
	Title string
	HTML  string
}

type echartsRenderer struct{}

func (echartsRenderer) ContentType() string { return "text/html; charset=utf-8" }

// Render writes the go-echarts page for spec
func (echartsRenderer) Render(spec ChartSpec, w io.Writer) error {
	return renderECharts(spec, ChartID(spec.Options.Title), w)
}

// RenderSnippet renders spec as an interactive chart snippet
func RenderSnippet(spec ChartSpec) (ChartSnippet, error) {
	if _, err := RendererFor(FormatHTML); err != nil {
		return ChartSnippet{}, err
	}

	id := ChartID(spec.Options.Title)
	var buf bytes.Buffer
	if err := renderECharts(spec, id, &buf); err != nil {
		return ChartSnippet{}, fmt.Errorf("failed to render chart %s: %w", id, err)
	}

	snippet := fmt.Sprintf(`<div class="chart-container" id="%s-container">
	<h3>%s</h3>
	%s
</div>`, id, html.EscapeString(spec.Options.Title), buf.String())

	return ChartSnippet{ID: id, Title: spec.Options.Title, HTML: snippet}, nil
}

// renderECharts builds a bar chart (with any line series overlapped) or a pure
// line chart and renders it
func renderECharts(spec ChartSpec, id string, w io.Writer) error {
	global := globalOptions(spec, id)

	var bars, lines []ChartSeries
	for _, s := range spec.Series {
		if s.Type == Line {
			lines = append(lines, s)
		} else {
			bars = append(bars, s)
		}
	}

	if len(bars) == 0 {
		line := echarts.NewLine()
		line.SetGlobalOptions(global...)
		line.SetXAxis(spec.Labels)
		addLineSeries(line, lines)
		return line.Render(w)
	}

	bar := echarts.NewBar()
	bar.SetGlobalOptions(global...)
	bar.SetXAxis(spec.Labels)
	for _, s := range bars {
		data := make([]opts.BarData, 0, len(s.Data))
		for _, v := range s.Data {
			data = append(data, opts.BarData{Value: v})
		}
		bar.AddSeries(s.Label, data,
			echarts.WithItemStyleOpts(opts.ItemStyle{
				Color:       s.BackgroundColor,
				BorderColor: s.BorderColor,
			}),
		)
	}

	if len(lines) > 0 {
		line := echarts.NewLine()
		line.SetXAxis(spec.Labels)
		addLineSeries(line, lines)
		bar.Overlap(line)
	}
	return bar.Render(w)
}

// addLineSeries adds smoothed, area-filled line series
func addLineSeries(line *echarts.Line, series []ChartSeries) {
	for _, s := range series {
		data := make([]opts.LineData, 0, len(s.Data))
		for _, v := range s.Data {
			data = append(data, opts.LineData{Value: v})
		}

		seriesOpts := []echarts.SeriesOpts{
			echarts.WithLineChartOpts(opts.LineChart{Smooth: s.Tension > 0}),
			echarts.WithLineStyleOpts(opts.LineStyle{Color: s.BorderColor, Width: float32(s.BorderWidth)}),
			echarts.WithItemStyleOpts(opts.ItemStyle{Color: s.BorderColor}),
		}
		if s.Fill {
			seriesOpts = append(seriesOpts, echarts.WithAreaStyleOpts(opts.AreaStyle{Color: s.BackgroundColor, Opacity: float32(lineFillAlpha)}))
		}
		line.AddSeries(s.Label, data, seriesOpts...)
	}
}

// globalOptions maps ChartOptions onto go-echarts global options
func globalOptions(spec ChartSpec, id string) []echarts.GlobalOpts {
	return []echarts.GlobalOpts{
		echarts.WithInitializationOpts(opts.Initialization{
			PageTitle: spec.Options.Title,
			ChartID:   id,
			Theme:     types.ThemeWesteros,
			Width:     "900px",
			Height:    "400px",
		}),
		echarts.WithTitleOpts(opts.Title{Title: spec.Options.Title}),
		echarts.WithLegendOpts(opts.Legend{Show: spec.Options.ShowLegend}),
		echarts.WithTooltipOpts(opts.Tooltip{Show: true, Trigger: "axis"}),
		echarts.WithXAxisOpts(opts.XAxis{Name: spec.Options.XAxisTitle}),
		echarts.WithYAxisOpts(opts.YAxis{Name: spec.Options.YAxisTitle}),
	}
}

// ChartID derives a stable DOM id from a chart title
func ChartID(title string) string {
	var b strings.Builder
	b.WriteString("chart")
	dash := true
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash {
				b.WriteByte('-')
				dash = false
			}
			b.WriteRune(r)
		} else {
			dash = true
		}
	}
	return b.String()
}
