package charts

import (
	"errors"
	"io"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrNoData is returned when a static chart has no points to draw
var ErrNoData = errors.New("chart has no data points")

const (
	pngWidth  = 800
	pngHeight = 400
)

type pngRenderer struct{}

func (pngRenderer) ContentType() string { return "image/png" }

// Render draws spec as a static PNG. A chart with one bar series becomes a
// go-chart BarChart; everything else is drawn as continuous series over the
// label index.
func (pngRenderer) Render(spec ChartSpec, w io.Writer) error {
	if pointCount(spec) == 0 {
		return ErrNoData
	}
	if len(spec.Series) == 1 && spec.Series[0].Type == Bar {
		return renderBarPNG(spec, w)
	}
	return renderLinePNG(spec, w)
}

func renderBarPNG(spec ChartSpec, w io.Writer) error {
	s := spec.Series[0]
	minY, maxY := valueRange(spec)

	bars := make([]chart.Value, 0, len(s.Data))
	for i, v := range s.Data {
		bars = append(bars, chart.Value{
			Value: finite(v),
			Label: labelAt(spec.Labels, i),
			Style: chart.Style{
				FillColor:   toDrawingColor(s.BackgroundColor),
				StrokeColor: toDrawingColor(s.BorderColor),
				StrokeWidth: float64(s.BorderWidth),
			},
		})
	}

	barWidth := (pngWidth - 160) / (2 * len(bars))
	if barWidth < 2 {
		barWidth = 2
	}

	graph := chart.BarChart{
		Title:      spec.Options.Title,
		TitleStyle: chart.Style{FontSize: 14, FontColor: drawing.ColorBlack},
		Background: chart.Style{
			Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20},
		},
		Width:    pngWidth,
		Height:   pngHeight,
		BarWidth: barWidth,
		XAxis:    chart.Style{FontSize: 9},
		YAxis: chart.YAxis{
			Name:  spec.Options.YAxisTitle,
			Style: chart.Style{FontSize: 9},
			Range: &chart.ContinuousRange{Min: minY, Max: maxY},
		},
		Bars: bars,
	}
	return graph.Render(chart.PNG, w)
}

func renderLinePNG(spec ChartSpec, w io.Writer) error {
	minY, maxY := valueRange(spec)

	n := len(spec.Labels)
	for _, s := range spec.Series {
		if len(s.Data) > n {
			n = len(s.Data)
		}
	}
	maxX := float64(n - 1)
	if maxX < 1 {
		maxX = 1
	}

	// go-chart derives the x-range from custom ticks, so they must span at
	// least two positions even when there is a single label.
	ticks := make([]chart.Tick, 0, int(maxX)+1)
	for i := 0; i <= int(maxX); i++ {
		ticks = append(ticks, chart.Tick{Value: float64(i), Label: labelAt(spec.Labels, i)})
	}

	series := make([]chart.Series, 0, len(spec.Series))
	for _, s := range spec.Series {
		if len(s.Data) == 0 {
			continue
		}
		xs := make([]float64, len(s.Data))
		ys := make([]float64, len(s.Data))
		for i, v := range s.Data {
			xs[i] = float64(i)
			ys[i] = finite(v)
		}

		style := chart.Style{
			StrokeColor: toDrawingColor(s.BorderColor),
			StrokeWidth: float64(s.BorderWidth),
		}
		if s.Fill {
			style.FillColor = toDrawingColor(s.BackgroundColor)
		}
		if s.Type == Bar || len(s.Data) == 1 {
			style.DotColor = style.StrokeColor
			style.DotWidth = 4
		}
		series = append(series, chart.ContinuousSeries{
			Name:    s.Label,
			Style:   style,
			XValues: xs,
			YValues: ys,
		})
	}

	graph := chart.Chart{
		Title:      spec.Options.Title,
		TitleStyle: chart.Style{FontSize: 14, FontColor: drawing.ColorBlack},
		Background: chart.Style{
			Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20},
		},
		Width:  pngWidth,
		Height: pngHeight,
		XAxis: chart.XAxis{
			Name:  spec.Options.XAxisTitle,
			Style: chart.Style{FontSize: 9},
			Range: &chart.ContinuousRange{Min: 0, Max: maxX},
			Ticks: ticks,
		},
		YAxis: chart.YAxis{
			Name:  spec.Options.YAxisTitle,
			Style: chart.Style{FontSize: 9},
			Range: &chart.ContinuousRange{Min: minY, Max: maxY},
		},
		Series: series,
	}
	if spec.Options.ShowLegend {
		graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	}
	return graph.Render(chart.PNG, w)
}

func pointCount(spec ChartSpec) int {
	n := 0
	for _, s := range spec.Series {
		n += len(s.Data)
	}
	return n
}

// valueRange returns the y-axis range. go-chart refuses a zero-height range,
// so a flat series is widened by one unit.
func valueRange(spec ChartSpec) (float64, float64) {
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, s := range spec.Series {
		for _, v := range s.Data {
			v = finite(v)
			minY = math.Min(minY, v)
			maxY = math.Max(maxY, v)
		}
	}
	if spec.Options.BeginAtZero {
		minY = math.Min(minY, 0)
		maxY = math.Max(maxY, 0)
	}
	if maxY <= minY {
		maxY = minY + 1
	}
	return minY, maxY
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func labelAt(labels []string, i int) string {
	if i < len(labels) {
		return labels[i]
	}
	return ""
}

// toDrawingColor converts rgba(...) text to a go-chart colour, falling back to
// the brand colour for other notations
func toDrawingColor(s string) drawing.Color {
	c, ok := ParseRGBA(s)
	if !ok {
		c, _ = ParseRGBA(BrandColor)
	}
	return drawing.Color{R: c.R, G: c.G, B: c.B, A: uint8(math.Round(c.A * 255))}
}
