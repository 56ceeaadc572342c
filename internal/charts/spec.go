package charts

import "fmt"

// RenderType is how a series is drawn
type RenderType string

const (
	Bar  RenderType = "bar"
	Line RenderType = "line"
)

// ParseRenderType parses "bar" or "line"; the empty string yields the empty type
func ParseRenderType(s string) (RenderType, error) {
	switch RenderType(s) {
	case "", Bar, Line:
		return RenderType(s), nil
	default:
		return "", fmt.Errorf("unknown render type %q", s)
	}
}

const (
	// BrandColor is the default series colour
	BrandColor = "rgba(13, 126, 201, 1)"

	opaqueAlpha   = 1.0
	lineFillAlpha = 0.2

	defaultBorderWidth = 2
	defaultTension     = 0.4
)

// SeriesInput is either a Single series or Multiple described series
type SeriesInput interface {
	seriesInput()
}

// Single is one unnamed-style series that inherits the chart-level render type
type Single struct {
	Label string    `json:"label" yaml:"label"`
	Data  []float64 `json:"data" yaml:"data"`
}

// SeriesDescriptor describes one series of a multi-series chart. Empty Type and
// Color fall back to the chart defaults.
type SeriesDescriptor struct {
	Label string     `json:"label" yaml:"label"`
	Data  []float64  `json:"data" yaml:"data"`
	Type  RenderType `json:"type,omitempty" yaml:"type,omitempty"`
	Color string     `json:"color,omitempty" yaml:"color,omitempty"`
}

// Multiple is a list of described series
type Multiple []SeriesDescriptor

func (Single) seriesInput()   {}
func (Multiple) seriesInput() {}

// Display carries the chart-level presentation options
type Display struct {
	Title      string `json:"title" yaml:"title"`
	XAxisTitle string `json:"xAxisTitle" yaml:"xAxisTitle"`
	YAxisTitle string `json:"yAxisTitle" yaml:"yAxisTitle"`
	ShowLegend bool   `json:"showLegend" yaml:"showLegend"`
}

// ChartSeries is a fully resolved series
type ChartSeries struct {
	Label           string     `json:"label"`
	Data            []float64  `json:"data"`
	Type            RenderType `json:"type"`
	BorderColor     string     `json:"borderColor"`
	BackgroundColor string     `json:"backgroundColor"`
	BorderWidth     int        `json:"borderWidth"`
	Tension         float64    `json:"tension"`
	Fill            bool       `json:"fill"`
}

// ChartOptions are the chart-level display options
type ChartOptions struct {
	Title       string `json:"title"`
	XAxisTitle  string `json:"xAxisTitle"`
	YAxisTitle  string `json:"yAxisTitle"`
	ShowLegend  bool   `json:"showLegend"`
	BeginAtZero bool   `json:"beginAtZero"`
}

// ChartSpec is a renderer-agnostic chart description
type ChartSpec struct {
	Type    RenderType    `json:"type"`
	Labels  []string      `json:"labels"`
	Series  []ChartSeries `json:"series"`
	Options ChartOptions  `json:"options"`
}

// Consistent reports whether every series has exactly one point per label
func (c ChartSpec) Consistent() bool {
	for _, s := range c.Series {
		if len(s.Data) != len(c.Labels) {
			return false
		}
	}
	return true
}

// MultiSeries reports whether the chart draws more than one series
func (c ChartSpec) MultiSeries() bool {
	return len(c.Series) > 1
}

// BuildChartSpec normalizes a series input into a ChartSpec. Series lengths are
// trusted as given; use Consistent to check them.
func BuildChartSpec(labels []string, input SeriesInput, defaultType RenderType, display Display) ChartSpec {
	if defaultType == "" {
		defaultType = Bar
	}

	var descriptors []SeriesDescriptor
	switch in := input.(type) {
	case Single:
		descriptors = []SeriesDescriptor{{Label: in.Label, Data: in.Data}}
	case Multiple:
		descriptors = in
	}

	series := make([]ChartSeries, 0, len(descriptors))
	for _, d := range descriptors {
		series = append(series, resolveSeries(d, defaultType))
	}

	return ChartSpec{
		Type:   defaultType,
		Labels: labels,
		Series: series,
		Options: ChartOptions{
			Title:       display.Title,
			XAxisTitle:  display.XAxisTitle,
			YAxisTitle:  display.YAxisTitle,
			ShowLegend:  display.ShowLegend,
			BeginAtZero: true,
		},
	}
}

// resolveSeries fills in type, colours and fill for one descriptor
func resolveSeries(d SeriesDescriptor, defaultType RenderType) ChartSeries {
	kind := d.Type
	if kind == "" {
		kind = defaultType
	}
	color := d.Color
	if color == "" {
		color = BrandColor
	}

	border := WithAlpha(color, opaqueAlpha)
	background := border
	if kind == Line {
		background = WithAlpha(color, lineFillAlpha)
	}

	return ChartSeries{
		Label:           d.Label,
		Data:            d.Data,
		Type:            kind,
		BorderColor:     border,
		BackgroundColor: background,
		BorderWidth:     defaultBorderWidth,
		Tension:         defaultTension,
		Fill:            kind == Line,
	}
}
