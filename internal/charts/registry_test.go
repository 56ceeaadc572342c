package charts

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetRegistry() {
	initOnce = sync.Once{}
	renderers = nil
}

func sampleSpec() ChartSpec {
	return BuildChartSpec(
		MonthLabels(),
		Single{Label: "Energy (MWh)", Data: []float64{10, 12, 15, 18, 22, 25, 26, 24, 20, 16, 12, 9}},
		Bar,
		Display{Title: "Monthly Energy Production", XAxisTitle: "Month", YAxisTitle: "MWh"},
	)
}

func TestRenderBeforeInit(t *testing.T) {
	resetRegistry()
	defer Init()

	var buf bytes.Buffer
	err := Render(sampleSpec(), FormatPNG, &buf)
	assert.ErrorIs(t, err, ErrNotInitialized)
	assert.Zero(t, buf.Len())

	_, err = RenderSnippet(sampleSpec())
	assert.ErrorIs(t, err, ErrNotInitialized)
	assert.Empty(t, Formats())
}

func TestInitIsIdempotent(t *testing.T) {
	resetRegistry()
	Init()
	Init()

	assert.Equal(t, []Format{FormatHTML, FormatPNG}, Formats())

	_, err := RendererFor("svg")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestRenderPNG(t *testing.T) {
	Init()
	tests := []struct {
		name string
		spec ChartSpec
	}{
		{"single bar", sampleSpec()},
		{"single line", BuildChartSpec([]string{"Year 1"}, Single{Label: "NPV", Data: []float64{5}}, Line, Display{Title: "NPV"})},
		{"mixed with legend", BuildChartSpec(
			YearLabels(3, true),
			Multiple{
				{Label: "Design", Data: []float64{1, 2, 3, 4}, Type: Line},
				{Label: "Available", Data: []float64{-1, 0, 2, 5}, Type: Bar, Color: "rgba(200, 80, 0, 1)"},
			},
			Bar,
			Display{Title: "Flow", ShowLegend: true},
		)},
		{"single month flow rates", BuildChartSpec(
			[]string{"Jan"},
			Multiple{
				{Label: "Design Flow Rate", Data: []float64{0.6}, Type: Line},
				{Label: "Available Flow Rate", Data: []float64{0.4}, Type: Line},
			},
			Line,
			Display{Title: "Flow Rates", ShowLegend: true},
		)},
		{"single point without labels", BuildChartSpec(nil, Single{Label: "Receipts", Data: []float64{5}}, Line, Display{})},
		{"flat zero series", BuildChartSpec(MonthLabels(), Single{Label: "Zero", Data: make([]float64, 12)}, Bar, Display{})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Render(tt.spec, FormatPNG, &buf))
			assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")), "missing PNG signature")
		})
	}
}

func TestRenderPNGWithoutData(t *testing.T) {
	Init()
	spec := BuildChartSpec(MonthLabels(), Multiple{}, Bar, Display{})
	err := Render(spec, FormatPNG, &bytes.Buffer{})
	assert.ErrorIs(t, err, ErrNoData)
}

func TestRenderHTML(t *testing.T) {
	Init()
	spec := BuildChartSpec(
		MonthLabels(),
		Multiple{
			{Label: "Generation", Data: []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}},
			{Label: "Demand", Data: []float64{2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2}, Type: Line},
		},
		Bar,
		Display{Title: "Generation vs Demand", ShowLegend: true},
	)

	var buf bytes.Buffer
	require.NoError(t, Render(spec, FormatHTML, &buf))
	out := buf.String()
	assert.Contains(t, out, "Generation vs Demand")
	assert.Contains(t, out, "chart-generation-vs-demand")
	assert.Contains(t, out, "echarts")

	r, err := RendererFor(FormatHTML)
	require.NoError(t, err)
	assert.Equal(t, "text/html; charset=utf-8", r.ContentType())
}

func TestRenderSnippet(t *testing.T) {
	Init()
	snippet, err := RenderSnippet(sampleSpec())
	require.NoError(t, err)
	assert.Equal(t, "chart-monthly-energy-production", snippet.ID)
	assert.Equal(t, "Monthly Energy Production", snippet.Title)
	assert.Contains(t, snippet.HTML, `id="chart-monthly-energy-production-container"`)
}

func TestRenderSnippetEscapesTitle(t *testing.T) {
	Init()
	spec := sampleSpec()
	spec.Options.Title = "Output <b>& Losses</b>"

	snippet, err := RenderSnippet(spec)
	require.NoError(t, err)
	assert.Contains(t, snippet.HTML, "<h3>Output &lt;b&gt;&amp; Losses&lt;/b&gt;</h3>")
	assert.Equal(t, "Output <b>& Losses</b>", snippet.Title)
}

func TestChartID(t *testing.T) {
	assert.Equal(t, "chart-annual-energy-mwh", ChartID("Annual Energy (MWh)"))
	assert.Equal(t, "chart", ChartID(""))
	assert.Equal(t, "chart-o-m-costs", ChartID("  O&M costs "))
}
