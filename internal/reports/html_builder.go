package reports

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"renewcalc/internal/charts"
	"renewcalc/internal/config"
	"renewcalc/internal/logger"
)

// HTMLBuilder handles HTML report generation
type HTMLBuilder struct {
	templateLoader *TemplateLoader
	markdown       goldmark.Markdown
	log            *logger.Logger
}

// NewHTMLBuilder creates a new HTML builder
func NewHTMLBuilder() *HTMLBuilder {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
		),
	)

	return &HTMLBuilder{
		templateLoader: NewTemplateLoader(),
		markdown:       md,
		log:            logger.GetGlobalLogger().WithComponent("html"),
	}
}

// ConvertMarkdownToHTML converts markdown content to HTML
func (h *HTMLBuilder) ConvertMarkdownToHTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := h.markdown.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("failed to convert markdown: %w", err)
	}
	return buf.String(), nil
}

// ReportPage is the input for one HTML report
type ReportPage struct {
	ID        string
	Scenario  string
	View      ResultsView
	Narrative string            // markdown
	Images    map[string]string // chart ID -> relative image link
	Downloads []string
	Generated time.Time
}

type metricGroup struct {
	Name    string
	Metrics []Metric
}

type chartBlock struct {
	charts.ChartSnippet
	HTML  template.HTML
	Image string
}

type templateData struct {
	ID          string
	Title       string
	Scenario    string
	GeneratedAt string
	Version     string
	Groups      []metricGroup
	Narrative   template.HTML
	Charts      []chartBlock
	Downloads   []string
}

// BuildReport renders the complete HTML page
func (h *HTMLBuilder) BuildReport(page ReportPage) (string, error) {
	narrative, err := h.ConvertMarkdownToHTML(page.Narrative)
	if err != nil {
		return "", err
	}

	data := templateData{
		ID:          page.ID,
		Title:       page.View.Title,
		Scenario:    page.Scenario,
		GeneratedAt: page.Generated.UTC().Format("2006-01-02 15:04:05 UTC"),
		Version:     config.GetVersion(),
		Narrative:   template.HTML(narrative),
		Downloads:   page.Downloads,
	}
	for _, g := range page.View.Groups() {
		data.Groups = append(data.Groups, metricGroup{Name: g, Metrics: page.View.MetricsIn(g)})
	}

	for _, spec := range page.View.Charts {
		snippet, err := charts.RenderSnippet(spec)
		if err != nil {
			return "", err
		}
		data.Charts = append(data.Charts, chartBlock{
			ChartSnippet: snippet,
			HTML:         template.HTML(snippet.HTML),
			Image:        page.Images[snippet.ID],
		})
	}

	tmpl, err := h.templateLoader.LoadHTMLTemplate()
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	h.log.Debug("built HTML report", logger.Fields{"id": page.ID, "charts": len(data.Charts), "bytes": buf.Len()})
	return buf.String(), nil
}
