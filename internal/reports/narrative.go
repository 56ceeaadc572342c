package reports

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"strings"
	"text/template"

	"renewcalc/internal/llm"
)

// Narrator writes the markdown narrative of a report
type Narrator interface {
	Narrate(ctx context.Context, req llm.NarrativeRequest) (string, error)
}

// NarrativeRequest converts a view into the facts handed to a narrator
func NarrativeRequest(view ResultsView) llm.NarrativeRequest {
	facts := make([]llm.Fact, 0, len(view.Metrics))
	for _, m := range view.Metrics {
		facts = append(facts, llm.Fact{Label: m.Label, Value: m.Value})
	}
	return llm.NarrativeRequest{
		Technology: string(view.Technology),
		Title:      view.Title,
		Facts:      facts,
	}
}

const narrativeTemplate = `## Summary

This {{ md .Technology }} project is estimated to produce **{{ fact "Annual" }}** per year
{{- with fact "Capacity Factor" }} at a capacity factor of {{ . }}{{ end }}.
{{- with fact "System Capacity" }} The installed capacity is {{ . }}.{{ end }}

## Economics

| Item | Value |
|------|-------|
{{- range .Facts }}
| {{ md .Label }} | {{ md .Value }} |
{{- end }}

{{ with fact "Payback Period" }}The initial investment is recovered after {{ . }}.{{ end }}
These figures come from a single simulation and do not include financing or tax effects.
`

// TemplateNarrator fills a fixed markdown template. It is used when no LLM is
// configured and as the fallback when the LLM call fails.
type TemplateNarrator struct {
	tmpl *template.Template
}

// NewTemplateNarrator parses the narrative template
func NewTemplateNarrator() *TemplateNarrator {
	return &TemplateNarrator{tmpl: template.Must(template.New("narrative").Funcs(template.FuncMap{
		"fact": func(string) string { return "" },
		"md":   markdownText,
	}).Parse(narrativeTemplate))}
}

// Narrate renders the template for the request
func (n *TemplateNarrator) Narrate(ctx context.Context, req llm.NarrativeRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	tmpl, err := n.tmpl.Clone()
	if err != nil {
		return "", fmt.Errorf("failed to clone narrative template: %w", err)
	}
	tmpl.Funcs(template.FuncMap{"fact": func(prefix string) string {
		for _, f := range req.Facts {
			if strings.HasPrefix(f.Label, prefix) {
				return markdownText(f.Value)
			}
		}
		return ""
	}})

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, req); err != nil {
		return "", fmt.Errorf("failed to render narrative: %w", err)
	}
	return buf.String(), nil
}

var markdownTableEscaper = strings.NewReplacer("|", `\|`)

// markdownText makes a metric value safe to place in markdown prose or a
// table cell: HTML is escaped and pipes cannot split a cell
func markdownText(s string) string {
	return markdownTableEscaper.Replace(html.EscapeString(s))
}

// StaticNarrator always returns the same text, e.g. the canned mock narrative
type StaticNarrator string

// Narrate returns the static text
func (s StaticNarrator) Narrate(ctx context.Context, _ llm.NarrativeRequest) (string, error) {
	return string(s), ctx.Err()
}
