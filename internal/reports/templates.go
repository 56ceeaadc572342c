package reports

import (
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/report.html
var templateFS embed.FS

// TemplateLoader handles loading the HTML report template
type TemplateLoader struct{}

// NewTemplateLoader creates a new template loader
func NewTemplateLoader() *TemplateLoader {
	return &TemplateLoader{}
}

// LoadHTMLTemplate parses the embedded report template
func (t *TemplateLoader) LoadHTMLTemplate() (*template.Template, error) {
	content, err := templateFS.ReadFile("templates/report.html")
	if err != nil {
		return nil, fmt.Errorf("failed to read report template: %w", err)
	}
	tmpl, err := template.New("report").Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse report template: %w", err)
	}
	return tmpl, nil
}
