package reports

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"renewcalc/internal/charts"
	"renewcalc/internal/logger"
	"renewcalc/internal/models"
	"renewcalc/internal/storage"
)

// Report file names
const (
	IndexFile     = storage.ReportIndex
	ResultsFile   = "results.json"
	ScenarioFile  = "scenario.yaml"
	NarrativeFile = "narrative.md"
	WorkbookFile  = "report.xlsx"
)

// GeneratedFiles holds all files produced for one report
type GeneratedFiles struct {
	ID         uuid.UUID
	Technology models.Technology
	FolderPath string
	Created    time.Time
	View       ResultsView
	Files      map[string][]byte
}

// Names returns the file names in storage order: assets first, the index page last
func (g *GeneratedFiles) Names() []string {
	names := make([]string, 0, len(g.Files))
	for name := range g.Files {
		if name != IndexFile {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	if _, ok := g.Files[IndexFile]; ok {
		names = append(names, IndexFile)
	}
	return names
}

// FileGenerator renders the individual report files
type FileGenerator struct {
	htmlBuilder *HTMLBuilder
	log         *logger.Logger
}

// NewFileGenerator creates a new file generator. Chart rendering needs
// charts.Init to have run.
func NewFileGenerator(htmlBuilder *HTMLBuilder) *FileGenerator {
	return &FileGenerator{
		htmlBuilder: htmlBuilder,
		log:         logger.GetGlobalLogger().WithComponent("files"),
	}
}

// GenerateAllFiles renders chart images, data files, the workbook and the
// HTML page for a presented scenario
func (fg *FileGenerator) GenerateAllFiles(s models.Scenario, view ResultsView, narrative string, created time.Time) (*GeneratedFiles, error) {
	files := &GeneratedFiles{
		ID:         uuid.New(),
		Technology: s.Technology,
		FolderPath: storage.GenerateReportFolderPath(string(s.Technology), created),
		Created:    created,
		View:       view,
		Files:      make(map[string][]byte),
	}

	images, err := fg.generateChartImages(view, files)
	if err != nil {
		return nil, err
	}

	resultsJSON, err := json.MarshalIndent(view, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal results: %w", err)
	}
	files.Files[ResultsFile] = resultsJSON

	scenarioYAML, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal scenario: %w", err)
	}
	files.Files[ScenarioFile] = scenarioYAML

	if narrative != "" {
		files.Files[NarrativeFile] = []byte(narrative)
	}

	workbook, err := BuildWorkbook(view)
	if err != nil {
		return nil, err
	}
	files.Files[WorkbookFile] = workbook

	page, err := fg.htmlBuilder.BuildReport(ReportPage{
		ID:        files.ID.String(),
		Scenario:  s.Name,
		View:      view,
		Narrative: narrative,
		Images:    images,
		Downloads: []string{WorkbookFile, ResultsFile, ScenarioFile},
		Generated: created,
	})
	if err != nil {
		return nil, err
	}
	files.Files[IndexFile] = []byte(page)

	return files, nil
}

// generateChartImages renders a PNG per chart and returns chart ID -> file name.
// Charts without plottable data are skipped.
func (fg *FileGenerator) generateChartImages(view ResultsView, files *GeneratedFiles) (map[string]string, error) {
	images := make(map[string]string)
	for _, spec := range view.Charts {
		id := charts.ChartID(spec.Options.Title)
		var buf bytes.Buffer
		err := charts.Render(spec, charts.FormatPNG, &buf)
		if errors.Is(err, charts.ErrNoData) {
			fg.log.Warn("skipping chart image without data", logger.Fields{"chart": id})
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to render chart %s: %w", id, err)
		}
		name := ChartFileName(spec)
		files.Files[name] = buf.Bytes()
		images[id] = name
	}
	return images, nil
}
