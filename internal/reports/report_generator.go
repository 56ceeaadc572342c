package reports

import (
	"context"
	"errors"
	"fmt"
	"time"

	"renewcalc/internal/fetchers"
	"renewcalc/internal/logger"
	"renewcalc/internal/models"
)

// ErrNoSimulator is returned when a scenario without a result is generated
// and no simulator is configured
var ErrNoSimulator = errors.New("scenario has no result and no simulator is configured")

// ErrInvalidScenario wraps scenario validation failures
var ErrInvalidScenario = errors.New("invalid scenario")

// ReportGenerator turns a scenario into a complete set of report files
type ReportGenerator struct {
	simulator fetchers.Simulator
	catalog   *models.TurbineCatalog
	presenter *Presenter
	narrator  Narrator
	fallback  *TemplateNarrator
	files     *FileGenerator
	now       func() time.Time
	log       *logger.Logger
}

// GeneratorOption configures a ReportGenerator
type GeneratorOption func(*ReportGenerator)

// WithSimulator sets the simulator used for scenarios without a result
func WithSimulator(s fetchers.Simulator) GeneratorOption {
	return func(rg *ReportGenerator) { rg.simulator = s }
}

// WithTurbineCatalog sets the catalog wind scenarios resolve turbine models against
func WithTurbineCatalog(c *models.TurbineCatalog) GeneratorOption {
	return func(rg *ReportGenerator) { rg.catalog = c }
}

// WithNarrator sets the narrative writer; the template narrator remains the fallback
func WithNarrator(n Narrator) GeneratorOption {
	return func(rg *ReportGenerator) { rg.narrator = n }
}

// WithClock overrides the report timestamp source
func WithClock(now func() time.Time) GeneratorOption {
	return func(rg *ReportGenerator) { rg.now = now }
}

// NewReportGenerator creates a new report generator
func NewReportGenerator(opts ...GeneratorOption) *ReportGenerator {
	rg := &ReportGenerator{
		catalog:   models.DefaultTurbineCatalog(),
		presenter: NewPresenter(),
		fallback:  NewTemplateNarrator(),
		files:     NewFileGenerator(NewHTMLBuilder()),
		now:       time.Now,
		log:       logger.GetGlobalLogger().WithComponent("reports"),
	}
	for _, opt := range opts {
		opt(rg)
	}
	return rg
}

// Resolve returns a copy of the scenario with its result filled in, running
// the simulation when the scenario carries only parameters
func (rg *ReportGenerator) Resolve(ctx context.Context, s models.Scenario) (models.Scenario, error) {
	if s.Technology == models.Wind && s.Wind != nil && !s.HasResult() {
		params := *s.Wind
		if err := params.ApplyTurbine(rg.catalog); err != nil {
			return s, fmt.Errorf("%w: %w", ErrInvalidScenario, err)
		}
		s.Wind = &params
	}
	if err := s.Validate(); err != nil {
		return s, fmt.Errorf("%w: %w", ErrInvalidScenario, err)
	}
	if s.HasResult() {
		return s, nil
	}
	if rg.simulator == nil {
		return s, ErrNoSimulator
	}

	start := time.Now()
	var err error
	switch s.Technology {
	case models.Solar:
		s.SolarResult, err = rg.simulator.FetchSolar(ctx, *s.Solar)
	case models.Wind:
		s.WindResult, err = rg.simulator.FetchWind(ctx, *s.Wind)
		if err == nil && s.WindResult.Turbine == "" {
			s.WindResult.Turbine = s.Wind.Turbine
		}
	case models.Hydro:
		s.HydroResult, err = rg.simulator.FetchHydro(ctx, *s.Hydro)
	}
	if err != nil {
		return s, fmt.Errorf("%s simulation failed: %w", s.Technology, err)
	}

	rg.log.Info("simulation completed", logger.Fields{
		"technology": string(s.Technology),
		"duration":   time.Since(start).String(),
	})
	return s, nil
}

// Generate resolves, presents and narrates the scenario and renders every
// report file
func (rg *ReportGenerator) Generate(ctx context.Context, s models.Scenario) (*GeneratedFiles, error) {
	s, err := rg.Resolve(ctx, s)
	if err != nil {
		return nil, err
	}

	view, err := rg.presenter.Present(s)
	if err != nil {
		return nil, err
	}

	narrative := rg.narrate(ctx, view)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	files, err := rg.files.GenerateAllFiles(s, view, narrative, rg.now())
	if err != nil {
		return nil, fmt.Errorf("failed to generate report files: %w", err)
	}

	rg.log.Info("report generated", logger.Fields{
		"id":         files.ID.String(),
		"technology": string(s.Technology),
		"folder":     files.FolderPath,
		"files":      len(files.Files),
	})
	return files, nil
}

// narrate asks the configured narrator and falls back to the template
func (rg *ReportGenerator) narrate(ctx context.Context, view ResultsView) string {
	req := NarrativeRequest(view)
	if rg.narrator != nil {
		text, err := rg.narrator.Narrate(ctx, req)
		if err == nil && text != "" {
			return text
		}
		rg.log.Warn("narrator failed, using template narrative", logger.Fields{"error": fmt.Sprint(err)})
	}

	text, err := rg.fallback.Narrate(ctx, req)
	if err != nil {
		rg.log.Warn("template narrative failed", logger.Fields{"error": err.Error()})
		return ""
	}
	return text
}
