package mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"renewcalc/internal/logger"
	"renewcalc/internal/models"
)

// MockService serves canned simulation results and narrative from disk. It
// satisfies fetchers.Simulator so the report pipeline can run without a
// simulation backend.
type MockService struct {
	mocksDir string
	log      *logger.Logger
}

// NewMockService creates a new mock service reading from mocksDir
func NewMockService(mocksDir string) *MockService {
	return &MockService{
		mocksDir: mocksDir,
		log:      logger.GetGlobalLogger().WithComponent("mocks"),
	}
}

// ResultPath returns the canned result file for a technology
func (m *MockService) ResultPath(tech models.Technology) string {
	return filepath.Join(m.mocksDir, string(tech)+"_result.json")
}

// FetchSolar returns the canned solar result
func (m *MockService) FetchSolar(ctx context.Context, _ models.SolarParams) (*models.SolarResult, error) {
	var r models.SolarResult
	if err := m.load(ctx, models.Solar, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// FetchWind returns the canned wind result, tagged with the requested turbine
func (m *MockService) FetchWind(ctx context.Context, p models.WindParams) (*models.WindResult, error) {
	var r models.WindResult
	if err := m.load(ctx, models.Wind, &r); err != nil {
		return nil, err
	}
	if p.Turbine != "" {
		r.Turbine = p.Turbine
	}
	return &r, nil
}

// FetchHydro returns the canned hydro result
func (m *MockService) FetchHydro(ctx context.Context, _ models.HydroParams) (*models.HydroResult, error) {
	var r models.HydroResult
	if err := m.load(ctx, models.Hydro, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// LoadMockNarrative loads the canned report narrative (markdown)
func (m *MockService) LoadMockNarrative() (string, error) {
	content, err := os.ReadFile(filepath.Join(m.mocksDir, "narrative.md"))
	if err != nil {
		return "", fmt.Errorf("failed to read mock narrative: %w", err)
	}
	return string(content), nil
}

func (m *MockService) load(ctx context.Context, tech models.Technology, target interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path := m.ResultPath(tech)
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read mock %s result: %w", tech, err)
	}
	if err := json.Unmarshal(content, target); err != nil {
		return fmt.Errorf("failed to unmarshal mock %s result: %w", tech, err)
	}

	m.log.Info("loaded mock simulation result", logger.Fields{"technology": tech, "file": path})
	return nil
}
