package reports

import (
	"renewcalc/internal/config"
	"renewcalc/internal/fetchers"
	"renewcalc/internal/llm"
	"renewcalc/internal/logger"
	"renewcalc/internal/mocks"
	"renewcalc/internal/models"
)

// NewSimulatorFromConfig returns the mock service in mockup mode and the
// backend client otherwise
func NewSimulatorFromConfig(cfg *config.Config) fetchers.Simulator {
	if cfg.MockupMode {
		return mocks.NewMockService(cfg.MocksDir)
	}
	return fetchers.NewSimulationClient(fetchers.ClientConfig{
		BaseURL: cfg.SimulationURL,
		Timeout: cfg.SimulationTimeout,
		Retries: cfg.SimulationRetries,
	})
}

// NewNarratorFromConfig picks the narrative source: the canned narrative in
// mockup mode, OpenAI when a key is set, nil (template only) otherwise
func NewNarratorFromConfig(cfg *config.Config) Narrator {
	log := logger.GetGlobalLogger().WithComponent("reports")
	if cfg.MockupMode {
		text, err := mocks.NewMockService(cfg.MocksDir).LoadMockNarrative()
		if err == nil {
			return StaticNarrator(text)
		}
		log.Warn("mock narrative unavailable, using template", logger.Fields{"error": err.Error()})
		return nil
	}
	if cfg.NarrativeEnabled() {
		return llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	}
	return nil
}

// NewGeneratorFromConfig wires a report generator for the configured
// simulation and narrative sources
func NewGeneratorFromConfig(cfg *config.Config, catalog *models.TurbineCatalog) *ReportGenerator {
	opts := []GeneratorOption{
		WithSimulator(NewSimulatorFromConfig(cfg)),
		WithTurbineCatalog(catalog),
	}
	if n := NewNarratorFromConfig(cfg); n != nil {
		opts = append(opts, WithNarrator(n))
	}
	return NewReportGenerator(opts...)
}
