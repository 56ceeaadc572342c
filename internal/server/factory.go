package server

import (
	"context"
	"fmt"

	"renewcalc/internal/config"
	"renewcalc/internal/logger"
	"renewcalc/internal/models"
	"renewcalc/internal/reports"
	"renewcalc/internal/storage"
)

// NewServerFromConfig wires storage, turbine catalog and report generation
// from the configuration
func NewServerFromConfig(ctx context.Context, cfg *config.Config) (*Server, error) {
	catalog, err := models.LoadTurbineCatalog(cfg.TurbineCatalog)
	if err != nil {
		return nil, fmt.Errorf("failed to load turbine catalog: %w", err)
	}

	store, err := storage.NewStorageClient(ctx, cfg)
	if err != nil {
		return nil, err
	}

	generator := reports.NewGeneratorFromConfig(cfg, catalog)
	srv := NewServer(cfg, store, reports.NewReportService(generator, store), catalog)

	srv.log.Info("server configured", logger.Fields{
		"storage":    cfg.StorageMode,
		"mockup":     cfg.MockupMode,
		"narrative":  cfg.NarrativeEnabled(),
		"simulation": cfg.SimulationURL,
		"turbines":   len(catalog.Turbines),
	})
	return srv, nil
}
