package reports

import (
	"context"
	"path"

	"renewcalc/internal/models"
	"renewcalc/internal/storage"
)

// StoredReport describes a generated and stored report
type StoredReport struct {
	ID         string            `json:"id"`
	Technology models.Technology `json:"technology"`
	Folder     string            `json:"folder"`
	IndexPath  string            `json:"indexPath"`
	Files      []string          `json:"files"`
	View       ResultsView       `json:"results"`
}

// ReportService generates reports and stores them
type ReportService struct {
	generator    *ReportGenerator
	orchestrator *StorageOrchestrator
}

// NewReportService creates a new report service
func NewReportService(generator *ReportGenerator, store storage.StorageClient) *ReportService {
	return &ReportService{
		generator:    generator,
		orchestrator: NewStorageOrchestrator(store),
	}
}

// Generator returns the underlying report generator
func (rs *ReportService) Generator() *ReportGenerator {
	return rs.generator
}

// GenerateReport runs the full pipeline for one scenario
func (rs *ReportService) GenerateReport(ctx context.Context, s models.Scenario) (*StoredReport, error) {
	files, err := rs.generator.Generate(ctx, s)
	if err != nil {
		return nil, err
	}

	stored, err := rs.orchestrator.StoreAllFiles(ctx, files)
	if err != nil {
		return nil, err
	}

	return &StoredReport{
		ID:         files.ID.String(),
		Technology: files.Technology,
		Folder:     files.FolderPath,
		IndexPath:  path.Join(files.FolderPath, IndexFile),
		Files:      stored,
		View:       files.View,
	}, nil
}
