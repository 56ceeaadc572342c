package reports

import (
	"context"
	"fmt"
	"path"

	"renewcalc/internal/logger"
	"renewcalc/internal/storage"
)

// StorageOrchestrator handles storing generated files
type StorageOrchestrator struct {
	storage storage.StorageClient
	log     *logger.Logger
}

// NewStorageOrchestrator creates a new storage orchestrator
func NewStorageOrchestrator(storage storage.StorageClient) *StorageOrchestrator {
	return &StorageOrchestrator{
		storage: storage,
		log:     logger.GetGlobalLogger().WithComponent("orchestrator"),
	}
}

// StoreAllFiles writes every generated file under the report folder and
// returns the stored keys. The index page is written last so a listed report
// is always complete.
func (so *StorageOrchestrator) StoreAllFiles(ctx context.Context, files *GeneratedFiles) ([]string, error) {
	if err := so.storage.CreateDir(ctx, files.FolderPath); err != nil {
		return nil, fmt.Errorf("failed to create report folder: %w", err)
	}

	stored := make([]string, 0, len(files.Files))
	for _, name := range files.Names() {
		key := path.Join(files.FolderPath, name)
		if err := so.storage.StoreFile(ctx, key, files.Files[name]); err != nil {
			return stored, fmt.Errorf("failed to store %s: %w", name, err)
		}
		stored = append(stored, key)
	}

	so.log.Info("report stored", logger.Fields{"folder": files.FolderPath, "files": len(stored)})
	return stored, nil
}
