package storage

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when a file does not exist
	ErrNotFound = errors.New("file not found")
	// ErrInvalidPath is returned for keys that would escape the storage root
	ErrInvalidPath = errors.New("invalid storage path")
)

// StorageClient defines the interface for report storage. Paths are
// slash-separated keys relative to the storage root.
type StorageClient interface {
	// Close closes the storage client
	Close() error

	// CreateDir creates a directory (and any necessary parent directories)
	CreateDir(ctx context.Context, dirPath string) error

	// StoreFile stores a file at the specified path
	StoreFile(ctx context.Context, filePath string, fileData []byte) error

	// GetFile retrieves a file; missing files yield ErrNotFound
	GetFile(ctx context.Context, filePath string) ([]byte, error)

	// ListDir lists file paths under a directory
	ListDir(ctx context.Context, dirPath string, recursive bool) ([]string, error)

	// FileExists checks if a file exists at the specified path
	FileExists(ctx context.Context, filePath string) (bool, error)

	// ListReports lists stored reports, newest first. limit <= 0 means all.
	ListReports(ctx context.Context, limit int) ([]ReportInfo, error)
}
