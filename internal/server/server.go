package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"renewcalc/internal/config"
	"renewcalc/internal/logger"
	"renewcalc/internal/models"
	"renewcalc/internal/reports"
	"renewcalc/internal/storage"
)

const shutdownTimeout = 30 * time.Second

// Server represents the main application server
type Server struct {
	Config  *config.Config
	Storage storage.StorageClient
	Reports *reports.ReportService
	Catalog *models.TurbineCatalog

	generateMutex sync.Mutex
	log           *logger.Logger
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config, store storage.StorageClient, svc *reports.ReportService, catalog *models.TurbineCatalog) *Server {
	if catalog == nil {
		catalog = models.DefaultTurbineCatalog()
	}
	return &Server{
		Config:  cfg,
		Storage: store,
		Reports: svc,
		Catalog: catalog,
		log:     logger.GetGlobalLogger().WithComponent("server"),
	}
}

// SetupRoutes configures HTTP routes for the server
func (s *Server) SetupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", s.HandleHealth)
	mux.HandleFunc("/api/scale", s.HandleScale)
	mux.HandleFunc("/api/currency", s.HandleCurrency)
	mux.HandleFunc("/api/charts", s.HandleChart)
	mux.HandleFunc("/api/turbines", s.HandleTurbines)
	mux.HandleFunc("/api/reports/", s.HandleGenerate)
	mux.HandleFunc("/reports", s.HandleListReports)
	mux.HandleFunc("/files/", s.HandleFileProxy)

	// Handle root path last (catch-all)
	mux.HandleFunc("/", s.HandleRoot)

	return mux
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:         ":" + s.Config.Port,
		Handler:      s.SetupRoutes(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // report generation includes simulation
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server listening", logger.Fields{"port": s.Config.Port})
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("HTTP server error: %w", err)
	case <-ctx.Done():
	}

	s.log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}
	s.log.Info("server stopped")
	return nil
}

// Close cleans up server resources
func (s *Server) Close() error {
	if s.Storage != nil {
		return s.Storage.Close()
	}
	return nil
}
