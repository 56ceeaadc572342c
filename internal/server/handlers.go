package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"renewcalc/internal/config"
	"renewcalc/internal/fetchers"
	"renewcalc/internal/logger"
	"renewcalc/internal/models"
	"renewcalc/internal/reports"
	"renewcalc/internal/storage"
)

// HandleRoot redirects to the latest report, or describes the service when
// none exists yet
func (s *Server) HandleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	if s.Storage != nil {
		latest, err := s.Storage.ListReports(r.Context(), 1)
		if err == nil && len(latest) > 0 {
			http.Redirect(w, r, "/files/"+latest[0].IndexPath, http.StatusFound)
			return
		}
		if err != nil {
			s.log.Warn("failed to look up latest report", logger.Fields{"error": err.Error()})
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"service": "renewcalc",
		"version": config.GetVersion(),
		"endpoints": []string{
			"GET /health",
			"POST /api/scale",
			"POST /api/currency",
			"POST /api/charts?format=json|html|png",
			"GET /api/turbines",
			"POST /api/reports/{solar|wind|hydro}",
			"GET /reports?limit=N",
			"GET /files/{path}",
		},
	})
}

// HandleHealth provides health check endpoint
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	checks := map[string]string{"config": "ok", "storage": "ok"}
	if s.Storage == nil {
		checks["storage"] = "not configured"
	}
	if s.Config != nil && s.Config.MockupMode {
		checks["simulation"] = "mock"
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   config.GetVersion(),
		"checks":    checks,
	})
}

// HandleGenerate generates and stores a report for the technology in the
// path. The body is a scenario carrying either parameters or a result.
func (s *Server) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	tech, err := models.ParseTechnology(strings.TrimPrefix(r.URL.Path, "/api/reports/"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if s.Reports == nil {
		writeError(w, http.StatusServiceUnavailable, "report generation is not configured")
		return
	}

	var scenario models.Scenario
	if err := decodeJSON(r, &scenario); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if scenario.Technology != "" && scenario.Technology != tech {
		writeError(w, http.StatusBadRequest, "scenario technology does not match the URL")
		return
	}
	scenario.Technology = tech

	// Try to acquire the mutex - if already locked, return error immediately
	if !s.generateMutex.TryLock() {
		s.log.Warn("report generation already in progress, rejecting request")
		writeJSON(w, http.StatusConflict, map[string]interface{}{
			"error":   "Report generation already in progress",
			"message": "Another report generation is currently running. Please wait for it to complete before starting a new one.",
			"status":  "conflict",
		})
		return
	}
	defer s.generateMutex.Unlock()

	start := time.Now()
	report, err := s.Reports.GenerateReport(r.Context(), scenario)
	if err != nil {
		status := generateErrorStatus(err)
		s.log.Error("report generation failed", err, logger.Fields{"technology": string(tech), "status": status})
		writeError(w, status, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"status":      "success",
		"report":      report,
		"url":         "/files/" + report.IndexPath,
		"duration_ms": time.Since(start).Milliseconds(),
	})
}

func generateErrorStatus(err error) int {
	switch {
	case errors.Is(err, reports.ErrInvalidScenario):
		return http.StatusBadRequest
	case errors.Is(err, reports.ErrNoSimulator):
		return http.StatusServiceUnavailable
	case errors.Is(err, fetchers.ErrBackendStatus):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// HandleFileProxy serves stored report files
func (s *Server) HandleFileProxy(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	if s.Storage == nil {
		writeError(w, http.StatusServiceUnavailable, "storage not configured")
		return
	}

	filePath, err := storage.CleanPath(strings.TrimPrefix(r.URL.Path, "/files/"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid file path")
		return
	}
	if filePath == "" {
		writeError(w, http.StatusBadRequest, "file path required")
		return
	}

	data, err := s.Storage.GetFile(r.Context(), filePath)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, "file not found")
		return
	case errors.Is(err, storage.ErrInvalidPath):
		writeError(w, http.StatusBadRequest, "invalid file path")
		return
	case err != nil:
		s.log.Error("failed to read file", err, logger.Fields{"path": filePath})
		writeError(w, http.StatusInternalServerError, "failed to read file")
		return
	}

	w.Header().Set("Content-Type", storage.GetContentType(filePath))
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(data)
}

// HandleListReports lists recent reports
func (s *Server) HandleListReports(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	if s.Storage == nil {
		writeError(w, http.StatusServiceUnavailable, "storage not configured")
		return
	}

	list, err := s.Storage.ListReports(r.Context(), parseLimit(r))
	if err != nil {
		s.log.Error("failed to list reports", err)
		writeError(w, http.StatusInternalServerError, "failed to list reports")
		return
	}
	if list == nil {
		list = []storage.ReportInfo{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"reports":   list,
		"count":     len(list),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
