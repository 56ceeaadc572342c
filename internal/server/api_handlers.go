package server

import (
	"bytes"
	"errors"
	"net/http"

	"renewcalc/internal/charts"
	"renewcalc/internal/logger"
	"renewcalc/internal/models"
	"renewcalc/internal/units"
)

// ScaleRequest asks for one value or one series to be scaled
type ScaleRequest struct {
	Family string    `json:"family"`
	Value  *float64  `json:"value,omitempty"`
	Values []float64 `json:"values,omitempty"`
}

type scaledValueResponse struct {
	units.ScaledValue
	Text string `json:"text"`
}

type scaledSeriesResponse struct {
	units.ScaledSeries
	Texts []string `json:"texts"`
}

// HandleScale scales a base-unit value or series into its best-fit unit
func (s *Server) HandleScale(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req ScaleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	family, err := units.ParseFamily(req.Family)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	switch {
	case req.Value != nil && req.Values != nil:
		writeError(w, http.StatusBadRequest, "set either value or values, not both")
	case req.Value != nil:
		scaled := units.ScaleValue(*req.Value, family)
		writeJSON(w, http.StatusOK, scaledValueResponse{ScaledValue: scaled, Text: scaled.String()})
	case req.Values != nil:
		scaled := units.ScaleSeries(req.Values, family)
		writeJSON(w, http.StatusOK, scaledSeriesResponse{ScaledSeries: scaled, Texts: scaled.Texts()})
	default:
		writeError(w, http.StatusBadRequest, "value or values is required")
	}
}

// CurrencyRequest asks for a dollar amount to be formatted
type CurrencyRequest struct {
	Value float64 `json:"value"`
}

// HandleCurrency formats a dollar amount with thousands separators
func (s *Server) HandleCurrency(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req CurrencyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	formatted := units.FormatCurrency(req.Value)
	writeJSON(w, http.StatusOK, map[string]string{
		"formatted": formatted,
		"display":   "$ " + formatted,
	})
}

// HandleChart builds a chart and returns it as a JSON spec (default), an
// interactive HTML page (?format=html) or a PNG image (?format=png)
func (s *Server) HandleChart(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req charts.ChartRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	spec, err := req.Build()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" || format == "json" {
		writeJSON(w, http.StatusOK, spec)
		return
	}

	renderer, err := charts.RendererFor(charts.Format(format))
	if errors.Is(err, charts.ErrUnknownFormat) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}

	var buf bytes.Buffer
	if err := renderer.Render(spec, &buf); err != nil {
		if errors.Is(err, charts.ErrNoData) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		s.log.Error("chart rendering failed", err, logger.Fields{"format": format})
		writeError(w, http.StatusInternalServerError, "chart rendering failed")
		return
	}

	w.Header().Set("Content-Type", renderer.ContentType())
	_, _ = w.Write(buf.Bytes())
}

// HandleTurbines lists the turbine catalog and the simulated wind years
func (s *Server) HandleTurbines(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	years := make([]int, 0, models.LastWindYear-models.FirstWindYear+1)
	for y := models.FirstWindYear; y <= models.LastWindYear; y++ {
		years = append(years, y)
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"turbines": s.Catalog.Turbines,
		"years":    years,
	})
}
