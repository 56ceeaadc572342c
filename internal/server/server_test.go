package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"renewcalc/internal/charts"
	"renewcalc/internal/config"
	"renewcalc/internal/models"
	"renewcalc/internal/reports"
	"renewcalc/internal/storage"
)

func newTestServer(t *testing.T) (*Server, storage.StorageClient) {
	t.Helper()
	charts.Init()

	store, err := storage.NewLocalStorageClient(t.TempDir())
	require.NoError(t, err)

	cfg := &config.Config{Port: "0", StorageMode: config.StorageLocal}
	svc := reports.NewReportService(reports.NewReportGenerator(), store)
	srv := NewServer(cfg, store, svc, nil)
	t.Cleanup(func() { _ = srv.Close() })
	return srv, store
}

func do(t *testing.T, srv *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rr := httptest.NewRecorder()
	srv.SetupRoutes().ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out), rr.Body.String())
	return out
}

func TestHealthEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := do(t, srv, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "healthy", decodeBody(t, rr)["status"])

	rr = do(t, srv, http.MethodPost, "/health", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.Equal(t, http.MethodGet, rr.Header().Get("Allow"))
}

func TestScaleEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := do(t, srv, http.MethodPost, "/api/scale", `{"family":"energy","value":2500}`)
	require.Equal(t, http.StatusOK, rr.Code)
	body := decodeBody(t, rr)
	assert.Equal(t, 2.5, body["value"])
	assert.Equal(t, "GWh", body["unit"])
	assert.Equal(t, "2.500 GWh", body["text"])

	rr = do(t, srv, http.MethodPost, "/api/scale", `{"family":"power","values":[0.5, 0.25]}`)
	require.Equal(t, http.StatusOK, rr.Code)
	body = decodeBody(t, rr)
	assert.Equal(t, "kW", body["unit"])
	assert.Equal(t, []interface{}{500.0, 250.0}, body["values"])
	assert.Equal(t, []interface{}{"500.000", "250.000"}, body["texts"])
}

func TestScaleEndpointErrors(t *testing.T) {
	srv, _ := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"unknown family", `{"family":"volume","value":1}`},
		{"missing value", `{"family":"energy"}`},
		{"both value and values", `{"family":"energy","value":1,"values":[1]}`},
		{"malformed", `{"family":`},
		{"unknown field", `{"family":"energy","value":1,"extra":true}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, srv, http.MethodPost, "/api/scale", tt.body)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.NotEmpty(t, decodeBody(t, rr)["error"])
		})
	}
}

func TestCurrencyEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := do(t, srv, http.MethodPost, "/api/currency", `{"value":1234567.891}`)
	require.Equal(t, http.StatusOK, rr.Code)
	body := decodeBody(t, rr)
	assert.Equal(t, "1,234,567.891", body["formatted"])
	assert.Equal(t, "$ 1,234,567.891", body["display"])
}

const chartBody = `{
	"labels": ["Jan", "Feb", "Mar"],
	"display": {"title": "Monthly Energy", "yAxisTitle": "MWh"},
	"series": [
		{"label": "Energy", "data": [1, 2, 3]},
		{"label": "Target", "data": [2, 2, 2], "type": "line"}
	]
}`

func TestChartEndpointJSON(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := do(t, srv, http.MethodPost, "/api/charts", chartBody)
	require.Equal(t, http.StatusOK, rr.Code)

	var spec charts.ChartSpec
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &spec))
	assert.Equal(t, charts.Bar, spec.Type)
	require.Len(t, spec.Series, 2)
	assert.Equal(t, charts.Line, spec.Series[1].Type)
	assert.True(t, spec.Series[1].Fill)
	assert.True(t, spec.Options.BeginAtZero)
}

func TestChartEndpointRendered(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := do(t, srv, http.MethodPost, "/api/charts?format=png", chartBody)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "image/png", rr.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rr.Body.Bytes(), []byte("\x89PNG")))

	rr = do(t, srv, http.MethodPost, "/api/charts?format=html", chartBody)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rr.Body.String(), "chart-monthly-energy")

	rr = do(t, srv, http.MethodPost, "/api/charts?format=svg", chartBody)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestChartEndpointSinglePointLine(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := do(t, srv, http.MethodPost, "/api/charts?format=png",
		`{"labels":["Year 0"],"defaultType":"line","single":{"label":"Receipts","data":[5]}}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.True(t, bytes.HasPrefix(rr.Body.Bytes(), []byte("\x89PNG")))
}

func TestChartEndpointNoData(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := do(t, srv, http.MethodPost, "/api/charts?format=png", `{"labels":[],"single":{"label":"x","data":[]}}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestTurbinesEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := do(t, srv, http.MethodGet, "/api/turbines", "")
	require.Equal(t, http.StatusOK, rr.Code)
	body := decodeBody(t, rr)
	assert.Len(t, body["turbines"], 5)
	assert.Len(t, body["years"], 8)
}

func solarScenarioBody(t *testing.T) string {
	t.Helper()
	result := models.SolarResult{
		AnnualEnergy:   2500,
		CapacityFactor: 18.5,
		SystemCapacity: 1.5,
		MonthlyEnergy:  []float64{150, 170, 200, 230, 260, 280, 290, 270, 230, 190, 140, 90},
		Financials: models.Financials{
			InitialCost: 2500000,
			Cashflow:    []float64{-2500000, 300000, 300000},
		},
	}
	data, err := json.Marshal(models.Scenario{Name: "Roof", SolarResult: &result})
	require.NoError(t, err)
	return string(data)
}

func TestGenerateReportAndServeFiles(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := do(t, srv, http.MethodPost, "/api/reports/solar", solarScenarioBody(t))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	body := decodeBody(t, rr)
	url, ok := body["url"].(string)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(url, "/files/"))
	assert.True(t, strings.HasSuffix(url, "/index.html"))

	page := do(t, srv, http.MethodGet, url, "")
	require.Equal(t, http.StatusOK, page.Code)
	assert.Contains(t, page.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, page.Body.String(), "Solar Feasibility Report")

	list := do(t, srv, http.MethodGet, "/reports?limit=5", "")
	require.Equal(t, http.StatusOK, list.Code)
	assert.Equal(t, 1.0, decodeBody(t, list)["count"])

	root := do(t, srv, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusFound, root.Code)
	assert.Equal(t, url, root.Header().Get("Location"))
}

func TestGenerateReportErrors(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := do(t, srv, http.MethodPost, "/api/reports/tidal", `{}`)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = do(t, srv, http.MethodPost, "/api/reports/wind", solarScenarioBody(t))
	assert.Equal(t, http.StatusBadRequest, rr.Code, "solar result does not satisfy a wind scenario")

	rr = do(t, srv, http.MethodPost, "/api/reports/wind", `{"technology":"solar"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, srv, http.MethodGet, "/api/reports/solar", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestGenerateReportWithoutSimulator(t *testing.T) {
	srv, _ := newTestServer(t)

	body := `{"wind":{"location":{"latitude":40,"longitude":-100},"financial":{"analysisPeriod":20,"interestRate":5,"costOfEnergy":0.1},
		"turbine":"GE 1.5sle","year":2010,"numberOfSimulations":3}}`
	rr := do(t, srv, http.MethodPost, "/api/reports/wind", body)
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestGenerateReportConflict(t *testing.T) {
	srv, _ := newTestServer(t)

	srv.generateMutex.Lock()
	defer srv.generateMutex.Unlock()

	rr := do(t, srv, http.MethodPost, "/api/reports/solar", solarScenarioBody(t))
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, "conflict", decodeBody(t, rr)["status"])
}

func TestFileProxyErrors(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := do(t, srv, http.MethodGet, "/files/2025/09/17/missing.png", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	req := httptest.NewRequest(http.MethodGet, "/files/x", nil)
	req.URL.Path = "/files/../secret.txt"
	rr = httptest.NewRecorder()
	srv.HandleFileProxy(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, srv, http.MethodGet, "/files/", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRootWithoutReports(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := do(t, srv, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "renewcalc", decodeBody(t, rr)["service"])

	rr = do(t, srv, http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestParseLimit(t *testing.T) {
	for query, want := range map[string]int{"": 10, "?limit=3": 3, "?limit=0": 10, "?limit=abc": 10, "?limit=500": 100} {
		req := httptest.NewRequest(http.MethodGet, "/reports"+query, nil)
		assert.Equal(t, want, parseLimit(req), query)
	}
}

func TestRunShutsDownOnCancel(t *testing.T) {
	srv, _ := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
