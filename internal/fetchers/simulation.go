package fetchers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"renewcalc/internal/logger"
	"renewcalc/internal/models"
)

// ErrBackendStatus is returned when the simulation backend answers with a
// non-200 status
var ErrBackendStatus = errors.New("simulation backend returned an error status")

// Simulator produces simulation results for each technology
type Simulator interface {
	FetchSolar(ctx context.Context, p models.SolarParams) (*models.SolarResult, error)
	FetchWind(ctx context.Context, p models.WindParams) (*models.WindResult, error)
	FetchHydro(ctx context.Context, p models.HydroParams) (*models.HydroResult, error)
}

// ClientConfig configures the simulation backend client
type ClientConfig struct {
	BaseURL   string
	Timeout   time.Duration
	Retries   int
	RetryWait time.Duration
}

// SimulationClient calls the simulation backend over HTTP
type SimulationClient struct {
	client *resty.Client
	log    *logger.Logger
}

// NewSimulationClient creates a new simulation backend client
func NewSimulationClient(cfg ClientConfig) *SimulationClient {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.RetryWait <= 0 {
		cfg.RetryWait = 2 * time.Second
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.Retries).
		SetRetryWaitTime(cfg.RetryWait).
		SetHeader("Accept", "application/json").
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() >= http.StatusInternalServerError
		})

	return &SimulationClient{
		client: client,
		log:    logger.GetGlobalLogger().WithComponent("simulation-client"),
	}
}

// FetchSolar runs a PV simulation
func (c *SimulationClient) FetchSolar(ctx context.Context, p models.SolarParams) (*models.SolarResult, error) {
	query := locationQuery(p.Location, p.Financial)
	if p.SystemCapacity != 0 {
		query["systemCapacity"] = formatFloat(p.SystemCapacity)
	}
	if p.TotalArea != 0 {
		query["totalArea"] = formatFloat(p.TotalArea)
	}
	query["tilt"] = formatFloat(p.Tilt)
	query["tracking"] = string(p.Tracking)
	query["systemLoss"] = formatFloat(p.SystemLoss)
	query["inverterEfficiency"] = formatFloat(p.InverterEfficiency)

	var resp solarResponse
	if err := c.get(ctx, "/api/solar", query, &resp); err != nil {
		return nil, err
	}
	return resp.toResult(), nil
}

// FetchWind runs a wind farm simulation
func (c *SimulationClient) FetchWind(ctx context.Context, p models.WindParams) (*models.WindResult, error) {
	query := locationQuery(p.Location, p.Financial)
	query["systemCapacity"] = formatFloat(p.SystemCapacity)
	query["rotorDiameter"] = formatFloat(p.RotorDiameter)
	query["year"] = strconv.Itoa(p.Year)
	query["numberOfSimulations"] = strconv.Itoa(p.NumberOfSimulations)

	var resp windResponse
	if err := c.get(ctx, "/api/wind", query, &resp); err != nil {
		return nil, err
	}
	result := resp.toResult()
	result.Turbine = p.Turbine
	return result, nil
}

// FetchHydro runs a run-of-river simulation
func (c *SimulationClient) FetchHydro(ctx context.Context, p models.HydroParams) (*models.HydroResult, error) {
	query := locationQuery(p.Location, p.Financial)
	query["head"] = formatFloat(p.Head)
	query["flowRate"] = formatFloat(p.FlowRate)
	query["efficiency"] = formatFloat(p.Efficiency)

	var resp hydroResponse
	if err := c.get(ctx, "/api/hydro", query, &resp); err != nil {
		return nil, err
	}
	return resp.toResult(), nil
}

func (c *SimulationClient) get(ctx context.Context, path string, query map[string]string, out interface{}) error {
	start := time.Now()
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(query).
		Get(path)
	if err != nil {
		return fmt.Errorf("failed to call simulation backend %s: %w", path, err)
	}

	c.log.Debug("simulation backend responded", logger.Fields{
		"path":     path,
		"status":   resp.StatusCode(),
		"duration": time.Since(start).String(),
	})

	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("%w: %s returned %d: %s", ErrBackendStatus, path, resp.StatusCode(), truncate(resp.String(), 200))
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("failed to parse simulation response from %s: %w", path, err)
	}
	return nil
}

func locationQuery(l models.Location, f models.FinancialParams) map[string]string {
	return map[string]string{
		"latitude":       formatFloat(l.Latitude),
		"longitude":      formatFloat(l.Longitude),
		"analysisPeriod": strconv.Itoa(f.AnalysisPeriod),
		"interestRate":   formatFloat(f.InterestRate),
		"costOfEnergy":   formatFloat(f.CostOfEnergy),
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
