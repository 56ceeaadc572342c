package models

import (
	"errors"
	"fmt"
)

// Simulation results are held in base units: energy in MWh, capacity in MW,
// money in dollars. Yearly series start at year 0 (the investment year).

// Financials are the cost figures common to every technology
type Financials struct {
	InitialCost       float64   `json:"initialCost" yaml:"initialCost"`
	MaintenanceCost   float64   `json:"maintenanceCost" yaml:"maintenanceCost"`     // per year
	GenerationRevenue float64   `json:"generationRevenue" yaml:"generationRevenue"` // per year
	PaybackPeriod     float64   `json:"paybackPeriod" yaml:"paybackPeriod"`         // years
	Cashflow          []float64 `json:"cashflow,omitempty" yaml:"cashflow,omitempty"`
	OMCosts           []float64 `json:"omCosts,omitempty" yaml:"omCosts,omitempty"`
	Receipts          []float64 `json:"receipts,omitempty" yaml:"receipts,omitempty"`
}

// SolarResult is a PV simulation outcome
type SolarResult struct {
	AnnualEnergy    float64    `json:"annualEnergy" yaml:"annualEnergy"`
	CapacityFactor  float64    `json:"capacityFactor" yaml:"capacityFactor"` // percent
	SystemCapacity  float64    `json:"systemCapacity" yaml:"systemCapacity"`
	DeviceCount     int        `json:"deviceCount" yaml:"deviceCount"`
	TotalModuleArea float64    `json:"totalModuleArea" yaml:"totalModuleArea"` // m²
	MonthlyEnergy   []float64  `json:"monthlyEnergy" yaml:"monthlyEnergy"`
	Financials      Financials `json:"financials" yaml:"financials"`
}

// WindResult is a wind farm simulation outcome. SimulatedEnergy holds the
// annual energy of every Monte Carlo run.
type WindResult struct {
	Turbine         string     `json:"turbine,omitempty" yaml:"turbine,omitempty"`
	AnnualEnergy    float64    `json:"annualEnergy" yaml:"annualEnergy"`
	CapacityFactor  float64    `json:"capacityFactor" yaml:"capacityFactor"`
	SystemCapacity  float64    `json:"systemCapacity" yaml:"systemCapacity"`
	MonthlyEnergy   []float64  `json:"monthlyEnergy" yaml:"monthlyEnergy"`
	SimulatedEnergy []float64  `json:"simulatedEnergy,omitempty" yaml:"simulatedEnergy,omitempty"`
	Financials      Financials `json:"financials" yaml:"financials"`
}

// HydroResult is a run-of-river simulation outcome. Flow rates are monthly,
// in m³/s.
type HydroResult struct {
	AnnualEnergy   float64    `json:"annualEnergy" yaml:"annualEnergy"`
	CapacityFactor float64    `json:"capacityFactor" yaml:"capacityFactor"`
	SystemCapacity float64    `json:"systemCapacity" yaml:"systemCapacity"`
	Head           float64    `json:"head" yaml:"head"`
	MonthlyEnergy  []float64  `json:"monthlyEnergy" yaml:"monthlyEnergy"`
	DesignFlow     []float64  `json:"designFlow" yaml:"designFlow"`
	AvailableFlow  []float64  `json:"availableFlow" yaml:"availableFlow"`
	Financials     Financials `json:"financials" yaml:"financials"`
}

// EnergyRange returns the lowest and highest simulated annual energy, falling
// back to AnnualEnergy when no runs were reported
func (r WindResult) EnergyRange() (float64, float64) {
	if len(r.SimulatedEnergy) == 0 {
		return r.AnnualEnergy, r.AnnualEnergy
	}
	lo, hi := r.SimulatedEnergy[0], r.SimulatedEnergy[0]
	for _, v := range r.SimulatedEnergy[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return lo, hi
}

// AverageMonthlyEnergy is the annual energy spread over twelve months
func AverageMonthlyEnergy(annual float64) float64 {
	return annual / 12
}

// Scenario is a saved feasibility study: the technology, its request
// parameters, and optionally a precomputed result that skips simulation
type Scenario struct {
	Name       string       `json:"name,omitempty" yaml:"name,omitempty"`
	Technology Technology   `json:"technology" yaml:"technology"`
	Solar      *SolarParams `json:"solar,omitempty" yaml:"solar,omitempty"`
	Wind       *WindParams  `json:"wind,omitempty" yaml:"wind,omitempty"`
	Hydro      *HydroParams `json:"hydro,omitempty" yaml:"hydro,omitempty"`

	SolarResult *SolarResult `json:"solarResult,omitempty" yaml:"solarResult,omitempty"`
	WindResult  *WindResult  `json:"windResult,omitempty" yaml:"windResult,omitempty"`
	HydroResult *HydroResult `json:"hydroResult,omitempty" yaml:"hydroResult,omitempty"`
}

// HasResult reports whether the scenario carries a result for its technology
func (s Scenario) HasResult() bool {
	switch s.Technology {
	case Solar:
		return s.SolarResult != nil
	case Wind:
		return s.WindResult != nil
	case Hydro:
		return s.HydroResult != nil
	}
	return false
}

// Validate checks the technology and, unless a result is attached, its
// parameters
func (s Scenario) Validate() error {
	if _, err := ParseTechnology(string(s.Technology)); err != nil {
		return err
	}
	if s.HasResult() {
		return nil
	}

	var err error
	switch s.Technology {
	case Solar:
		if s.Solar == nil {
			return errors.New("solar scenario needs solar parameters or a solar result")
		}
		err = s.Solar.Validate()
	case Wind:
		if s.Wind == nil {
			return errors.New("wind scenario needs wind parameters or a wind result")
		}
		err = s.Wind.Validate()
	case Hydro:
		if s.Hydro == nil {
			return errors.New("hydro scenario needs hydro parameters or a hydro result")
		}
		err = s.Hydro.Validate()
	}
	if err != nil {
		return fmt.Errorf("invalid %s parameters: %w", s.Technology, err)
	}
	return nil
}
