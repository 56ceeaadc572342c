package models

import (
	"errors"
	"fmt"
	"math"
)

// Wind resource data is available for these years only
const (
	FirstWindYear = 2007
	LastWindYear  = 2014
)

// Location is a site on the map, in decimal degrees
type Location struct {
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
}

// FinancialParams drive the cashflow projections
type FinancialParams struct {
	AnalysisPeriod int     `json:"analysisPeriod" yaml:"analysisPeriod"` // years
	InterestRate   float64 `json:"interestRate" yaml:"interestRate"`     // percent
	CostOfEnergy   float64 `json:"costOfEnergy" yaml:"costOfEnergy"`     // $/kWh
}

// Tracking is the solar array mounting
type Tracking string

const (
	FixedTilt Tracking = "fixed"
	OneAxis   Tracking = "one-axis"
)

// SolarParams describe a PV system. Exactly one of SystemCapacity (kW) and
// TotalArea (m²) sizes the array.
type SolarParams struct {
	Location           Location        `json:"location" yaml:"location"`
	Financial          FinancialParams `json:"financial" yaml:"financial"`
	SystemCapacity     float64         `json:"systemCapacity,omitempty" yaml:"systemCapacity,omitempty"`
	TotalArea          float64         `json:"totalArea,omitempty" yaml:"totalArea,omitempty"`
	Tilt               float64         `json:"tilt" yaml:"tilt"`
	Tracking           Tracking        `json:"tracking" yaml:"tracking"`
	SystemLoss         float64         `json:"systemLoss" yaml:"systemLoss"`                 // percent
	InverterEfficiency float64         `json:"inverterEfficiency" yaml:"inverterEfficiency"` // percent
}

// WindParams describe a wind farm simulation request
type WindParams struct {
	Location            Location        `json:"location" yaml:"location"`
	Financial           FinancialParams `json:"financial" yaml:"financial"`
	Turbine             string          `json:"turbine,omitempty" yaml:"turbine,omitempty"`
	SystemCapacity      float64         `json:"systemCapacity" yaml:"systemCapacity"` // kW per turbine
	RotorDiameter       float64         `json:"rotorDiameter" yaml:"rotorDiameter"`   // m
	Year                int             `json:"year" yaml:"year"`
	NumberOfSimulations int             `json:"numberOfSimulations" yaml:"numberOfSimulations"`
}

// HydroParams describe a run-of-river site
type HydroParams struct {
	Location   Location        `json:"location" yaml:"location"`
	Financial  FinancialParams `json:"financial" yaml:"financial"`
	Head       float64         `json:"head" yaml:"head"`             // m
	FlowRate   float64         `json:"flowRate" yaml:"flowRate"`     // design flow, m³/s
	Efficiency float64         `json:"efficiency" yaml:"efficiency"` // percent
}

func finite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%s must be a finite number", name)
	}
	return nil
}

func positive(name string, v float64) error {
	if err := finite(name, v); err != nil {
		return err
	}
	if v <= 0 {
		return fmt.Errorf("%s must be positive", name)
	}
	return nil
}

func percent(name string, v float64) error {
	if err := finite(name, v); err != nil {
		return err
	}
	if v < 0 || v > 100 {
		return fmt.Errorf("%s must be between 0 and 100", name)
	}
	return nil
}

// Validate checks coordinate ranges
func (l Location) Validate() error {
	if err := finite("latitude", l.Latitude); err != nil {
		return err
	}
	if err := finite("longitude", l.Longitude); err != nil {
		return err
	}
	if l.Latitude < -90 || l.Latitude > 90 {
		return fmt.Errorf("latitude %v out of range [-90, 90]", l.Latitude)
	}
	if l.Longitude < -180 || l.Longitude > 180 {
		return fmt.Errorf("longitude %v out of range [-180, 180]", l.Longitude)
	}
	return nil
}

// Validate checks the analysis period and rates
func (f FinancialParams) Validate() error {
	if f.AnalysisPeriod < 1 || f.AnalysisPeriod > 100 {
		return fmt.Errorf("analysis period %d out of range [1, 100]", f.AnalysisPeriod)
	}
	if err := percent("interest rate", f.InterestRate); err != nil {
		return err
	}
	if err := finite("cost of energy", f.CostOfEnergy); err != nil {
		return err
	}
	if f.CostOfEnergy < 0 {
		return errors.New("cost of energy must not be negative")
	}
	return nil
}

// Validate checks a solar request
func (p SolarParams) Validate() error {
	errs := []error{p.Location.Validate(), p.Financial.Validate()}

	switch {
	case p.SystemCapacity != 0 && p.TotalArea != 0:
		errs = append(errs, errors.New("set either system capacity or total area, not both"))
	case p.SystemCapacity != 0:
		errs = append(errs, positive("system capacity", p.SystemCapacity))
	case p.TotalArea != 0:
		errs = append(errs, positive("total area", p.TotalArea))
	default:
		errs = append(errs, errors.New("system capacity or total area is required"))
	}

	if err := finite("tilt", p.Tilt); err != nil {
		errs = append(errs, err)
	} else if p.Tilt < 0 || p.Tilt > 90 {
		errs = append(errs, fmt.Errorf("tilt %v out of range [0, 90]", p.Tilt))
	}
	switch p.Tracking {
	case "", FixedTilt, OneAxis:
	default:
		errs = append(errs, fmt.Errorf("unknown tracking %q", p.Tracking))
	}
	errs = append(errs,
		percent("system loss", p.SystemLoss),
		percent("inverter efficiency", p.InverterEfficiency),
	)
	return errors.Join(errs...)
}

// Validate checks a wind request
func (p WindParams) Validate() error {
	errs := []error{
		p.Location.Validate(),
		p.Financial.Validate(),
		positive("system capacity", p.SystemCapacity),
		positive("rotor diameter", p.RotorDiameter),
	}
	if p.Year < FirstWindYear || p.Year > LastWindYear {
		errs = append(errs, fmt.Errorf("year %d out of range [%d, %d]", p.Year, FirstWindYear, LastWindYear))
	}
	if p.NumberOfSimulations < 1 {
		errs = append(errs, errors.New("number of simulations must be at least 1"))
	}
	return errors.Join(errs...)
}

// Validate checks a hydro request
func (p HydroParams) Validate() error {
	return errors.Join(
		p.Location.Validate(),
		p.Financial.Validate(),
		positive("head", p.Head),
		positive("flow rate", p.FlowRate),
		percent("efficiency", p.Efficiency),
	)
}

// ApplyTurbine copies a catalog turbine's rating into the request when a
// turbine model is named
func (p *WindParams) ApplyTurbine(catalog *TurbineCatalog) error {
	if p.Turbine == "" {
		return nil
	}
	t, ok := catalog.Find(p.Turbine)
	if !ok {
		return fmt.Errorf("unknown turbine model %q", p.Turbine)
	}
	p.SystemCapacity = t.RatedOutput
	p.RotorDiameter = t.RotorDiameter
	return nil
}
