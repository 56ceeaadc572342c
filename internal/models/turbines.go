package models

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Turbine is a commercial wind turbine model
type Turbine struct {
	Model         string  `json:"model" yaml:"model"`
	RatedOutput   float64 `json:"ratedOutput" yaml:"ratedOutput"`     // kW
	RotorDiameter float64 `json:"rotorDiameter" yaml:"rotorDiameter"` // m
}

// TurbineCatalog is the list of turbines offered for wind studies
type TurbineCatalog struct {
	Turbines []Turbine `json:"turbines" yaml:"turbines"`
}

// DefaultTurbineCatalog returns the built-in turbine models
func DefaultTurbineCatalog() *TurbineCatalog {
	return &TurbineCatalog{Turbines: []Turbine{
		{Model: "Nordex N60-1300", RatedOutput: 1300, RotorDiameter: 60},
		{Model: "GE 1.5sle", RatedOutput: 1500, RotorDiameter: 77},
		{Model: "Vestas V82-1.65", RatedOutput: 1650, RotorDiameter: 82},
		{Model: "Leitwind LTW80 1.8MW", RatedOutput: 1800, RotorDiameter: 80},
		{Model: "Gamesa G97 2.0MW", RatedOutput: 2000, RotorDiameter: 97},
	}}
}

// LoadTurbineCatalog reads a YAML catalog. An empty path yields the defaults.
func LoadTurbineCatalog(path string) (*TurbineCatalog, error) {
	if path == "" {
		return DefaultTurbineCatalog(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read turbine catalog: %w", err)
	}
	return ParseTurbineCatalog(data)
}

// ParseTurbineCatalog decodes and validates YAML catalog data
func ParseTurbineCatalog(data []byte) (*TurbineCatalog, error) {
	var catalog TurbineCatalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse turbine catalog: %w", err)
	}
	if err := catalog.Validate(); err != nil {
		return nil, err
	}
	return &catalog, nil
}

// Validate requires at least one turbine, unique model names and positive ratings
func (c *TurbineCatalog) Validate() error {
	if len(c.Turbines) == 0 {
		return fmt.Errorf("turbine catalog is empty")
	}
	seen := make(map[string]bool, len(c.Turbines))
	for i, t := range c.Turbines {
		key := strings.ToLower(strings.TrimSpace(t.Model))
		if key == "" {
			return fmt.Errorf("turbine %d has no model name", i)
		}
		if seen[key] {
			return fmt.Errorf("duplicate turbine model %q", t.Model)
		}
		seen[key] = true
		if t.RatedOutput <= 0 || t.RotorDiameter <= 0 {
			return fmt.Errorf("turbine %q needs a positive rated output and rotor diameter", t.Model)
		}
	}
	return nil
}

// Find looks a turbine up by model name, case-insensitively
func (c *TurbineCatalog) Find(model string) (Turbine, bool) {
	key := strings.ToLower(strings.TrimSpace(model))
	for _, t := range c.Turbines {
		if strings.ToLower(t.Model) == key {
			return t, true
		}
	}
	return Turbine{}, false
}
