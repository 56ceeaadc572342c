package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadScenario reads a YAML (or JSON) scenario file
func LoadScenario(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("failed to read scenario: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario decodes scenario data. When the technology is omitted it is
// inferred from the single technology the scenario describes.
func ParseScenario(data []byte) (Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Scenario{}, fmt.Errorf("failed to parse scenario: %w", err)
	}
	if s.Technology != "" {
		return s, nil
	}

	var found []Technology
	if s.Solar != nil || s.SolarResult != nil {
		found = append(found, Solar)
	}
	if s.Wind != nil || s.WindResult != nil {
		found = append(found, Wind)
	}
	if s.Hydro != nil || s.HydroResult != nil {
		found = append(found, Hydro)
	}
	if len(found) != 1 {
		return Scenario{}, fmt.Errorf("scenario technology is ambiguous: describes %d technologies", len(found))
	}
	s.Technology = found[0]
	return s, nil
}
