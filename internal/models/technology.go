package models

import (
	"errors"
	"fmt"
	"strings"
)

// Technology is a renewable generation technology with its own simulator
type Technology string

const (
	Solar Technology = "solar"
	Wind  Technology = "wind"
	Hydro Technology = "hydro"
)

// ErrUnknownTechnology is returned for anything other than solar, wind or hydro
var ErrUnknownTechnology = errors.New("unknown technology")

// Technologies lists the supported technologies in display order
func Technologies() []Technology {
	return []Technology{Solar, Wind, Hydro}
}

// ParseTechnology parses a technology name, case-insensitively
func ParseTechnology(s string) (Technology, error) {
	t := Technology(strings.ToLower(strings.TrimSpace(s)))
	switch t {
	case Solar, Wind, Hydro:
		return t, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTechnology, s)
}

// Title returns the capitalised name used in report headings
func (t Technology) Title() string {
	switch t {
	case Solar:
		return "Solar"
	case Wind:
		return "Wind"
	case Hydro:
		return "Hydro"
	}
	return string(t)
}
