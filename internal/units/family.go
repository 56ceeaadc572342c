// Package units converts raw simulation magnitudes into human-scaled values.
//
// Every upstream result arrives in a fixed base unit (megawatt-hours for energy,
// megawatts for power, dollars for money). The scaler picks one tier per value or
// per series and rescales without ever failing: non-finite input simply flows
// through as non-finite output.
package units

import (
	"fmt"
	"strings"
)

// Family identifies the base unit a magnitude is expressed in
type Family string

const (
	Energy   Family = "energy"
	Power    Family = "power"
	Currency Family = "currency"
)

// ParseFamily parses a family name, case-insensitively
func ParseFamily(s string) (Family, error) {
	switch Family(strings.ToLower(strings.TrimSpace(s))) {
	case Energy:
		return Energy, nil
	case Power:
		return Power, nil
	case Currency:
		return Currency, nil
	default:
		return "", fmt.Errorf("unknown unit family %q", s)
	}
}

// tier is one human-scaled unit option. A base-unit magnitude m maps to m*mul/div.
type tier struct {
	threshold float64
	mul       float64
	div       float64
	suffix    string
}

func (t tier) apply(v float64) float64 {
	return v * t.mul / t.div
}

// tiers are ordered from largest to smallest; the first one whose threshold the
// magnitude reaches wins, the last one catches everything else (0, negatives, NaN).
var tiers = []tier{
	{threshold: 1000, mul: 1, div: 1000, suffix: "G"},
	{threshold: 1, mul: 1, div: 1, suffix: "M"},
	{threshold: 0.001, mul: 1000, div: 1, suffix: "k"},
	{threshold: 0, mul: 1e6, div: 1, suffix: ""},
}

// unitLabel builds the label for a tier prefix within a family
func (f Family) unitLabel(prefix string) string {
	switch f {
	case Energy:
		return prefix + "Wh"
	case Power:
		return prefix + "W"
	default:
		return "$"
	}
}

// selectTier returns the tier for magnitude m
func selectTier(m float64) tier {
	for _, t := range tiers[:len(tiers)-1] {
		if m >= t.threshold {
			return t
		}
	}
	return tiers[len(tiers)-1]
}

// Multiplier returns the factor that converts a value expressed in unit back into
// the family's base unit. Unknown units return 0.
func Multiplier(family Family, unit string) float64 {
	if family == Currency {
		if unit == "$" {
			return 1
		}
		return 0
	}
	for _, t := range tiers {
		if family.unitLabel(t.suffix) == unit {
			return t.div / t.mul
		}
	}
	return 0
}
