package units

import (
	"fmt"
	"math"
	"strconv"
)

// DisplayDecimals is the number of decimal places scaled values are shown with
const DisplayDecimals = 3

// ScaledValue is a magnitude rescaled into its best-fit unit tier
type ScaledValue struct {
	Value  float64 `json:"value"`
	Unit   string  `json:"unit"`
	Family Family  `json:"family"`
}

// Text returns the value with DisplayDecimals places and no unit
func (s ScaledValue) Text() string {
	if s.Family == Currency {
		return FormatCurrency(s.Value)
	}
	return strconv.FormatFloat(s.Value, 'f', DisplayDecimals, 64)
}

// String renders the value for display, e.g. "2.500 GWh" or "$ 1,234,567"
func (s ScaledValue) String() string {
	if s.Family == Currency {
		return "$ " + s.Text()
	}
	return fmt.Sprintf("%s %s", s.Text(), s.Unit)
}

// Base converts the scaled value back into the family's base unit
func (s ScaledValue) Base() float64 {
	return s.Value * Multiplier(s.Family, s.Unit)
}

// ScaledSeries is a whole series rescaled by a single shared factor
type ScaledSeries struct {
	Values []float64 `json:"values"`
	Unit   string    `json:"unit"`
	Family Family    `json:"family"`
}

// Texts returns every value with DisplayDecimals places
func (s ScaledSeries) Texts() []string {
	out := make([]string, len(s.Values))
	for i, v := range s.Values {
		out[i] = ScaledValue{Value: v, Unit: s.Unit, Family: s.Family}.Text()
	}
	return out
}

// ScaleValue rescales a single base-unit magnitude. The comparison uses the
// signed value, so anything below 0.001 (zero, negatives, NaN) lands on the
// smallest tier.
func ScaleValue(value float64, family Family) ScaledValue {
	if family == Currency {
		return ScaledValue{Value: value, Unit: family.unitLabel(""), Family: family}
	}
	t := selectTier(value)
	return ScaledValue{
		Value:  t.apply(value),
		Unit:   family.unitLabel(t.suffix),
		Family: family,
	}
}

// ScaleSeries picks one tier from the largest absolute magnitude and applies
// the same factor to every element, so all points of a chart share one unit.
//
// An empty series takes the maximum of nothing, which is -Inf; the tier logic
// is applied to that as-is and the result is an empty series in the smallest unit.
func ScaleSeries(values []float64, family Family) ScaledSeries {
	out := make([]float64, len(values))
	if family == Currency {
		copy(out, values)
		return ScaledSeries{Values: out, Unit: family.unitLabel(""), Family: family}
	}

	t := selectTier(maxAbs(values))
	for i, v := range values {
		out[i] = t.apply(v)
	}
	return ScaledSeries{Values: out, Unit: family.unitLabel(t.suffix), Family: family}
}

// maxAbs returns the largest absolute value, -Inf for an empty slice and NaN
// if any element is NaN
func maxAbs(values []float64) float64 {
	m := math.Inf(-1)
	for _, v := range values {
		a := math.Abs(v)
		if math.IsNaN(a) {
			return a
		}
		if a > m {
			m = a
		}
	}
	return m
}
