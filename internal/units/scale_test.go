package units

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScaleValue_EnergyTiers(t *testing.T) {
	tests := []struct {
		name      string
		input     float64
		wantValue float64
		wantUnit  string
	}{
		{name: "exactly one thousand", input: 1000, wantValue: 1, wantUnit: "GWh"},
		{name: "large", input: 2500, wantValue: 2.5, wantUnit: "GWh"},
		{name: "just below GWh", input: 999.9, wantValue: 999.9, wantUnit: "MWh"},
		{name: "exactly one", input: 1, wantValue: 1, wantUnit: "MWh"},
		{name: "fraction", input: 0.5, wantValue: 500, wantUnit: "kWh"},
		{name: "kWh lower bound", input: 0.001, wantValue: 1, wantUnit: "kWh"},
		{name: "below kWh", input: 0.0005, wantValue: 500, wantUnit: "Wh"},
		{name: "zero", input: 0, wantValue: 0, wantUnit: "Wh"},
		{name: "negative", input: -5, wantValue: -5e6, wantUnit: "Wh"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScaleValue(tt.input, Energy)
			assert.Equal(t, tt.wantUnit, got.Unit)
			assert.InDelta(t, tt.wantValue, got.Value, 1e-9)
			assert.Equal(t, Energy, got.Family)
		})
	}
}

func TestScaleValue_PowerUsesSameThresholds(t *testing.T) {
	assert.Equal(t, "GW", ScaleValue(1500, Power).Unit)
	assert.Equal(t, "MW", ScaleValue(12, Power).Unit)
	assert.Equal(t, "kW", ScaleValue(0.25, Power).Unit)
	assert.Equal(t, "W", ScaleValue(0.0001, Power).Unit)
}

func TestScaleValue_UnitTierProperty(t *testing.T) {
	for _, v := range []float64{0, 1e-7, 0.000999, 0.001, 0.2, 0.999, 1, 47.25, 999.999, 1000, 1e9} {
		unit := ScaleValue(v, Energy).Unit
		switch {
		case v >= 1000:
			assert.Equal(t, "GWh", unit, "value %v", v)
		case v >= 1:
			assert.Equal(t, "MWh", unit, "value %v", v)
		case v >= 0.001:
			assert.Equal(t, "kWh", unit, "value %v", v)
		default:
			assert.Equal(t, "Wh", unit, "value %v", v)
		}
	}
}

func TestScaleValue_RoundTrip(t *testing.T) {
	for _, v := range []float64{0, 0.0004, 0.0123, 0.75, 3.14159, 640.2, 1000, 12345.678} {
		for _, family := range []Family{Energy, Power} {
			got := ScaleValue(v, family)
			assert.InDelta(t, v, got.Value*Multiplier(family, got.Unit), 1e-6, "value %v family %s", v, family)
			assert.InDelta(t, v, got.Base(), 1e-6)
		}
	}
}

func TestScaleValue_Zero(t *testing.T) {
	got := ScaleValue(0, Energy)
	assert.Equal(t, ScaledValue{Value: 0, Unit: "Wh", Family: Energy}, got)
}

func TestScaleValue_Idempotent(t *testing.T) {
	first := ScaleValue(1234.5678, Energy)
	second := ScaleValue(1234.5678, Energy)
	assert.Equal(t, first, second)
}

func TestScaleValue_NonFinitePropagates(t *testing.T) {
	got := ScaleValue(math.NaN(), Energy)
	assert.Equal(t, "Wh", got.Unit)
	assert.True(t, math.IsNaN(got.Value))

	got = ScaleValue(math.Inf(-1), Energy)
	assert.Equal(t, "Wh", got.Unit)
	assert.True(t, math.IsInf(got.Value, -1))

	got = ScaleValue(math.Inf(1), Power)
	assert.Equal(t, "GW", got.Unit)
	assert.True(t, math.IsInf(got.Value, 1))
}

func TestScaleValue_Currency(t *testing.T) {
	got := ScaleValue(1234567, Currency)
	assert.Equal(t, 1234567.0, got.Value)
	assert.Equal(t, "$", got.Unit)
	assert.Equal(t, "$ 1,234,567", got.String())
}

func TestScaledValue_Text(t *testing.T) {
	assert.Equal(t, "2.500", ScaleValue(2500, Energy).Text())
	assert.Equal(t, "2.500 GWh", ScaleValue(2500, Energy).String())
	assert.Equal(t, "1.235 MW", ScaleValue(1.23456, Power).String())
	assert.Equal(t, "0.000 Wh", ScaleValue(0, Energy).String())
}

func TestScaleSeries_SharedUnit(t *testing.T) {
	got := ScaleSeries([]float64{500, 2000, 10}, Energy)
	require.Len(t, got.Values, 3)
	assert.Equal(t, "GWh", got.Unit)
	assert.InDeltaSlice(t, []float64{0.5, 2.0, 0.01}, got.Values, 1e-12)
}

func TestScaleSeries_UsesAbsoluteMagnitude(t *testing.T) {
	got := ScaleSeries([]float64{-4500, 120, 3}, Energy)
	assert.Equal(t, "GWh", got.Unit)
	assert.InDeltaSlice(t, []float64{-4.5, 0.12, 0.003}, got.Values, 1e-12)
}

func TestScaleSeries_SmallValues(t *testing.T) {
	got := ScaleSeries([]float64{0.0002, 0.0004}, Power)
	assert.Equal(t, "W", got.Unit)
	assert.InDeltaSlice(t, []float64{200, 400}, got.Values, 1e-9)
}

func TestScaleSeries_DoesNotMutateInput(t *testing.T) {
	in := []float64{1500, 250}
	ScaleSeries(in, Energy)
	assert.Equal(t, []float64{1500, 250}, in)
}

func TestScaleSeries_Empty(t *testing.T) {
	got := ScaleSeries(nil, Energy)
	assert.Empty(t, got.Values)
	assert.Equal(t, "Wh", got.Unit)
}

func TestScaleSeries_Texts(t *testing.T) {
	got := ScaleSeries([]float64{1.5, 0.25}, Energy)
	assert.Equal(t, []string{"1.500", "0.250"}, got.Texts())
}

func TestParseFamily(t *testing.T) {
	f, err := ParseFamily(" Energy ")
	require.NoError(t, err)
	assert.Equal(t, Energy, f)

	_, err = ParseFamily("volume")
	assert.Error(t, err)
}

func TestMultiplier_Unknown(t *testing.T) {
	assert.Equal(t, 0.0, Multiplier(Energy, "MW"))
	assert.Equal(t, 1000.0, Multiplier(Energy, "GWh"))
	assert.Equal(t, 1e-6, Multiplier(Power, "W"))
}
