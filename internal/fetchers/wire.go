package fetchers

import (
	"renewcalc/internal/models"
	"renewcalc/internal/units"
)

// The backend reports energy in kWh and capacity in kW. Results are converted
// to the MWh / MW base units on the way in.
var (
	kWhToMWh = units.Multiplier(units.Energy, "kWh")
	kWToMW   = units.Multiplier(units.Power, "kW")
)

func scaled(values []float64, factor float64) []float64 {
	if values == nil {
		return nil
	}
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = v * factor
	}
	return out
}

type financialsResponse struct {
	InitialCost       float64   `json:"initial_cost"`
	MaintenanceCost   float64   `json:"main_cost"`
	GenerationRevenue float64   `json:"gen_rev"`
	PaybackPeriod     float64   `json:"payback_period"`
	Cashflow          []float64 `json:"cashflow"`
	OMCosts           []float64 `json:"om_cost"`
	Receipts          []float64 `json:"receipts"`
}

func (f financialsResponse) toFinancials() models.Financials {
	return models.Financials{
		InitialCost:       f.InitialCost,
		MaintenanceCost:   f.MaintenanceCost,
		GenerationRevenue: f.GenerationRevenue,
		PaybackPeriod:     f.PaybackPeriod,
		Cashflow:          f.Cashflow,
		OMCosts:           f.OMCosts,
		Receipts:          f.Receipts,
	}
}

type solarResponse struct {
	financialsResponse
	AnnualEnergy    float64   `json:"annual_energy"`
	CapacityFactor  float64   `json:"capacity_factor"`
	SystemCapacity  float64   `json:"system_capacity"`
	DeviceCount     int       `json:"device_no"`
	TotalModuleArea float64   `json:"total_module_area"`
	MonthlyEnergy   []float64 `json:"monthly_energy"`
}

func (r solarResponse) toResult() *models.SolarResult {
	return &models.SolarResult{
		AnnualEnergy:    r.AnnualEnergy * kWhToMWh,
		CapacityFactor:  r.CapacityFactor,
		SystemCapacity:  r.SystemCapacity * kWToMW,
		DeviceCount:     r.DeviceCount,
		TotalModuleArea: r.TotalModuleArea,
		MonthlyEnergy:   scaled(r.MonthlyEnergy, kWhToMWh),
		Financials:      r.toFinancials(),
	}
}

type windResponse struct {
	financialsResponse
	AnnualEnergy    float64   `json:"annual_energy"`
	CapacityFactor  float64   `json:"capacity_factor"`
	SystemCapacity  float64   `json:"system_capacity"`
	MonthlyEnergy   []float64 `json:"monthly_energy"`
	SimulatedEnergy []float64 `json:"simulated_energy"`
}

func (r windResponse) toResult() *models.WindResult {
	return &models.WindResult{
		AnnualEnergy:    r.AnnualEnergy * kWhToMWh,
		CapacityFactor:  r.CapacityFactor,
		SystemCapacity:  r.SystemCapacity * kWToMW,
		MonthlyEnergy:   scaled(r.MonthlyEnergy, kWhToMWh),
		SimulatedEnergy: scaled(r.SimulatedEnergy, kWhToMWh),
		Financials:      r.toFinancials(),
	}
}

type hydroResponse struct {
	financialsResponse
	AnnualEnergy   float64   `json:"annual_energy"`
	CapacityFactor float64   `json:"capacity_factor"`
	SystemCapacity float64   `json:"system_capacity"`
	Head           float64   `json:"head"`
	MonthlyEnergy  []float64 `json:"monthly_energy"`
	DesignFlow     []float64 `json:"design_flow"`
	AvailableFlow  []float64 `json:"available_flow"`
}

func (r hydroResponse) toResult() *models.HydroResult {
	return &models.HydroResult{
		AnnualEnergy:   r.AnnualEnergy * kWhToMWh,
		CapacityFactor: r.CapacityFactor,
		SystemCapacity: r.SystemCapacity * kWToMW,
		Head:           r.Head,
		MonthlyEnergy:  scaled(r.MonthlyEnergy, kWhToMWh),
		DesignFlow:     r.DesignFlow,
		AvailableFlow:  r.AvailableFlow,
		Financials:     r.toFinancials(),
	}
}
