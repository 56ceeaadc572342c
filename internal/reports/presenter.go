package reports

import (
	"fmt"
	"strconv"

	"renewcalc/internal/charts"
	"renewcalc/internal/logger"
	"renewcalc/internal/models"
	"renewcalc/internal/units"
)

// Metric groups
const (
	GroupEnergy = "Energy Results"
	GroupCost   = "Cost Details"
)

const flowColor = "rgba(255, 140, 0, 1)"

// Metric is one presented figure
type Metric struct {
	Group string `json:"group"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// ResultsView is everything a report shows for one simulation result
type ResultsView struct {
	Technology models.Technology  `json:"technology"`
	Title      string             `json:"title"`
	Metrics    []Metric           `json:"metrics"`
	Charts     []charts.ChartSpec `json:"charts"`
}

// Groups returns the metric groups in first-seen order
func (v ResultsView) Groups() []string {
	var groups []string
	seen := make(map[string]bool)
	for _, m := range v.Metrics {
		if !seen[m.Group] {
			seen[m.Group] = true
			groups = append(groups, m.Group)
		}
	}
	return groups
}

// MetricsIn returns the metrics of one group
func (v ResultsView) MetricsIn(group string) []Metric {
	var out []Metric
	for _, m := range v.Metrics {
		if m.Group == group {
			out = append(out, m)
		}
	}
	return out
}

// Lookup returns the value of the metric with the given label
func (v ResultsView) Lookup(label string) (string, bool) {
	for _, m := range v.Metrics {
		if m.Label == label {
			return m.Value, true
		}
	}
	return "", false
}

// Presenter turns raw simulation results into scaled, labelled views
type Presenter struct {
	log *logger.Logger
}

// NewPresenter creates a presenter
func NewPresenter() *Presenter {
	return &Presenter{log: logger.GetGlobalLogger().WithComponent("presenter")}
}

// Solar presents a PV result
func (p *Presenter) Solar(r models.SolarResult) ResultsView {
	b := p.builder(models.Solar)
	b.energy("Annual AC Energy", r.AnnualEnergy)
	b.energy("Average Monthly Energy", models.AverageMonthlyEnergy(r.AnnualEnergy))
	b.percent("Capacity Factor", r.CapacityFactor)
	b.power("System Capacity", r.SystemCapacity)
	b.add(GroupEnergy, "Number of Modules", strconv.Itoa(r.DeviceCount))
	b.add(GroupEnergy, "Total Module Area", units.GroupDigits(r.TotalModuleArea)+" m²")
	b.financials(r.Financials)

	b.monthlyEnergy(r.MonthlyEnergy)
	b.financialCharts(r.Financials)
	return b.view()
}

// Wind presents a wind farm result
func (p *Presenter) Wind(r models.WindResult) ResultsView {
	b := p.builder(models.Wind)
	if r.Turbine != "" {
		b.add(GroupEnergy, "Turbine", r.Turbine)
	}
	b.energy("Annual Energy", r.AnnualEnergy)
	lo, hi := r.EnergyRange()
	span := units.ScaleSeries([]float64{lo, hi}, units.Energy)
	texts := span.Texts()
	b.add(GroupEnergy, "Annual Energy Range", fmt.Sprintf("%s to %s %s", texts[0], texts[1], span.Unit))
	b.percent("Capacity Factor", r.CapacityFactor)
	b.power("System Capacity", r.SystemCapacity)
	b.financials(r.Financials)

	b.monthlyEnergy(r.MonthlyEnergy)
	if len(r.SimulatedEnergy) > 0 {
		scaled := units.ScaleSeries(r.SimulatedEnergy, units.Energy)
		labels := make([]string, len(scaled.Values))
		for i := range labels {
			labels[i] = fmt.Sprintf("Run %d", i+1)
		}
		b.chart(charts.BuildChartSpec(labels,
			charts.Single{Label: "Annual Energy (" + scaled.Unit + ")", Data: scaled.Values},
			charts.Line,
			charts.Display{
				Title:      "Simulated Annual Energy",
				XAxisTitle: "Simulation",
				YAxisTitle: "Energy (" + scaled.Unit + ")",
			}))
	}
	b.financialCharts(r.Financials)
	return b.view()
}

// Hydro presents a run-of-river result
func (p *Presenter) Hydro(r models.HydroResult) ResultsView {
	b := p.builder(models.Hydro)
	b.energy("Annual Energy", r.AnnualEnergy)
	b.energy("Average Monthly Energy", models.AverageMonthlyEnergy(r.AnnualEnergy))
	b.percent("Capacity Factor", r.CapacityFactor)
	b.power("System Capacity", r.SystemCapacity)
	b.add(GroupEnergy, "Head", strconv.FormatFloat(r.Head, 'f', units.DisplayDecimals, 64)+" m")
	b.financials(r.Financials)

	b.monthlyEnergy(r.MonthlyEnergy)
	if len(r.DesignFlow) > 0 || len(r.AvailableFlow) > 0 {
		b.chart(charts.BuildChartSpec(charts.MonthLabels(),
			charts.Multiple{
				{Label: "Design Flow Rate", Data: r.DesignFlow, Type: charts.Line},
				{Label: "Available Flow Rate", Data: r.AvailableFlow, Type: charts.Line, Color: flowColor},
			},
			charts.Line,
			charts.Display{
				Title:      "Flow Rates",
				XAxisTitle: "Month",
				YAxisTitle: "Flow Rate (m³/s)",
				ShowLegend: true,
			}))
	}
	b.financialCharts(r.Financials)
	return b.view()
}

// Present dispatches on the scenario's technology and attached result
func (p *Presenter) Present(s models.Scenario) (ResultsView, error) {
	switch {
	case s.Technology == models.Solar && s.SolarResult != nil:
		return p.Solar(*s.SolarResult), nil
	case s.Technology == models.Wind && s.WindResult != nil:
		return p.Wind(*s.WindResult), nil
	case s.Technology == models.Hydro && s.HydroResult != nil:
		return p.Hydro(*s.HydroResult), nil
	}
	return ResultsView{}, fmt.Errorf("scenario has no %s result to present", s.Technology)
}

type viewBuilder struct {
	p *Presenter
	v ResultsView
}

func (p *Presenter) builder(tech models.Technology) *viewBuilder {
	return &viewBuilder{p: p, v: ResultsView{
		Technology: tech,
		Title:      tech.Title() + " Feasibility Report",
	}}
}

func (b *viewBuilder) add(group, label, value string) {
	b.v.Metrics = append(b.v.Metrics, Metric{Group: group, Label: label, Value: value})
}

func (b *viewBuilder) energy(label string, mwh float64) {
	b.add(GroupEnergy, label, units.ScaleValue(mwh, units.Energy).String())
}

func (b *viewBuilder) power(label string, mw float64) {
	b.add(GroupEnergy, label, units.ScaleValue(mw, units.Power).String())
}

func (b *viewBuilder) percent(label string, pct float64) {
	b.add(GroupEnergy, label, strconv.FormatFloat(pct, 'f', units.DisplayDecimals, 64)+" %")
}

func (b *viewBuilder) money(label string, amount float64, suffix string) {
	b.add(GroupCost, label, units.ScaleValue(amount, units.Currency).String()+suffix)
}

func (b *viewBuilder) financials(f models.Financials) {
	b.money("Net Capital Cost", f.InitialCost, "")
	b.money("Maintenance Cost", f.MaintenanceCost, " / year")
	b.money("Generation Revenue", f.GenerationRevenue, " / year")
	b.add(GroupCost, "Payback Period", strconv.FormatFloat(f.PaybackPeriod, 'f', units.DisplayDecimals, 64)+" years")
}

func (b *viewBuilder) monthlyEnergy(mwh []float64) {
	if len(mwh) == 0 {
		return
	}
	scaled := units.ScaleSeries(mwh, units.Energy)
	axis := "Energy (" + scaled.Unit + ")"
	b.chart(charts.BuildChartSpec(charts.MonthLabels(),
		charts.Single{Label: axis, Data: scaled.Values},
		charts.Bar,
		charts.Display{Title: "Monthly Energy Production", XAxisTitle: "Month", YAxisTitle: axis}))
}

func (b *viewBuilder) financialCharts(f models.Financials) {
	yearly := []struct {
		title string
		label string
		data  []float64
		kind  charts.RenderType
	}{
		{"Cashflow", "Net Present Value ($)", f.Cashflow, charts.Bar},
		{"Operation and Maintenance Costs", "O&M Cost ($)", f.OMCosts, charts.Bar},
		{"Receipts", "Receipts ($)", f.Receipts, charts.Line},
	}
	for _, y := range yearly {
		if len(y.data) == 0 {
			continue
		}
		b.chart(charts.BuildChartSpec(charts.YearLabels(len(y.data)-1, true),
			charts.Single{Label: y.label, Data: y.data},
			y.kind,
			charts.Display{Title: y.title, XAxisTitle: "Year", YAxisTitle: "$"}))
	}
}

func (b *viewBuilder) chart(spec charts.ChartSpec) {
	if !spec.Consistent() {
		b.p.log.Warn("chart series do not match its labels", logger.Fields{
			"technology": string(b.v.Technology),
			"chart":      spec.Options.Title,
			"labels":     len(spec.Labels),
		})
	}
	b.v.Charts = append(b.v.Charts, spec)
}

func (b *viewBuilder) view() ResultsView {
	return b.v
}
