// Package compare lines up two impact summaries metric by metric.
package compare

import (
	"github.com/rshade/lcaopt/internal/lca"
)

const percent = 100.0

// Metric is one compared quantity.
type Metric struct {
	Name string `json:"metric"`
	Unit string `json:"unit"`
	// Values holds one value per scenario, baseline first.
	Values []float64 `json:"values"`
	// Changes holds the percentage change of each non-baseline scenario
	// relative to the baseline; positive values are improvements.
	Changes []float64 `json:"changes"`
}

// Result is the comparison of two or more scenarios.
type Result struct {
	Scenarios []string `json:"scenarios"`
	Metrics   []Metric `json:"metrics"`
}

// Scenario pairs a label with its summary.
type Scenario struct {
	Name    string
	Summary lca.ImpactSummary
}

type extractor struct {
	name  string
	unit  string
	value func(lca.ImpactSummary) float64
}

//nolint:gochecknoglobals // Read-only metric set.
var metrics = []extractor{
	{"Carbon Emissions", "kg CO₂e", func(s lca.ImpactSummary) float64 { return s.TotalCO2Emissions }},
	{"Energy Consumption", "MJ", func(s lca.ImpactSummary) float64 { return s.TotalEnergyConsumption }},
	{"Water Usage", "L", func(s lca.ImpactSummary) float64 { return s.TotalWaterConsumption }},
	{"Circularity Score", "%", func(s lca.ImpactSummary) float64 { return s.CircularityScore }},
}

// Scenarios compares each scenario against the first one.
//
// For emissions, energy and water a lower value yields a positive change.
// The circularity change uses the same formula, so a higher score shows as a
// negative change. A zero baseline value reports a change of 0.
func Scenarios(scenarios ...Scenario) Result {
	res := Result{Scenarios: make([]string, len(scenarios))}
	for i, s := range scenarios {
		res.Scenarios[i] = s.Name
	}
	if len(scenarios) == 0 {
		return res
	}

	for _, m := range metrics {
		row := Metric{Name: m.name, Unit: m.unit}
		base := m.value(scenarios[0].Summary)
		for i, s := range scenarios {
			v := m.value(s.Summary)
			row.Values = append(row.Values, v)
			if i > 0 {
				row.Changes = append(row.Changes, Change(base, v))
			}
		}
		res.Metrics = append(res.Metrics, row)
	}
	return res
}

// Change is (base - value) / base as a percentage rounded to one decimal.
func Change(base, value float64) float64 {
	if base == 0 {
		return 0
	}
	return lca.Round((base-value)/base*percent, 1)
}
