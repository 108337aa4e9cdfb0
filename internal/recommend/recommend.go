// Package recommend turns an impact summary into fixed-priority guidance.
package recommend

import (
	"slices"

	"github.com/rshade/lcaopt/internal/factors"
	"github.com/rshade/lcaopt/internal/lca"
)

// Category groups recommendations for display.
type Category string

// Recommendation categories.
const (
	CategoryEnergy      Category = "energy"
	CategoryFuel        Category = "fuel"
	CategoryTransport   Category = "transport"
	CategoryCircularity Category = "circularity"
	CategoryEfficiency  Category = "efficiency"
	CategoryGeneral     Category = "general"
)

// Rule thresholds.
const (
	highElectricityKwh     = 2000.0
	elevatedElectricityKwh = 1500.0
	longTruckDistanceKm    = 500.0
	bulkShipDistanceKm     = 1000.0
	lowEfficiencyScore     = 50.0
)

// Recommendation is one piece of guidance. Priority is 1-based in emission order.
type Recommendation struct {
	ID       string   `json:"id"`
	Category Category `json:"category"`
	Message  string   `json:"message"`
	Priority int      `json:"priority"`
}

//nolint:gochecknoglobals // Read-only rule vocabulary.
var (
	highImpactFuels    = []string{"diesel", "petrol"}
	bulkMaterials      = []string{"bauxite", "iron_ore"}
	highValueMaterials = []string{"gold", "platinum", "silver"}
)

// Generate evaluates the rules in fixed order against the input and its
// summary. Each rule group contributes at most one message; when none fire,
// two general recommendations are returned.
func Generate(in lca.ImpactInput, summary lca.ImpactSummary) []Recommendation {
	in = in.WithDefaults()
	var out []Recommendation
	add := func(id string, cat Category, msg string) {
		out = append(out, Recommendation{ID: id, Category: cat, Message: msg, Priority: len(out) + 1})
	}

	switch {
	case in.ElectricityKwh > highElectricityKwh:
		add("energy-efficient-equipment", CategoryEnergy,
			"Consider renewable energy sources or energy-efficient equipment to reduce high electricity consumption")
	case in.ElectricityKwh > elevatedElectricityKwh:
		add("energy-management", CategoryEnergy,
			"Implement energy management systems to optimize electricity usage")
	}

	fuel := factors.NormalizeKey(in.FuelType)
	switch {
	case fuel == "coal":
		add("fuel-switch-coal", CategoryFuel,
			"Switch from coal to natural gas or biomass to reduce CO2 emissions by 40-80%")
	case slices.Contains(highImpactFuels, fuel):
		add("fuel-cleaner-alternative", CategoryFuel,
			"Consider cleaner fuel alternatives like natural gas or biomass for lower emissions")
	}

	material := factors.NormalizeKey(in.MaterialType)
	switch {
	case in.TransportDistanceKm > longTruckDistanceKm && factors.SameCategory(in.TransportMode, "Truck"):
		add("transport-rail", CategoryTransport,
			"For distances over 500km, rail transport can reduce emissions by 60% compared to trucks")
	case in.TransportDistanceKm > bulkShipDistanceKm && slices.Contains(bulkMaterials, material):
		add("transport-ship", CategoryTransport,
			"For bulk materials over long distances, ship transport offers the lowest emissions per ton-km")
	}

	if slices.Contains(highValueMaterials, material) {
		add("circular-high-value", CategoryCircularity,
			"High-value materials justify investment in advanced recycling and circular economy practices")
	}

	if summary.EfficiencyScore < lowEfficiencyScore {
		add("low-efficiency", CategoryEfficiency,
			"Low efficiency score indicates potential for significant improvements in fuel and energy management")
	}

	if len(out) == 0 {
		add("circular-economy", CategoryGeneral, "Implement circular economy practices to reduce waste generation")
		add("carbon-offset", CategoryGeneral, "Consider carbon offset programs for remaining emissions")
	}
	return out
}

// Messages returns the message text of each recommendation in order.
func Messages(recs []Recommendation) []string {
	msgs := make([]string, len(recs))
	for i, r := range recs {
		msgs[i] = r.Message
	}
	return msgs
}
