package recommend

import (
	"fmt"
	"strconv"

	"github.com/rshade/lcaopt/internal/lca"
)

// Explain describes the electricity, fuel, transport and total figures
// behind a summary, one line each.
func Explain(in lca.ImpactInput, summary lca.ImpactSummary) []string {
	in = in.WithDefaults()
	proc := summary.DetailedImpacts.Processing
	transport := summary.DetailedImpacts.Transport

	return []string{
		fmt.Sprintf("Material processing for %s requires %s kWh electricity, generating %.0f kg CO2",
			in.MaterialType, plain(in.ElectricityKwh), proc.ElectricityCO2),
		fmt.Sprintf("%s fuel provides %s MJ energy, generating %.0f kg CO2",
			in.FuelType, plain(in.FuelMj), proc.FuelCO2),
		fmt.Sprintf("Transport via %s over %s km generates approximately %.0f kg CO2",
			in.TransportMode, plain(in.TransportDistanceKm), transport.CO2),
		fmt.Sprintf("Total environmental impact: %s kg CO2 emissions with %.1f/100 efficiency score",
			plain(summary.TotalCO2Emissions), summary.EfficiencyScore),
	}
}

func plain(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
