package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/lcaopt/internal/lca"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		name    string
		input   lca.ImpactInput
		summary lca.ImpactSummary
		wantIDs []string
	}{
		{
			name:    "defaults when nothing fires",
			input:   lca.ImpactInput{ElectricityKwh: 1000, FuelType: "Natural Gas", TransportDistanceKm: 100},
			summary: lca.ImpactSummary{EfficiencyScore: 90},
			wantIDs: []string{"circular-economy", "carbon-offset"},
		},
		{
			name:    "coal always triggers fuel switch",
			input:   lca.ImpactInput{FuelType: "Coal"},
			summary: lca.ImpactSummary{EfficiencyScore: 90},
			wantIDs: []string{"fuel-switch-coal"},
		},
		{
			name:    "coal lower case",
			input:   lca.ImpactInput{FuelType: "coal"},
			summary: lca.ImpactSummary{EfficiencyScore: 90},
			wantIDs: []string{"fuel-switch-coal"},
		},
		{
			name: "every group fires",
			input: lca.ImpactInput{
				MaterialType: "Gold", ElectricityKwh: 2500, FuelType: "Diesel",
				TransportMode: "Truck", TransportDistanceKm: 600,
			},
			summary: lca.ImpactSummary{EfficiencyScore: 40},
			wantIDs: []string{
				"energy-efficient-equipment", "fuel-cleaner-alternative", "transport-rail",
				"circular-high-value", "low-efficiency",
			},
		},
		{
			name:    "elevated electricity",
			input:   lca.ImpactInput{ElectricityKwh: 1600},
			summary: lca.ImpactSummary{EfficiencyScore: 90},
			wantIDs: []string{"energy-management"},
		},
		{
			name:    "bulk material by rail over long distance suggests ship",
			input:   lca.ImpactInput{MaterialType: "Bauxite", TransportMode: "Rail", TransportDistanceKm: 1200},
			summary: lca.ImpactSummary{EfficiencyScore: 90},
			wantIDs: []string{"transport-ship"},
		},
		{
			name:    "truck rule shadows ship rule",
			input:   lca.ImpactInput{MaterialType: "Iron Ore", TransportMode: "Truck", TransportDistanceKm: 1200},
			summary: lca.ImpactSummary{EfficiencyScore: 90},
			wantIDs: []string{"transport-rail"},
		},
		{
			name:    "default mode is truck",
			input:   lca.ImpactInput{TransportDistanceKm: 700},
			summary: lca.ImpactSummary{EfficiencyScore: 90},
			wantIDs: []string{"transport-rail"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs := Generate(tt.input, tt.summary)
			ids := make([]string, len(recs))
			for i, r := range recs {
				ids[i] = r.ID
				assert.Equal(t, i+1, r.Priority)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestGenerate_CoalMessage(t *testing.T) {
	in := lca.ImpactInput{FuelType: "Coal", FuelMj: 3000}
	s, err := lca.ComputeImpact(in)
	require.NoError(t, err)

	assert.Contains(t, Messages(Generate(in, s)),
		"Switch from coal to natural gas or biomass to reduce CO2 emissions by 40-80%")
}

func TestExplain(t *testing.T) {
	in := lca.ImpactInput{
		MaterialType: "Iron Ore", ElectricityKwh: 1200, FuelType: "Natural Gas", FuelMj: 1800,
		TransportMode: "Truck", TransportDistanceKm: 250, LandfillLocation: "Ghazipur Delhi",
		RecyclePercent: 20, ReusePercent: 10,
	}
	s, err := lca.ComputeImpact(in)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Material processing for Iron Ore requires 1200 kWh electricity, generating 600 kg CO2",
		"Natural Gas fuel provides 1800 MJ energy, generating 324 kg CO2",
		"Transport via Truck over 250 km generates approximately 300 kg CO2",
		"Total environmental impact: 1227.25 kg CO2 emissions with 96.0/100 efficiency score",
	}, Explain(in, s))
}

func TestExplain_DefaultsAndMidRange(t *testing.T) {
	in := lca.ImpactInput{MaterialType: "Copper", ElectricityKwh: 750.5, FuelMj: 300}
	s, err := lca.ComputeImpact(in)
	require.NoError(t, err)

	lines := Explain(in, s)
	require.Len(t, lines, 4, "every record gets all four lines")
	assert.Contains(t, lines[0], "750.5 kWh")
	assert.Contains(t, lines[1], "Natural Gas fuel provides 300 MJ")
	assert.Contains(t, lines[2], "Transport via Truck over 0 km")
}
