package compare

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/lcaopt/internal/lca"
)

func TestChange(t *testing.T) {
	tests := []struct {
		name        string
		base, value float64
		want        float64
	}{
		{"improvement", 200, 150, 25},
		{"regression", 100, 120, -20},
		{"zero base", 0, 10, 0},
		{"rounded", 3, 2, 33.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Change(tt.base, tt.value), 1e-9)
		})
	}
}

func TestScenarios(t *testing.T) {
	base, err := lca.ComputeImpact(lca.ImpactInput{ElectricityKwh: 1000, FuelMj: 1000, TransportDistanceKm: 100})
	require.NoError(t, err)
	better, err := lca.ComputeImpact(lca.ImpactInput{
		ElectricityKwh: 1000, FuelType: "Biomass", FuelMj: 1000, TransportDistanceKm: 100, RecyclePercent: 50,
	})
	require.NoError(t, err)

	res := Scenarios(Scenario{"current", base}, Scenario{"biomass", better})
	assert.Equal(t, []string{"current", "biomass"}, res.Scenarios)
	require.Len(t, res.Metrics, 4)

	carbon := res.Metrics[0]
	assert.Equal(t, "Carbon Emissions", carbon.Name)
	require.Len(t, carbon.Values, 2)
	require.Len(t, carbon.Changes, 1)
	assert.Greater(t, carbon.Changes[0], 0.0)

	energy := res.Metrics[1]
	assert.InDelta(t, 0.0, energy.Changes[0], 1e-9)

	circ := res.Metrics[3]
	assert.InDelta(t, 35.0, circ.Values[1], 1e-9)
	assert.InDelta(t, 0.0, circ.Changes[0], 1e-9)
}

func TestScenarios_Empty(t *testing.T) {
	res := Scenarios()
	assert.Empty(t, res.Metrics)
	assert.Empty(t, res.Scenarios)
}
