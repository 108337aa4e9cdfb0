package impute

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/lcaopt/internal/lca"
)

func TestSmartFiller_FillsOnlyMissing(t *testing.T) {
	in := lca.ImpactInput{MaterialType: "Gold", FuelType: "Coal", FuelMj: 1234, TransportDistanceKm: 900}
	out, report := NewSmartFiller(1).Fill(in, []string{lca.FieldElectricityKwh, lca.FieldTransportMode})

	assert.Equal(t, "Gold", out.MaterialType)
	assert.Equal(t, "Coal", out.FuelType)
	assert.InDelta(t, 1234.0, out.FuelMj, 1e-9)
	assert.GreaterOrEqual(t, out.ElectricityKwh, 2800.0)
	assert.LessOrEqual(t, out.ElectricityKwh, 3200.0)
	assert.Equal(t, "Rail", out.TransportMode)
	assert.Equal(t, []string{lca.FieldElectricityKwh, lca.FieldTransportMode}, report.Fields())
	assert.InDelta(t, ConfidenceElectricity, report.Filled[0].Confidence, 1e-9)
	assert.InDelta(t, ConfidenceOther, report.Filled[1].Confidence, 1e-9)
}

func TestSmartFiller_Deterministic(t *testing.T) {
	a, ra := NewSmartFiller(42).Fill(lca.ImpactInput{MaterialType: "Copper"}, Fillable[1:])
	b, rb := NewSmartFiller(42).Fill(lca.ImpactInput{MaterialType: "Copper"}, Fillable[1:])
	assert.Equal(t, a, b)
	assert.Equal(t, ra, rb)
}

func TestSmartFiller_Ranges(t *testing.T) {
	f := NewSmartFiller(9)
	for range 200 {
		out, report := f.Fill(lca.ImpactInput{}, Fillable)
		require.Len(t, report.Filled, len(Fillable))

		assert.Equal(t, lca.DefaultMaterialType, out.MaterialType)
		assert.GreaterOrEqual(t, out.ElectricityKwh, 1000.0)
		assert.LessOrEqual(t, out.ElectricityKwh, 1400.0)
		assert.GreaterOrEqual(t, out.FuelMj, 1500.0)
		assert.LessOrEqual(t, out.FuelMj, 2100.0)
		assert.GreaterOrEqual(t, out.TransportDistanceKm, 150.0)
		assert.LessOrEqual(t, out.TransportDistanceKm, 450.0)
		assert.Contains(t, []string{"Natural Gas", "Biomass"}, out.FuelType)
		if out.TransportDistanceKm < 200 {
			assert.Equal(t, "Truck", out.TransportMode)
		} else {
			assert.Contains(t, []string{"Rail", "Truck"}, out.TransportMode)
		}
		assert.Contains(t, landfillNames, out.LandfillLocation)

		_, err := lca.ComputeImpact(out)
		assert.NoError(t, err)
	}
}

func TestSmartFiller_MinimumsAndLongHaul(t *testing.T) {
	f := NewSmartFiller(3)
	out, _ := f.Fill(lca.ImpactInput{MaterialType: "Bauxite", TransportDistanceKm: 1500}, []string{lca.FieldTransportMode})
	assert.Equal(t, "Ship", out.TransportMode)

	out, _ = f.Fill(lca.ImpactInput{MaterialType: "Platinum"}, []string{lca.FieldFuelType})
	assert.Equal(t, "Natural Gas", out.FuelType)
}

func TestConfidence(t *testing.T) {
	assert.InDelta(t, 0.85, Confidence(lca.FieldElectricityKwh), 1e-9)
	assert.InDelta(t, 0.80, Confidence(lca.FieldFuelMj), 1e-9)
	assert.InDelta(t, 0.75, Confidence(lca.FieldTransportDistance), 1e-9)
	assert.InDelta(t, 0.70, Confidence(lca.FieldLandfillLocation), 1e-9)
}
