package lca

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func referenceInput() ImpactInput {
	return ImpactInput{
		MaterialType:        "Iron Ore",
		ElectricityKwh:      1200,
		FuelType:            "Natural Gas",
		FuelMj:              1800,
		TransportMode:       "Truck",
		TransportDistanceKm: 250,
		LandfillLocation:    "Ghazipur Delhi",
		RecyclePercent:      20,
		ReusePercent:        10,
	}
}

func TestComputeImpact_ReferenceScenario(t *testing.T) {
	s, err := ComputeImpact(referenceInput())
	require.NoError(t, err)

	assert.InDelta(t, 1227.25, s.TotalCO2Emissions, 1e-9)
	assert.InDelta(t, 6132.0, s.TotalEnergyConsumption, 1e-9)
	assert.InDelta(t, 2.0, s.TotalWaterConsumption, 1e-9)
	assert.InDelta(t, 96.0, s.EfficiencyScore, 1e-9)
	assert.InDelta(t, 22.0, s.CircularityScore, 1e-9)

	d := s.DetailedImpacts
	assert.InDelta(t, 3.6, d.Extraction.CO2, 1e-9)
	assert.InDelta(t, 600.0, d.Processing.ElectricityCO2, 1e-9)
	assert.InDelta(t, 324.0, d.Processing.FuelCO2, 1e-9)
	assert.InDelta(t, 924.0, d.Processing.TotalCO2, 1e-9)
	assert.InDelta(t, 300.0, d.Transport.CO2, 1e-9)
	assert.InDelta(t, 300.0/2.3, d.Transport.FuelConsumption, 1e-9)
	assert.InDelta(t, 7.5, d.EndOfLife.MethaneCO2eq, 1e-9)
	assert.InDelta(t, 0.75, d.EndOfLife.TotalCO2, 1e-9)
	assert.InDelta(t, 1.1, d.Circularity.CO2Reduction, 1e-9)
	assert.InDelta(t, 17.6, d.Circularity.ResourceEfficiency, 1e-9)

	want := map[Phase]float64{
		PhaseExtraction:  0.3,
		PhaseProcessing:  75.3,
		PhaseTransport:   24.4,
		PhaseEndOfLife:   0.1,
		PhaseCircularity: -0.1,
	}
	require.Len(t, s.PhaseBreakdown, len(want))
	for _, row := range s.PhaseBreakdown {
		pct, ok := want[row.Phase]
		require.True(t, ok, row.Phase)
		assert.InDelta(t, pct, row.PercentageOfTotal, 1e-9, row.Phase)
	}
}

func TestComputeImpact_Defaults(t *testing.T) {
	s, err := ComputeImpact(ImpactInput{})
	require.NoError(t, err)

	explicit, err := ComputeImpact(ImpactInput{
		MaterialType:     DefaultMaterialType,
		FuelType:         DefaultFuelType,
		TransportMode:    DefaultTransportMode,
		LandfillLocation: DefaultLandfillLocation,
	})
	require.NoError(t, err)
	assert.Equal(t, explicit, s)
	assert.InDelta(t, 3.6+0.625, s.TotalCO2Emissions, 0.01)
}

func TestComputeImpact_UnknownCategoriesNeverFail(t *testing.T) {
	in := ImpactInput{
		MaterialType:        "Kryptonite",
		FuelType:            "Plasma",
		TransportMode:       "Teleport",
		TransportDistanceKm: 100,
		LandfillLocation:    "Atlantis",
	}
	s, err := ComputeImpact(in)
	require.NoError(t, err)

	assert.InDelta(t, 3.6, s.DetailedImpacts.Extraction.CO2, 1e-9)
	assert.InDelta(t, 100.0, s.DetailedImpacts.Transport.CO2, 1e-9)
	assert.InDelta(t, 0.625, s.DetailedImpacts.EndOfLife.TotalCO2, 1e-9)
	assert.Equal(t,
		[]string{FieldMaterialType, FieldFuelType, FieldTransportMode, FieldLandfillLocation},
		in.UnknownCategories())
	assert.Empty(t, referenceInput().UnknownCategories())
}

func TestComputeImpact_InvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		mod   func(*ImpactInput)
		field string
	}{
		{"negative electricity", func(in *ImpactInput) { in.ElectricityKwh = -1 }, FieldElectricityKwh},
		{"negative fuel", func(in *ImpactInput) { in.FuelMj = -0.5 }, FieldFuelMj},
		{"negative distance", func(in *ImpactInput) { in.TransportDistanceKm = -10 }, FieldTransportDistance},
		{"NaN recycle", func(in *ImpactInput) { in.RecyclePercent = math.NaN() }, FieldRecyclePercent},
		{"reuse over 100", func(in *ImpactInput) { in.ReusePercent = 101 }, FieldReusePercent},
		{"infinite quantity", func(in *ImpactInput) { in.Quantity = math.Inf(1) }, FieldQuantity},
		{"negative weight", func(in *ImpactInput) { in.ShipmentWeightTons = -3 }, FieldShipmentWeightTons},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := referenceInput()
			tt.mod(&in)
			_, err := ComputeImpact(in)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidInput)

			var inputErr *InputError
			require.True(t, errors.As(err, &inputErr))
			assert.Equal(t, tt.field, inputErr.Field)
		})
	}
}

func TestComputeImpact_Bounds(t *testing.T) {
	t.Run("credit exceeds emissions", func(t *testing.T) {
		s, err := ComputeImpact(ImpactInput{RecyclePercent: 100, ReusePercent: 100})
		require.NoError(t, err)
		assert.Zero(t, s.TotalCO2Emissions)
		assert.InDelta(t, 100.0, s.CircularityScore, 1e-9)
		assert.InDelta(t, 100.0, s.EfficiencyScore, 1e-9)
	})

	t.Run("efficiency floor", func(t *testing.T) {
		s, err := ComputeImpact(ImpactInput{TransportMode: "Air", TransportDistanceKm: 1000})
		require.NoError(t, err)
		assert.InDelta(t, 10.0, s.EfficiencyScore, 1e-9)
	})
}

func TestComputeImpact_Properties(t *testing.T) {
	materials := []string{"Bauxite", "Copper", "Gold", "Iron Ore", "Zinc", "Silver", "Nickel", "Platinum", "Unknown"}
	fuelTypes := []string{"Natural Gas", "Coal", "Diesel", "Petrol", "Biomass", "LPG", "Other"}
	modes := []string{"Truck", "Ship", "Rail", "Air", "Other"}
	sites := []string{"Ghazipur Delhi", "Deonar Mumbai", "Kodungaiyur Chennai", "Other"}

	rng := rand.New(rand.NewPCG(7, 11))
	for range 500 {
		in := ImpactInput{
			MaterialType:        materials[rng.IntN(len(materials))],
			ElectricityKwh:      rng.Float64() * 5000,
			FuelType:            fuelTypes[rng.IntN(len(fuelTypes))],
			FuelMj:              rng.Float64() * 6000,
			TransportMode:       modes[rng.IntN(len(modes))],
			TransportDistanceKm: rng.Float64() * 2000,
			LandfillLocation:    sites[rng.IntN(len(sites))],
			RecyclePercent:      rng.Float64() * 100,
			ReusePercent:        rng.Float64() * 100,
		}

		s, err := ComputeImpact(in)
		require.NoError(t, err)
		again, err := ComputeImpact(in)
		require.NoError(t, err)
		assert.Equal(t, s, again)

		assert.GreaterOrEqual(t, s.TotalCO2Emissions, 0.0)
		assert.GreaterOrEqual(t, s.EfficiencyScore, 10.0)
		assert.LessOrEqual(t, s.EfficiencyScore, 100.0)
		assert.GreaterOrEqual(t, s.CircularityScore, 0.0)
		assert.LessOrEqual(t, s.CircularityScore, 100.0)

		if s.TotalCO2Emissions > 1 {
			var sum float64
			for _, row := range s.PhaseBreakdown {
				sum += row.PercentageOfTotal
			}
			assert.InDelta(t, 100.0, sum, 0.5)
		}
	}
}

func TestPhaseCalculators(t *testing.T) {
	t.Run("extraction scales with quantity", func(t *testing.T) {
		e := Extraction("Copper", 2)
		assert.InDelta(t, 37.0, e.EnergyMJ, 1e-9)
		assert.InDelta(t, 6.4, e.WaterL, 1e-9)
		assert.InDelta(t, 0.8, e.Waste, 1e-9)
		assert.InDelta(t, 11.1, e.CO2, 1e-9)
		assert.Equal(t, Extraction("Copper", 1), Extraction("Copper", 0))
	})

	t.Run("processing energy", func(t *testing.T) {
		p := Processing(100, "Coal", 50)
		assert.InDelta(t, 50.0, p.ElectricityCO2, 1e-9)
		assert.InDelta(t, 17.0, p.FuelCO2, 1e-9)
		assert.InDelta(t, 67.0, p.TotalCO2, 1e-9)
		assert.InDelta(t, 410.0, p.EnergyMJ, 1e-9)
	})

	t.Run("transport weight override", func(t *testing.T) {
		tr := Transport("Rail", 100, 25)
		assert.InDelta(t, 75.0, tr.CO2, 1e-9)
		assert.InDelta(t, 25.0, tr.WeightTons, 1e-9)
		assert.InDelta(t, 10.0, Transport("Rail", 100, 0).WeightTons, 1e-9)
	})

	t.Run("end of life", func(t *testing.T) {
		e := EndOfLife("Gold", "Kodungaiyur Chennai")
		assert.InDelta(t, 18.0, e.MethaneCO2eq, 1e-9)
		assert.InDelta(t, 0.76, e.LeachateImpact, 1e-9)
		assert.InDelta(t, 1.8, e.TotalCO2, 1e-9)
	})

	t.Run("circularity capped", func(t *testing.T) {
		c := Circularity(90, 90)
		assert.InDelta(t, 100.0, c.Score, 1e-9)
		assert.InDelta(t, 5.0, c.CO2Reduction, 1e-9)
		assert.InDelta(t, 80.0, c.ResourceEfficiency, 1e-9)
	})
}

func TestRound(t *testing.T) {
	assert.InDelta(t, 1.24, Round(1.2351, 2), 1e-9)
	assert.InDelta(t, -0.1, Round(-0.0896, 1), 1e-9)
	assert.False(t, math.Signbit(Round(-0.0001, 2)))
}
