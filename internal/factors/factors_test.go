package factors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Iron Ore", "iron_ore"},
		{"NATURAL GAS", "natural_gas"},
		{"  Ghazipur Delhi ", "ghazipur_delhi"},
		{"lpg", "lpg"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeKey(tt.in))
		})
	}
}

func TestMaterial(t *testing.T) {
	f, known := Material("Gold")
	assert.True(t, known)
	assert.Equal(t, MaterialFactor{EnergyIntensity: 45.0, WaterUse: 8.0, WasteFactor: 0.8}, f)

	f, known = Material("Unobtainium")
	assert.False(t, known)
	assert.Equal(t, materials["iron_ore"], f)
}

func TestFuelCO2(t *testing.T) {
	tests := []struct {
		name      string
		wantValue float64
		wantKnown bool
	}{
		{"Natural Gas", 0.18, true},
		{"Coal", 0.34, true},
		{"diesel", 0.27, true},
		{"Petrol", 0.25, true},
		{"Biomass", 0.05, true},
		{"LPG", 0.21, true},
		{"Hydrogen", DefaultFuelCO2, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, known := FuelCO2(tt.name)
			assert.InDelta(t, tt.wantValue, v, 1e-9)
			assert.Equal(t, tt.wantKnown, known)
		})
	}
}

func TestTransportCO2(t *testing.T) {
	v, known := TransportCO2("Ship")
	assert.True(t, known)
	assert.InDelta(t, 0.015, v, 1e-9)

	v, known = TransportCO2("Pipeline")
	assert.False(t, known)
	assert.InDelta(t, DefaultTransportCO2, v, 1e-9)
}

func TestLandfill(t *testing.T) {
	f, known := Landfill("Kodungaiyur Chennai")
	assert.True(t, known)
	assert.InDelta(t, 0.9, f.MethaneFactor, 1e-9)

	f, known = Landfill("Somewhere Else")
	assert.False(t, known)
	assert.Equal(t, landfills[FallbackLandfill], f)
}

func TestAlternativesAreCopies(t *testing.T) {
	alts := FuelAlternatives()
	require.Equal(t, []string{"Natural Gas", "Biomass", "LPG"}, alts)
	alts[0] = "Coal"
	assert.Equal(t, "Natural Gas", FuelAlternatives()[0])

	assert.Equal(t, []string{"Rail", "Ship", "Truck"}, TransportAlternatives())
}

func TestTables(t *testing.T) {
	tables := Tables()
	require.Len(t, tables, 4)
	names := make([]string, 0, len(tables))
	for _, tbl := range tables {
		names = append(names, tbl.Name)
	}
	assert.Equal(t, []string{"fuel", "landfill", "material", "transport"}, names)
	assert.InDelta(t, 50.0, tables[2].Entries["platinum"], 1e-9)
	assert.Len(t, Materials(), 8)
	assert.Equal(t, []string{"deonar_mumbai", "ghazipur_delhi", "kodungaiyur_chennai"}, Landfills())
}

func TestCheckCompatible(t *testing.T) {
	tests := []struct {
		name       string
		constraint string
		wantErr    error
		wantAnyErr bool
	}{
		{name: "empty", constraint: ""},
		{name: "caret", constraint: "^1.0"},
		{name: "range", constraint: ">= 1.0.0, < 2.0.0"},
		{name: "too new", constraint: ">= 2.0.0", wantErr: ErrIncompatibleDataset, wantAnyErr: true},
		{name: "garbage", constraint: "not-a-version", wantAnyErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckCompatible(tt.constraint)
			if !tt.wantAnyErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
