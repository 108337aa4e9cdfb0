package factors

import (
	"sort"
	"strings"
)

// GridElectricityCO2 is the grid emission intensity in kg CO2 per kWh.
const GridElectricityCO2 = 0.5

// DefaultFuelCO2 is the emission factor (kg CO2/MJ) for unrecognised fuels.
const DefaultFuelCO2 = 0.2

// DefaultTransportCO2 is the emission factor (kg CO2/t-km) for unrecognised modes.
const DefaultTransportCO2 = 0.1

// Fallback keys for the material and landfill tables.
const (
	FallbackMaterial = "iron_ore"
	FallbackLandfill = "deonar_mumbai"
)

// MaterialFactor describes the extraction characteristics of a raw material.
type MaterialFactor struct {
	// EnergyIntensity is the extraction energy in MJ per unit.
	EnergyIntensity float64 `json:"energyIntensity"`
	// WaterUse is the extraction water use in litres per unit.
	WaterUse float64 `json:"waterUse"`
	// WasteFactor is the waste generated per unit.
	WasteFactor float64 `json:"wasteFactor"`
}

// LandfillFactor describes the disposal characteristics of a landfill site.
type LandfillFactor struct {
	MethaneFactor  float64 `json:"methaneFactor"`
	LeachateFactor float64 `json:"leachateFactor"`
}

//nolint:gochecknoglobals // Read-only factor table.
var materials = map[string]MaterialFactor{
	"bauxite":  {EnergyIntensity: 15.0, WaterUse: 2.5, WasteFactor: 0.3},
	"copper":   {EnergyIntensity: 18.5, WaterUse: 3.2, WasteFactor: 0.4},
	"gold":     {EnergyIntensity: 45.0, WaterUse: 8.0, WasteFactor: 0.8},
	"iron_ore": {EnergyIntensity: 12.0, WaterUse: 2.0, WasteFactor: 0.25},
	"zinc":     {EnergyIntensity: 14.5, WaterUse: 2.8, WasteFactor: 0.35},
	"silver":   {EnergyIntensity: 35.0, WaterUse: 6.5, WasteFactor: 0.6},
	"nickel":   {EnergyIntensity: 22.0, WaterUse: 4.0, WasteFactor: 0.45},
	"platinum": {EnergyIntensity: 50.0, WaterUse: 9.0, WasteFactor: 0.9},
}

//nolint:gochecknoglobals // Read-only factor table.
var fuels = map[string]float64{
	"natural_gas": 0.18,
	"coal":        0.34,
	"diesel":      0.27,
	"petrol":      0.25,
	"biomass":     0.05,
	"lpg":         0.21,
}

//nolint:gochecknoglobals // Read-only factor table.
var transportModes = map[string]float64{
	"truck": 0.12,
	"ship":  0.015,
	"rail":  0.03,
	"air":   0.8,
}

//nolint:gochecknoglobals // Read-only factor table.
var landfills = map[string]LandfillFactor{
	"ghazipur_delhi":      {MethaneFactor: 1.2, LeachateFactor: 1.1},
	"deonar_mumbai":       {MethaneFactor: 1.0, LeachateFactor: 1.0},
	"kodungaiyur_chennai": {MethaneFactor: 0.9, LeachateFactor: 0.95},
}

// Alternatives explored by the optimizer, in evaluation order.
//
//nolint:gochecknoglobals // Read-only search space.
var (
	fuelAlternatives      = []string{"Natural Gas", "Biomass", "LPG"}
	transportAlternatives = []string{"Rail", "Ship", "Truck"}
)

// NormalizeKey converts a display name such as "Iron Ore" into its table key
// ("iron_ore"). Surrounding whitespace is ignored.
func NormalizeKey(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
}

// SameCategory reports whether two display names resolve to the same key.
func SameCategory(a, b string) bool {
	return NormalizeKey(a) == NormalizeKey(b)
}

// Material returns the factors for a material. The boolean is false when the
// material is unknown and the iron ore fallback was returned.
func Material(name string) (MaterialFactor, bool) {
	if f, ok := materials[NormalizeKey(name)]; ok {
		return f, true
	}
	return materials[FallbackMaterial], false
}

// FuelCO2 returns the fuel emission factor in kg CO2/MJ.
func FuelCO2(name string) (float64, bool) {
	if f, ok := fuels[NormalizeKey(name)]; ok {
		return f, true
	}
	return DefaultFuelCO2, false
}

// TransportCO2 returns the transport emission factor in kg CO2 per tonne-km.
func TransportCO2(mode string) (float64, bool) {
	if f, ok := transportModes[NormalizeKey(mode)]; ok {
		return f, true
	}
	return DefaultTransportCO2, false
}

// Landfill returns the disposal factors for a landfill site, falling back to
// Deonar (Mumbai) for unknown sites.
func Landfill(name string) (LandfillFactor, bool) {
	if f, ok := landfills[NormalizeKey(name)]; ok {
		return f, true
	}
	return landfills[FallbackLandfill], false
}

// FuelAlternatives returns the fuels the optimizer may substitute.
func FuelAlternatives() []string {
	return append([]string(nil), fuelAlternatives...)
}

// TransportAlternatives returns the transport modes the optimizer may substitute.
func TransportAlternatives() []string {
	return append([]string(nil), transportAlternatives...)
}

// Table is a flattened view of one factor table, used for listings.
type Table struct {
	Name    string             `json:"name"`
	Unit    string             `json:"unit"`
	Entries map[string]float64 `json:"entries"`
}

// Tables returns a snapshot of every scalar factor table, sorted by name.
// Material and landfill tables are flattened to their primary factor.
func Tables() []Table {
	tables := []Table{
		{Name: "fuel", Unit: "kg CO2/MJ", Entries: copyScalar(fuels)},
		{Name: "transport", Unit: "kg CO2/t-km", Entries: copyScalar(transportModes)},
		{Name: "material", Unit: "MJ/unit", Entries: make(map[string]float64, len(materials))},
		{Name: "landfill", Unit: "methane factor", Entries: make(map[string]float64, len(landfills))},
	}
	for k, v := range materials {
		tables[2].Entries[k] = v.EnergyIntensity
	}
	for k, v := range landfills {
		tables[3].Entries[k] = v.MethaneFactor
	}
	sort.Slice(tables, func(i, j int) bool { return tables[i].Name < tables[j].Name })
	return tables
}

// Materials returns the known material keys in sorted order.
func Materials() []string {
	return sortedKeys(materials)
}

// Landfills returns the known landfill keys in sorted order.
func Landfills() []string {
	return sortedKeys(landfills)
}

func copyScalar(m map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
