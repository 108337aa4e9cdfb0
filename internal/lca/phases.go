package lca

import (
	"math"

	"github.com/rshade/lcaopt/internal/factors"
)

// Model constants.
const (
	extractionCO2Share      = 0.3
	kwhToMJ                 = 3.6
	dieselCO2PerLitre       = 2.3
	methaneGWP              = 25.0
	eolMethaneEmittedShare  = 0.1
	recycleCircularityScale = 0.7
	reuseCircularityScale   = 0.8
	circularityCO2Credit    = 0.05
	resourceEfficiencyScale = 0.8
	maxCircularityScore     = 100.0
)

// ExtractionImpact is the result of the extraction phase.
type ExtractionImpact struct {
	EnergyMJ float64 `json:"energyMJ"`
	WaterL   float64 `json:"waterL"`
	Waste    float64 `json:"waste"`
	CO2      float64 `json:"co2"`
}

// ProcessingImpact is the result of the processing phase.
type ProcessingImpact struct {
	ElectricityCO2 float64 `json:"electricityCO2"`
	FuelCO2        float64 `json:"fuelCO2"`
	TotalCO2       float64 `json:"totalCO2"`
	EnergyMJ       float64 `json:"energyMJ"`
}

// TransportImpact is the result of the transport phase.
type TransportImpact struct {
	CO2             float64 `json:"co2"`
	FuelConsumption float64 `json:"fuelConsumption"`
	DistanceKm      float64 `json:"distanceKm"`
	WeightTons      float64 `json:"weightTons"`
}

// EndOfLifeImpact is the result of the end-of-life phase.
type EndOfLifeImpact struct {
	MethaneCO2eq   float64 `json:"methaneCO2eq"`
	LeachateImpact float64 `json:"leachateImpact"`
	TotalCO2       float64 `json:"totalCO2"`
}

// CircularityImpact is the result of the circularity phase. CO2Reduction is a
// credit subtracted from the total.
type CircularityImpact struct {
	Score              float64 `json:"score"`
	CO2Reduction       float64 `json:"co2Reduction"`
	ResourceEfficiency float64 `json:"resourceEfficiency"`
}

// Extraction scores the extraction of quantity units of a material. A zero
// quantity means one unit.
func Extraction(material string, quantity float64) ExtractionImpact {
	if quantity == 0 {
		quantity = DefaultQuantity
	}
	f, _ := factors.Material(material)
	return ExtractionImpact{
		EnergyMJ: f.EnergyIntensity * quantity,
		WaterL:   f.WaterUse * quantity,
		Waste:    f.WasteFactor * quantity,
		CO2:      f.EnergyIntensity * quantity * extractionCO2Share,
	}
}

// Processing scores grid electricity and process fuel use.
func Processing(electricityKwh float64, fuelType string, fuelMj float64) ProcessingImpact {
	fuelFactor, _ := factors.FuelCO2(fuelType)
	elec := electricityKwh * factors.GridElectricityCO2
	fuel := fuelMj * fuelFactor
	return ProcessingImpact{
		ElectricityCO2: elec,
		FuelCO2:        fuel,
		TotalCO2:       elec + fuel,
		EnergyMJ:       electricityKwh*kwhToMJ + fuelMj,
	}
}

// Transport scores moving weightTons over distanceKm. A zero weight means the
// default 10 t shipment. Fuel consumption is a litres-of-diesel approximation.
func Transport(mode string, distanceKm, weightTons float64) TransportImpact {
	if weightTons == 0 {
		weightTons = DefaultShipmentWeightTons
	}
	modeFactor, _ := factors.TransportCO2(mode)
	co2 := distanceKm * weightTons * modeFactor
	return TransportImpact{
		CO2:             co2,
		FuelConsumption: co2 / dieselCO2PerLitre,
		DistanceKm:      distanceKm,
		WeightTons:      weightTons,
	}
}

// EndOfLife scores landfill disposal of the material's waste.
func EndOfLife(material, landfill string) EndOfLifeImpact {
	m, _ := factors.Material(material)
	l, _ := factors.Landfill(landfill)
	methane := m.WasteFactor * l.MethaneFactor * methaneGWP
	return EndOfLifeImpact{
		MethaneCO2eq:   methane,
		LeachateImpact: m.WasteFactor * l.LeachateFactor,
		TotalCO2:       methane * eolMethaneEmittedShare,
	}
}

// Circularity scores recycling and reuse shares (0-100 each).
func Circularity(recyclePercent, reusePercent float64) CircularityImpact {
	score := math.Min(maxCircularityScore, recyclePercent*recycleCircularityScale+reusePercent*reuseCircularityScale)
	return CircularityImpact{
		Score:              score,
		CO2Reduction:       score * circularityCO2Credit,
		ResourceEfficiency: score * resourceEfficiencyScale,
	}
}
