package lca

import "math"

// Phase names a row of the impact breakdown.
type Phase string

// Breakdown rows, in report order.
const (
	PhaseExtraction  Phase = "extraction"
	PhaseProcessing  Phase = "processing"
	PhaseTransport   Phase = "transport"
	PhaseEndOfLife   Phase = "endOfLife"
	PhaseCircularity Phase = "circularity"
)

const (
	minEfficiencyScore = 10.0
	maxEfficiencyScore = 100.0
	efficiencyPenalty  = 20.0
	percent            = 100.0
)

// PhaseShare is one row of the breakdown. The circularity row carries the
// credit as a negative value so that all rows sum to the net total.
type PhaseShare struct {
	Phase             Phase   `json:"phase"`
	CO2               float64 `json:"co2"`
	PercentageOfTotal float64 `json:"percentageOfTotal"`
}

// PhaseDetails holds the unrounded result of each phase calculator.
type PhaseDetails struct {
	Extraction  ExtractionImpact  `json:"extraction"`
	Processing  ProcessingImpact  `json:"processing"`
	Transport   TransportImpact   `json:"transport"`
	EndOfLife   EndOfLifeImpact   `json:"endOfLife"`
	Circularity CircularityImpact `json:"circularity"`
}

// ImpactSummary is the aggregated result for one input record.
type ImpactSummary struct {
	TotalCO2Emissions      float64      `json:"totalCO2Emissions"`
	TotalEnergyConsumption float64      `json:"totalEnergyConsumption"`
	TotalWaterConsumption  float64      `json:"totalWaterConsumption"`
	EfficiencyScore        float64      `json:"efficiencyScore"`
	CircularityScore       float64      `json:"circularityScore"`
	PhaseBreakdown         []PhaseShare `json:"phaseBreakdown"`
	DetailedImpacts        PhaseDetails `json:"detailedImpacts"`
}

// Aggregate folds the five phase results into a summary.
//
// Percentages are computed against the unclamped net total (never less than 1)
// while the reported TotalCO2Emissions is clamped at zero.
func Aggregate(
	extraction ExtractionImpact,
	processing ProcessingImpact,
	transport TransportImpact,
	eol EndOfLifeImpact,
	circularity CircularityImpact,
) ImpactSummary {
	raw := extraction.CO2 + processing.TotalCO2 + transport.CO2 + eol.TotalCO2 - circularity.CO2Reduction
	energy := extraction.EnergyMJ + processing.EnergyMJ
	water := extraction.WaterL

	efficiency := maxEfficiencyScore - (raw/math.Max(energy, 1))*efficiencyPenalty
	efficiency = math.Min(maxEfficiencyScore, math.Max(minEfficiencyScore, efficiency))

	denom := math.Max(raw, 1)
	share := func(p Phase, co2 float64) PhaseShare {
		return PhaseShare{
			Phase:             p,
			CO2:               Round(co2, 2),
			PercentageOfTotal: Round(co2/denom*percent, 1),
		}
	}

	return ImpactSummary{
		TotalCO2Emissions:      Round(math.Max(0, raw), 2),
		TotalEnergyConsumption: Round(energy, 2),
		TotalWaterConsumption:  Round(water, 2),
		EfficiencyScore:        Round(efficiency, 1),
		CircularityScore:       Round(circularity.Score, 1),
		PhaseBreakdown: []PhaseShare{
			share(PhaseExtraction, extraction.CO2),
			share(PhaseProcessing, processing.TotalCO2),
			share(PhaseTransport, transport.CO2),
			share(PhaseEndOfLife, eol.TotalCO2),
			share(PhaseCircularity, -circularity.CO2Reduction),
		},
		DetailedImpacts: PhaseDetails{
			Extraction:  extraction,
			Processing:  processing,
			Transport:   transport,
			EndOfLife:   eol,
			Circularity: circularity,
		},
	}
}

// ComputeImpact validates the input, applies defaults and runs every phase.
// It fails only with an error wrapping ErrInvalidInput.
func ComputeImpact(in ImpactInput) (ImpactSummary, error) {
	if err := in.Validate(); err != nil {
		return ImpactSummary{}, err
	}
	in = in.WithDefaults()

	return Aggregate(
		Extraction(in.MaterialType, in.EffectiveQuantity()),
		Processing(in.ElectricityKwh, in.FuelType, in.FuelMj),
		Transport(in.TransportMode, in.TransportDistanceKm, in.EffectiveShipmentWeight()),
		EndOfLife(in.MaterialType, in.LandfillLocation),
		Circularity(in.RecyclePercent, in.ReusePercent),
	), nil
}

// Round rounds v half away from zero to the given number of decimal places.
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	r := math.Round(v*p) / p
	if r == 0 {
		return 0 // drop negative zero
	}
	return r
}
