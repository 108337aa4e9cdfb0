package greenops

// Divisors for converting kg CO2e into everyday equivalents
// (US EPA Greenhouse Gas Equivalencies Calculator, 2024 edition):
//
//	equivalent = kgCO2e / factor
const (
	// MilesDrivenFactor is kg CO2e per mile of an average passenger vehicle.
	MilesDrivenFactor = 0.192
	// SmartphoneChargeFactor is kg CO2e per full smartphone charge.
	SmartphoneChargeFactor = 0.00822
	// TreeSeedlingFactor is kg CO2e sequestered by one seedling grown for 10 years.
	TreeSeedlingFactor = 60.0
	// HomeDayFactor is kg CO2e of one day of average US home electricity use.
	HomeDayFactor = 18.3
)

// Multipliers from a unit to kilograms.
const (
	GramsToKg  = 0.001
	KgToKg     = 1.0
	TonsToKg   = 1000.0
	PoundsToKg = 0.453592
)

// Display thresholds.
const (
	// MinEquivalencyThresholdKg is the smallest total for which equivalents are shown.
	MinEquivalencyThresholdKg = 1.0
	// TreeThresholdKg is the smallest total for which tree and home-day
	// equivalents are included; below it they round to zero.
	TreeThresholdKg = 100.0

	millionThreshold = 1_000_000
	billionThreshold = 1_000_000_000
)
