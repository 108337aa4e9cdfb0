package greenops

import (
	"math"
	"strings"
)

func unitFactor(unit string) (float64, bool) {
	switch strings.TrimSuffix(strings.ToLower(unit), "co2e") {
	case "g":
		return GramsToKg, true
	case "kg", "":
		return KgToKg, true
	case "t":
		return TonsToKg, true
	case "lb":
		return PoundsToKg, true
	default:
		return 0, false
	}
}

// IsRecognizedUnit reports whether unit is one of g, kg, t, lb (optionally
// suffixed with CO2e, case-insensitive).
func IsRecognizedUnit(unit string) bool {
	_, ok := unitFactor(unit)
	return ok
}

// ToKg converts value in unit to kilograms.
func ToKg(value float64, unit string) (float64, error) {
	return convert(value, unit, func(v, f float64) float64 { return v * f })
}

// FromKg converts a kilogram value to unit.
func FromKg(kg float64, unit string) (float64, error) {
	return convert(kg, unit, func(v, f float64) float64 { return v / f })
}

func convert(value float64, unit string, op func(v, f float64) float64) (float64, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, ErrNotFinite
	}
	if value < 0 {
		return 0, ErrNegativeValue
	}
	f, ok := unitFactor(unit)
	if !ok {
		return 0, ErrInvalidUnit
	}
	out := op(value, f)
	if math.IsInf(out, 0) {
		return 0, ErrNotFinite
	}
	return out, nil
}
