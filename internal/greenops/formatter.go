package greenops

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

//nolint:gochecknoglobals // Shared English printer for grouped number output.
var printer = message.NewPrinter(language.English)

// FormatNumber formats an integer with thousands separators: 18248 -> "18,248".
func FormatNumber(n int64) string {
	return printer.Sprintf("%d", n)
}

// FormatFloat formats f with exactly precision decimals and thousands
// separators: FormatFloat(1234.567, 2) -> "1,234.57".
func FormatFloat(f float64, precision int) string {
	return printer.Sprint(number.Decimal(f,
		number.MinFractionDigits(precision),
		number.MaxFractionDigits(precision)))
}

// FormatLarge abbreviates values of a million or more ("~1.5 million") and
// otherwise rounds to a grouped integer.
func FormatLarge(n float64) string {
	switch {
	case n >= billionThreshold:
		return fmt.Sprintf("~%.1f billion", n/billionThreshold)
	case n >= millionThreshold:
		return fmt.Sprintf("~%.1f million", n/millionThreshold)
	default:
		return FormatNumber(int64(math.Round(n)))
	}
}

// FormatCO2 renders a kilogram total in the requested unit, e.g.
// FormatCO2(1227.25, "t") -> "1.23 t CO2e". Unknown units fall back to kg.
func FormatCO2(kg float64, unit string) string {
	v, err := FromKg(math.Max(kg, 0), unit)
	if err != nil || unit == "" {
		v, unit = math.Max(kg, 0), "kg"
	}
	return fmt.Sprintf("%s %s CO2e", FormatFloat(v, 2), unit)
}
