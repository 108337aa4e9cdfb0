package greenops

import (
	"fmt"
	"strings"
)

// Calculate converts a kilogram CO2 total into everyday equivalents. Totals
// below MinEquivalencyThresholdKg yield no items; tree and home-day
// equivalents are added from TreeThresholdKg upward.
func Calculate(kg float64) (Equivalents, error) {
	kg, err := ToKg(kg, "kg")
	if err != nil {
		return Equivalents{}, err
	}
	out := Equivalents{InputKg: kg}
	if kg < MinEquivalencyThresholdKg {
		return out, nil
	}

	add := func(kind Kind, factor float64, label string) {
		v := kg / factor
		out.Items = append(out.Items, Equivalent{Kind: kind, Value: v, Formatted: FormatLarge(v), Label: label})
	}
	add(KindMilesDriven, MilesDrivenFactor, "miles driven")
	add(KindSmartphonesCharged, SmartphoneChargeFactor, "smartphones charged")
	if kg >= TreeThresholdKg {
		add(KindTreeSeedlings, TreeSeedlingFactor, "tree seedlings grown for 10 years")
		add(KindHomeDays, HomeDayFactor, "days of home electricity")
	}

	parts := make([]string, len(out.Items))
	for i, item := range out.Items {
		parts[i] = fmt.Sprintf("~%s %s", item.Formatted, item.Label)
	}
	out.Text = "Equivalent to " + strings.Join(parts, ", ")
	return out, nil
}
