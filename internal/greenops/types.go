// Package greenops expresses emission totals as everyday equivalents and
// formats CO2 quantities for display.
package greenops

// Kind identifies an equivalent.
type Kind string

// Supported equivalents, in display order.
const (
	KindMilesDriven        Kind = "miles_driven"
	KindSmartphonesCharged Kind = "smartphones_charged"
	KindTreeSeedlings      Kind = "tree_seedlings"
	KindHomeDays           Kind = "home_days"
)

// Equivalent is one converted value.
type Equivalent struct {
	Kind      Kind    `json:"kind"`
	Value     float64 `json:"value"`
	Formatted string  `json:"formatted"`
	Label     string  `json:"label"`
}

// Equivalents is the full set for one CO2 total.
type Equivalents struct {
	InputKg float64      `json:"inputKg"`
	Items   []Equivalent `json:"items,omitempty"`
	// Text is a one-line prose rendering, empty when Items is empty.
	Text string `json:"text,omitempty"`
}
