package lca

import (
	"math"

	"github.com/rshade/lcaopt/internal/factors"
)

// Categorical defaults applied when a field is left empty.
const (
	DefaultMaterialType     = "Iron Ore"
	DefaultFuelType         = "Natural Gas"
	DefaultTransportMode    = "Truck"
	DefaultLandfillLocation = "Deonar Mumbai"
)

// Model defaults for the optional overrides.
const (
	DefaultQuantity           = 1.0
	DefaultShipmentWeightTons = 10.0
	maxPercent                = 100.0
)

// Field names as they appear on the wire. Errors and imputation reports use them.
const (
	FieldMaterialType       = "materialType"
	FieldElectricityKwh     = "electricityKwh"
	FieldFuelType           = "fuelType"
	FieldFuelMj             = "fuelMj"
	FieldTransportMode      = "transportMode"
	FieldTransportDistance  = "transportDistanceKm"
	FieldLandfillLocation   = "landfillLocation"
	FieldRecyclePercent     = "recyclePercent"
	FieldReusePercent       = "reusePercent"
	FieldQuantity           = "quantity"
	FieldShipmentWeightTons = "shipmentWeightTons"
)

// ImpactInput is one fully-specified record to score.
//
// Quantity and ShipmentWeightTons are optional; zero selects the model
// defaults (1 unit and 10 t). Values are treated as immutable by the model.
type ImpactInput struct {
	MaterialType        string  `json:"materialType" yaml:"materialType"`
	ElectricityKwh      float64 `json:"electricityKwh" yaml:"electricityKwh"`
	FuelType            string  `json:"fuelType" yaml:"fuelType"`
	FuelMj              float64 `json:"fuelMj" yaml:"fuelMj"`
	TransportMode       string  `json:"transportMode" yaml:"transportMode"`
	TransportDistanceKm float64 `json:"transportDistanceKm" yaml:"transportDistanceKm"`
	LandfillLocation    string  `json:"landfillLocation" yaml:"landfillLocation"`
	RecyclePercent      float64 `json:"recyclePercent" yaml:"recyclePercent"`
	ReusePercent        float64 `json:"reusePercent" yaml:"reusePercent"`
	Quantity            float64 `json:"quantity,omitempty" yaml:"quantity,omitempty"`
	ShipmentWeightTons  float64 `json:"shipmentWeightTons,omitempty" yaml:"shipmentWeightTons,omitempty"`
}

// WithDefaults returns a copy with empty categorical fields filled.
func (in ImpactInput) WithDefaults() ImpactInput {
	if in.MaterialType == "" {
		in.MaterialType = DefaultMaterialType
	}
	if in.FuelType == "" {
		in.FuelType = DefaultFuelType
	}
	if in.TransportMode == "" {
		in.TransportMode = DefaultTransportMode
	}
	if in.LandfillLocation == "" {
		in.LandfillLocation = DefaultLandfillLocation
	}
	return in
}

// WithFuelType returns a copy using a different fuel.
func (in ImpactInput) WithFuelType(fuel string) ImpactInput {
	in.FuelType = fuel
	return in
}

// WithTransportMode returns a copy using a different transport mode.
func (in ImpactInput) WithTransportMode(mode string) ImpactInput {
	in.TransportMode = mode
	return in
}

// EffectiveQuantity is the extraction quantity after defaults.
func (in ImpactInput) EffectiveQuantity() float64 {
	if in.Quantity == 0 {
		return DefaultQuantity
	}
	return in.Quantity
}

// EffectiveShipmentWeight is the transported weight in tonnes after defaults.
func (in ImpactInput) EffectiveShipmentWeight() float64 {
	if in.ShipmentWeightTons == 0 {
		return DefaultShipmentWeightTons
	}
	return in.ShipmentWeightTons
}

// Validate checks every numeric field and returns the first violation as an
// *InputError. Unknown categorical values are not errors.
func (in ImpactInput) Validate() error {
	checks := []struct {
		field string
		value float64
		max   float64
	}{
		{FieldElectricityKwh, in.ElectricityKwh, math.Inf(1)},
		{FieldFuelMj, in.FuelMj, math.Inf(1)},
		{FieldTransportDistance, in.TransportDistanceKm, math.Inf(1)},
		{FieldRecyclePercent, in.RecyclePercent, maxPercent},
		{FieldReusePercent, in.ReusePercent, maxPercent},
		{FieldQuantity, in.Quantity, math.Inf(1)},
		{FieldShipmentWeightTons, in.ShipmentWeightTons, math.Inf(1)},
	}

	for _, c := range checks {
		switch {
		case math.IsNaN(c.value) || math.IsInf(c.value, 0):
			return &InputError{Field: c.field, Value: c.value, Reason: "must be a finite number"}
		case c.value < 0:
			return &InputError{Field: c.field, Value: c.value, Reason: "must not be negative"}
		case c.value > c.max:
			return &InputError{Field: c.field, Value: c.value, Reason: "must not exceed 100"}
		}
	}
	return nil
}

// UnknownCategories lists the categorical fields whose values fell back to a
// default factor. The result is empty when every category is recognised.
func (in ImpactInput) UnknownCategories() []string {
	in = in.WithDefaults()
	var unknown []string
	if _, ok := factors.Material(in.MaterialType); !ok {
		unknown = append(unknown, FieldMaterialType)
	}
	if _, ok := factors.FuelCO2(in.FuelType); !ok {
		unknown = append(unknown, FieldFuelType)
	}
	if _, ok := factors.TransportCO2(in.TransportMode); !ok {
		unknown = append(unknown, FieldTransportMode)
	}
	if _, ok := factors.Landfill(in.LandfillLocation); !ok {
		unknown = append(unknown, FieldLandfillLocation)
	}
	return unknown
}
