package lca

import (
	"strconv"
	"strings"
)

// Fields lists every input field in display order.
func Fields() []string {
	return []string{
		FieldMaterialType,
		FieldElectricityKwh,
		FieldFuelType,
		FieldFuelMj,
		FieldTransportMode,
		FieldTransportDistance,
		FieldLandfillLocation,
		FieldRecyclePercent,
		FieldReusePercent,
		FieldQuantity,
		FieldShipmentWeightTons,
	}
}

// IsCategorical reports whether field holds a category name rather than a number.
func IsCategorical(field string) bool {
	switch field {
	case FieldMaterialType, FieldFuelType, FieldTransportMode, FieldLandfillLocation:
		return true
	default:
		return false
	}
}

// Get renders a single field as text. Unknown field names yield "".
func (in ImpactInput) Get(field string) string {
	if s := in.categorical(field); s != nil {
		return *s
	}
	if f := in.numeric(field); f != nil {
		return strconv.FormatFloat(*f, 'f', -1, 64)
	}
	return ""
}

// Set returns a copy with field parsed from value. Numeric fields are
// validated after parsing.
func (in ImpactInput) Set(field, value string) (ImpactInput, error) {
	value = strings.TrimSpace(value)
	if s := in.categorical(field); s != nil {
		*s = value
		return in, nil
	}
	f := in.numeric(field)
	if f == nil {
		return in, &InputError{Field: field, Value: value, Reason: "unknown field"}
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return in, &InputError{Field: field, Value: value, Reason: "must be a number"}
	}
	*f = v
	if err := in.Validate(); err != nil {
		return in, err
	}
	return in, nil
}

func (in *ImpactInput) categorical(field string) *string {
	switch field {
	case FieldMaterialType:
		return &in.MaterialType
	case FieldFuelType:
		return &in.FuelType
	case FieldTransportMode:
		return &in.TransportMode
	case FieldLandfillLocation:
		return &in.LandfillLocation
	}
	return nil
}

func (in *ImpactInput) numeric(field string) *float64 {
	switch field {
	case FieldElectricityKwh:
		return &in.ElectricityKwh
	case FieldFuelMj:
		return &in.FuelMj
	case FieldTransportDistance:
		return &in.TransportDistanceKm
	case FieldRecyclePercent:
		return &in.RecyclePercent
	case FieldReusePercent:
		return &in.ReusePercent
	case FieldQuantity:
		return &in.Quantity
	case FieldShipmentWeightTons:
		return &in.ShipmentWeightTons
	}
	return nil
}
