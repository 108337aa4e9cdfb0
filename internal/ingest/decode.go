// Package ingest decodes impact input records from JSON and NDJSON.
//
// Decoding is presence-aware: a field that is absent, null or an empty string
// is reported as missing so that an imputer can fill it, while a present field
// that cannot be read as a number is rejected with lca.ErrInvalidInput.
package ingest

import (
	_ "embed"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/tidwall/gjson"
	"github.com/xeipuuv/gojsonschema"

	"github.com/rshade/lcaopt/internal/lca"
)

// ErrMalformedJSON is returned for documents that are not a JSON object.
var ErrMalformedJSON = errors.New("malformed JSON record")

//go:embed impact_input.schema.json
var schemaJSON []byte

//nolint:gochecknoglobals // Compiled once on first use.
var compiledSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaJSON))
})

// Record is one decoded input.
type Record struct {
	Name    string          `json:"name,omitempty"`
	Input   lca.ImpactInput `json:"input"`
	Missing []string        `json:"missing,omitempty"`
}

// SchemaError lists every schema violation of a record.
type SchemaError struct {
	Violations []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: %s", lca.ErrInvalidInput, strings.Join(e.Violations, "; "))
}

// Unwrap allows errors.Is(err, lca.ErrInvalidInput).
func (e *SchemaError) Unwrap() error {
	return lca.ErrInvalidInput
}

type numericField struct {
	name    string
	aliases []string
	set     func(*lca.ImpactInput, float64)
}

type categoricalField struct {
	name string
	set  func(*lca.ImpactInput, string)
}

//nolint:gochecknoglobals // Read-only field bindings.
var (
	categoricalFields = []categoricalField{
		{lca.FieldMaterialType, func(in *lca.ImpactInput, v string) { in.MaterialType = v }},
		{lca.FieldFuelType, func(in *lca.ImpactInput, v string) { in.FuelType = v }},
		{lca.FieldTransportMode, func(in *lca.ImpactInput, v string) { in.TransportMode = v }},
		{lca.FieldLandfillLocation, func(in *lca.ImpactInput, v string) { in.LandfillLocation = v }},
	}
	numericFields = []numericField{
		{lca.FieldElectricityKwh, []string{"electricityConsumption"},
			func(in *lca.ImpactInput, v float64) { in.ElectricityKwh = v }},
		{lca.FieldFuelMj, []string{"fuelEnergy"},
			func(in *lca.ImpactInput, v float64) { in.FuelMj = v }},
		{lca.FieldTransportDistance, []string{"transportDistance"},
			func(in *lca.ImpactInput, v float64) { in.TransportDistanceKm = v }},
		{lca.FieldRecyclePercent, nil, func(in *lca.ImpactInput, v float64) { in.RecyclePercent = v }},
		{lca.FieldReusePercent, nil, func(in *lca.ImpactInput, v float64) { in.ReusePercent = v }},
		{lca.FieldQuantity, nil, func(in *lca.ImpactInput, v float64) { in.Quantity = v }},
		{lca.FieldShipmentWeightTons, nil, func(in *lca.ImpactInput, v float64) { in.ShipmentWeightTons = v }},
	}
	// optionalFields are never reported as missing.
	optionalFields = []string{lca.FieldQuantity, lca.FieldShipmentWeightTons}
)

// Decode parses one JSON object into a Record.
func Decode(data []byte) (Record, error) {
	if !gjson.ValidBytes(data) {
		return Record{}, ErrMalformedJSON
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return Record{}, fmt.Errorf("%w: expected an object, got %s", ErrMalformedJSON, doc.Type)
	}

	if err := validateSchema(data); err != nil {
		return Record{}, err
	}

	rec := Record{Name: doc.Get("name").String()}
	for _, f := range categoricalFields {
		v := doc.Get(f.name)
		if isBlank(v) {
			rec.Missing = append(rec.Missing, f.name)
			continue
		}
		f.set(&rec.Input, strings.TrimSpace(v.String()))
	}

	for _, f := range numericFields {
		v := lookup(doc, f.name, f.aliases)
		if isBlank(v) {
			if !isOptional(f.name) {
				rec.Missing = append(rec.Missing, f.name)
			}
			continue
		}
		n, err := toFloat(v)
		if err != nil {
			return Record{}, &lca.InputError{Field: f.name, Value: v.String(), Reason: "not a number"}
		}
		f.set(&rec.Input, n)
	}

	if err := rec.Input.Validate(); err != nil {
		return Record{}, err
	}
	return rec, nil
}

func validateSchema(data []byte) error {
	schema, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("loading input schema: %w", err)
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("validating input: %w", err)
	}
	if result.Valid() {
		return nil
	}

	violations := make([]string, len(result.Errors()))
	for i, desc := range result.Errors() {
		violations[i] = desc.String()
	}
	return &SchemaError{Violations: violations}
}

func lookup(doc gjson.Result, name string, aliases []string) gjson.Result {
	if v := doc.Get(name); v.Exists() {
		return v
	}
	for _, alias := range aliases {
		if v := doc.Get(alias); v.Exists() {
			return v
		}
	}
	return gjson.Result{}
}

func isBlank(v gjson.Result) bool {
	if !v.Exists() || v.Type == gjson.Null {
		return true
	}
	return v.Type == gjson.String && strings.TrimSpace(v.Str) == ""
}

func isOptional(field string) bool {
	for _, f := range optionalFields {
		if f == field {
			return true
		}
	}
	return false
}

func toFloat(v gjson.Result) (float64, error) {
	switch v.Type {
	case gjson.Number:
		return v.Num, nil
	case gjson.String:
		return strconv.ParseFloat(strings.TrimSpace(v.Str), 64)
	default:
		return 0, fmt.Errorf("unexpected JSON type %s", v.Type)
	}
}
