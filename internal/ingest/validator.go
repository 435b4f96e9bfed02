// Package ingest validates raw location and metadata input and merges it into a single view.
package ingest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"locinsight/internal/models"
)

// Validation errors.
var (
	ErrEmptyInput      = errors.New("input is empty")
	ErrMalformedSyntax = errors.New("malformed JSON")
	ErrNotSequence     = errors.New("top-level value is not an array")
	ErrInvalidElement  = errors.New("element does not match the expected shape")
)

// Field names the input channel a validation failure is attributed to.
type Field string

// Input channels.
const (
	FieldLocations Field = "locations"
	FieldMetadata  Field = "metadata"
)

// FailureKind classifies a validation failure.
type FailureKind string

// Failure kinds.
const (
	SyntaxFailure FailureKind = "syntax"
	ShapeFailure  FailureKind = "shape"
)

// ValidationFailure describes why one of the two inputs was rejected.
type ValidationFailure struct {
	Err     error       `json:"-"`
	Field   Field       `json:"field"`
	Kind    FailureKind `json:"kind"`
	Message string      `json:"message"`
	Index   int         `json:"index"`
}

// Error implements the error interface.
func (f *ValidationFailure) Error() string {
	return fmt.Sprintf("%s: %s", f.Field, f.Message)
}

// Unwrap returns the sentinel error behind the failure.
func (f *ValidationFailure) Unwrap() error {
	return f.Err
}

// Input holds both collections once they passed validation.
type Input struct {
	Locations []models.Location
	Metadata  []models.LocationMetadata
}

type fieldKind int

const (
	kindString fieldKind = iota
	kindNumber
)

type fieldRule struct {
	name string
	kind fieldKind
}

// recordShape lists the required fields of one record type.
type recordShape struct {
	field       Field
	label       string
	description string
	rules       []fieldRule
}

var locationShape = recordShape{
	field:       FieldLocations,
	label:       "Locations",
	description: "Invalid location data structure. Each item must have id (string), latitude (number), and longitude (number)",
	rules: []fieldRule{
		{name: "id", kind: kindString},
		{name: "latitude", kind: kindNumber},
		{name: "longitude", kind: kindNumber},
	},
}

var metadataShape = recordShape{
	field:       FieldMetadata,
	label:       "Metadata",
	description: "Invalid metadata data structure. Each item must have id (string), type (string), rating (number), and reviews (number)",
	rules: []fieldRule{
		{name: "id", kind: kindString},
		{name: "type", kind: kindString},
		{name: "rating", kind: kindNumber},
		{name: "reviews", kind: kindNumber},
	},
}

// Validator checks raw input text against the location and metadata shapes.
type Validator struct{}

// NewValidator creates a new validator instance.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate parses and checks both inputs. Checks run in a fixed order
// (parse, array, element shape) and locations go before metadata at each step.
// The returned error is always a *ValidationFailure.
func (v *Validator) Validate(rawLocations, rawMetadata string) (*Input, error) {
	locDoc, err := parse(rawLocations, locationShape)
	if err != nil {
		return nil, err
	}

	metaDoc, err := parse(rawMetadata, metadataShape)
	if err != nil {
		return nil, err
	}

	locItems, err := asSequence(locDoc, locationShape)
	if err != nil {
		return nil, err
	}

	metaItems, err := asSequence(metaDoc, metadataShape)
	if err != nil {
		return nil, err
	}

	locRecords, err := checkElements(locItems, locationShape)
	if err != nil {
		return nil, err
	}

	metaRecords, err := checkElements(metaItems, metadataShape)
	if err != nil {
		return nil, err
	}

	input := &Input{
		Locations: make([]models.Location, 0, len(locRecords)),
		Metadata:  make([]models.LocationMetadata, 0, len(metaRecords)),
	}

	for _, r := range locRecords {
		input.Locations = append(input.Locations, models.Location{
			ID:        r["id"].(string),
			Latitude:  r["latitude"].(float64),
			Longitude: r["longitude"].(float64),
		})
	}

	for _, r := range metaRecords {
		input.Metadata = append(input.Metadata, models.LocationMetadata{
			ID:      r["id"].(string),
			Type:    r["type"].(string),
			Rating:  r["rating"].(float64),
			Reviews: r["reviews"].(float64),
		})
	}

	return input, nil
}

// Validate runs a fresh Validator over both inputs.
func Validate(rawLocations, rawMetadata string) (*Input, error) {
	return NewValidator().Validate(rawLocations, rawMetadata)
}

func parse(raw string, shape recordShape) (any, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, &ValidationFailure{
			Err:     ErrEmptyInput,
			Field:   shape.field,
			Kind:    SyntaxFailure,
			Message: fmt.Sprintf("%s data is empty", shape.label),
			Index:   -1,
		}
	}

	// Numbers stay as json.Number so that range problems surface as shape
	// failures on the offending field.
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()

	var doc any

	err := dec.Decode(&doc)
	if err == nil {
		if _, tokErr := dec.Token(); tokErr != io.EOF {
			err = errors.New("unexpected data after top-level value")
		}
	}

	if err != nil {
		return nil, &ValidationFailure{
			Err:     fmt.Errorf("%w: %v", ErrMalformedSyntax, err),
			Field:   shape.field,
			Kind:    SyntaxFailure,
			Message: fmt.Sprintf("Invalid JSON format in %s data", shape.field),
			Index:   -1,
		}
	}

	return doc, nil
}

func asSequence(doc any, shape recordShape) ([]any, error) {
	items, ok := doc.([]any)
	if !ok {
		return nil, &ValidationFailure{
			Err:     ErrNotSequence,
			Field:   shape.field,
			Kind:    ShapeFailure,
			Message: fmt.Sprintf("%s data must be an array", shape.label),
			Index:   -1,
		}
	}

	return items, nil
}

func checkElements(items []any, shape recordShape) ([]map[string]any, error) {
	records := make([]map[string]any, 0, len(items))

	for i, item := range items {
		record, ok := item.(map[string]any)
		if !ok {
			return nil, shapeFailure(shape, i, "not an object")
		}

		for _, rule := range shape.rules {
			val, present := record[rule.name]
			if !present {
				return nil, shapeFailure(shape, i, fmt.Sprintf("missing %s", rule.name))
			}

			switch rule.kind {
			case kindString:
				if _, ok := val.(string); !ok {
					return nil, shapeFailure(shape, i, fmt.Sprintf("%s must be a string", rule.name))
				}
			case kindNumber:
				num, ok := val.(json.Number)
				if !ok {
					return nil, shapeFailure(shape, i, fmt.Sprintf("%s must be a number", rule.name))
				}

				f, err := num.Float64()
				if err != nil {
					return nil, shapeFailure(shape, i, fmt.Sprintf("%s is out of range", rule.name))
				}

				record[rule.name] = f
			}
		}

		records = append(records, record)
	}

	return records, nil
}

func shapeFailure(shape recordShape, index int, detail string) *ValidationFailure {
	return &ValidationFailure{
		Err:     fmt.Errorf("%w at index %d: %s", ErrInvalidElement, index, detail),
		Field:   shape.field,
		Kind:    ShapeFailure,
		Message: fmt.Sprintf("%s (item %d: %s)", shape.description, index, detail),
		Index:   index,
	}
}
