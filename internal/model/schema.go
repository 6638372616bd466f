package model

import (
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// Schema builds the machine-readable JSON Schema for the input document.
// It is derived from the same field tables the candidate parsers use, so the
// two cannot drift apart. The schema is what editors load for completion and
// inline validation of hand-written YAML.
func Schema() map[string]any {
	entryVariants := make([]any, 0, len(kindOrder)+1)
	for _, kind := range kindOrder {
		entryVariants = append(entryVariants, entrySchema(kind))
	}
	// a bullet entry may also be written as a bare string
	entryVariants = append(entryVariants, map[string]any{"type": "string"})

	entryList := map[string]any{
		"type":  "array",
		"items": map[string]any{"oneOf": entryVariants},
	}
	pinnedSection := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"entry_type": map[string]any{"enum": toAnySlice(EntryKindNames())},
			"entries":    entryList,
		},
		"required":             []any{"entry_type", "entries"},
		"additionalProperties": false,
	}

	socialNames := SocialNetworkNames()

	return map[string]any{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"title":   "CV document",
		"type":    "object",
		"properties": map[string]any{
			"cv": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"name":     map[string]any{"type": "string", "minLength": 1},
					"headline": map[string]any{"type": "string"},
					"location": map[string]any{"type": "string"},
					"email":    map[string]any{"type": "string"},
					"phone":    map[string]any{"type": "string"},
					"website":  map[string]any{"type": "string"},
					"social_networks": map[string]any{
						"type": "array",
						"items": map[string]any{
							"type": "object",
							"properties": map[string]any{
								"network":  map[string]any{"enum": toAnySlice(socialNames)},
								"username": map[string]any{"type": "string", "minLength": 1},
							},
							"required":             []any{"network", "username"},
							"additionalProperties": false,
						},
					},
					"sections": map[string]any{
						"type": "object",
						"additionalProperties": map[string]any{
							"oneOf": []any{entryList, pinnedSection},
						},
					},
				},
				"required":             []any{"name"},
				"additionalProperties": false,
			},
			"design": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"theme": map[string]any{"type": "string"},
				},
			},
			"locale_catalog": map[string]any{"type": "object"},
		},
		"required":             []any{"cv"},
		"additionalProperties": false,
	}
}

func entrySchema(kind EntryKind) map[string]any {
	spec := entryFields[kind]
	props := map[string]any{}
	for _, key := range spec.Required {
		props[key] = fieldSchema(key)
	}
	for _, key := range spec.Optional {
		props[key] = fieldSchema(key)
	}
	return map[string]any{
		"type":                 "object",
		"properties":           props,
		"required":             toAnySlice(spec.Required),
		"additionalProperties": false,
	}
}

func fieldSchema(key string) map[string]any {
	switch key {
	case "highlights", "authors":
		return map[string]any{"type": "array", "items": map[string]any{"type": "string"}}
	case "start_date", "end_date", "date":
		// bare years arrive as YAML integers
		return map[string]any{"type": []any{"string", "integer"}}
	default:
		return map[string]any{"type": "string", "minLength": 1}
	}
}

// SchemaJSON renders the generated schema as indented JSON for writing to
// disk.
func SchemaJSON() ([]byte, error) {
	return json.MarshalIndent(Schema(), "", "  ")
}

// rawShapeSchema is a relaxed structural subset used as the pipeline's
// pre-check: it guards the gross document shape but leaves entry variant and
// field semantics to the typed parsers, whose errors carry better paths.
func rawShapeSchema() map[string]any {
	anyEntry := map[string]any{
		"type": "array",
		"items": map[string]any{"type": []any{"object", "string"}},
	}
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"cv": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"sections": map[string]any{
						"type": "object",
						"additionalProperties": map[string]any{
							"oneOf": []any{
								anyEntry,
								map[string]any{"type": "object"},
							},
						},
					},
				},
			},
			"design":         map[string]any{"type": "object"},
			"locale_catalog": map[string]any{"type": "object"},
		},
		"required": []any{"cv"},
	}
}

// ValidateRawShape checks the raw document's gross structure against the
// generated schema family before typed parsing. Schema violations are mapped
// into the same collected error shape the model validators produce.
func ValidateRawShape(raw map[string]any) error {
	schemaLoader := gojsonschema.NewGoLoader(rawShapeSchema())
	docLoader := gojsonschema.NewGoLoader(raw)

	res, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}
	if res.Valid() {
		return nil
	}
	var errs ErrorList
	for _, e := range res.Errors() {
		errs.Add(NewFieldError(e.Field(), fmt.Sprintf("%v", e.Value()), "%s", e.Description()))
	}
	return errs.Err()
}

func toAnySlice(in []string) []any {
	out := make([]any, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}
