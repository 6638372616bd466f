package model_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cvgen/internal/model"
)

func TestSchemaJSON(t *testing.T) {
	t.Parallel()

	data, err := model.SchemaJSON()
	require.NoError(t, err)

	var schema map[string]any
	require.NoError(t, json.Unmarshal(data, &schema))
	assert.Equal(t, "http://json-schema.org/draft-07/schema#", schema["$schema"])

	// every entry kind plus the bare-string bullet form shows up as a variant
	props := schema["properties"].(map[string]any)
	cv := props["cv"].(map[string]any)["properties"].(map[string]any)
	sections := cv["sections"].(map[string]any)["additionalProperties"].(map[string]any)
	entryList := sections["oneOf"].([]any)[0].(map[string]any)
	variants := entryList["items"].(map[string]any)["oneOf"].([]any)
	assert.Len(t, variants, len(model.EntryKindNames())+1)
}

func TestValidateRawShape(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     map[string]any
		wantErr bool
	}{
		{
			name: "valid document",
			raw: map[string]any{
				"cv": map[string]any{
					"name": "Jane Doe",
					"sections": map[string]any{
						"skills": []any{"Go"},
					},
				},
			},
		},
		{
			name:    "missing cv",
			raw:     map[string]any{"design": map[string]any{}},
			wantErr: true,
		},
		{
			name:    "cv is not a mapping",
			raw:     map[string]any{"cv": "Jane Doe"},
			wantErr: true,
		},
		{
			name: "section body is a scalar",
			raw: map[string]any{
				"cv": map[string]any{
					"name": "Jane Doe",
					"sections": map[string]any{
						"skills": "Go",
					},
				},
			},
			wantErr: true,
		},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := model.ValidateRawShape(tc.raw)
			if !tc.wantErr {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			list, ok := model.AsErrorList(err)
			require.True(t, ok)
			var fieldErr *model.FieldError
			assert.ErrorAs(t, list[0], &fieldErr)
		})
	}
}
