package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDocument_Valid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"wrapped", wrappedYAML},
		{"bare", "- key: id\n  type: uuid\n"},
		{"json", `{"fields":[{"key":"a","type":"enum","options":{"values":["x"]}}]}`},
		{"unknown type is structurally fine", `[{"key":"c","type":"color"}]`},
		{"empty list", `[]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues, err := ValidateDocument([]byte(tt.data))
			require.NoError(t, err)
			assert.Empty(t, issues)
		})
	}
}

func TestValidateDocument_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"missing type", `{"fields":[{"key":"a"}]}`},
		{"min is a string", `{"fields":[{"key":"a","type":"amount","options":{"min":"low"}}]}`},
		{"values not strings", `{"fields":[{"key":"a","type":"enum","options":{"values":[1,2]}}]}`},
		{"scalar document", `"hello"`},
		{"fields not a list", `{"fields":{"key":"a"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues, err := ValidateDocument([]byte(tt.data))
			require.NoError(t, err)
			require.NotEmpty(t, issues)
			for _, issue := range issues {
				assert.Equal(t, SeverityError, issue.Severity)
				assert.NotEmpty(t, issue.Message)
			}
		})
	}
}

func TestValidateDocument_FieldLocation(t *testing.T) {
	issues, err := ValidateDocument([]byte(`{"fields":[{"key":"a","type":"uuid"},{"key":"b","type":"amount","options":{"max":"high"}}]}`))
	require.NoError(t, err)

	var fields []string
	for _, issue := range issues {
		fields = append(fields, issue.Field)
	}
	assert.Contains(t, fields, "fields.1.options.max")
}

func TestValidateDocument_DecodeErrors(t *testing.T) {
	_, err := ValidateDocument([]byte(""))
	assert.ErrorIs(t, err, ErrEmptyDocument)

	_, err = ValidateDocument([]byte("fields: [unclosed"))
	var pe *ParseError
	assert.ErrorAs(t, err, &pe)
}

func TestIssue_String(t *testing.T) {
	assert.Equal(t, "warning: fields.0.key: key is empty",
		Issue{Field: "fields.0.key", Severity: SeverityWarning, Message: "key is empty"}.String())
	assert.Equal(t, "error: bad", Issue{Severity: SeverityError, Message: "bad"}.String())
}

func TestLint(t *testing.T) {
	tests := []struct {
		name   string
		schema Schema
		fields []string
	}{
		{
			name:   "default schema is clean",
			schema: DefaultSchema(),
		},
		{
			name:   "empty key",
			schema: Schema{{Key: " ", Type: TypeName}},
			fields: []string{"fields.0.key"},
		},
		{
			name:   "duplicate key",
			schema: Schema{{Key: "a", Type: TypeName}, {Key: "a", Type: TypeEmail}},
			fields: []string{"fields.1.key"},
		},
		{
			name:   "unknown type",
			schema: Schema{{Key: "c", Type: "color"}},
			fields: []string{"fields.0.type"},
		},
		{
			name:   "inverted amount",
			schema: Schema{{Key: "p", Type: TypeAmount, Options: &FieldOptions{Min: Float(10), Max: Float(1)}}},
			fields: []string{"fields.0.options"},
		},
		{
			name:   "equal amount bounds are fine",
			schema: Schema{{Key: "p", Type: TypeAmount, Options: &FieldOptions{Min: Float(10), Max: Float(10)}}},
		},
		{
			name:   "one date bound",
			schema: Schema{{Key: "d", Type: TypeDate, Options: &FieldOptions{MinDate: "2024-01-01"}}},
			fields: []string{"fields.0.options"},
		},
		{
			name:   "invalid dates",
			schema: Schema{{Key: "d", Type: TypeDate, Options: &FieldOptions{MinDate: "soon", MaxDate: "later"}}},
			fields: []string{"fields.0.options.minDate", "fields.0.options.maxDate"},
		},
		{
			name:   "inverted dates",
			schema: Schema{{Key: "d", Type: TypeDate, Options: &FieldOptions{MinDate: "2025-01-01", MaxDate: "2024-01-01"}}},
			fields: []string{"fields.0.options"},
		},
		{
			name:   "enum without values",
			schema: Schema{{Key: "e", Type: TypeEnum}},
			fields: []string{"fields.0.options.values"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := Lint(tt.schema)
			var got []string
			for _, issue := range issues {
				assert.Equal(t, SeverityWarning, issue.Severity)
				got = append(got, issue.Field)
			}
			assert.Equal(t, tt.fields, got)
		})
	}
}
