package schema

import (
	"strconv"
	"strings"
	"time"
)

// DefaultSchema returns a fresh copy of the schema used as initial and reset
// state.
func DefaultSchema() Schema {
	return Schema{
		{Key: "id", Type: TypeUUID},
		{Key: "full_name", Type: TypeName},
		{Key: "email_address", Type: TypeEmail},
		{Key: "role", Type: TypeCompany},
		{Key: "is_active", Type: TypeBoolean},
	}
}

// NewFieldKey is the key given to the n-th field (1-based) added by AddField.
func NewFieldKey(n int) string {
	return "field_" + strconv.Itoa(n)
}

// FieldPatch is a partial update applied by UpdateField. Nil members are
// left unchanged. Options, when set, replaces the field's options wholesale.
type FieldPatch struct {
	Key     *string       `json:"key,omitempty" yaml:"key,omitempty"`
	Type    *FieldType    `json:"type,omitempty" yaml:"type,omitempty"`
	Options *FieldOptions `json:"options,omitempty" yaml:"options,omitempty"`
}

// AddField returns a copy of s with a new sentence field appended.
func (s Schema) AddField() Schema {
	out := s.Clone()
	return append(out, Field{Key: NewFieldKey(len(s) + 1), Type: TypeSentence})
}

// UpdateField returns a copy of s with patch merged into the field at index.
// An out-of-range index returns an unmodified copy.
func (s Schema) UpdateField(index int, patch FieldPatch) Schema {
	out := s.Clone()
	if index < 0 || index >= len(out) {
		return out
	}
	f := &out[index]
	if patch.Key != nil {
		f.Key = *patch.Key
	}
	if patch.Type != nil {
		f.Type = *patch.Type
	}
	if patch.Options != nil {
		f.Options = patch.Options.Clone()
	}
	return out
}

// RemoveField returns a copy of s without the field at index.
// An out-of-range index returns an unmodified copy.
func (s Schema) RemoveField(index int) Schema {
	out := s.Clone()
	if index < 0 || index >= len(out) {
		return out
	}
	return append(out[:index], out[index+1:]...)
}

// ParseEnumValues splits a comma-separated list into trimmed enum values.
func ParseEnumValues(s string) []string {
	parts := strings.Split(s, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		values = append(values, strings.TrimSpace(p))
	}
	return values
}

// DateOption converts a calendar day (YYYY-MM-DD) or an RFC3339 timestamp
// into the ISO-8601 UTC form stored in MinDate/MaxDate.
func DateOption(day string) (string, error) {
	day = strings.TrimSpace(day)
	t, err := time.Parse(time.DateOnly, day)
	if err != nil {
		t, err = time.Parse(time.RFC3339Nano, day)
		if err != nil {
			return "", err
		}
	}
	return t.UTC().Format(ISOTimeLayout), nil
}

// ISOTimeLayout is the timestamp layout used for generated and stored dates:
// RFC3339 in UTC with millisecond precision.
const ISOTimeLayout = "2006-01-02T15:04:05.000Z"

// ParseTime parses an ISO-8601 timestamp as accepted in date options.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	return time.Parse(time.DateOnly, s)
}
