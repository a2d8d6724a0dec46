package schema

// FieldType is the semantic type of a schema field.
type FieldType string

// Field types.
const (
	TypeName     FieldType = "name"
	TypeEmail    FieldType = "email"
	TypePhone    FieldType = "phone"
	TypeAddress  FieldType = "address"
	TypeCompany  FieldType = "company"
	TypeDate     FieldType = "date"
	TypeUUID     FieldType = "uuid"
	TypeBoolean  FieldType = "boolean"
	TypeAmount   FieldType = "amount"
	TypeAvatar   FieldType = "avatar"
	TypeSentence FieldType = "sentence"
	TypeEnum     FieldType = "enum"
)

// Amount bounds used when a field does not set its own.
const (
	DefaultAmountMin = 0.0
	DefaultAmountMax = 1000.0
)

var fieldTypes = []FieldType{
	TypeName, TypeEmail, TypePhone, TypeAddress, TypeCompany, TypeDate,
	TypeUUID, TypeBoolean, TypeAmount, TypeAvatar, TypeSentence, TypeEnum,
}

var fieldTypeDescriptions = map[FieldType]string{
	TypeName:     "Full personal name",
	TypeEmail:    "Email address",
	TypePhone:    "Phone number",
	TypeAddress:  "Street address",
	TypeCompany:  "Company name",
	TypeDate:     "ISO-8601 timestamp (optional minDate/maxDate)",
	TypeUUID:     "Random v4 UUID",
	TypeBoolean:  "true or false",
	TypeAmount:   "Decimal amount (optional min/max)",
	TypeAvatar:   "Avatar image URL",
	TypeSentence: "Short lorem sentence",
	TypeEnum:     "One of a list of values",
}

// AllFieldTypes returns every supported field type in declaration order.
func AllFieldTypes() []FieldType {
	out := make([]FieldType, len(fieldTypes))
	copy(out, fieldTypes)
	return out
}

// String returns the string representation of the field type.
func (t FieldType) String() string {
	return string(t)
}

// IsValid returns true if the type is one of the supported field types.
func (t FieldType) IsValid() bool {
	_, ok := fieldTypeDescriptions[t]
	return ok
}

// Description returns a short human-readable label for the type.
// Unknown types return an empty string.
func (t FieldType) Description() string {
	return fieldTypeDescriptions[t]
}

// FieldOptions holds type-specific constraints for a field.
type FieldOptions struct {
	// Min is the inclusive lower bound for amount fields.
	Min *float64 `yaml:"min,omitempty" json:"min,omitempty"`
	// Max is the upper bound for amount fields.
	Max *float64 `yaml:"max,omitempty" json:"max,omitempty"`

	// MinDate and MaxDate bound date fields (ISO-8601 timestamps).
	MinDate string `yaml:"minDate,omitempty" json:"minDate,omitempty"`
	MaxDate string `yaml:"maxDate,omitempty" json:"maxDate,omitempty"`

	// Values is the candidate set for enum fields.
	Values []string `yaml:"values,omitempty" json:"values,omitempty"`
}

// AmountBounds returns the resolved amount bounds, applying the defaults
// for whichever side is unset. A nil receiver yields the defaults.
func (o *FieldOptions) AmountBounds() (minVal, maxVal float64) {
	minVal, maxVal = DefaultAmountMin, DefaultAmountMax
	if o == nil {
		return minVal, maxVal
	}
	if o.Min != nil {
		minVal = *o.Min
	}
	if o.Max != nil {
		maxVal = *o.Max
	}
	return minVal, maxVal
}

// EnumValues returns the enum candidate set. A nil receiver yields nil.
func (o *FieldOptions) EnumValues() []string {
	if o == nil {
		return nil
	}
	return o.Values
}

// DateBounds returns the raw date bounds and whether both are set.
func (o *FieldOptions) DateBounds() (minDate, maxDate string, ok bool) {
	if o == nil || o.MinDate == "" || o.MaxDate == "" {
		return "", "", false
	}
	return o.MinDate, o.MaxDate, true
}

// Clone returns a deep copy of the options.
func (o *FieldOptions) Clone() *FieldOptions {
	if o == nil {
		return nil
	}
	c := &FieldOptions{
		MinDate: o.MinDate,
		MaxDate: o.MaxDate,
	}
	if o.Min != nil {
		v := *o.Min
		c.Min = &v
	}
	if o.Max != nil {
		v := *o.Max
		c.Max = &v
	}
	if o.Values != nil {
		c.Values = make([]string, len(o.Values))
		copy(c.Values, o.Values)
	}
	return c
}

// Field is a named, typed slot in a schema.
type Field struct {
	// Key is the output property name.
	Key string `yaml:"key" json:"key"`
	// Type selects the generation rule.
	Type FieldType `yaml:"type" json:"type"`
	// Options carries type-specific constraints.
	Options *FieldOptions `yaml:"options,omitempty" json:"options,omitempty"`
}

// Schema is an ordered list of fields describing one row's shape.
// Field order determines output key order.
type Schema []Field

// Keys returns the field keys in schema order.
func (s Schema) Keys() []string {
	keys := make([]string, len(s))
	for i, f := range s {
		keys[i] = f.Key
	}
	return keys
}

// Clone returns a deep copy of the schema.
func (s Schema) Clone() Schema {
	if s == nil {
		return nil
	}
	out := make(Schema, len(s))
	for i, f := range s {
		out[i] = Field{Key: f.Key, Type: f.Type, Options: f.Options.Clone()}
	}
	return out
}

// Float returns a pointer to v, for populating FieldOptions bounds.
func Float(v float64) *float64 {
	return &v
}
