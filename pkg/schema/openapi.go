package schema

import (
	"github.com/getkin/kin-openapi/openapi3"
)

// ExtensionFieldType is the vendor extension recording a property's field type.
const ExtensionFieldType = "x-mockmaster-type"

// ToOpenAPI projects a schema onto an OpenAPI 3 object schema describing one
// generated row. Every key is required; unknown types and empty enums become
// nullable untyped properties. With duplicate keys the last field wins.
func ToOpenAPI(s Schema) *openapi3.Schema {
	obj := openapi3.NewObjectSchema()
	required := make([]string, 0, len(s))
	seen := make(map[string]bool, len(s))

	for _, f := range s {
		prop := fieldToOpenAPI(f)
		if prop.Extensions == nil {
			prop.Extensions = make(map[string]interface{})
		}
		prop.Extensions[ExtensionFieldType] = string(f.Type)
		obj.WithProperty(f.Key, prop)
		if !seen[f.Key] {
			seen[f.Key] = true
			required = append(required, f.Key)
		}
	}
	obj.Required = required
	return obj
}

func fieldToOpenAPI(f Field) *openapi3.Schema {
	switch f.Type {
	case TypeUUID:
		return openapi3.NewUUIDSchema()
	case TypeEmail:
		return openapi3.NewStringSchema().WithFormat("email")
	case TypeDate:
		return openapi3.NewDateTimeSchema()
	case TypeAvatar:
		return openapi3.NewStringSchema().WithFormat("uri")
	case TypeBoolean:
		return openapi3.NewBoolSchema()
	case TypeAmount:
		minVal, maxVal := f.Options.AmountBounds()
		return openapi3.NewFloat64Schema().WithMin(minVal).WithMax(maxVal)
	case TypeEnum:
		values := f.Options.EnumValues()
		if len(values) == 0 {
			return openapi3.NewSchema().WithNullable()
		}
		enum := make([]interface{}, len(values))
		for i, v := range values {
			enum[i] = v
		}
		return openapi3.NewStringSchema().WithEnum(enum...)
	case TypeName, TypePhone, TypeAddress, TypeCompany, TypeSentence:
		return openapi3.NewStringSchema()
	default:
		return openapi3.NewSchema().WithNullable()
	}
}
