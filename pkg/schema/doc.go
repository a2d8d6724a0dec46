// Package schema defines the tabular schema model consumed by the data generator.
//
// A Schema is an ordered list of fields. Each field has an output key, a
// semantic FieldType and an optional FieldOptions payload whose meaningful
// members depend on the type:
//
//   - amount: Min and Max bound the generated number (defaults 0 and 1000)
//   - date: MinDate and MaxDate (ISO-8601) bound the generated instant
//   - enum: Values is the candidate set
//
// Options that do not apply to a field's type are ignored.
//
// # Documents
//
// Schemas are stored as YAML or JSON documents, either as a bare list of
// fields or wrapped in a "fields" key:
//
//	fields:
//	  - key: id
//	    type: uuid
//	  - key: price
//	    type: amount
//	    options:
//	      min: 5
//	      max: 50
//
// ValidateDocument checks a raw document against the embedded JSON Schema,
// and Lint reports advisory warnings for a parsed schema. Neither is required
// before generation: the generator degrades malformed fields to null.
package schema
