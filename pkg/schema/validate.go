package schema

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	json "github.com/goccy/go-json"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed document.schema.json
var documentSchemaJSON string

const documentSchemaURL = "document.schema.json"

var (
	documentSchema     *jsonschema.Schema
	documentSchemaErr  error
	documentSchemaOnce sync.Once
)

// Severity classifies a reported issue.
type Severity string

// Issue severities.
const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is a single problem found in a schema document or schema.
type Issue struct {
	// Field is the location of the problem, e.g. "fields.2.options.min".
	Field    string   `json:"field,omitempty"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

func (i Issue) String() string {
	if i.Field == "" {
		return string(i.Severity) + ": " + i.Message
	}
	return string(i.Severity) + ": " + i.Field + ": " + i.Message
}

func compileDocumentSchema() (*jsonschema.Schema, error) {
	documentSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource(documentSchemaURL, strings.NewReader(documentSchemaJSON)); err != nil {
			documentSchemaErr = fmt.Errorf("failed to add schema resource: %w", err)
			return
		}
		documentSchema, documentSchemaErr = compiler.Compile(documentSchemaURL)
	})
	return documentSchema, documentSchemaErr
}

// ValidateDocument checks a raw YAML or JSON schema document against the
// document JSON Schema. It returns the structural issues found, or an error
// if the document could not be decoded at all.
func ValidateDocument(data []byte) ([]Issue, error) {
	compiled, err := compileDocumentSchema()
	if err != nil {
		return nil, err
	}

	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &ParseError{Message: err.Error(), Cause: err}
	}
	if raw == nil {
		return nil, ErrEmptyDocument
	}

	// Round-trip through JSON so YAML ints and maps become JSON types.
	buf, err := json.Marshal(raw)
	if err != nil {
		return nil, &ParseError{Message: err.Error(), Cause: err}
	}
	var instance interface{}
	if err := json.Unmarshal(buf, &instance); err != nil {
		return nil, &ParseError{Message: err.Error(), Cause: err}
	}

	err = compiled.Validate(instance)
	if err == nil {
		return nil, nil
	}
	var validationErr *jsonschema.ValidationError
	if !errors.As(err, &validationErr) {
		return nil, err
	}
	var issues []Issue
	collectSchemaErrors(validationErr, &issues)
	return issues, nil
}

// collectSchemaErrors flattens the leaf causes of a validation error.
func collectSchemaErrors(err *jsonschema.ValidationError, issues *[]Issue) {
	if len(err.Causes) == 0 {
		*issues = append(*issues, Issue{
			Field:    pointerToField(err.InstanceLocation),
			Severity: SeverityError,
			Message:  err.Message,
		})
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(cause, issues)
	}
}

func pointerToField(path string) string {
	if path == "" || path == "/" {
		return ""
	}
	path = strings.TrimPrefix(path, "/")
	return strings.ReplaceAll(path, "/", ".")
}

// Lint reports advisory problems in a parsed schema. Generation never
// requires a clean lint: every reported case degrades to a fallback value.
func Lint(s Schema) []Issue {
	var issues []Issue
	warn := func(i int, suffix, msg string) {
		field := fmt.Sprintf("fields.%d", i)
		if suffix != "" {
			field += "." + suffix
		}
		issues = append(issues, Issue{Field: field, Severity: SeverityWarning, Message: msg})
	}

	seen := make(map[string]int, len(s))
	for i, f := range s {
		if strings.TrimSpace(f.Key) == "" {
			warn(i, "key", "key is empty")
		} else if first, dup := seen[f.Key]; dup {
			warn(i, "key", fmt.Sprintf("duplicate key %q (first used by field %d); the later value wins", f.Key, first))
		} else {
			seen[f.Key] = i
		}

		if !f.Type.IsValid() {
			warn(i, "type", fmt.Sprintf("unknown type %q; values will be null", f.Type))
			continue
		}

		switch f.Type {
		case TypeAmount:
			if minVal, maxVal := f.Options.AmountBounds(); minVal > maxVal {
				warn(i, "options", fmt.Sprintf("min %v is greater than max %v", minVal, maxVal))
			}
		case TypeDate:
			lintDate(f.Options, func(suffix, msg string) { warn(i, suffix, msg) })
		case TypeEnum:
			if len(f.Options.EnumValues()) == 0 {
				warn(i, "options.values", "enum has no values; values will be null")
			}
		}
	}
	return issues
}

func lintDate(o *FieldOptions, warn func(suffix, msg string)) {
	if o == nil || (o.MinDate == "" && o.MaxDate == "") {
		return
	}
	if o.MinDate == "" || o.MaxDate == "" {
		warn("options", "both minDate and maxDate are needed for a date range; recent dates will be used")
		return
	}
	minT, errMin := ParseTime(o.MinDate)
	if errMin != nil {
		warn("options.minDate", fmt.Sprintf("invalid timestamp %q", o.MinDate))
	}
	maxT, errMax := ParseTime(o.MaxDate)
	if errMax != nil {
		warn("options.maxDate", fmt.Sprintf("invalid timestamp %q", o.MaxDate))
	}
	if errMin == nil && errMax == nil && minT.After(maxT) {
		warn("options", "minDate is after maxDate; recent dates will be used")
	}
}
