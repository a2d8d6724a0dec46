package schema

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Document is the wrapped on-disk form of a schema.
type Document struct {
	Fields Schema `yaml:"fields" json:"fields"`
}

// ErrEmptyDocument is returned when a schema document has no content.
var ErrEmptyDocument = errors.New("schema document is empty")

// ParseError represents a schema document that could not be decoded.
type ParseError struct {
	Path    string
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return "parse schema: " + e.Message
	}
	return e.Path + ": " + e.Message
}

// Unwrap returns the underlying cause.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Load reads and parses a schema file.
func Load(path string) (Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading schema file: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Path = path
		}
		return nil, err
	}
	return s, nil
}

// Parse decodes a YAML or JSON schema document. Both the bare list form and
// the {"fields": [...]} form are accepted.
func Parse(data []byte) (Schema, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyDocument
	}

	// JSON is a subset of YAML, so a single decoder handles both.
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &ParseError{Message: err.Error(), Cause: err}
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, ErrEmptyDocument
	}

	node := root.Content[0]
	switch node.Kind {
	case yaml.SequenceNode:
		var s Schema
		if err := node.Decode(&s); err != nil {
			return nil, &ParseError{Message: err.Error(), Cause: err}
		}
		return s, nil
	case yaml.MappingNode:
		var doc Document
		if err := node.Decode(&doc); err != nil {
			return nil, &ParseError{Message: err.Error(), Cause: err}
		}
		return doc.Fields, nil
	default:
		return nil, &ParseError{Message: "expected a list of fields or a mapping with a 'fields' key"}
	}
}

// Marshal encodes a schema as a wrapped document. JSON output is indented.
func Marshal(s Schema, asYAML bool) ([]byte, error) {
	doc := Document{Fields: s}
	if doc.Fields == nil {
		doc.Fields = Schema{}
	}
	if asYAML {
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, fmt.Errorf("encoding schema: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encoding schema: %w", err)
		}
		return buf.Bytes(), nil
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding schema: %w", err)
	}
	return append(data, '\n'), nil
}

// Save writes a schema to path, choosing JSON for .json files and YAML
// otherwise.
func Save(path string, s Schema) error {
	data, err := Marshal(s, !isJSONPath(path))
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing schema file: %w", err)
	}
	return nil
}

// NamedSchema is a schema together with the file it was loaded from.
type NamedSchema struct {
	Path   string
	Schema Schema
}

// LoadGlob loads every schema file matching pattern. Patterns may use ** for
// recursive matching. Results are sorted by path; no match is not an error.
func LoadGlob(pattern string) ([]NamedSchema, error) {
	matches, err := Glob(pattern)
	if err != nil {
		return nil, err
	}

	result := make([]NamedSchema, 0, len(matches))
	for _, match := range matches {
		s, err := Load(match)
		if err != nil {
			return nil, err
		}
		result = append(result, NamedSchema{Path: match, Schema: s})
	}
	return result, nil
}

// Glob returns the files matching pattern, sorted. Patterns may use ** for
// recursive matching.
func Glob(pattern string) ([]string, error) {
	matches, err := expandGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("expanding glob pattern: %w", err)
	}
	sort.Strings(matches)
	return matches, nil
}

func expandGlob(pattern string) ([]string, error) {
	if strings.Contains(pattern, "**") {
		return doublestar.FilepathGlob(pattern)
	}
	return filepath.Glob(pattern)
}

func isJSONPath(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}
