// Package preview renders, projects and filters generated datasets for
// display before they are exported.
package preview

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ohler55/ojg/jp"

	"github.com/getmockd/mockmaster/pkg/export"
	"github.com/getmockd/mockmaster/pkg/generator"
)

// ErrInvalidPath is returned when a JSONPath expression does not parse.
var ErrInvalidPath = errors.New("invalid JSONPath expression")

// Render returns rows as indented JSON, the text placed on the clipboard.
func Render(rows generator.Dataset) (string, error) {
	data, err := (&export.JSONExporter{}).Export(rows)
	if err != nil {
		return "", fmt.Errorf("rendering preview: %w", err)
	}
	return string(data), nil
}

// Query evaluates a JSONPath expression against the dataset, which is seen
// as an array of objects: "$[0].email", "$[*].name", "$..id".
func Query(rows generator.Dataset, path string) ([]any, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	x, err := jp.ParseString(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPath, err)
	}
	return x.Get(toDocument(rows)), nil
}

func toDocument(rows generator.Dataset) []any {
	doc := make([]any, len(rows))
	for i, r := range rows {
		if r == nil {
			doc[i] = map[string]any{}
			continue
		}
		doc[i] = r.Map()
	}
	return doc
}
