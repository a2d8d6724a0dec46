package export

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/getmockd/mockmaster/pkg/generator"
)

// YAMLExporter writes a dataset as a YAML sequence of mappings.
type YAMLExporter struct{}

// Format returns FormatYAML.
func (e *YAMLExporter) Format() Format {
	return FormatYAML
}

// Export encodes rows as YAML, keeping keys in row order.
func (e *YAMLExporter) Export(rows generator.Dataset) ([]byte, error) {
	seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, row := range rows {
		m, err := rowNode(row)
		if err != nil {
			return nil, err
		}
		seq.Content = append(seq.Content, m)
	}
	if len(seq.Content) == 0 {
		seq.Style = yaml.FlowStyle
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(seq); err != nil {
		return nil, fmt.Errorf("encoding yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding yaml: %w", err)
	}
	return buf.Bytes(), nil
}

func rowNode(row *generator.Row) (*yaml.Node, error) {
	m := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	if row == nil {
		m.Style = yaml.FlowStyle
		return m, nil
	}
	for _, k := range row.Keys() {
		v, _ := row.Get(k)
		var kn, vn yaml.Node
		if err := kn.Encode(k); err != nil {
			return nil, err
		}
		if err := vn.Encode(v); err != nil {
			return nil, fmt.Errorf("encoding %q: %w", k, err)
		}
		m.Content = append(m.Content, &kn, &vn)
	}
	if len(m.Content) == 0 {
		m.Style = yaml.FlowStyle
	}
	return m, nil
}
