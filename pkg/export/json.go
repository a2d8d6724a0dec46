package export

import (
	"bytes"

	json "github.com/goccy/go-json"

	"github.com/getmockd/mockmaster/pkg/generator"
)

// JSONExporter writes a dataset as a JSON array of objects.
type JSONExporter struct {
	// Compact disables the default two-space indentation.
	Compact bool
}

// Format returns FormatJSON.
func (e *JSONExporter) Format() Format {
	return FormatJSON
}

// Export encodes rows as a JSON array with keys in row order.
func (e *JSONExporter) Export(rows generator.Dataset) ([]byte, error) {
	raw, err := encodeArray(rows)
	if err != nil {
		return nil, err
	}
	if e.Compact {
		return raw, nil
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// encodeArray writes rows as a compact JSON array. An empty dataset is "[]".
func encodeArray(rows generator.Dataset) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, row := range rows {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeRow(&buf, row); err != nil {
			return nil, err
		}
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

func writeRow(buf *bytes.Buffer, row *generator.Row) error {
	if row == nil {
		buf.WriteString("{}")
		return nil
	}
	data, err := row.MarshalJSON()
	if err != nil {
		return err
	}
	buf.Write(data)
	return nil
}
