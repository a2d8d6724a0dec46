package export

import (
	"bytes"

	"github.com/getmockd/mockmaster/pkg/generator"
)

// NDJSONExporter writes one compact JSON object per line.
type NDJSONExporter struct{}

// Format returns FormatNDJSON.
func (e *NDJSONExporter) Format() Format {
	return FormatNDJSON
}

// Export encodes each row on its own line. Every line, including the last,
// ends with "\n".
func (e *NDJSONExporter) Export(rows generator.Dataset) ([]byte, error) {
	var buf bytes.Buffer
	for _, row := range rows {
		if err := writeRow(&buf, row); err != nil {
			return nil, err
		}
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}
