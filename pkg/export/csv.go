package export

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/getmockd/mockmaster/pkg/generator"
)

// CSVExporter writes a dataset as comma-separated values.
//
// The header line lists the keys of the first row as-is. Every data value
// is wrapped in double quotes with embedded quotes doubled, so commas and
// line breaks inside values survive. Lines are separated by "\n" with no
// trailing newline. An empty dataset produces no output.
type CSVExporter struct{}

// Format returns FormatCSV.
func (e *CSVExporter) Format() Format {
	return FormatCSV
}

// Export encodes rows as CSV.
func (e *CSVExporter) Export(rows generator.Dataset) ([]byte, error) {
	if len(rows) == 0 || rows[0] == nil {
		return []byte{}, nil
	}

	headers := rows[0].Keys()
	var buf bytes.Buffer
	buf.WriteString(strings.Join(headers, ","))

	for _, row := range rows {
		buf.WriteByte('\n')
		for i, h := range headers {
			if i > 0 {
				buf.WriteByte(',')
			}
			var v any
			if row != nil {
				v, _ = row.Get(h)
			}
			writeQuoted(&buf, csvValue(v))
		}
	}
	return buf.Bytes(), nil
}

func writeQuoted(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	buf.WriteString(strings.ReplaceAll(s, `"`, `""`))
	buf.WriteByte('"')
}

// csvValue renders a row value as text. nil becomes the empty string.
func csvValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	default:
		return fmt.Sprint(val)
	}
}
