package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/getmockd/mockmaster/pkg/generator"
	"github.com/getmockd/mockmaster/pkg/schema"
)

func row(kv ...any) *generator.Row {
	r := generator.NewRow(len(kv) / 2)
	for i := 0; i+1 < len(kv); i += 2 {
		r.Set(kv[i].(string), kv[i+1])
	}
	return r
}

func sampleRows() generator.Dataset {
	return generator.Dataset{
		row("id", "a1", "name", `Ann "The Hammer" Lee`, "active", true, "price", 12.5, "tier", nil),
		row("id", "b2", "name", "Bo, Jr.", "active", false, "price", 100.0, "tier", "gold"),
	}
}

func seededRows(t *testing.T, n int) generator.Dataset {
	t.Helper()
	now := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)
	eng := generator.New(generator.WithSeed(7), generator.WithNow(func() time.Time { return now }))
	s := append(schema.DefaultSchema(),
		schema.Field{Key: "price", Type: schema.TypeAmount},
		schema.Field{Key: "created", Type: schema.TypeDate},
		schema.Field{Key: "bio", Type: schema.TypeSentence},
		schema.Field{Key: "nothing", Type: schema.TypeEnum},
	)
	return eng.Generate(s, n)
}

// =============================================================================
// Formats
// =============================================================================

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"json", FormatJSON},
		{" CSV ", FormatCSV},
		{"yml", FormatYAML},
		{"yaml", FormatYAML},
		{"ndjson", FormatNDJSON},
		{"jsonl", FormatNDJSON},
		{"xml", FormatUnknown},
		{"", FormatUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseFormat(tt.in))
		})
	}
}

func TestFormat_Metadata(t *testing.T) {
	assert.Equal(t, "mock_data.json", FormatJSON.DefaultFilename())
	assert.Equal(t, "mock_data.csv", FormatCSV.DefaultFilename())
	assert.Equal(t, "mock_data.yaml", FormatYAML.DefaultFilename())
	assert.Equal(t, "mock_data.ndjson", FormatNDJSON.DefaultFilename())

	assert.Equal(t, "application/json", FormatJSON.ContentType())
	assert.True(t, strings.HasPrefix(FormatCSV.ContentType(), "text/csv"))

	assert.True(t, FormatCSV.RequiresAuth())
	for _, f := range []Format{FormatJSON, FormatYAML, FormatNDJSON} {
		assert.False(t, f.RequiresAuth(), f)
	}

	assert.Equal(t, FormatCSV, FormatFromFilename("out/rows.csv"))
	assert.Equal(t, FormatYAML, FormatFromFilename("rows.YML"))
	assert.Equal(t, FormatUnknown, FormatFromFilename("rows"))
}

// =============================================================================
// Export
// =============================================================================

func TestExport_CSVRequiresAuthentication(t *testing.T) {
	res, err := Export(sampleRows(), &Options{Format: FormatCSV})
	require.Error(t, err)
	assert.Nil(t, res)
	assert.True(t, errors.Is(err, ErrAuthRequired))

	var exportErr *ExportError
	require.ErrorAs(t, err, &exportErr)
	assert.Equal(t, FormatCSV, exportErr.Format)

	res, err = Export(sampleRows(), &Options{Format: FormatCSV, Authenticated: true})
	require.NoError(t, err)
	assert.Equal(t, "mock_data.csv", res.Filename)
	assert.Equal(t, 2, res.Rows)
}

func TestExport_UngatedFormats(t *testing.T) {
	for _, f := range []Format{FormatJSON, FormatYAML, FormatNDJSON} {
		t.Run(string(f), func(t *testing.T) {
			res, err := Export(sampleRows(), &Options{Format: f})
			require.NoError(t, err)
			assert.Equal(t, f, res.Format)
			assert.NotEmpty(t, res.Data)
		})
	}
}

func TestExport_Defaults(t *testing.T) {
	res, err := Export(sampleRows(), nil)
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, res.Format)
	assert.Equal(t, "application/json", res.ContentType)
}

func TestExport_UnknownFormat(t *testing.T) {
	_, err := Export(sampleRows(), &Options{Format: "xml"})
	assert.ErrorIs(t, err, ErrUnknownFormat)
	assert.Contains(t, err.Error(), "xml")
}

func TestExport_Compact(t *testing.T) {
	res, err := Export(generator.Dataset{row("a", 1.0)}, &Options{Format: FormatJSON, Compact: true})
	require.NoError(t, err)
	assert.Equal(t, `[{"a":1}]`, string(res.Data))

	// The shared exporter keeps indenting.
	res, err = Export(generator.Dataset{row("a", 1.0)}, nil)
	require.NoError(t, err)
	assert.Equal(t, "[\n  {\n    \"a\": 1\n  }\n]", string(res.Data))
}

func TestExportError_Error(t *testing.T) {
	err := &ExportError{Format: FormatYAML, Message: "export failed", Cause: errors.New("boom")}
	assert.Equal(t, "yaml: export failed: boom", err.Error())
	assert.Equal(t, "no format", (&ExportError{Message: "no format"}).Error())
}

// =============================================================================
// JSON
// =============================================================================

func TestJSONExporter_KeyOrderAndIndent(t *testing.T) {
	data, err := (&JSONExporter{}).Export(generator.Dataset{row("z", "last", "a", true, "m", nil)})
	require.NoError(t, err)
	want := "[\n  {\n    \"z\": \"last\",\n    \"a\": true,\n    \"m\": null\n  }\n]"
	assert.Equal(t, want, string(data))
}

func TestJSONExporter_Empty(t *testing.T) {
	data, err := (&JSONExporter{}).Export(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestJSONExporter_NoHTMLEscaping(t *testing.T) {
	data, err := (&JSONExporter{Compact: true}).Export(generator.Dataset{row("company", "Smith & <Sons>")})
	require.NoError(t, err)
	assert.Equal(t, `[{"company":"Smith & <Sons>"}]`, string(data))
}

func TestJSONExporter_RoundTrip(t *testing.T) {
	rows := seededRows(t, 20)
	data, err := (&JSONExporter{}).Export(rows)
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	if diff := cmp.Diff(rows.Maps(), decoded); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

// =============================================================================
// CSV
// =============================================================================

func TestCSVExporter_Layout(t *testing.T) {
	data, err := (&CSVExporter{}).Export(sampleRows())
	require.NoError(t, err)

	want := "id,name,active,price,tier\n" +
		`"a1","Ann ""The Hammer"" Lee","true","12.5",""` + "\n" +
		`"b2","Bo, Jr.","false","100","gold"`
	assert.Equal(t, want, string(data))
}

func TestCSVExporter_Empty(t *testing.T) {
	data, err := (&CSVExporter{}).Export(generator.Dataset{})
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestCSVExporter_HeaderFromFirstRow(t *testing.T) {
	rows := generator.Dataset{
		row("a", "1", "b", "2"),
		row("b", "3", "c", "4"),
	}
	data, err := (&CSVExporter{}).Export(rows)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n\"1\",\"2\"\n\"\",\"3\"", string(data))
}

func TestCSVExporter_RoundTrip(t *testing.T) {
	rows := seededRows(t, 25)
	rows[0].Set("bio", "line one\nline \"two\", with comma")

	data, err := (&CSVExporter{}).Export(rows)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, len(rows)+1)

	headers := rows[0].Keys()
	assert.Equal(t, headers, records[0])
	for i, r := range rows {
		for j, h := range headers {
			v, _ := r.Get(h)
			assert.Equal(t, csvValue(v), records[i+1][j], "row %d key %s", i, h)
		}
	}
	assert.Equal(t, "line one\nline \"two\", with comma", records[1][7])
}

func TestCSVValue(t *testing.T) {
	assert.Equal(t, "", csvValue(nil))
	assert.Equal(t, "true", csvValue(true))
	assert.Equal(t, "0.1", csvValue(0.1))
	assert.Equal(t, "999.99", csvValue(999.99))
	assert.Equal(t, "1000", csvValue(1000.0))
	assert.Equal(t, "7", csvValue(7))
}

// =============================================================================
// YAML and NDJSON
// =============================================================================

func TestYAMLExporter(t *testing.T) {
	data, err := (&YAMLExporter{}).Export(sampleRows())
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, `Ann "The Hammer" Lee`, decoded[0]["name"])
	assert.Equal(t, true, decoded[0]["active"])
	assert.Equal(t, 12.5, decoded[0]["price"])
	assert.Nil(t, decoded[0]["tier"])

	// Keys keep row order.
	text := string(data)
	assert.Less(t, strings.Index(text, "id:"), strings.Index(text, "name:"))
	assert.Less(t, strings.Index(text, "name:"), strings.Index(text, "active:"))

	empty, err := (&YAMLExporter{}).Export(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(empty))
}

func TestNDJSONExporter(t *testing.T) {
	data, err := (&NDJSONExporter{}).Export(sampleRows())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `{"id":"b2","name":"Bo, Jr.","active":false,"price":100,"tier":"gold"}`, lines[1])

	empty, err := (&NDJSONExporter{}).Export(nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

// =============================================================================
// Registry
// =============================================================================

type upperExporter struct{}

func (upperExporter) Format() Format { return "upper" }

func (upperExporter) Export(rows generator.Dataset) ([]byte, error) {
	return []byte(strings.ToUpper("rows")), nil
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()

	var formats []Format
	for _, e := range r.ListExporters() {
		formats = append(formats, e.Format())
	}
	assert.Equal(t, []Format{FormatCSV, FormatJSON, FormatNDJSON, FormatYAML}, formats)

	assert.False(t, r.HasExporter("upper"))
	r.RegisterExporter(upperExporter{})
	r.RegisterExporter(nil)
	assert.True(t, r.HasExporter("upper"))

	res, err := r.Export(nil, &Options{Format: "upper"})
	require.NoError(t, err)
	assert.Equal(t, "ROWS", string(res.Data))
	assert.Equal(t, "mock_data.upper", res.Filename)

	// The default registry is untouched.
	assert.Nil(t, GetExporter("upper"))
	assert.NotNil(t, GetExporter(FormatJSON))
	assert.Len(t, ListExporters(), 4)
}
