package export

import (
	"sort"
	"strings"
)

// Format represents a supported export format.
type Format string

// Supported export formats.
const (
	FormatUnknown Format = ""
	FormatJSON    Format = "json"   // Indented JSON array
	FormatCSV     Format = "csv"    // Comma-separated values, requires authentication
	FormatYAML    Format = "yaml"   // YAML sequence of mappings
	FormatNDJSON  Format = "ndjson" // Newline-delimited JSON
)

// DefaultBasename is the file name, without extension, used for downloads.
const DefaultBasename = "mock_data"

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// IsValid returns true if the format is a known format.
func (f Format) IsValid() bool {
	switch f {
	case FormatJSON, FormatCSV, FormatYAML, FormatNDJSON:
		return true
	default:
		return false
	}
}

// RequiresAuth reports whether exporting to f needs an authenticated caller.
func (f Format) RequiresAuth() bool {
	return f == FormatCSV
}

// Extension returns the file extension for the format, without a dot.
func (f Format) Extension() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatUnknown:
		return "json"
	default:
		return string(f)
	}
}

// ContentType returns the MIME type for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatYAML:
		return "application/yaml"
	case FormatNDJSON:
		return "application/x-ndjson"
	default:
		return "application/json"
	}
}

// DefaultFilename returns the download file name for the format,
// e.g. "mock_data.csv".
func (f Format) DefaultFilename() string {
	return DefaultBasename + "." + f.Extension()
}

// ParseFormat parses a format name. Matching is case-insensitive and "yml"
// is accepted for YAML. Returns FormatUnknown for unrecognized names.
func ParseFormat(s string) Format {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON
	case "csv":
		return FormatCSV
	case "yaml", "yml":
		return FormatYAML
	case "ndjson", "jsonl":
		return FormatNDJSON
	default:
		return FormatUnknown
	}
}

// AllFormats returns the built-in formats in a stable order.
func AllFormats() []Format {
	return []Format{FormatJSON, FormatCSV, FormatYAML, FormatNDJSON}
}

// FormatFromFilename guesses the format from a file extension.
// Returns FormatUnknown if the extension is not recognized.
func FormatFromFilename(name string) Format {
	i := strings.LastIndexByte(name, '.')
	if i < 0 {
		return FormatUnknown
	}
	return ParseFormat(name[i+1:])
}

func sortFormats(formats []Format) {
	sort.Slice(formats, func(i, j int) bool { return formats[i] < formats[j] })
}
