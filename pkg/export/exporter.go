package export

import (
	"errors"

	"github.com/getmockd/mockmaster/pkg/generator"
)

// Sentinel errors returned (wrapped in *ExportError) by Export.
var (
	// ErrAuthRequired is returned when a gated format is requested without
	// an authenticated caller.
	ErrAuthRequired = errors.New("authentication required")

	// ErrUnknownFormat is returned for formats with no registered exporter.
	ErrUnknownFormat = errors.New("unknown export format")
)

// Exporter defines the interface for serializing a dataset.
type Exporter interface {
	// Export converts a dataset to the exporter's format.
	// Returns the raw bytes suitable for writing to a file.
	Export(rows generator.Dataset) ([]byte, error)

	// Format returns the format this exporter produces.
	Format() Format
}

// Options provides configuration for the export process.
type Options struct {
	// Format is the output format (defaults to FormatJSON)
	Format Format

	// Authenticated is the caller's capability flag. Gated formats are
	// refused without it.
	Authenticated bool

	// Compact drops indentation from JSON output.
	Compact bool
}

// Result contains the result of an export operation.
type Result struct {
	// Data is the exported bytes
	Data []byte

	// Format is the format that was used
	Format Format

	// Filename is the suggested download name, e.g. "mock_data.json"
	Filename string

	// ContentType is the MIME type of Data
	ContentType string

	// Rows is the number of rows exported
	Rows int
}

// Export is a convenience function that exports rows with the default
// registry.
func Export(rows generator.Dataset, opts *Options) (*Result, error) {
	return defaultRegistry.Export(rows, opts)
}

// Export serializes rows in the requested format.
func (r *Registry) Export(rows generator.Dataset, opts *Options) (*Result, error) {
	if opts == nil {
		opts = &Options{Format: FormatJSON}
	}

	format := opts.Format
	if format == FormatUnknown {
		format = FormatJSON
	}

	if format.RequiresAuth() && !opts.Authenticated {
		return nil, &ExportError{
			Format:  format,
			Message: "format is only available to signed-in users",
			Cause:   ErrAuthRequired,
		}
	}

	exporter := r.GetExporter(format)
	if exporter == nil {
		return nil, &ExportError{
			Format:  format,
			Message: "no exporter available for format",
			Cause:   ErrUnknownFormat,
		}
	}

	// The registered JSON exporter is shared; compact output gets its own.
	if je, ok := exporter.(*JSONExporter); ok && opts.Compact && !je.Compact {
		exporter = &JSONExporter{Compact: true}
	}

	data, err := exporter.Export(rows)
	if err != nil {
		return nil, &ExportError{Format: format, Message: "export failed", Cause: err}
	}

	return &Result{
		Data:        data,
		Format:      format,
		Filename:    format.DefaultFilename(),
		ContentType: format.ContentType(),
		Rows:        len(rows),
	}, nil
}

// ExportError represents an error during export.
type ExportError struct {
	Format  Format
	Message string
	Cause   error
}

func (e *ExportError) Error() string {
	msg := e.Message
	if e.Format != FormatUnknown {
		msg = string(e.Format) + ": " + msg
	}
	if e.Cause != nil {
		msg = msg + ": " + e.Cause.Error()
	}
	return msg
}

func (e *ExportError) Unwrap() error {
	return e.Cause
}
