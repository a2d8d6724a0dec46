// Package export serializes generated datasets for download or copy.
//
// Four formats are built in:
//   - json: an indented array of row objects, keys in schema order
//   - csv: a header line followed by one quoted line per row
//   - yaml: a sequence of row mappings
//   - ndjson: one compact JSON object per line
//
// CSV is a gated format: Export refuses it with ErrAuthRequired unless the
// caller passes Authenticated in Options. The gate is a plain flag; callers
// decide what counts as authenticated (see package auth).
//
// # Usage
//
//	rows := generator.Generate(schema.DefaultSchema(), 5)
//	res, err := export.Export(rows, &export.Options{Format: export.FormatJSON})
//	if err != nil {
//		return err
//	}
//	os.WriteFile(res.Filename, res.Data, 0o644)
//
// Custom formats can be added with RegisterExporter.
package export
