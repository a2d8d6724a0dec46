package generator

import (
	"bytes"

	json "github.com/goccy/go-json"
)

// Row maps field keys to generated values and remembers the order in which
// keys were first set. Values are string, float64, bool or nil.
type Row struct {
	keys   []string
	values map[string]any
}

// NewRow returns an empty row with room for n keys.
func NewRow(n int) *Row {
	return &Row{
		keys:   make([]string, 0, n),
		values: make(map[string]any, n),
	}
}

// Set stores v under key. A key that is already present keeps its position.
func (r *Row) Set(key string, v any) {
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = v
}

// Get returns the value stored under key.
func (r *Row) Get(key string) (any, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Keys returns the row's keys in insertion order.
func (r *Row) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Len returns the number of keys in the row.
func (r *Row) Len() int {
	return len(r.keys)
}

// Map returns the row as a plain map.
func (r *Row) Map() map[string]any {
	m := make(map[string]any, len(r.values))
	for k, v := range r.values {
		m[k] = v
	}
	return m
}

// MarshalJSON encodes the row as a JSON object with keys in row order.
// HTML characters are not escaped.
func (r *Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.MarshalNoEscape(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.MarshalNoEscape(r.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Dataset is the ordered collection of rows produced by one Generate call.
type Dataset []*Row

// Maps returns every row as a plain map.
func (d Dataset) Maps() []map[string]any {
	out := make([]map[string]any, len(d))
	for i, r := range d {
		out[i] = r.Map()
	}
	return out
}
