package preview

import (
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

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

func people() generator.Dataset {
	return generator.Dataset{
		row("name", "Ada Lovelace", "email", "ada@example.com", "active", true, "amount", 900.5, "tier", "gold"),
		row("name", "Alan Turing", "email", "alan@test.org", "active", false, "amount", 120.0, "tier", nil),
		row("name", "Grace Hopper", "email", "grace@example.com", "active", true, "amount", 50.25, "tier", "silver"),
	}
}

func TestRender(t *testing.T) {
	out, err := Render(generator.Dataset{row("id", "x", "n", 1.5)})
	require.NoError(t, err)
	assert.Equal(t, "[\n  {\n    \"id\": \"x\",\n    \"n\": 1.5\n  }\n]", out)

	out, err = Render(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", out)
}

func TestRender_IsValidJSON(t *testing.T) {
	rows := generator.New(generator.WithSeed(1)).Generate(schema.DefaultSchema(), 10)
	out, err := Render(rows)
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Len(t, decoded, 10)
}

func TestQuery(t *testing.T) {
	tests := []struct {
		name string
		path string
		want []any
	}{
		{"single field", "$[0].email", []any{"ada@example.com"}},
		{"wildcard", "$[*].name", []any{"Ada Lovelace", "Alan Turing", "Grace Hopper"}},
		{"last row", "$[-1].tier", []any{"silver"}},
		{"missing key", "$[0].nope", []any{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Query(people(), tt.path)
			require.NoError(t, err)
			if len(tt.want) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestQuery_Invalid(t *testing.T) {
	_, err := Query(people(), "")
	assert.ErrorIs(t, err, ErrInvalidPath)

	_, err = Query(people(), "$[?(")
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name       string
		expression string
		want       []string
	}{
		{"empty keeps all", "", []string{"Ada Lovelace", "Alan Turing", "Grace Hopper"}},
		{"boolean field", "active", []string{"Ada Lovelace", "Grace Hopper"}},
		{"comparison", "amount > 100", []string{"Ada Lovelace", "Alan Turing"}},
		{"string operator", `email endsWith "@example.com"`, []string{"Ada Lovelace", "Grace Hopper"}},
		{"membership", `tier in ["gold", "bronze"]`, []string{"Ada Lovelace"}},
		{"null check", "tier == nil", []string{"Alan Turing"}},
		{"combined", `active && amount < 100`, []string{"Grace Hopper"}},
		{"nothing", "false", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Filter(people(), tt.expression)
			require.NoError(t, err)
			var names []string
			for _, r := range got {
				v, _ := r.Get("name")
				names = append(names, v.(string))
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestFilter_Errors(t *testing.T) {
	_, err := Filter(people(), "unknown_field > 1")
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "compile"))

	_, err = Filter(people(), "name")
	require.Error(t, err)
}

func TestFilterer_CachesPrograms(t *testing.T) {
	f := NewFilterer()
	_, err := f.Filter(people(), "active")
	require.NoError(t, err)
	_, err = f.Filter(people(), "active")
	require.NoError(t, err)
	assert.Equal(t, 1, f.cached())

	_, err = f.Filter(people(), "amount > 1")
	require.NoError(t, err)
	assert.Equal(t, 2, f.cached())
}

func TestFilter_DoesNotModifyInput(t *testing.T) {
	rows := people()
	_, err := Filter(rows, "active")
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}
