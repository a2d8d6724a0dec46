package generator

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRow_PreservesInsertionOrder(t *testing.T) {
	t.Parallel()

	row := NewRow(3)
	row.Set("zeta", "z")
	row.Set("alpha", 1.5)
	row.Set("mid", nil)
	row.Set("zeta", true)

	assert.Equal(t, []string{"zeta", "alpha", "mid"}, row.Keys())
	assert.Equal(t, 3, row.Len())

	v, ok := row.Get("zeta")
	assert.True(t, ok)
	assert.Equal(t, true, v)

	_, ok = row.Get("missing")
	assert.False(t, ok)

	data, err := json.Marshal(row)
	require.NoError(t, err)
	assert.Equal(t, `{"zeta":true,"alpha":1.5,"mid":null}`, string(data))
}

func TestRow_KeysReturnsCopy(t *testing.T) {
	t.Parallel()

	row := NewRow(1)
	row.Set("a", "x")
	keys := row.Keys()
	keys[0] = "mutated"
	assert.Equal(t, []string{"a"}, row.Keys())
}

func TestDataset_Maps(t *testing.T) {
	t.Parallel()

	row := NewRow(2)
	row.Set("id", "abc")
	row.Set("ok", false)

	maps := Dataset{row}.Maps()
	require.Len(t, maps, 1)
	assert.Equal(t, map[string]any{"id": "abc", "ok": false}, maps[0])
}
