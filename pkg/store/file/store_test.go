package file

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/mockmaster/pkg/schema"
	"github.com/getmockd/mockmaster/pkg/store"
)

func TestFileStore_LoadMissing(t *testing.T) {
	fs := New(filepath.Join(t.TempDir(), "schema.json"))
	defer fs.Close()

	s, err := fs.Load()
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestFileStore_PersistsOnClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "schema.json")

	st := store.NewSchemaStore(nil)
	fs := New(path, WithDebounce(time.Hour))
	require.NoError(t, fs.Attach(st))

	st.AddField()
	_, err := st.RemoveField(0)
	require.NoError(t, err)
	require.NoError(t, fs.Close())
	require.NoError(t, fs.Close())

	reopened := New(path)
	defer reopened.Close()
	next := store.NewSchemaStore(nil)
	require.NoError(t, reopened.Attach(next))
	assert.Equal(t, []string{"full_name", "email_address", "role", "is_active", "field_6"}, next.Get().Keys())

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestFileStore_DebouncedSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.json")
	st := store.NewSchemaStore(nil)
	fs := New(path, WithDebounce(10*time.Millisecond))
	defer fs.Close()
	require.NoError(t, fs.Attach(st))

	st.Set(schema.Schema{{Key: "only", Type: schema.TypeUUID}})

	assert.Eventually(t, func() bool {
		s, err := fs.Load()
		return err == nil && len(s) == 1 && s[0].Key == "only"
	}, 2*time.Second, 10*time.Millisecond)
}

func TestFileStore_EmptySchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.json")
	fs := New(path, WithDebounce(time.Hour))
	fs.OnChange(store.ChangeEvent{Operation: store.OpSet, Version: 1})
	require.NoError(t, fs.Flush())

	s, err := fs.Load()
	require.NoError(t, err)
	assert.NotNil(t, s)
	assert.Empty(t, s)
	require.NoError(t, fs.Close())
}

func TestFileStore_RejectsNewerVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version": 99, "fields": []}`), 0o600))

	fs := New(path)
	defer fs.Close()
	_, err := fs.Load()
	assert.ErrorIs(t, err, ErrUnsupportedVersion)
}

func TestFileStore_IgnoresStaleEvents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.json")
	fs := New(path, WithDebounce(time.Hour))
	fs.OnChange(store.ChangeEvent{Version: 2, Schema: schema.Schema{{Key: "new", Type: schema.TypeName}}})
	fs.OnChange(store.ChangeEvent{Version: 1, Schema: schema.Schema{{Key: "old", Type: schema.TypeName}}})
	require.NoError(t, fs.Close())

	s, err := fs.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"new"}, s.Keys())
}
