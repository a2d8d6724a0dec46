package store

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/mockmaster/pkg/schema"
)

func TestNewSchemaStore(t *testing.T) {
	s := NewSchemaStore(nil)
	assert.Equal(t, schema.DefaultSchema(), s.Get())
	assert.Equal(t, uint64(0), s.Version())

	custom := schema.Schema{{Key: "a", Type: schema.TypeName}}
	s = NewSchemaStore(custom)
	custom[0].Key = "changed"
	assert.Equal(t, "a", s.Get()[0].Key)
}

func TestSchemaStore_GetReturnsCopy(t *testing.T) {
	s := NewSchemaStore(nil)
	got := s.Get()
	got[0].Key = "mutated"
	assert.Equal(t, "id", s.Get()[0].Key)
}

func TestSchemaStore_Edits(t *testing.T) {
	s := NewSchemaStore(nil)

	out := s.AddField()
	require.Len(t, out, 6)
	assert.Equal(t, "field_6", out[5].Key)
	assert.Equal(t, uint64(1), s.Version())

	key := "bio"
	out, err := s.UpdateField(5, schema.FieldPatch{Key: &key})
	require.NoError(t, err)
	assert.Equal(t, "bio", out[5].Key)
	assert.Equal(t, schema.TypeSentence, out[5].Type)

	out, err = s.RemoveField(0)
	require.NoError(t, err)
	assert.Equal(t, []string{"full_name", "email_address", "role", "is_active", "bio"}, out.Keys())
	assert.Equal(t, uint64(3), s.Version())

	out = s.Set(schema.Schema{{Key: "only", Type: schema.TypeUUID}})
	assert.Equal(t, []string{"only"}, out.Keys())

	out = s.Set(nil)
	assert.Empty(t, out)
	assert.NotNil(t, s.Get())

	out = s.Reset()
	assert.Equal(t, schema.DefaultSchema(), out)
	assert.Equal(t, uint64(6), s.Version())
}

func TestSchemaStore_OutOfRange(t *testing.T) {
	s := NewSchemaStore(nil)
	key := "x"

	_, err := s.UpdateField(5, schema.FieldPatch{Key: &key})
	assert.ErrorIs(t, err, ErrFieldNotFound)

	_, err = s.RemoveField(-1)
	assert.ErrorIs(t, err, ErrFieldNotFound)

	assert.Equal(t, uint64(0), s.Version())
	assert.Equal(t, schema.DefaultSchema(), s.Get())
}

func TestSchemaStore_Concurrent(t *testing.T) {
	s := NewSchemaStore(nil)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.AddField()
		}()
		go func() {
			defer wg.Done()
			_ = s.Get()
		}()
	}
	wg.Wait()
	assert.Len(t, s.Get(), 55)
	assert.Equal(t, uint64(50), s.Version())
}

func TestSchemaStore_ChangeListeners(t *testing.T) {
	s := NewSchemaStore(nil)
	var events []ChangeEvent
	s.AddChangeListener(func(ev ChangeEvent) { events = append(events, ev) })
	s.AddChangeListener(func(ChangeEvent) { panic("boom") })

	s.AddField()
	_, err := s.RemoveField(0)
	require.NoError(t, err)
	_, err = s.RemoveField(99)
	require.Error(t, err)
	s.Reset()

	require.Len(t, events, 3)
	assert.Equal(t, []string{OpAdd, OpRemove, OpReset}, []string{events[0].Operation, events[1].Operation, events[2].Operation})
	assert.Equal(t, uint64(3), events[2].Version)
	assert.Equal(t, schema.DefaultSchema(), events[2].Schema)

	// Listeners get their own copy.
	events[2].Schema[0].Key = "mutated"
	assert.Equal(t, "id", s.Get()[0].Key)
}
