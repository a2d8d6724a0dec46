package id

import (
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestULID_Format(t *testing.T) {
	id := ULID()
	assert.Len(t, id, 26)
	assert.True(t, IsValidULID(id))
}

func TestULID_Monotonic(t *testing.T) {
	ids := make([]string, 1000)
	for i := range ids {
		ids[i] = ULID()
	}
	assert.True(t, sort.StringsAreSorted(ids))
}

func TestULID_Concurrent(t *testing.T) {
	const n = 500
	var (
		mu   sync.Mutex
		seen = make(map[string]bool, n)
		wg   sync.WaitGroup
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := ULID()
			mu.Lock()
			seen[id] = true
			mu.Unlock()
		}()
	}
	wg.Wait()
	assert.Len(t, seen, n)
}

func TestULIDTime(t *testing.T) {
	at := time.Date(2024, 5, 6, 7, 8, 9, 123_000_000, time.UTC)
	got, err := ULIDTime(ULIDAt(at))
	require.NoError(t, err)
	assert.True(t, at.Equal(got), "got %v", got)
}

func TestIsValidULID(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"01ARZ3NDEKTSV4RRFFQ69G5FAV", true},
		{"", false},
		{"01ARZ3NDEKTSV4RRFFQ69G5FA", false},
		{"01ARZ3NDEKTSV4RRFFQ69G5FAI", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsValidULID(tt.in), tt.in)
	}

	_, err := ULIDTime("nope")
	assert.Error(t, err)
}
