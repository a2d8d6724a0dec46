// Package id provides identifier generation for generation runs.
package id

import (
	"crypto/rand"
	"fmt"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	ulidMu      sync.Mutex
	ulidEntropy = ulid.Monotonic(rand.Reader, 0)
)

// ULID generates a new ULID (Universally Unique Lexicographically Sortable Identifier).
// IDs generated in the same millisecond still sort in creation order.
func ULID() string {
	return ULIDAt(time.Now())
}

// ULIDAt generates a ULID carrying the timestamp t.
func ULIDAt(t time.Time) string {
	ulidMu.Lock()
	defer ulidMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(t), ulidEntropy).String()
}

// IsValidULID checks if a string is a valid ULID.
func IsValidULID(s string) bool {
	_, err := ulid.ParseStrict(s)
	return err == nil
}

// ULIDTime extracts the timestamp from a ULID.
func ULIDTime(s string) (time.Time, error) {
	u, err := ulid.ParseStrict(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid ULID %q: %w", s, err)
	}
	return ulid.Time(u.Time()), nil
}
