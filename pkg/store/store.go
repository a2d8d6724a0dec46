// Package store holds the schema being edited.
package store

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/getmockd/mockmaster/pkg/schema"
)

// ErrFieldNotFound is returned when a field index is out of range.
var ErrFieldNotFound = errors.New("field not found")

// SchemaStore manages the current schema. Readers always get a copy, so
// callers never observe later edits through a value they already hold.
// It is thread-safe via an internal RWMutex.
type SchemaStore struct {
	current schema.Schema
	version uint64
	mu      sync.RWMutex

	listeners   []ChangeListener
	listenersMu sync.RWMutex
}

// Change operations reported in ChangeEvent.Operation.
const (
	OpSet    = "set"
	OpReset  = "reset"
	OpAdd    = "add"
	OpUpdate = "update"
	OpRemove = "remove"
)

// ChangeEvent describes one change to the stored schema.
type ChangeEvent struct {
	Operation string        `json:"operation"`
	Version   uint64        `json:"version"`
	Schema    schema.Schema `json:"fields"`
	Timestamp int64         `json:"timestamp"`
}

// ChangeListener is called after every change, in order, outside the lock.
type ChangeListener func(ChangeEvent)

// NewSchemaStore creates a store holding initial, or the default schema if
// initial is nil.
func NewSchemaStore(initial schema.Schema) *SchemaStore {
	if initial == nil {
		initial = schema.DefaultSchema()
	}
	return &SchemaStore{current: initial.Clone()}
}

// Get returns a copy of the current schema.
func (s *SchemaStore) Get() schema.Schema {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Clone()
}

// Version returns a counter that increases with every change.
func (s *SchemaStore) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Set replaces the current schema.
func (s *SchemaStore) Set(next schema.Schema) schema.Schema {
	if next == nil {
		next = schema.Schema{}
	}
	return s.apply(OpSet, func(schema.Schema) schema.Schema { return next.Clone() })
}

// Reset restores the default schema.
func (s *SchemaStore) Reset() schema.Schema {
	return s.apply(OpReset, func(schema.Schema) schema.Schema { return schema.DefaultSchema() })
}

// AddField appends a sentence field named after the new field count.
func (s *SchemaStore) AddField() schema.Schema {
	return s.apply(OpAdd, schema.Schema.AddField)
}

// UpdateField merges patch into the field at index.
func (s *SchemaStore) UpdateField(index int, patch schema.FieldPatch) (schema.Schema, error) {
	return s.applyAt(OpUpdate, index, func(cur schema.Schema) schema.Schema {
		return cur.UpdateField(index, patch)
	})
}

// RemoveField deletes the field at index.
func (s *SchemaStore) RemoveField(index int) (schema.Schema, error) {
	return s.applyAt(OpRemove, index, func(cur schema.Schema) schema.Schema {
		return cur.RemoveField(index)
	})
}

// AddChangeListener registers a listener for schema changes.
func (s *SchemaStore) AddChangeListener(listener ChangeListener) {
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()
	s.listeners = append(s.listeners, listener)
}

func (s *SchemaStore) apply(op string, fn func(schema.Schema) schema.Schema) schema.Schema {
	s.mu.Lock()
	s.current = fn(s.current)
	s.version++
	out, version := s.current.Clone(), s.version
	s.mu.Unlock()

	s.notify(op, version, out)
	return out
}

func (s *SchemaStore) applyAt(op string, index int, fn func(schema.Schema) schema.Schema) (schema.Schema, error) {
	s.mu.Lock()
	if index < 0 || index >= len(s.current) {
		n := len(s.current)
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: index %d (schema has %d fields)", ErrFieldNotFound, index, n)
	}
	s.current = fn(s.current)
	s.version++
	out, version := s.current.Clone(), s.version
	s.mu.Unlock()

	s.notify(op, version, out)
	return out, nil
}

// notify passes a change event to every listener. Each listener gets its
// own copy of the schema.
func (s *SchemaStore) notify(op string, version uint64, current schema.Schema) {
	s.listenersMu.RLock()
	listeners := make([]ChangeListener, len(s.listeners))
	copy(listeners, s.listeners)
	s.listenersMu.RUnlock()

	now := time.Now().UnixMilli()
	for _, l := range listeners {
		func() {
			defer func() { _ = recover() }() // a panicking listener must not break the store
			l(ChangeEvent{Operation: op, Version: version, Schema: current.Clone(), Timestamp: now})
		}()
	}
}
