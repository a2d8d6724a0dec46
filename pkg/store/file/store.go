// Package file persists the edited schema as a JSON file so a server
// restart picks up where the last session left off.
package file

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"

	"github.com/getmockd/mockmaster/pkg/logging"
	"github.com/getmockd/mockmaster/pkg/schema"
	"github.com/getmockd/mockmaster/pkg/store"
)

// Current data format version for migration support
const dataVersion = 1

// DefaultDebounce is how long writes are held back after a change.
const DefaultDebounce = 500 * time.Millisecond

// ErrUnsupportedVersion is returned when the file was written by a newer release.
var ErrUnsupportedVersion = errors.New("unsupported data file version")

// storeData is the on-disk layout.
type storeData struct {
	Version  int           `json:"version"`
	Revision uint64        `json:"revision"`
	SavedAt  string        `json:"savedAt"`
	Fields   schema.Schema `json:"fields"`
}

// FileStore writes schema changes to a single JSON file. Writes are
// debounced and atomic (temp file then rename).
type FileStore struct {
	path         string
	mu           sync.Mutex
	pending      storeData
	dirty        atomic.Bool
	saveDebounce time.Duration
	saveCh       chan struct{}
	closeCh      chan struct{}
	closeOnce    sync.Once
	closedCh     chan struct{} // closed when saveLoop has exited
	log          *slog.Logger
}

// Option configures a FileStore.
type Option func(*FileStore)

// WithDebounce sets the write debounce interval.
func WithDebounce(d time.Duration) Option {
	return func(s *FileStore) { s.saveDebounce = d }
}

// WithLogger sets the logger for background save failures.
func WithLogger(log *slog.Logger) Option {
	return func(s *FileStore) {
		if log != nil {
			s.log = log
		}
	}
}

// New creates a FileStore writing to path and starts its save loop.
// Close must be called to flush pending changes.
func New(path string, opts ...Option) *FileStore {
	s := &FileStore{
		path:         path,
		saveDebounce: DefaultDebounce,
		saveCh:       make(chan struct{}, 1),
		closeCh:      make(chan struct{}),
		closedCh:     make(chan struct{}),
		log:          logging.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	go s.saveLoop()
	return s
}

// Path returns the data file location.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the persisted schema. A missing file returns (nil, nil).
func (s *FileStore) Load() (schema.Schema, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var stored storeData
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.path, err)
	}
	if stored.Version > dataVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, stored.Version)
	}
	if stored.Fields == nil {
		stored.Fields = schema.Schema{}
	}
	return stored.Fields, nil
}

// Attach loads the persisted schema into st (when one exists) and
// subscribes to st so later changes are written back.
func (s *FileStore) Attach(st *store.SchemaStore) error {
	saved, err := s.Load()
	if err != nil {
		return err
	}
	if saved != nil {
		st.Set(saved)
	}
	st.AddChangeListener(s.OnChange)
	return nil
}

// OnChange records ev as the next state to write.
func (s *FileStore) OnChange(ev store.ChangeEvent) {
	s.mu.Lock()
	if ev.Version < s.pending.Revision {
		s.mu.Unlock()
		return
	}
	s.pending = storeData{Revision: ev.Version, Fields: ev.Schema}
	s.mu.Unlock()
	s.markDirty()
}

// markDirty marks data as needing to be saved (thread-safe).
func (s *FileStore) markDirty() {
	s.dirty.Store(true)
	select {
	case s.saveCh <- struct{}{}:
	default:
		// save already pending
	}
}

// saveLoop handles debounced saving to prevent excessive disk writes.
func (s *FileStore) saveLoop() {
	defer close(s.closedCh)
	var timer *time.Timer
	for {
		select {
		case <-s.saveCh:
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(s.saveDebounce, func() {
				if err := s.flush(); err != nil {
					s.log.Error("failed to save schema", "path", s.path, "error", err)
				}
			})
		case <-s.closeCh:
			if timer != nil {
				timer.Stop()
			}
			if err := s.flush(); err != nil {
				s.log.Error("failed to save schema on close", "path", s.path, "error", err)
			}
			return
		}
	}
}

// Flush writes pending changes immediately.
func (s *FileStore) Flush() error {
	return s.flush()
}

func (s *FileStore) flush() error {
	if !s.dirty.CompareAndSwap(true, false) {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	out := s.pending
	out.Version = dataVersion
	out.SavedAt = time.Now().UTC().Format(time.RFC3339)
	if out.Fields == nil {
		out.Fields = schema.Schema{}
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		s.dirty.Store(true)
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		s.dirty.Store(true)
		return err
	}
	tmpFile := s.path + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0o600); err != nil {
		s.dirty.Store(true)
		return err
	}
	if err := os.Rename(tmpFile, s.path); err != nil {
		_ = os.Remove(tmpFile)
		s.dirty.Store(true)
		return err
	}
	return nil
}

// Close saves any pending changes and stops the save loop. Safe to call
// multiple times.
func (s *FileStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.closeCh)
	})
	<-s.closedCh
	return nil
}
