package generator

import (
	"log/slog"
	"time"

	"github.com/getmockd/mockmaster/pkg/logging"
	"github.com/getmockd/mockmaster/pkg/schema"
)

// DefaultRecentWindow is how far back undated date fields may reach.
const DefaultRecentWindow = 24 * time.Hour

// Engine generates datasets from schemas. An Engine holds configuration
// only; every Generate call builds fresh rows and retains nothing.
type Engine struct {
	src         Source
	now         func() time.Time
	recent      time.Duration
	correlation CorrelationMode
	logger      *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithSource sets the randomness source.
func WithSource(src Source) Option {
	return func(e *Engine) {
		if src != nil {
			e.src = src
		}
	}
}

// WithSeed uses a deterministic source seeded with seed.
func WithSeed(seed uint64) Option {
	return WithSource(NewSeededSource(seed))
}

// WithNow sets the clock used for undated date fields.
func WithNow(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithRecentWindow sets the recency window for undated date fields.
// Non-positive values are ignored.
func WithRecentWindow(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.recent = d
		}
	}
}

// WithCorrelation sets the email/name correlation mode.
func WithCorrelation(mode CorrelationMode) Option {
	return func(e *Engine) {
		e.correlation = mode
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New creates an Engine. Without options it uses the nondeterministic
// source, the wall clock, a one-day recency window and key correlation.
func New(opts ...Option) *Engine {
	e := &Engine{
		src:         NewSource(),
		now:         time.Now,
		recent:      DefaultRecentWindow,
		correlation: CorrelateByKey,
		logger:      logging.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var defaultEngine = New()

// Generate produces count rows from s using the default engine.
func Generate(s schema.Schema, count int) Dataset {
	return defaultEngine.Generate(s, count)
}

// Generate produces exactly count independent rows from s. A negative count
// is treated as zero. The schema is never modified.
func (e *Engine) Generate(s schema.Schema, count int) Dataset {
	if count < 0 {
		count = 0
	}
	now := e.now()
	rows := make(Dataset, count)
	for i := range rows {
		rows[i] = e.generateRow(s, now)
	}
	return rows
}

func (e *Engine) generateRow(s schema.Schema, now time.Time) *Row {
	row := NewRow(len(s))
	for _, f := range s {
		row.Set(f.Key, e.generateField(f, now))
	}
	e.correlate(s, row)
	return row
}

// Result is a dataset together with generation statistics.
type Result struct {
	Rows     Dataset
	Count    int
	Duration time.Duration
}

// Run generates a dataset and reports how long it took.
func (e *Engine) Run(s schema.Schema, count int) Result {
	start := time.Now()
	rows := e.Generate(s, count)
	elapsed := time.Since(start)

	e.logger.Debug("generated dataset",
		"rows", len(rows),
		"fields", len(s),
		"duration", elapsed,
	)

	return Result{Rows: rows, Count: len(rows), Duration: elapsed}
}
