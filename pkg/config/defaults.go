package config

import "time"

// DefaultCount is the number of rows generated when no count is given.
const DefaultCount = 5

// DefaultMaxCount caps a single generation request.
const DefaultMaxCount = 100

// MaxCountLimit is the largest allowed MaxCount.
const MaxCountLimit = 1_000_000

// DefaultFormat is the default export format.
const DefaultFormat = "json"

// DefaultCorrelation is the default email/name correlation mode.
const DefaultCorrelation = "key"

// DefaultRecentWindow is how far back undated date fields reach.
const DefaultRecentWindow = 24 * time.Hour

// DefaultAddr is the default HTTP listen address for serve.
const DefaultAddr = "localhost:4380"

// DefaultLogLevel is the default log level.
const DefaultLogLevel = "warn"

// DefaultLogFormat is the default log format.
const DefaultLogFormat = "text"

// NewDefault creates a new Config with default values.
func NewDefault() *Config {
	cfg := &Config{
		DefaultCount: DefaultCount,
		MaxCount:     DefaultMaxCount,
		Format:       DefaultFormat,
		Correlation:  DefaultCorrelation,
		RecentWindow: DefaultRecentWindow.String(),
		Addr:         DefaultAddr,
		LogLevel:     DefaultLogLevel,
		LogFormat:    DefaultLogFormat,
		Sources:      make(map[string]string),
	}

	// Mark all as default source
	for _, key := range []string{
		"defaultCount", "maxCount", "format", "correlation",
		"recentWindow", "addr", "logLevel", "logFormat",
	} {
		cfg.Sources[key] = SourceDefault
	}

	return cfg
}
