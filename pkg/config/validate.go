package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/getmockd/mockmaster/pkg/export"
	"github.com/getmockd/mockmaster/pkg/generator"
)

// Validate checks that every setting is usable and returns the first
// problem found.
func (c *Config) Validate() error {
	if c.MaxCount < 1 || c.MaxCount > MaxCountLimit {
		return fmt.Errorf("maxCount %d is out of range (1-%d)", c.MaxCount, MaxCountLimit)
	}
	if c.DefaultCount < 0 || c.DefaultCount > c.MaxCount {
		return fmt.Errorf("defaultCount %d is out of range (0-%d)", c.DefaultCount, c.MaxCount)
	}
	if c.Format != "" && export.ParseFormat(c.Format) == export.FormatUnknown {
		return fmt.Errorf("format %q is not supported (use json, csv, yaml or ndjson)", c.Format)
	}
	if _, ok := generator.ParseCorrelationMode(c.Correlation); !ok {
		return fmt.Errorf("correlation %q is not supported (use key, type or none)", c.Correlation)
	}
	if c.RecentWindow != "" {
		d, err := time.ParseDuration(c.RecentWindow)
		if err != nil {
			return fmt.Errorf("recentWindow %q is not a duration: %w", c.RecentWindow, err)
		}
		if d <= 0 {
			return fmt.Errorf("recentWindow %q must be positive", c.RecentWindow)
		}
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("rateLimit %g must not be negative", c.RateLimit)
	}
	if c.RateBurst < 0 {
		return fmt.Errorf("rateBurst %d must not be negative", c.RateBurst)
	}
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logLevel %q is not supported (use debug, info, warn or error)", c.LogLevel)
	}
	switch strings.ToLower(strings.TrimSpace(c.LogFormat)) {
	case "", "text", "json":
	default:
		return fmt.Errorf("logFormat %q is not supported (use text or json)", c.LogFormat)
	}
	return nil
}

// CorrelationMode returns the parsed correlation setting.
func (c *Config) CorrelationMode() generator.CorrelationMode {
	mode, _ := generator.ParseCorrelationMode(c.Correlation)
	return mode
}

// ExportFormat returns the parsed format setting, defaulting to JSON.
func (c *Config) ExportFormat() export.Format {
	if f := export.ParseFormat(c.Format); f != export.FormatUnknown {
		return f
	}
	return export.FormatJSON
}

// ClampCount applies the default and maximum to a requested row count.
// A nil request means "use the default"; negative counts become zero.
func (c *Config) ClampCount(requested *int) int {
	n := c.DefaultCount
	if requested != nil {
		n = *requested
	}
	if n < 0 {
		n = 0
	}
	if c.MaxCount > 0 && n > c.MaxCount {
		n = c.MaxCount
	}
	return n
}
