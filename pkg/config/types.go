// Package config provides configuration types and loading for mockmaster.
package config

import "time"

// Config represents the complete configuration for mockmaster.
// Configuration values can come from multiple sources with the following precedence:
// 1. Command-line flags (highest priority)
// 2. Environment variables
// 3. Local config file (.mockmasterrc.yaml in current directory)
// 4. Global config file (~/.config/mockmaster/config.yaml)
// 5. Default values (lowest priority)
type Config struct {
	// Generation settings
	Schema       string `yaml:"schema,omitempty" json:"schema,omitempty"`
	DefaultCount int    `yaml:"defaultCount" json:"defaultCount"`
	MaxCount     int    `yaml:"maxCount" json:"maxCount"`
	Correlation  string `yaml:"correlation" json:"correlation"`
	RecentWindow string `yaml:"recentWindow" json:"recentWindow"`

	// Output settings
	Format  string `yaml:"format" json:"format"`
	Verbose bool   `yaml:"verbose" json:"verbose"`

	// Server settings
	Addr      string `yaml:"addr" json:"addr"`
	JWTSecret string `yaml:"jwtSecret,omitempty" json:"-"`
	// RateLimit is the per-client request rate (per second) allowed on the
	// generate and export endpoints. Zero disables limiting.
	RateLimit float64 `yaml:"rateLimit,omitempty" json:"rateLimit,omitempty"`
	RateBurst int     `yaml:"rateBurst,omitempty" json:"rateBurst,omitempty"`

	// Logging settings
	LogLevel  string `yaml:"logLevel" json:"logLevel"`
	LogFormat string `yaml:"logFormat" json:"logFormat"`

	// Sources tracks where each value came from (for debugging)
	Sources map[string]string `yaml:"-" json:"-"`

	// SetFields records the keys present in a loaded file, so an explicit
	// false can be told apart from an absent boolean.
	SetFields map[string]bool `yaml:"-" json:"-"`
}

// ConfigSource identifies where a config value originated.
const (
	SourceDefault = "default"
	SourceEnv     = "env"
	SourceGlobal  = "global"
	SourceLocal   = "local"
	SourceFlag    = "flag"
)

// RecentWindowDuration parses RecentWindow. Invalid or non-positive values
// yield DefaultRecentWindow.
func (c *Config) RecentWindowDuration() time.Duration {
	d, err := time.ParseDuration(c.RecentWindow)
	if err != nil || d <= 0 {
		return DefaultRecentWindow
	}
	return d
}
