package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/mockmaster/pkg/export"
	"github.com/getmockd/mockmaster/pkg/generator"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid defaults", mutate: func(c *Config) {}},
		{name: "zero default count", mutate: func(c *Config) { c.DefaultCount = 0 }},
		{name: "max count zero", mutate: func(c *Config) { c.MaxCount = 0 }, wantErr: "maxCount 0 is out of range"},
		{name: "max count too high", mutate: func(c *Config) { c.MaxCount = 2_000_000 }, wantErr: "maxCount 2000000 is out of range"},
		{name: "default above max", mutate: func(c *Config) { c.DefaultCount = 500 }, wantErr: "defaultCount 500 is out of range"},
		{name: "negative default", mutate: func(c *Config) { c.DefaultCount = -1 }, wantErr: "defaultCount -1 is out of range"},
		{name: "bad format", mutate: func(c *Config) { c.Format = "xml" }, wantErr: `format "xml" is not supported`},
		{name: "yml format", mutate: func(c *Config) { c.Format = "yml" }},
		{name: "bad correlation", mutate: func(c *Config) { c.Correlation = "fuzzy" }, wantErr: `correlation "fuzzy"`},
		{name: "bad window", mutate: func(c *Config) { c.RecentWindow = "yesterday" }, wantErr: "recentWindow"},
		{name: "negative window", mutate: func(c *Config) { c.RecentWindow = "-1h" }, wantErr: "must be positive"},
		{name: "rate limit", mutate: func(c *Config) { c.RateLimit = 2.5; c.RateBurst = 5 }},
		{name: "negative rate limit", mutate: func(c *Config) { c.RateLimit = -1 }, wantErr: "rateLimit -1"},
		{name: "negative burst", mutate: func(c *Config) { c.RateBurst = -3 }, wantErr: "rateBurst -3"},
		{name: "bad log level", mutate: func(c *Config) { c.LogLevel = "loud" }, wantErr: `logLevel "loud"`},
		{name: "bad log format", mutate: func(c *Config) { c.LogFormat = "xml" }, wantErr: `logFormat "xml"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefault()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewDefault(t *testing.T) {
	cfg := NewDefault()
	assert.Equal(t, 5, cfg.DefaultCount)
	assert.Equal(t, 100, cfg.MaxCount)
	assert.Equal(t, 24*time.Hour, cfg.RecentWindowDuration())
	assert.Equal(t, generator.CorrelateByKey, cfg.CorrelationMode())
	assert.Equal(t, export.FormatJSON, cfg.ExportFormat())
	assert.Equal(t, SourceDefault, cfg.Sources["maxCount"])
}

func TestConfig_ClampCount(t *testing.T) {
	cfg := NewDefault()
	n := func(v int) *int { return &v }

	assert.Equal(t, 5, cfg.ClampCount(nil))
	assert.Equal(t, 12, cfg.ClampCount(n(12)))
	assert.Equal(t, 0, cfg.ClampCount(n(0)))
	assert.Equal(t, 0, cfg.ClampCount(n(-3)))
	assert.Equal(t, 100, cfg.ClampCount(n(1000)))
}

func TestConfig_RecentWindowDuration(t *testing.T) {
	cfg := &Config{RecentWindow: "90m"}
	assert.Equal(t, 90*time.Minute, cfg.RecentWindowDuration())

	cfg.RecentWindow = "nonsense"
	assert.Equal(t, DefaultRecentWindow, cfg.RecentWindowDuration())
}

func TestMergeConfig(t *testing.T) {
	t.Run("merges non-zero values", func(t *testing.T) {
		target := NewDefault()
		source := &Config{MaxCount: 500, Format: "csv", SetFields: map[string]bool{"maxCount": true, "format": true}}

		MergeConfig(target, source, SourceLocal)

		assert.Equal(t, 500, target.MaxCount)
		assert.Equal(t, "csv", target.Format)
		assert.Equal(t, SourceLocal, target.Sources["maxCount"])
		assert.Equal(t, SourceDefault, target.Sources["addr"])
	})

	t.Run("does not overwrite with zero values", func(t *testing.T) {
		target := NewDefault()
		MergeConfig(target, &Config{}, SourceLocal)
		assert.Equal(t, DefaultMaxCount, target.MaxCount)
		assert.Equal(t, DefaultFormat, target.Format)
	})

	t.Run("explicit zero default count", func(t *testing.T) {
		target := NewDefault()
		MergeConfig(target, &Config{SetFields: map[string]bool{"defaultCount": true}}, SourceGlobal)
		assert.Equal(t, 0, target.DefaultCount)
		assert.Equal(t, SourceGlobal, target.Sources["defaultCount"])
	})

	t.Run("handles boolean false with SetFields", func(t *testing.T) {
		target := NewDefault()
		target.Verbose = true
		MergeConfig(target, &Config{SetFields: map[string]bool{"verbose": true}}, SourceLocal)
		assert.False(t, target.Verbose)
	})

	t.Run("does not merge boolean false without SetFields", func(t *testing.T) {
		target := NewDefault()
		target.Verbose = true
		MergeConfig(target, &Config{}, SourceLocal)
		assert.True(t, target.Verbose)
	})

	t.Run("nil source is no-op", func(t *testing.T) {
		target := NewDefault()
		MergeConfig(target, nil, SourceLocal)
		assert.Equal(t, NewDefault().MaxCount, target.MaxCount)
	})
}

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte("maxCount: 250\nverbose: false\nformat: ndjson\n"))
	require.NoError(t, err)
	assert.Equal(t, 250, cfg.MaxCount)
	assert.Equal(t, "ndjson", cfg.Format)
	assert.True(t, cfg.SetFields["verbose"])
	assert.False(t, cfg.SetFields["addr"])

	cfg, err = Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, cfg.SetFields)
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse([]byte("maxCount: [1, 2"))
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)

	_, err = Parse([]byte("maxCount: lots\n"))
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, 1, cfgErr.Line)

	_, err = Parse([]byte("- a\n- b\n"))
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, err.Error(), "expected a mapping")
}

func TestConfigError_Error(t *testing.T) {
	assert.Equal(t, "a.yaml (line 3, column 7): bad", (&ConfigError{Path: "a.yaml", Line: 3, Column: 7, Message: "bad"}).Error())
	assert.Equal(t, "a.yaml (line 3): bad", (&ConfigError{Path: "a.yaml", Line: 3, Message: "bad"}).Error())
	assert.Equal(t, "config: bad", (&ConfigError{Message: "bad"}).Error())
}

func TestLoadConfigFile_SetsPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("maxCount: lots\n"), 0o644))

	_, err := LoadConfigFile(path)
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), path))
}

func TestLoadEnvConfig(t *testing.T) {
	t.Setenv(EnvCount, "12")
	t.Setenv(EnvMaxCount, "not-a-number")
	t.Setenv(EnvFormat, "yaml")
	t.Setenv(EnvVerbose, "true")
	t.Setenv(EnvJWTSecret, "s3cret")
	t.Setenv(EnvRateLimit, "0.5")
	t.Setenv(EnvRateBurst, "x")

	cfg := NewDefault()
	LoadEnvConfig(cfg)

	assert.Equal(t, 0.5, cfg.RateLimit)
	assert.Equal(t, 0, cfg.RateBurst)
	assert.Equal(t, SourceEnv, cfg.Sources["rateLimit"])

	assert.Equal(t, 12, cfg.DefaultCount)
	assert.Equal(t, DefaultMaxCount, cfg.MaxCount)
	assert.Equal(t, "yaml", cfg.Format)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, SourceEnv, cfg.Sources["defaultCount"])
	assert.Equal(t, SourceDefault, cfg.Sources["maxCount"])
}

func TestLoadAll_Precedence(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	for _, name := range []string{EnvCount, EnvMaxCount, EnvFormat, EnvAddr, EnvVerbose, EnvLogLevel} {
		t.Setenv(name, "")
	}

	globalPath, err := GlobalConfigPath()
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Dir(globalPath), 0o755))
	require.NoError(t, os.WriteFile(globalPath, []byte("maxCount: 300\nformat: yaml\naddr: \":9000\"\n"), 0o644))

	work := t.TempDir()
	t.Chdir(work)
	require.NoError(t, os.WriteFile(filepath.Join(work, ".mockmasterrc.yaml"), []byte("format: csv\nverbose: true\n"), 0o644))

	t.Setenv(EnvAddr, ":7000")

	cfg, err := LoadAll()
	require.NoError(t, err)

	assert.Equal(t, 300, cfg.MaxCount)
	assert.Equal(t, SourceGlobal, cfg.Sources["maxCount"])
	assert.Equal(t, "csv", cfg.Format)
	assert.Equal(t, SourceLocal, cfg.Sources["format"])
	assert.True(t, cfg.Verbose)
	assert.Equal(t, ":7000", cfg.Addr)
	assert.Equal(t, SourceEnv, cfg.Sources["addr"])
	assert.Equal(t, DefaultCount, cfg.DefaultCount)
}

func TestLoadAll_InvalidLocalFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))

	work := t.TempDir()
	t.Chdir(work)
	require.NoError(t, os.WriteFile(filepath.Join(work, ".mockmasterrc.yml"), []byte("maxCount: [\n"), 0o644))

	_, err := LoadAll()
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, cfgErr.Path, ".mockmasterrc.yml")
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := NewDefault()
	cfg.MaxCount = 42
	require.NoError(t, Save(path, cfg))

	loaded, err := LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, 42, loaded.MaxCount)
	assert.Equal(t, DefaultAddr, loaded.Addr)
}
