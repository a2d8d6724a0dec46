package config

import (
	"os"
	"strconv"
	"strings"
)

// EnvPrefix is the prefix for every environment variable read by LoadEnvConfig.
const EnvPrefix = "MOCKMASTER_"

// Environment variable names.
const (
	EnvSchema       = EnvPrefix + "SCHEMA"
	EnvCount        = EnvPrefix + "COUNT"
	EnvMaxCount     = EnvPrefix + "MAX_COUNT"
	EnvFormat       = EnvPrefix + "FORMAT"
	EnvCorrelation  = EnvPrefix + "CORRELATION"
	EnvRecentWindow = EnvPrefix + "RECENT_WINDOW"
	EnvAddr         = EnvPrefix + "ADDR"
	EnvJWTSecret    = EnvPrefix + "JWT_SECRET"
	EnvRateLimit    = EnvPrefix + "RATE_LIMIT"
	EnvRateBurst    = EnvPrefix + "RATE_BURST"
	EnvLogLevel     = EnvPrefix + "LOG_LEVEL"
	EnvLogFormat    = EnvPrefix + "LOG_FORMAT"
	EnvVerbose      = EnvPrefix + "VERBOSE"
)

// LoadEnvConfig applies MOCKMASTER_* environment variables to cfg.
// Numeric and boolean variables that do not parse are ignored.
func LoadEnvConfig(cfg *Config) {
	if cfg.Sources == nil {
		cfg.Sources = make(map[string]string)
	}

	envString(cfg, EnvSchema, "schema", &cfg.Schema)
	envInt(cfg, EnvCount, "defaultCount", &cfg.DefaultCount)
	envInt(cfg, EnvMaxCount, "maxCount", &cfg.MaxCount)
	envString(cfg, EnvFormat, "format", &cfg.Format)
	envString(cfg, EnvCorrelation, "correlation", &cfg.Correlation)
	envString(cfg, EnvRecentWindow, "recentWindow", &cfg.RecentWindow)
	envString(cfg, EnvAddr, "addr", &cfg.Addr)
	envString(cfg, EnvJWTSecret, "jwtSecret", &cfg.JWTSecret)
	envInt(cfg, EnvRateBurst, "rateBurst", &cfg.RateBurst)
	envString(cfg, EnvLogLevel, "logLevel", &cfg.LogLevel)
	envString(cfg, EnvLogFormat, "logFormat", &cfg.LogFormat)

	if v := strings.TrimSpace(os.Getenv(EnvRateLimit)); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.RateLimit = f
			cfg.Sources["rateLimit"] = SourceEnv
		}
	}

	if v, ok := os.LookupEnv(EnvVerbose); ok {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			cfg.Verbose = b
			cfg.Sources["verbose"] = SourceEnv
		}
	}
}

func envString(cfg *Config, name, key string, dst *string) {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		*dst = v
		cfg.Sources[key] = SourceEnv
	}
}

func envInt(cfg *Config, name, key string, dst *int) {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return
	}
	*dst = n
	cfg.Sources[key] = SourceEnv
}
