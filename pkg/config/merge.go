package config

// MergeConfig merges source config into target, updating sources tracking.
// Only non-zero values from source are applied.
func MergeConfig(target, source *Config, sourceType string) {
	if source == nil {
		return
	}
	if target.Sources == nil {
		target.Sources = make(map[string]string)
	}

	mergeString(target, "schema", &target.Schema, source.Schema, sourceType)
	if source.DefaultCount != 0 || source.SetFields["defaultCount"] {
		target.DefaultCount = source.DefaultCount
		target.Sources["defaultCount"] = sourceType
	}
	if source.MaxCount != 0 {
		target.MaxCount = source.MaxCount
		target.Sources["maxCount"] = sourceType
	}
	mergeString(target, "correlation", &target.Correlation, source.Correlation, sourceType)
	mergeString(target, "recentWindow", &target.RecentWindow, source.RecentWindow, sourceType)
	mergeString(target, "format", &target.Format, source.Format, sourceType)
	mergeString(target, "addr", &target.Addr, source.Addr, sourceType)
	mergeString(target, "jwtSecret", &target.JWTSecret, source.JWTSecret, sourceType)
	if source.RateLimit != 0 || source.SetFields["rateLimit"] {
		target.RateLimit = source.RateLimit
		target.Sources["rateLimit"] = sourceType
	}
	if source.RateBurst != 0 {
		target.RateBurst = source.RateBurst
		target.Sources["rateBurst"] = sourceType
	}
	mergeString(target, "logLevel", &target.LogLevel, source.LogLevel, sourceType)
	mergeString(target, "logFormat", &target.LogFormat, source.LogFormat, sourceType)

	// For booleans, checking `if source.X` cannot detect an explicit false.
	// SetFields (populated during file loading) says whether the key was
	// present; programmatic configs without it only merge true values.
	if boolIsSet(source, "verbose") {
		target.Verbose = source.Verbose
		target.Sources["verbose"] = sourceType
	}
}

func mergeString(target *Config, key string, dst *string, value, sourceType string) {
	if value == "" {
		return
	}
	*dst = value
	target.Sources[key] = sourceType
}

// boolIsSet reports whether a boolean field identified by its YAML key was
// explicitly set in the source config.
func boolIsSet(cfg *Config, yamlKey string) bool {
	if cfg.SetFields != nil {
		return cfg.SetFields[yamlKey]
	}
	switch yamlKey {
	case "verbose":
		return cfg.Verbose
	}
	return false
}
