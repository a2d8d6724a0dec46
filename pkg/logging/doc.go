// Package logging configures the structured loggers used across mockmaster.
//
// Loggers are plain *slog.Logger values:
//
//	logger := logging.New(logging.Config{
//	    Level:  logging.LevelDebug,
//	    Format: logging.FormatJSON,
//	})
//	logger.Debug("generated dataset", "rows", 100)
//
// Set Config.Mirror to also copy every record to a second writer (for
// example a log file) in JSON.
//
// Components accept a *slog.Logger through an option or constructor and
// fall back to Nop when none is given.
package logging
