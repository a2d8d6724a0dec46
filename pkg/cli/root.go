package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/getmockd/mockmaster/pkg/config"
	"github.com/getmockd/mockmaster/pkg/logging"
)

var (
	// Persistent flags available to all subcommands
	configPath string
	jsonOutput bool
	verbose    bool
	logLevel   string
	logFormat  string
	logFile    string

	// Resolved by PersistentPreRunE.
	cfg    = config.NewDefault()
	logger = logging.Nop()

	logFileHandle io.Closer

	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
	// BuildDate is injected during build
	BuildDate = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mockmaster",
	Short: "mockmaster generates realistic mock data from a schema",
	Long: `mockmaster turns a list of typed fields into rows of realistic fake data
(names, emails, phone numbers, dates, amounts, ...) and exports them as
JSON, CSV, YAML or NDJSON.

Configuration can be provided via flags, environment variables (MOCKMASTER_*),
a local .mockmasterrc.yaml or a global ~/.config/mockmaster/config.yaml.`,
	// No Run function here means 'mockmaster' with no args will print help text by default.
	SilenceUsage:  true,
	SilenceErrors: true, // We handle errors in Execute()
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		cfg = loaded
		return setupLogger(cmd.ErrOrStderr())
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logFileHandle != nil {
			_ = logFileHandle.Close()
			logFileHandle = nil
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "Config file (default: .mockmasterrc.yaml, then ~/.config/mockmaster/config.yaml)")
	pf.BoolVar(&jsonOutput, "json", false, "Output command results in JSON format")
	pf.BoolVarP(&verbose, "verbose", "v", false, "Print timing and diagnostics to stderr")
	pf.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&logFormat, "log-format", "", "Log format: text or json")
	pf.StringVar(&logFile, "log-file", "", "Also write JSON logs to this file")
}

// loadConfig resolves configuration from every source. An explicit --config
// file replaces the local/global file search.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var loaded *config.Config
	if configPath != "" {
		fileCfg, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		loaded = config.NewDefault()
		config.MergeConfig(loaded, fileCfg, config.SourceLocal)
		config.LoadEnvConfig(loaded)
	} else {
		var err error
		loaded, err = config.LoadAll()
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("verbose") {
		loaded.Verbose = verbose
		loaded.Sources["verbose"] = config.SourceFlag
	}
	if flags.Changed("log-level") {
		loaded.LogLevel = logLevel
		loaded.Sources["logLevel"] = config.SourceFlag
	}
	if flags.Changed("log-format") {
		loaded.LogFormat = logFormat
		loaded.Sources["logFormat"] = config.SourceFlag
	}

	if err := loaded.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return loaded, nil
}

func setupLogger(stderr io.Writer) error {
	logCfg := logging.Config{
		Level:  logging.ParseLevel(cfg.LogLevel),
		Format: logging.ParseFormat(cfg.LogFormat),
		Output: stderr,
	}
	if cfg.Verbose && logCfg.Level > slog.LevelInfo {
		logCfg.Level = slog.LevelInfo
	}
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		logFileHandle = f
		logCfg.Mirror = f
	}
	logger = logging.New(logCfg)
	return nil
}
