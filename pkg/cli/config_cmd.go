package cli

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/getmockd/mockmaster/pkg/cli/internal/output"
	"github.com/getmockd/mockmaster/pkg/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show effective configuration and where each value came from",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigShow(cfg, cmd.OutOrStdout())
	},
}

var configInitForce bool

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration to the global config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.GlobalConfigPath()
		if err != nil {
			return err
		}
		return runConfigInit(path, configInitForce, cmd.OutOrStdout())
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "Overwrite an existing file")
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

// configEntry is one setting in the effective configuration.
type configEntry struct {
	Key    string `json:"key"`
	Value  any    `json:"value"`
	Source string `json:"source"`
}

func configEntries(c *config.Config) []configEntry {
	secret := ""
	if c.JWTSecret != "" {
		secret = "(set)"
	}
	values := map[string]any{
		"schema":       c.Schema,
		"defaultCount": c.DefaultCount,
		"maxCount":     c.MaxCount,
		"format":       c.Format,
		"correlation":  c.Correlation,
		"recentWindow": c.RecentWindow,
		"rateLimit":    c.RateLimit,
		"rateBurst":    c.RateBurst,
		"addr":         c.Addr,
		"jwtSecret":    secret,
		"logLevel":     c.LogLevel,
		"logFormat":    c.LogFormat,
		"verbose":      c.Verbose,
	}
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	entries := make([]configEntry, 0, len(keys))
	for _, k := range keys {
		source := c.Sources[k]
		if source == "" {
			source = config.SourceDefault
		}
		entries = append(entries, configEntry{Key: k, Value: values[k], Source: source})
	}
	return entries
}

func runConfigShow(c *config.Config, w io.Writer) error {
	entries := configEntries(c)
	if jsonOutput {
		return output.JSON(w, entries)
	}
	tw := output.Table(w)
	fmt.Fprintln(tw, "KEY\tVALUE\tSOURCE")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%v\t%s\n", e.Key, e.Value, e.Source)
	}
	return tw.Flush()
}

func runConfigInit(path string, force bool, w io.Writer) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}
	if err := config.Save(path, config.NewDefault()); err != nil {
		return err
	}
	fmt.Fprintf(w, "Created %s\n", path)
	return nil
}
