package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/getmockd/mockmaster/pkg/cli/internal/output"
	"github.com/getmockd/mockmaster/pkg/config"
	"github.com/getmockd/mockmaster/pkg/schema"
)

// DefaultSchemaFile is the file written by 'schema init' when no path is given.
const DefaultSchemaFile = "schema.yaml"

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Create, inspect and edit schema files",
}

var (
	schemaFile      string
	schemaInitForce bool
)

var schemaInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write the default schema to a file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := DefaultSchemaFile
		if len(args) == 1 {
			path = args[0]
		}
		return runSchemaInit(path, schemaInitForce, cmd.OutOrStdout())
	},
}

var schemaShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print a schema and its lint warnings",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSchemaShow(cfg, schemaFile, cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

var schemaValidateCmd = &cobra.Command{
	Use:   "validate <glob>...",
	Short: "Validate schema files",
	Long: `Validate schema files against the schema document format and report
lint warnings. Patterns may use ** to match recursively.`,
	Example: `  mockmaster schema validate schema.yaml
  mockmaster schema validate 'schemas/**/*.yaml'`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSchemaValidate(args, cmd.OutOrStdout())
	},
}

var schemaOpenAPICmd = &cobra.Command{
	Use:   "openapi",
	Short: "Print the OpenAPI schema of one generated row",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := resolveSchema(schemaFile, cfg)
		if err != nil {
			return err
		}
		return output.JSON(cmd.OutOrStdout(), schema.ToOpenAPI(s))
	},
}

func init() {
	schemaCmd.PersistentFlags().StringVarP(&schemaFile, "schema", "s", "", "Schema file (default: configured schema, else "+DefaultSchemaFile+")")
	schemaInitCmd.Flags().BoolVar(&schemaInitForce, "force", false, "Overwrite an existing file")

	schemaCmd.AddCommand(schemaInitCmd, schemaShowCmd, schemaValidateCmd, schemaOpenAPICmd)
	rootCmd.AddCommand(schemaCmd)
}

func runSchemaInit(path string, force bool, w io.Writer) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}
	if err := schema.Save(path, schema.DefaultSchema()); err != nil {
		return err
	}
	fmt.Fprintf(w, "Created %s\n", path)
	return nil
}

func runSchemaShow(c *config.Config, path string, stdout, stderr io.Writer) error {
	s, err := resolveSchema(path, c)
	if err != nil {
		return err
	}
	if jsonOutput {
		return output.JSON(stdout, schema.Document{Fields: s})
	}
	data, err := schema.Marshal(s, true)
	if err != nil {
		return err
	}
	if _, err := stdout.Write(data); err != nil {
		return err
	}
	for _, issue := range schema.Lint(s) {
		fmt.Fprintln(stderr, issue.String())
	}
	return nil
}

// fileReport is the validation result for one file.
type fileReport struct {
	Path   string         `json:"path"`
	Valid  bool           `json:"valid"`
	Issues []schema.Issue `json:"issues,omitempty"`
}

func runSchemaValidate(patterns []string, w io.Writer) error {
	var reports []fileReport
	for _, pattern := range patterns {
		matches, err := schema.Glob(pattern)
		if err != nil {
			return err
		}
		if len(matches) == 0 {
			output.Warn("no files match %s", pattern)
		}
		for _, path := range matches {
			reports = append(reports, validateFile(path))
		}
	}

	failed := 0
	for _, r := range reports {
		if !r.Valid {
			failed++
		}
	}

	if jsonOutput {
		if err := output.JSON(w, reports); err != nil {
			return err
		}
	} else {
		for _, r := range reports {
			mark := "ok"
			if !r.Valid {
				mark = "FAIL"
			}
			fmt.Fprintf(w, "%-4s %s\n", mark, r.Path)
			for _, issue := range r.Issues {
				fmt.Fprintf(w, "     %s\n", issue.String())
			}
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d schema files failed validation", failed, len(reports))
	}
	return nil
}

func validateFile(path string) fileReport {
	report := fileReport{Path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		report.Issues = []schema.Issue{{Severity: schema.SeverityError, Message: err.Error()}}
		return report
	}
	issues, err := schema.ValidateDocument(data)
	if err != nil {
		report.Issues = []schema.Issue{{Severity: schema.SeverityError, Message: err.Error()}}
		return report
	}
	report.Issues = issues
	if len(issues) == 0 {
		if s, err := schema.Parse(data); err == nil {
			report.Issues = schema.Lint(s)
		}
	}
	report.Valid = true
	for _, issue := range report.Issues {
		if issue.Severity == schema.SeverityError {
			report.Valid = false
		}
	}
	return report
}

// editablePath returns the schema file edited by add, remove and edit.
func editablePath(c *config.Config) string {
	switch {
	case schemaFile != "":
		return schemaFile
	case c.Schema != "":
		return c.Schema
	default:
		return DefaultSchemaFile
	}
}

// loadEditable loads the schema at path, starting from the default schema
// when the file does not exist yet.
func loadEditable(path string) (schema.Schema, error) {
	s, err := schema.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return schema.DefaultSchema(), nil
	}
	return s, err
}

// fieldRef resolves a field reference, either a zero-based index or a key.
func fieldRef(s schema.Schema, ref string) (int, error) {
	if i, err := strconv.Atoi(ref); err == nil {
		if i < 0 || i >= len(s) {
			return 0, fmt.Errorf("field index %d out of range (schema has %d fields)", i, len(s))
		}
		return i, nil
	}
	for i, f := range s {
		if f.Key == ref {
			return i, nil
		}
	}
	return 0, fmt.Errorf("no field with key %q (keys: %s)", ref, strings.Join(s.Keys(), ", "))
}
