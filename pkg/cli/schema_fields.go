package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/getmockd/mockmaster/pkg/schema"
)

// fieldFlags holds the flag values shared by 'schema add'.
type fieldFlags struct {
	key     string
	typ     string
	min     string
	max     string
	minDate string
	maxDate string
	values  string

	// Stored bounds of the field being edited. A form day that still
	// matches one of them keeps the stored timestamp.
	storedMinDate string
	storedMaxDate string
}

var addFieldFlagVals fieldFlags

var schemaAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a field to a schema file",
	Long: `Add a field to a schema file. Without --key and --type an interactive
form asks for them.`,
	Example: `  mockmaster schema add --key price --type amount --min 1 --max 99.99
  mockmaster schema add --key plan --type enum --values "free, pro, team"
  mockmaster schema add --key signup --type date --min-date 2024-01-01 --max-date 2024-12-31`,
	RunE: func(cmd *cobra.Command, args []string) error {
		f := addFieldFlagVals
		if !cmd.Flags().Changed("key") && !cmd.Flags().Changed("type") {
			if err := fieldForm(&f).Run(); err != nil {
				return err
			}
		}
		return runSchemaAdd(editablePath(cfg), &f, cmd.OutOrStdout())
	},
}

var schemaRemoveCmd = &cobra.Command{
	Use:   "remove <index|key>",
	Short: "Remove a field from a schema file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSchemaRemove(editablePath(cfg), args[0], cmd.OutOrStdout())
	},
}

func init() {
	fl := schemaAddCmd.Flags()
	fl.StringVar(&addFieldFlagVals.key, "key", "", "Field key (default: field_<n>)")
	fl.StringVar(&addFieldFlagVals.typ, "type", string(schema.TypeSentence), "Field type (see 'mockmaster types')")
	fl.StringVar(&addFieldFlagVals.min, "min", "", "Minimum amount")
	fl.StringVar(&addFieldFlagVals.max, "max", "", "Maximum amount")
	fl.StringVar(&addFieldFlagVals.minDate, "min-date", "", "Earliest date (YYYY-MM-DD)")
	fl.StringVar(&addFieldFlagVals.maxDate, "max-date", "", "Latest date (YYYY-MM-DD)")
	fl.StringVar(&addFieldFlagVals.values, "values", "", "Comma-separated enum values")

	schemaCmd.AddCommand(schemaAddCmd, schemaRemoveCmd)
}

func runSchemaAdd(path string, f *fieldFlags, w io.Writer) error {
	s, err := loadEditable(path)
	if err != nil {
		return err
	}
	patch, err := f.patch()
	if err != nil {
		return err
	}
	s = s.AddField()
	s = s.UpdateField(len(s)-1, patch)
	if err := schema.Save(path, s); err != nil {
		return err
	}
	added := s[len(s)-1]
	fmt.Fprintf(w, "Added %s (%s) to %s\n", added.Key, added.Type, path)
	return nil
}

func runSchemaRemove(path, ref string, w io.Writer) error {
	s, err := schema.Load(path)
	if err != nil {
		return err
	}
	i, err := fieldRef(s, ref)
	if err != nil {
		return err
	}
	removed := s[i].Key
	if err := schema.Save(path, s.RemoveField(i)); err != nil {
		return err
	}
	fmt.Fprintf(w, "Removed %s from %s\n", removed, path)
	return nil
}

// patch converts the flag strings into a field patch. Options are only
// attached when the type uses them.
func (f *fieldFlags) patch() (schema.FieldPatch, error) {
	var p schema.FieldPatch
	if f.key != "" {
		key := f.key
		p.Key = &key
	}
	typ := schema.FieldType(strings.TrimSpace(f.typ))
	if typ == "" {
		typ = schema.TypeSentence
	}
	if !typ.IsValid() {
		return p, fmt.Errorf("unknown field type %q (see 'mockmaster types')", f.typ)
	}
	p.Type = &typ

	opts, err := f.options(typ)
	if err != nil {
		return p, err
	}
	p.Options = opts
	return p, nil
}

func (f *fieldFlags) options(typ schema.FieldType) (*schema.FieldOptions, error) {
	switch typ {
	case schema.TypeAmount:
		if f.min == "" && f.max == "" {
			return nil, nil
		}
		o := &schema.FieldOptions{}
		for _, b := range []struct {
			name string
			raw  string
			dst  **float64
		}{{"min", f.min, &o.Min}, {"max", f.max, &o.Max}} {
			if b.raw == "" {
				continue
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(b.raw), 64)
			if err != nil {
				return nil, fmt.Errorf("--%s: %q is not a number", b.name, b.raw)
			}
			*b.dst = schema.Float(v)
		}
		return o, nil

	case schema.TypeDate:
		if f.minDate == "" && f.maxDate == "" {
			return nil, nil
		}
		o := &schema.FieldOptions{}
		for _, b := range []struct {
			name   string
			raw    string
			stored string
			dst    *string
		}{{"min-date", f.minDate, f.storedMinDate, &o.MinDate}, {"max-date", f.maxDate, f.storedMaxDate, &o.MaxDate}} {
			if b.raw == "" {
				continue
			}
			if b.stored != "" && strings.TrimSpace(b.raw) == dayOf(b.stored) {
				*b.dst = b.stored
				continue
			}
			v, err := schema.DateOption(strings.TrimSpace(b.raw))
			if err != nil {
				return nil, fmt.Errorf("--%s: %w", b.name, err)
			}
			*b.dst = v
		}
		return o, nil

	case schema.TypeEnum:
		if strings.TrimSpace(f.values) == "" {
			return &schema.FieldOptions{Values: []string{}}, nil
		}
		return &schema.FieldOptions{Values: schema.ParseEnumValues(f.values)}, nil
	}
	return nil, nil
}

// fieldForm asks for a field's key, type and type-specific options.
func fieldForm(f *fieldFlags) *huh.Form {
	typeOptions := make([]huh.Option[string], 0, len(schema.AllFieldTypes()))
	for _, t := range schema.AllFieldTypes() {
		typeOptions = append(typeOptions, huh.NewOption(fmt.Sprintf("%-9s %s", t, t.Description()), string(t)))
	}
	if f.typ == "" {
		f.typ = string(schema.TypeSentence)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Field key").
				Placeholder("field_n").
				Value(&f.key),
			huh.NewSelect[string]().
				Title("Type").
				Options(typeOptions...).
				Value(&f.typ),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Minimum amount").
				Placeholder("0").
				Value(&f.min).
				Validate(optionalNumber),
			huh.NewInput().
				Title("Maximum amount").
				Placeholder("1000").
				Value(&f.max).
				Validate(optionalNumber),
		).WithHideFunc(func() bool { return f.typ != string(schema.TypeAmount) }),
		huh.NewGroup(
			huh.NewInput().
				Title("Earliest date").
				Placeholder("YYYY-MM-DD").
				Value(&f.minDate).
				Validate(optionalDate),
			huh.NewInput().
				Title("Latest date").
				Placeholder("YYYY-MM-DD").
				Value(&f.maxDate).
				Validate(optionalDate),
		).WithHideFunc(func() bool { return f.typ != string(schema.TypeDate) }),
		huh.NewGroup(
			huh.NewInput().
				Title("Values").
				Description("Comma-separated").
				Placeholder("free, pro, team").
				Value(&f.values),
		).WithHideFunc(func() bool { return f.typ != string(schema.TypeEnum) }),
	)
}

func optionalNumber(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if _, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err != nil {
		return fmt.Errorf("not a number")
	}
	return nil
}

func optionalDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if _, err := schema.DateOption(strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("use YYYY-MM-DD")
	}
	return nil
}
