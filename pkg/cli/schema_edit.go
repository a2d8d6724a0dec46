package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/getmockd/mockmaster/pkg/generator"
	"github.com/getmockd/mockmaster/pkg/preview"
	"github.com/getmockd/mockmaster/pkg/schema"
)

// previewRows is the number of rows shown by the editor's preview action.
const previewRows = 3

var schemaEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit a schema file interactively",
	Long: `Open an interactive editor for a schema file: add, change and remove
fields, preview generated rows, then save. A missing file starts from the
default schema.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSchemaEdit(editablePath(cfg), cmd.OutOrStdout())
	},
}

func init() {
	schemaCmd.AddCommand(schemaEditCmd)
}

// Editor actions.
const (
	actionAdd     = "add"
	actionPreview = "preview"
	actionReset   = "reset"
	actionSave    = "save"
	actionQuit    = "quit"
	actionEdit    = "edit:"
	actionRemove  = "remove:"
)

func runSchemaEdit(path string, w io.Writer) error {
	s, err := loadEditable(path)
	if err != nil {
		return err
	}
	dirty := false

	for {
		var action string
		form := huh.NewForm(huh.NewGroup(
			huh.NewSelect[string]().
				Title(fmt.Sprintf("%s (%d fields)", path, len(s))).
				Description(summarize(s)).
				Options(editorOptions(s)...).
				Value(&action),
		))
		if err := form.Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return err
		}

		switch {
		case action == actionAdd:
			f := fieldFlags{key: schema.NewFieldKey(len(s) + 1), typ: string(schema.TypeSentence)}
			if err := fieldForm(&f).Run(); err != nil {
				return err
			}
			next, err := addFormField(s, &f)
			if err != nil {
				fmt.Fprintln(w, "Error:", err)
				continue
			}
			s = next
			dirty = true

		case strings.HasPrefix(action, actionEdit):
			i, _ := strconv.Atoi(strings.TrimPrefix(action, actionEdit))
			f := flagsFromField(s[i])
			if err := fieldForm(&f).Run(); err != nil {
				return err
			}
			next, err := applyFieldForm(s, i, &f)
			if err != nil {
				fmt.Fprintln(w, "Error:", err)
				continue
			}
			s = next
			dirty = true

		case strings.HasPrefix(action, actionRemove):
			i, _ := strconv.Atoi(strings.TrimPrefix(action, actionRemove))
			s = s.RemoveField(i)
			dirty = true

		case action == actionReset:
			s = schema.DefaultSchema()
			dirty = true

		case action == actionPreview:
			out, err := preview.Render(generator.Generate(s, previewRows))
			if err != nil {
				return err
			}
			fmt.Fprintln(w, out)

		case action == actionSave:
			if err := schema.Save(path, s); err != nil {
				return err
			}
			fmt.Fprintf(w, "Saved %s\n", path)
			return nil

		case action == actionQuit:
			if dirty {
				fmt.Fprintln(w, "Discarded unsaved changes")
			}
			return nil
		}
	}
}

func editorOptions(s schema.Schema) []huh.Option[string] {
	opts := []huh.Option[string]{huh.NewOption("Add field", actionAdd)}
	for i, f := range s {
		opts = append(opts, huh.NewOption(fmt.Sprintf("Edit %s (%s)", f.Key, f.Type), actionEdit+strconv.Itoa(i)))
	}
	for i, f := range s {
		opts = append(opts, huh.NewOption("Remove "+f.Key, actionRemove+strconv.Itoa(i)))
	}
	return append(opts,
		huh.NewOption("Preview rows", actionPreview),
		huh.NewOption("Reset to default schema", actionReset),
		huh.NewOption("Save and exit", actionSave),
		huh.NewOption("Quit without saving", actionQuit),
	)
}

func summarize(s schema.Schema) string {
	if len(s) == 0 {
		return "no fields"
	}
	parts := make([]string, len(s))
	for i, f := range s {
		parts[i] = f.Key + ":" + string(f.Type)
	}
	return strings.Join(parts, "  ")
}

// applyFieldForm merges the form values into the field at index.
func applyFieldForm(s schema.Schema, index int, f *fieldFlags) (schema.Schema, error) {
	patch, err := f.patch()
	if err != nil {
		return s, err
	}
	if patch.Options == nil {
		patch.Options = &schema.FieldOptions{}
	}
	out := s.UpdateField(index, patch)
	if o := out[index].Options; o != nil && isEmptyOptions(o) {
		out[index].Options = nil
	}
	return out, nil
}

// addFormField appends a field built from the form values. On error s is
// returned as it was.
func addFormField(s schema.Schema, f *fieldFlags) (schema.Schema, error) {
	out, err := applyFieldForm(s.AddField(), len(s), f)
	if err != nil {
		return s, err
	}
	return out, nil
}

func isEmptyOptions(o *schema.FieldOptions) bool {
	return o.Min == nil && o.Max == nil && o.MinDate == "" && o.MaxDate == "" && o.Values == nil
}

// flagsFromField fills form values from an existing field.
func flagsFromField(field schema.Field) fieldFlags {
	f := fieldFlags{key: field.Key, typ: string(field.Type)}
	if o := field.Options; o != nil {
		if o.Min != nil {
			f.min = strconv.FormatFloat(*o.Min, 'f', -1, 64)
		}
		if o.Max != nil {
			f.max = strconv.FormatFloat(*o.Max, 'f', -1, 64)
		}
		f.minDate = dayOf(o.MinDate)
		f.maxDate = dayOf(o.MaxDate)
		f.storedMinDate = o.MinDate
		f.storedMaxDate = o.MaxDate
		f.values = strings.Join(o.Values, ", ")
	}
	return f
}

// dayOf trims an ISO timestamp to its YYYY-MM-DD day.
func dayOf(ts string) string {
	if t, err := schema.ParseTime(ts); err == nil {
		return t.UTC().Format("2006-01-02")
	}
	return ts
}
