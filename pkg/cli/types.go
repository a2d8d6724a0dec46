package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/getmockd/mockmaster/pkg/cli/internal/output"
	"github.com/getmockd/mockmaster/pkg/schema"
)

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List the available field types",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTypes(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(typesCmd)
}

func runTypes(w io.Writer) error {
	types := schema.AllFieldTypes()
	if jsonOutput {
		out := make([]map[string]string, 0, len(types))
		for _, t := range types {
			out = append(out, map[string]string{"type": string(t), "description": t.Description()})
		}
		return output.JSON(w, out)
	}

	tw := output.Table(w)
	fmt.Fprintln(tw, "TYPE\tDESCRIPTION")
	for _, t := range types {
		fmt.Fprintf(tw, "%s\t%s\n", t, t.Description())
	}
	return tw.Flush()
}
