package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vegasq/stockcat/output"
)

// defaultShowRows matches the row count shown when -n is not given.
const defaultShowRows = 5

func newShowCmd(a *app) *cobra.Command {
	var (
		rows   int
		format string
	)

	cmd := &cobra.Command{
		Use:     "show <inputs...>",
		Aliases: []string{"head", "show-top"},
		Short:   "Print the first rows of the consolidated table",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if rows < 0 {
				return fmt.Errorf("-n must be non-negative, got %d", rows)
			}
			t, _, err := a.load(cmd.Context(), args, false)
			if err != nil {
				return err
			}
			return a.emit(cmd.OutOrStdout(), t.Head(rows), emitOptions{
				format:        format,
				defaultFormat: output.FormatTable,
			})
		},
	}

	cmd.Flags().IntVarP(&rows, "rows", "n", defaultShowRows, "number of rows to show")
	cmd.Flags().StringVar(&format, "format", "", "output format: table, csv, jsonl")

	return cmd
}
