package cli

import (
	"github.com/spf13/cobra"

	"github.com/vegasq/stockcat/output"
	"github.com/vegasq/stockcat/reader"
)

func newSchemaCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "schema <inputs...>",
		Short: "Describe the columns of the consolidated table",
		Long: `Loads the inputs and reports, per column, the inferred type (number,
date, text or empty), how many cells are filled, how many distinct values
occur, and an example value.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, _, err := a.load(cmd.Context(), args, false)
			if err != nil {
				return err
			}
			infos := reader.Describe(t, a.cfg.DateLayouts)
			return a.emit(cmd.OutOrStdout(), reader.DescribeTable(infos), emitOptions{
				format:        format,
				defaultFormat: output.FormatTable,
			})
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "output format: table, csv, jsonl")

	return cmd
}
