package cli

import (
	"github.com/spf13/cobra"

	"github.com/vegasq/stockcat/output"
)

func newConsolidateCmd(a *app) *cobra.Command {
	var (
		outPath   string
		format    string
		tagSource bool
	)

	cmd := &cobra.Command{
		Use:     "consolidate <inputs...>",
		Aliases: []string{"merge", "add-data"},
		Short:   "Merge inventory files into one table",
		Long: `Loads every input, checks that each header matches the first one (or the
configured schema), and writes the concatenated rows in file order.

Without -o the merged table is printed to stdout as CSV.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, paths, err := a.load(cmd.Context(), args, tagSource)
			if err != nil {
				return err
			}
			if outPath != "" && outPath != stdoutPath {
				a.stderr.Info("Loaded %d rows from %d files", t.Len(), len(paths))
			}
			return a.emit(cmd.OutOrStdout(), t, emitOptions{
				path:          outPath,
				format:        format,
				defaultFormat: output.FormatCSV,
			})
		},
	}

	cmd.Flags().StringVarP(&outPath, "output", "o", "", "output file (format from extension); - for stdout")
	cmd.Flags().StringVar(&format, "format", "", "output format: csv, xlsx, parquet, jsonl")
	cmd.Flags().BoolVar(&tagSource, "tag-source", false, "add a _file column naming each row's input")

	return cmd
}
