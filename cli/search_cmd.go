package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vegasq/stockcat/output"
)

func newSearchCmd(a *app) *cobra.Command {
	var (
		filters    []string
		outPath    string
		format     string
		limit      int
		ignoreCase bool
	)

	cmd := &cobra.Command{
		Use:     "search <inputs...> --filter <expr> [--filter <expr>...]",
		Aliases: []string{"query"},
		Short:   "Find rows matching column filters",
		Long: `Prints the consolidated rows that match every filter.

Filter syntax:
  column=value        equals
  column!=value       not equals
  column~text         contains (case-insensitive)
  column<n  column<=n column>n  column>=n
  column=lo..hi       inclusive range; either bound may be omitted

Numbers and dates compare by value; everything else compares as text.`,
		Example: `  stockcat search stores/ --filter product=Widget
  stockcat search stores/*.csv -f "name~bolt" -f "quantity<10" -o low.csv`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(filters) == 0 {
				return fmt.Errorf("at least one --filter is required")
			}
			if limit < 0 {
				return fmt.Errorf("--limit must be non-negative, got %d", limit)
			}

			t, _, err := a.load(cmd.Context(), args, false)
			if err != nil {
				return err
			}
			matched, err := a.filter(t, filters, ignoreCase)
			if err != nil {
				return err
			}
			a.logger.Info("search finished", zap.Int("rows", t.Len()), zap.Int("matched", matched.Len()))

			if matched.Len() == 0 {
				a.stdout.Info("No matching results.")
				if outPath == "" || outPath == stdoutPath {
					return nil
				}
			}
			if limit > 0 {
				matched = matched.Head(limit)
			}

			return a.emit(cmd.OutOrStdout(), matched, emitOptions{
				path:          outPath,
				format:        format,
				defaultFormat: output.FormatTable,
			})
		},
	}

	cmd.Flags().StringArrayVarP(&filters, "filter", "f", nil, "filter expression, repeatable (rows must match all)")
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "write matches to a file instead of the terminal")
	cmd.Flags().StringVar(&format, "format", "", "output format: table, csv, xlsx, parquet, jsonl")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum rows to output (0 = unlimited)")
	cmd.Flags().BoolVarP(&ignoreCase, "ignore-case", "i", false, "compare text case-insensitively")

	return cmd
}
