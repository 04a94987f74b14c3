package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vegasq/stockcat/output"
	"github.com/vegasq/stockcat/report"
)

func newReportCmd(a *app) *cobra.Command {
	var (
		groupBy []string
		aggs    aggregateFlag
		filters []string
		outPath    string
		format     string
		sorted     bool
		ignoreCase bool
	)

	cmd := &cobra.Command{
		Use:     "report <inputs...>",
		Aliases: []string{"generate"},
		Short:   "Export a grouped summary report",
		Long: `Groups the consolidated rows and computes aggregates per group.

Aggregates are written fn[:column[:label]] with fn one of count, sum, avg,
min or max. count without a column counts rows. Non-numeric cells are
ignored by sum, avg, min and max.

Without --groupby and --agg the configured report is used; by default that
is the total quantity and average unit price per category, written to
summary_report.csv. Use -o - to print the report instead.`,
		Example: `  stockcat report stores/
  stockcat report stores/ --groupby category --agg count --agg "sum:quantity:Total Quantity" -o summary.xlsx
  stockcat report stores/ --filter warehouse=north --groupby product --agg max:unit_price -o -`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := a.reportSpec(cmd, groupBy, aggs.aggs, sorted)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("output") {
				outPath = a.cfg.Report.Output
			}
			if !cmd.Flags().Changed("format") {
				format = a.cfg.Report.Format
			}

			t, paths, err := a.load(cmd.Context(), args, false)
			if err != nil {
				return err
			}
			matched, err := a.filter(t, filters, ignoreCase)
			if err != nil {
				return err
			}

			meta := report.NewMetadata(paths)
			meta.Filters = filters
			r, err := report.Build(matched, spec, meta)
			if err != nil {
				return err
			}
			a.logger.Info("report built",
				zap.String("report_id", r.Metadata.ID.String()),
				zap.Int("input_rows", matched.Len()),
				zap.Int("groups", r.Table.Len()))

			defaultFormat := output.FormatCSV
			if outPath == stdoutPath {
				defaultFormat = output.FormatTable
			}
			return a.emit(cmd.OutOrStdout(), r.Table, emitOptions{
				path:          outPath,
				format:        format,
				defaultFormat: defaultFormat,
				notes:         r.Metadata.Notes(),
			})
		},
	}

	cmd.Flags().StringArrayVar(&groupBy, "groupby", nil, "group-by column, repeatable")
	cmd.Flags().Var(&aggs, "agg", "aggregate fn[:column[:label]], repeatable")
	cmd.Flags().StringArrayVarP(&filters, "filter", "f", nil, "only summarise rows matching this filter, repeatable")
	cmd.Flags().BoolVarP(&ignoreCase, "ignore-case", "i", false, "compare text case-insensitively")
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "output file (default from config: summary_report.csv); - for stdout")
	cmd.Flags().StringVar(&format, "format", "", "output format: csv, xlsx, parquet, jsonl, table")
	cmd.Flags().BoolVar(&sorted, "sort", false, "order groups by their values instead of first appearance")

	return cmd
}

// reportSpec uses the flags when either --groupby or --agg is given, and the
// configured report otherwise. Group-by without aggregates counts rows.
func (a *app) reportSpec(cmd *cobra.Command, groupBy []string, aggs []report.Aggregate, sorted bool) (report.Spec, error) {
	if !cmd.Flags().Changed("groupby") && !cmd.Flags().Changed("agg") {
		spec, err := a.cfg.ReportSpec()
		if err != nil {
			return report.Spec{}, err
		}
		spec.Sort = spec.Sort || sorted
		return spec, nil
	}

	if len(aggs) == 0 {
		aggs = []report.Aggregate{{Func: report.Count}}
	}
	spec := report.Spec{GroupBy: groupBy, Aggregates: aggs, Sort: sorted}
	return spec, spec.Validate()
}
