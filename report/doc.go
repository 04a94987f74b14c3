// Package report summarises consolidated tables.
//
// A Spec groups rows by zero or more columns and computes aggregates per
// group:
//
//	spec := report.Spec{
//	    GroupBy:    []string{"category"},
//	    Aggregates: []report.Aggregate{
//	        {Func: report.Sum, Column: "quantity", As: "Total Quantity"},
//	        {Func: report.Avg, Column: "unit_price", As: "Average Price"},
//	    },
//	}
//	r, err := report.Build(t, spec, report.NewMetadata(paths))
//
// Groups appear in the order of their first row unless Spec.Sort is set.
// Count yields int64; sum, avg, min and max yield float64 and ignore cells
// that are not numbers. Avg, min and max over no numbers are left empty.
package report
