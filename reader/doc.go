// Package reader loads inventory files and consolidates them into one table.
//
// Inputs are CSV files with a header row (UTF-8, comma-delimited by default)
// or Parquet files. Both are returned as *table.Table values whose cells hold
// text, so files of either kind can be merged.
//
// # Basic Usage
//
// Reading a single CSV file:
//
//	t, err := reader.ReadCSV("stock.csv", 0)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(t.Columns, t.Len())
//
// # Consolidation
//
// Expanding command-line inputs (files, directories, glob patterns) and
// merging them:
//
//	paths, err := reader.ExpandInputs([]string{"warehouse/", "extra/*.csv"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	t, stats, err := reader.Consolidate(ctx, paths, reader.Options{
//	    Mode: reader.SchemaUnordered,
//	})
//	if errors.Is(err, reader.ErrSchemaMismatch) {
//	    // headers differ between files
//	}
//
// The first file's header is the reference schema unless Options.Schema is
// set. With SchemaExact every header must list the same columns in the same
// order; with SchemaUnordered only the column set must match.
//
// # Schema Introspection
//
// Describe reports the inferred type and value counts of each column:
//
//	for _, col := range reader.Describe(t, nil) {
//	    fmt.Printf("%s: %s\n", col.Name, col.Type)
//	}
package reader
