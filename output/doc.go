// Package output renders tables to terminals and files.
//
// This package defines the Formatter interface and implementations for the
// supported encodings. All formatters take a *table.Table and write its
// columns in schema order.
//
// # Supported Formats
//
//   - CSV: header row plus one line per row, optional formula sanitising
//   - JSON Lines: one JSON object per row
//   - Table: aligned terminal table with truncated cells
//   - XLSX: a Data sheet and, when notes are given, a Metadata sheet
//   - Parquet: zstd-compressed, optional columns, notes in the footer
//
// # Basic Usage
//
//	formatter := output.NewCSVFormatter(os.Stdout)
//	if err := formatter.Format(t); err != nil {
//	    log.Fatal(err)
//	}
//
// # Writing Files
//
// WriteFile picks the format from the extension unless one is given, and
// writes through a temporary file so a failed export never leaves a partial
// file behind:
//
//	err := output.WriteFile("summary_report.xlsx", r.Table, output.WriteOptions{
//	    Notes: r.Metadata.Notes(),
//	})
//	if errors.Is(err, output.ErrWrite) {
//	    // destination unwritable
//	}
package output
