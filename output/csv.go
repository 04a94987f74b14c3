package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/vegasq/stockcat/table"
)

// CSVFormatter outputs a table as CSV with a header row.
type CSVFormatter struct {
	writer    io.Writer
	delimiter rune
	sanitize  bool
}

// NewCSVFormatter creates a new comma-delimited CSV formatter
func NewCSVFormatter(w io.Writer) *CSVFormatter {
	return &CSVFormatter{writer: w, delimiter: ','}
}

// SetOutput sets the output writer
func (c *CSVFormatter) SetOutput(w io.Writer) {
	c.writer = w
}

// SetDelimiter changes the field delimiter. Zero restores the comma.
func (c *CSVFormatter) SetDelimiter(r rune) {
	if r == 0 {
		r = ','
	}
	c.delimiter = r
}

// SetSanitize enables quoting of cells that spreadsheet applications would
// run as formulas.
func (c *CSVFormatter) SetSanitize(on bool) {
	c.sanitize = on
}

// Format writes the header in table column order followed by every row.
// The header is written even when the table has no rows.
func (c *CSVFormatter) Format(t *table.Table) error {
	csvWriter := csv.NewWriter(c.writer)
	csvWriter.Comma = c.delimiter

	if err := c.write(csvWriter, t.Columns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, row := range t.Rows {
		record := t.Strings(row)
		if c.sanitize {
			for i := range record {
				record[i] = sanitizeCell(record[i])
			}
		}
		if err := c.write(csvWriter, record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV writer: %w", err)
	}

	return nil
}

// write emits one record. A lone empty field would come out as a blank line,
// which readers skip, so it is written as "" instead.
func (c *CSVFormatter) write(w *csv.Writer, record []string) error {
	if len(record) != 1 || record[0] != "" {
		return w.Write(record)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	_, err := io.WriteString(c.writer, "\"\"\n")
	return err
}

// sanitizeCell prefixes cells starting with a formula trigger with a quote.
// Plain negative numbers are left alone.
func sanitizeCell(val string) string {
	if val == "" {
		return val
	}
	switch val[0] {
	case '=', '+', '-', '@', '\t', '\r', '\n', '|':
		if _, ok := table.ParseNumber(val); ok {
			return val
		}
		return "'" + strings.ReplaceAll(val, "'", "''")
	}
	return val
}
