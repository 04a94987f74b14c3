package output

import (
	"fmt"
	"io"

	"github.com/mattn/go-runewidth"
	"github.com/olekukonko/tablewriter"

	"github.com/vegasq/stockcat/table"
)

// DefaultMaxCellWidth is the display width at which table cells are cut.
const DefaultMaxCellWidth = 40

// TableFormatter renders a table for a terminal.
type TableFormatter struct {
	writer   io.Writer
	maxWidth int
}

// NewTableFormatter creates a terminal table formatter
func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{writer: w, maxWidth: DefaultMaxCellWidth}
}

// SetOutput sets the output writer
func (f *TableFormatter) SetOutput(w io.Writer) {
	f.writer = w
}

// SetMaxCellWidth sets the display width cells are truncated to. Zero or
// less disables truncation.
func (f *TableFormatter) SetMaxCellWidth(n int) {
	f.maxWidth = n
}

// Format renders the table with a header row and a row count footer line.
func (f *TableFormatter) Format(t *table.Table) error {
	tw := tablewriter.NewWriter(f.writer)
	tw.SetHeader(t.Columns)
	tw.SetAutoFormatHeaders(false)
	tw.SetAutoWrapText(false)

	for _, row := range t.Rows {
		cells := t.Strings(row)
		for i := range cells {
			cells[i] = f.truncate(cells[i])
		}
		tw.Append(cells)
	}
	tw.Render()

	noun := "rows"
	if t.Len() == 1 {
		noun = "row"
	}
	if _, err := fmt.Fprintf(f.writer, "(%d %s)\n", t.Len(), noun); err != nil {
		return fmt.Errorf("failed to write table footer: %w", err)
	}
	return nil
}

func (f *TableFormatter) truncate(s string) string {
	if f.maxWidth <= 0 || runewidth.StringWidth(s) <= f.maxWidth {
		return s
	}
	return runewidth.Truncate(s, f.maxWidth, "...")
}
