package output

import (
	"fmt"
	"io"

	"github.com/parquet-go/parquet-go"

	"github.com/vegasq/stockcat/table"
)

// ParquetFormatter writes a table as a zstd-compressed parquet file.
//
// Every column is optional so empty report cells become nulls. A column is
// INT64 when all its values are int64, DOUBLE when all are float64, and
// STRING otherwise. Parquet orders top-level columns by name.
type ParquetFormatter struct {
	writer io.Writer
	notes  []table.Note
}

// NewParquetFormatter creates a new parquet formatter
func NewParquetFormatter(w io.Writer) *ParquetFormatter {
	return &ParquetFormatter{writer: w}
}

// SetOutput sets the output writer
func (p *ParquetFormatter) SetOutput(w io.Writer) {
	p.writer = w
}

// SetNotes sets the key/value pairs stored in the file footer.
func (p *ParquetFormatter) SetNotes(notes []table.Note) {
	p.notes = notes
}

// Format writes the table.
func (p *ParquetFormatter) Format(t *table.Table) error {
	if len(t.Columns) == 0 {
		return fmt.Errorf("failed to build parquet schema: table has no columns")
	}

	group := make(parquet.Group, len(t.Columns))
	for _, col := range t.Columns {
		group[col] = parquet.Optional(columnNode(t, col))
	}
	schema := parquet.NewSchema("stockcat", group)

	options := []parquet.WriterOption{schema, parquet.Compression(&parquet.Zstd)}
	for _, n := range p.notes {
		options = append(options, parquet.KeyValueMetadata(n.Key, n.Value))
	}
	w := parquet.NewWriter(p.writer, options...)

	fields := schema.Fields()
	rows := make([]parquet.Row, 0, t.Len())
	for _, rec := range t.Rows {
		row := make(parquet.Row, len(fields))
		for i, field := range fields {
			row[i] = parquetValue(rec[field.Name()]).Level(0, definitionLevel(rec[field.Name()]), i)
		}
		rows = append(rows, row)
	}

	if _, err := w.WriteRows(rows); err != nil {
		_ = w.Close()
		return fmt.Errorf("failed to write parquet rows: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return nil
}

// columnNode picks the physical type for a column from its values.
func columnNode(t *table.Table, col string) parquet.Node {
	allInt, allFloat, seen := true, true, false
	for _, row := range t.Rows {
		switch row[col].(type) {
		case nil:
			continue
		case int64:
			allFloat = false
		case float64:
			allInt = false
		default:
			allInt, allFloat = false, false
		}
		seen = true
	}

	switch {
	case seen && allInt:
		return parquet.Int(64)
	case seen && allFloat:
		return parquet.Leaf(parquet.DoubleType)
	default:
		return parquet.String()
	}
}

func parquetValue(v interface{}) parquet.Value {
	switch val := v.(type) {
	case nil:
		return parquet.NullValue()
	case int64, float64:
		return parquet.ValueOf(val)
	default:
		return parquet.ValueOf(table.FormatValue(val))
	}
}

func definitionLevel(v interface{}) int {
	if v == nil {
		return 0
	}
	return 1
}
