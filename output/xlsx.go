package output

import (
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/vegasq/stockcat/table"
)

const (
	// DataSheet holds the exported rows.
	DataSheet = "Data"
	// MetadataSheet holds report notes, one key/value pair per row.
	MetadataSheet = "Metadata"
)

// XLSXFormatter writes a table as an Excel workbook.
//
// Number-like cells are stored as numbers so spreadsheet formulas work on
// them; text that would not survive that conversion ("007", "1e3") stays
// text.
type XLSXFormatter struct {
	writer io.Writer
	notes  []table.Note
}

// NewXLSXFormatter creates a new XLSX formatter
func NewXLSXFormatter(w io.Writer) *XLSXFormatter {
	return &XLSXFormatter{writer: w}
}

// SetOutput sets the output writer
func (x *XLSXFormatter) SetOutput(w io.Writer) {
	x.writer = w
}

// SetNotes sets the key/value pairs written to the Metadata sheet. Without
// notes the workbook has only the data sheet.
func (x *XLSXFormatter) SetNotes(notes []table.Note) {
	x.notes = notes
}

// Format writes the workbook.
func (x *XLSXFormatter) Format(t *table.Table) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", DataSheet); err != nil {
		return fmt.Errorf("failed to name data sheet: %w", err)
	}

	header := make([]interface{}, len(t.Columns))
	for i, col := range t.Columns {
		header[i] = col
	}
	if err := setRow(f, DataSheet, 1, header); err != nil {
		return err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	if err := f.SetRowStyle(DataSheet, 1, 1, bold); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	for i, row := range t.Rows {
		cells := make([]interface{}, len(t.Columns))
		for j, col := range t.Columns {
			cells[j] = xlsxValue(row[col])
		}
		if err := setRow(f, DataSheet, i+2, cells); err != nil {
			return err
		}
	}

	if len(x.notes) > 0 {
		if _, err := f.NewSheet(MetadataSheet); err != nil {
			return fmt.Errorf("failed to add metadata sheet: %w", err)
		}
		if err := setRow(f, MetadataSheet, 1, []interface{}{"key", "value"}); err != nil {
			return err
		}
		for i, n := range x.notes {
			if err := setRow(f, MetadataSheet, i+2, []interface{}{n.Key, n.Value}); err != nil {
				return err
			}
		}
	}

	if err := f.Write(x.writer); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("failed to address row %d: %w", row, err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write %s row %d: %w", sheet, row, err)
	}
	return nil
}

// xlsxValue picks the cell type for a value. Strings become numbers only
// when the number prints back as the same string.
func xlsxValue(v interface{}) interface{} {
	s, ok := v.(string)
	if !ok {
		return v
	}
	f, ok := table.ParseNumber(s)
	if !ok || strconv.FormatFloat(f, 'f', -1, 64) != s {
		return s
	}
	return f
}
