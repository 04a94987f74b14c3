package reader

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/parquet-go/parquet-go"

	"github.com/vegasq/stockcat/table"
)

// ParquetReader reads parquet files and returns rows as maps.
//
// It maintains both an OS file handle and a parquet file handle to enable
// proper resource cleanup.
type ParquetReader struct {
	file   *os.File
	pqFile *parquet.File
}

// NewParquetReader opens a parquet file for reading.
//
// Returns an error wrapping ErrFileNotFound if the file doesn't exist, or
// ErrRead if it is not a valid parquet file.
func NewParquetReader(path string) (*ParquetReader, error) {
	file, err := openInput(path)
	if err != nil {
		return nil, err
	}

	stat, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("%w: failed to stat file: %w", ErrRead, err)
	}

	pqFile, err := parquet.OpenFile(file, stat.Size())
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("%w: failed to open parquet file %s: %w", ErrRead, path, err)
	}

	return &ParquetReader{
		file:   file,
		pqFile: pqFile,
	}, nil
}

// Columns returns the top-level column names in schema order.
func (r *ParquetReader) Columns() []string {
	fields := r.pqFile.Schema().Fields()
	cols := make([]string, len(fields))
	for i, f := range fields {
		cols[i] = f.Name()
	}
	return cols
}

// ReadAll reads all rows from the parquet file into memory.
func (r *ParquetReader) ReadAll() ([]map[string]interface{}, error) {
	rows := make([]map[string]interface{}, 0)

	reader := parquet.NewReader(r.pqFile)
	defer func() { _ = reader.Close() }()

	for {
		row := make(map[string]interface{})
		err := reader.Read(&row)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("%w: failed to read row: %w", ErrRead, err)
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// Close releases the underlying file. It is safe to call more than once.
func (r *ParquetReader) Close() error {
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}

// ReadParquet reads a parquet file into a table, rendering every value as
// text so parquet and CSV inputs can be consolidated together. Nulls become
// empty cells.
func ReadParquet(path string) (*table.Table, error) {
	r, err := NewParquetReader(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Close() }()

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read rows from %s: %w", path, err)
	}

	t := table.New(r.Columns())
	for _, raw := range rows {
		row := make(table.Record, len(t.Columns))
		for _, col := range t.Columns {
			row[col] = table.FormatValue(raw[col])
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}
