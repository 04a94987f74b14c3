package reader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/vegasq/stockcat/table"
)

// ReadCSV reads a CSV file with a header row into a table.
//
// Cell values are kept verbatim. Header names are trimmed and a leading
// UTF-8 byte order mark is dropped. A zero delimiter means comma.
func ReadCSV(path string, delimiter rune) (*table.Table, error) {
	file, err := openInput(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()

	return ParseCSV(file, path, delimiter)
}

// ParseCSV reads CSV data from r. The name is used in error messages.
func ParseCSV(r io.Reader, name string, delimiter rune) (*table.Table, error) {
	cr := csv.NewReader(r)
	if delimiter != 0 {
		cr.Comma = delimiter
	}

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %w: %s", ErrRead, ErrEmptyFile, name)
		}
		return nil, fmt.Errorf("%w: failed to parse header of %s: %w", ErrRead, name, err)
	}

	columns := make([]string, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		columns[i] = strings.TrimSpace(h)
	}
	if dups := table.Duplicates(columns); len(dups) > 0 {
		return nil, fmt.Errorf("%w: %s in %s", ErrDuplicateColumn, strings.Join(dups, ", "), name)
	}

	t := table.New(columns)
	for {
		record, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("%w: failed to parse %s: %w", ErrRead, name, err)
		}

		row := make(table.Record, len(columns))
		for i, col := range columns {
			row[col] = record[i]
		}
		t.Rows = append(t.Rows, row)
	}

	return t, nil
}

// openInput opens path, mapping a missing file to ErrFileNotFound.
func openInput(path string) (*os.File, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("%w: failed to open file: %w", ErrRead, err)
	}
	return file, nil
}
