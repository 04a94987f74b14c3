package output

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vegasq/stockcat/table"
)

// ErrWrite is returned when an export cannot be written.
var ErrWrite = errors.New("write failed")

// ErrUnknownFormat is returned for an unsupported output format name.
var ErrUnknownFormat = errors.New("unknown output format")

// WriteError reports a failed export. It matches ErrWrite via errors.Is and
// unwraps to the underlying cause.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write %s: %v", e.Path, e.Err)
}

// Is matches ErrWrite.
func (e *WriteError) Is(target error) bool {
	return target == ErrWrite
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// Format names an output encoding.
type Format string

const (
	FormatCSV     Format = "csv"
	FormatXLSX    Format = "xlsx"
	FormatParquet Format = "parquet"
	FormatJSONL   Format = "jsonl"
	FormatTable   Format = "table"
)

// ParseFormat validates a format name. "json" is accepted for jsonl.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatCSV, FormatXLSX, FormatParquet, FormatJSONL, FormatTable:
		return f, nil
	case "json":
		return FormatJSONL, nil
	default:
		return "", fmt.Errorf("%w %q: use csv, xlsx, parquet, jsonl or table", ErrUnknownFormat, name)
	}
}

// FormatFromPath infers the format from a file extension, defaulting to CSV.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return FormatXLSX
	case ".parquet":
		return FormatParquet
	case ".jsonl", ".json", ".ndjson":
		return FormatJSONL
	default:
		return FormatCSV
	}
}

// WriteOptions configures WriteFile and Write.
type WriteOptions struct {
	// Format is the output encoding; empty means infer from the path.
	Format Format
	// Delimiter for CSV output; zero means comma.
	Delimiter rune
	// Sanitize quotes CSV cells that spreadsheets would run as formulas.
	Sanitize bool
	// Notes are stored with formats that carry metadata (xlsx, parquet).
	Notes  []table.Note
	Logger *zap.Logger
}

// NewFormatter returns the formatter for format writing to w.
func NewFormatter(format Format, w io.Writer, opts WriteOptions) (Formatter, error) {
	switch format {
	case FormatCSV, "":
		f := NewCSVFormatter(w)
		f.SetDelimiter(opts.Delimiter)
		f.SetSanitize(opts.Sanitize)
		return f, nil
	case FormatJSONL:
		return NewJSONFormatter(w), nil
	case FormatTable:
		return NewTableFormatter(w), nil
	case FormatXLSX:
		f := NewXLSXFormatter(w)
		f.SetNotes(opts.Notes)
		return f, nil
	case FormatParquet:
		f := NewParquetFormatter(w)
		f.SetNotes(opts.Notes)
		return f, nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownFormat, format)
	}
}

// Write renders t to w.
func Write(w io.Writer, t *table.Table, opts WriteOptions) error {
	f, err := NewFormatter(opts.Format, w, opts)
	if err != nil {
		return err
	}
	return f.Format(t)
}

// WriteFile exports t to path.
//
// The data is written to a temporary file in the destination directory and
// renamed into place, so on failure the destination is left untouched and
// no partial output remains. A new file gets the usual umask-derived mode;
// an existing one keeps its mode. Write failures are a *WriteError; asking
// for the terminal table format is an ErrUnknownFormat usage error.
func WriteFile(path string, t *table.Table, opts WriteOptions) error {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Format == "" {
		opts.Format = FormatFromPath(path)
	}
	if opts.Format == FormatTable {
		return fmt.Errorf("%w: table output is for terminals only, cannot write %s", ErrUnknownFormat, path)
	}

	tmp, err := createTemp(path)
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if err := Write(tmp, t, opts); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	if err := tmp.Sync(); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	stat, err := tmp.Stat()
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	committed = true

	logger.Info("wrote output",
		zap.String("path", path),
		zap.String("format", string(opts.Format)),
		zap.Int("rows", t.Len()),
		zap.Int64("bytes", stat.Size()))
	return nil
}

// createTemp opens a fresh file next to path with 0666 less the umask. When
// path already exists the temporary file takes over its permissions.
func createTemp(path string) (*os.File, error) {
	dir, base := filepath.Split(path)
	name := filepath.Join(dir, "."+base+"."+uuid.NewString()+".tmp")

	f, err := os.OpenFile(name, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o666)
	if err != nil {
		return nil, err
	}

	if info, err := os.Stat(path); err == nil {
		if err := f.Chmod(info.Mode().Perm()); err != nil {
			_ = f.Close()
			_ = os.Remove(name)
			return nil, err
		}
	}
	return f, nil
}
