package reader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/vegasq/stockcat/table"
)

// MaxInputFiles caps how many files one invocation may consolidate.
const MaxInputFiles = 1000

// SourceColumn is added to every row when Options.TagSource is set.
const SourceColumn = "_file"

// SchemaMode controls how strictly input headers must match the reference.
type SchemaMode string

const (
	// SchemaUnordered requires the same column names in any order.
	SchemaUnordered SchemaMode = "unordered"
	// SchemaExact requires the same column names in the same order.
	SchemaExact SchemaMode = "exact"
)

// ParseSchemaMode validates a schema mode name. Empty means unordered.
func ParseSchemaMode(s string) (SchemaMode, error) {
	switch SchemaMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", SchemaUnordered:
		return SchemaUnordered, nil
	case SchemaExact:
		return SchemaExact, nil
	default:
		return "", fmt.Errorf("unknown schema mode %q: use %q or %q", s, SchemaExact, SchemaUnordered)
	}
}

// Options configures Consolidate.
type Options struct {
	// Schema is the reference header. When empty, the first file's header
	// is the reference.
	Schema []string
	Mode   SchemaMode
	// Delimiter for CSV inputs; zero means comma.
	Delimiter rune
	// TagSource adds a SourceColumn holding each row's input path.
	TagSource bool
	Logger    *zap.Logger
}

// FileStats records what was loaded from one input.
type FileStats struct {
	Path     string
	Rows     int
	Duration time.Duration
}

// ExpandInputs resolves command-line inputs into an ordered file list.
//
// Each argument may be:
//   - a file path, used as is
//   - a directory, expanded to the *.csv and *.parquet files directly inside
//     it, sorted by name
//   - a glob pattern (*, ?, [range]), expanded with filepath.Glob
//
// Argument order is preserved.
func ExpandInputs(args []string) ([]string, error) {
	var files []string

	for _, arg := range args {
		if strings.ContainsAny(arg, "*?[") {
			matches, err := filepath.Glob(arg)
			if err != nil {
				return nil, fmt.Errorf("invalid glob pattern %q: %w", arg, err)
			}
			if len(matches) == 0 {
				return nil, fmt.Errorf("%w: no files match pattern: %s", ErrNoInputFiles, arg)
			}
			files = append(files, matches...)
			continue
		}

		info, err := os.Stat(arg)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("%w: %s", ErrFileNotFound, arg)
			}
			return nil, fmt.Errorf("%w: failed to stat %s: %w", ErrRead, arg, err)
		}

		if !info.IsDir() {
			files = append(files, arg)
			continue
		}

		dirFiles, err := listDataFiles(arg)
		if err != nil {
			return nil, err
		}
		files = append(files, dirFiles...)
	}

	if len(files) == 0 {
		return nil, ErrNoInputFiles
	}
	if len(files) > MaxInputFiles {
		return nil, fmt.Errorf("inputs matched too many files (%d), maximum is %d", len(files), MaxInputFiles)
	}

	return files, nil
}

// listDataFiles returns the supported input files directly inside dir.
func listDataFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list %s: %w", ErrRead, dir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !isDataFile(e.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no CSV files in %s", ErrNoInputFiles, dir)
	}
	sort.Strings(files)
	return files, nil
}

func isDataFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv", ".parquet":
		return true
	default:
		return false
	}
}

// ReadFile reads one input, choosing the parser from the file extension.
func ReadFile(path string, delimiter rune) (*table.Table, error) {
	if strings.EqualFold(filepath.Ext(path), ".parquet") {
		return ReadParquet(path)
	}
	return ReadCSV(path, delimiter)
}

// Consolidate loads the files in order, validates each header against the
// reference schema and concatenates the rows.
//
// Rows keep file order, then row order within each file. The first header
// that fails validation aborts the load with a *SchemaMismatchError.
func Consolidate(ctx context.Context, paths []string, opts Options) (*table.Table, []FileStats, error) {
	if len(paths) == 0 {
		return nil, nil, ErrNoInputFiles
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	mode := opts.Mode
	if mode == "" {
		mode = SchemaUnordered
	}

	var (
		result *table.Table
		stats  = make([]FileStats, 0, len(paths))
	)

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		start := time.Now()
		t, err := ReadFile(path, opts.Delimiter)
		if err != nil {
			return nil, nil, err
		}

		if result == nil {
			reference := t.Columns
			if len(opts.Schema) > 0 {
				reference = opts.Schema
			}
			if err := checkSchema(path, reference, t.Columns, mode); err != nil {
				return nil, nil, err
			}
			columns := reference
			if opts.TagSource {
				if slices.Contains(reference, SourceColumn) {
					return nil, nil, fmt.Errorf("%w: %s in %s already exists, cannot tag rows with their source file",
						ErrDuplicateColumn, SourceColumn, path)
				}
				columns = append(append([]string{}, reference...), SourceColumn)
			}
			result = table.New(columns)
		} else {
			if err := checkSchema(path, referenceColumns(result, opts.TagSource), t.Columns, mode); err != nil {
				return nil, nil, err
			}
		}

		for _, row := range t.Rows {
			if opts.TagSource {
				row[SourceColumn] = path
			}
			result.Rows = append(result.Rows, row)
		}

		st := FileStats{Path: path, Rows: t.Len(), Duration: time.Since(start)}
		stats = append(stats, st)
		logger.Debug("Loaded input file",
			zap.String("path", st.Path),
			zap.Int("rows", st.Rows),
			zap.Duration("duration", st.Duration))
	}

	logger.Info("Consolidated inputs",
		zap.Int("files", len(paths)),
		zap.Int("rows", result.Len()))

	return result, stats, nil
}

// referenceColumns returns the schema inputs are validated against,
// excluding the source tag column.
func referenceColumns(t *table.Table, tagged bool) []string {
	if !tagged {
		return t.Columns
	}
	return t.Columns[:len(t.Columns)-1]
}

func checkSchema(path string, expected, got []string, mode SchemaMode) error {
	ok := table.SameSet(expected, got)
	if mode == SchemaExact {
		ok = table.Equal(expected, got)
	}
	if ok {
		return nil
	}
	missing, unexpected := table.Diff(expected, got)
	return &SchemaMismatchError{
		File:       path,
		Expected:   expected,
		Got:        got,
		Missing:    missing,
		Unexpected: unexpected,
	}
}
