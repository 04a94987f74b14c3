package reader

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSchemaMismatch is returned when an input header differs from the
	// reference schema.
	ErrSchemaMismatch = errors.New("schema mismatch")

	// ErrFileNotFound is returned when an input path does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrNoInputFiles is returned when a directory or pattern yields no files.
	ErrNoInputFiles = errors.New("no input files found")

	// ErrEmptyFile is returned for an input without a header row.
	ErrEmptyFile = errors.New("empty file")

	// ErrDuplicateColumn is returned when a header names a column twice.
	ErrDuplicateColumn = errors.New("duplicate column")

	// ErrRead is returned when an input cannot be read or parsed.
	ErrRead = errors.New("read failed")
)

// SchemaMismatchError describes how an input header differs from the
// reference schema.
type SchemaMismatchError struct {
	File       string
	Expected   []string
	Got        []string
	Missing    []string
	Unexpected []string
}

func (e *SchemaMismatchError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "schema mismatch in %s", e.File)
	if len(e.Missing) > 0 {
		fmt.Fprintf(&b, "; missing columns: %s", strings.Join(e.Missing, ", "))
	}
	if len(e.Unexpected) > 0 {
		fmt.Fprintf(&b, "; unexpected columns: %s", strings.Join(e.Unexpected, ", "))
	}
	if len(e.Missing) == 0 && len(e.Unexpected) == 0 {
		fmt.Fprintf(&b, "; column order %s, want %s", strings.Join(e.Got, ","), strings.Join(e.Expected, ","))
	}
	return b.String()
}

// Unwrap lets errors.Is match ErrSchemaMismatch.
func (e *SchemaMismatchError) Unwrap() error {
	return ErrSchemaMismatch
}
