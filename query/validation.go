package query

import (
	"errors"
	"fmt"
)

// Validation limits on user-supplied filter input.
const (
	// MaxFilterLength is the maximum length of one filter expression.
	MaxFilterLength = 4096

	// MaxFilters is the maximum number of filters in one invocation.
	MaxFilters = 64

	// MaxColumnNameLength is the maximum length for a column name.
	MaxColumnNameLength = 256
)

var (
	// ErrFilterTooLong is returned when an expression exceeds MaxFilterLength.
	ErrFilterTooLong = errors.New("filter too long")

	// ErrTooManyFilters is returned when more than MaxFilters are given.
	ErrTooManyFilters = errors.New("too many filters")

	// ErrColumnNameTooLong is returned when column name is too long.
	ErrColumnNameTooLong = errors.New("column name too long")

	// ErrEmptyColumnName is returned when a filter has no column.
	ErrEmptyColumnName = errors.New("column name cannot be empty")
)

// ValidateFilterExpr performs length validation on a raw filter expression.
func ValidateFilterExpr(expr string) error {
	if len(expr) > MaxFilterLength {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrFilterTooLong, len(expr), MaxFilterLength)
	}
	return nil
}

// ValidateColumnName validates column name length and content.
func ValidateColumnName(name string) error {
	if name == "" {
		return ErrEmptyColumnName
	}
	if len(name) > MaxColumnNameLength {
		return fmt.Errorf("%w: %d chars (max %d)", ErrColumnNameTooLong, len(name), MaxColumnNameLength)
	}
	return nil
}

// ValidateFilterCount validates the number of filters.
func ValidateFilterCount(n int) error {
	if n > MaxFilters {
		return fmt.Errorf("%w: %d (max %d)", ErrTooManyFilters, n, MaxFilters)
	}
	return nil
}
