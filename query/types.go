package query

import (
	"errors"
	"fmt"
	"strings"
)

// Operator is a filter comparison operator.
type Operator int

const (
	OpEqual        Operator = iota // =
	OpNotEqual                     // !=
	OpContains                     // ~
	OpLess                         // <
	OpLessEqual                    // <=
	OpGreater                      // >
	OpGreaterEqual                 // >=
	OpRange                        // = lo..hi
)

func (o Operator) String() string {
	switch o {
	case OpEqual:
		return "="
	case OpNotEqual:
		return "!="
	case OpContains:
		return "~"
	case OpLess:
		return "<"
	case OpLessEqual:
		return "<="
	case OpGreater:
		return ">"
	case OpGreaterEqual:
		return ">="
	case OpRange:
		return "between"
	default:
		return fmt.Sprintf("Operator(%d)", int(o))
	}
}

// Filter is a predicate over one column.
//
// For OpRange, Low and High are the inclusive bounds and either may be empty
// for an open end; Value is unused.
type Filter struct {
	Column string
	Op     Operator
	Value  string
	Low    string
	High   string
}

// String renders the filter in the syntax ParseFilter accepts.
func (f Filter) String() string {
	if f.Op == OpRange {
		return f.Column + "=" + f.Low + rangeSeparator + f.High
	}
	return f.Column + f.Op.String() + f.Value
}

// Options tunes how filters compare values.
type Options struct {
	// IgnoreCase makes equality and ordering on text case-insensitive.
	// OpContains is always case-insensitive.
	IgnoreCase bool
	// DateLayouts are tried when both sides may be dates. Nil means
	// table.DefaultDateLayouts.
	DateLayouts []string
}

var (
	// ErrUnknownColumn is returned when a filter or aggregate names a column
	// absent from the table.
	ErrUnknownColumn = errors.New("unknown column")

	// ErrInvalidFilter is returned for malformed filter expressions.
	ErrInvalidFilter = errors.New("invalid filter")
)

// UnknownColumnError names the missing column and the available ones.
type UnknownColumnError struct {
	Column    string
	Available []string
}

func (e *UnknownColumnError) Error() string {
	return fmt.Sprintf("column %q not found (available columns: %s)", e.Column, strings.Join(e.Available, ", "))
}

// Unwrap lets errors.Is match ErrUnknownColumn.
func (e *UnknownColumnError) Unwrap() error {
	return ErrUnknownColumn
}
