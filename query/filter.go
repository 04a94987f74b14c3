package query

import (
	"strings"

	"github.com/vegasq/stockcat/table"
)

// compare compares a cell against a filter operand.
//
// When both sides parse as numbers they are compared numerically, when both
// parse as dates chronologically, and otherwise as text. An ordering against
// a numeric or date operand never matches a cell of another kind, so
// placeholders such as "N/A" fall outside every numeric bound.
func compare(left string, operator Operator, right string, opts Options) bool {
	if operator == OpContains {
		return strings.Contains(strings.ToLower(left), strings.ToLower(right))
	}

	// Empty cells only satisfy equality against an empty operand.
	if strings.TrimSpace(left) == "" && isOrdering(operator) {
		return false
	}

	leftNum, leftIsNum := table.ParseNumber(left)
	rightNum, rightIsNum := table.ParseNumber(right)
	if leftIsNum && rightIsNum {
		return compareOrdered(leftNum, operator, rightNum)
	}
	if rightIsNum && isOrdering(operator) {
		return false
	}

	leftDate, leftIsDate := table.ParseDate(left, opts.DateLayouts)
	rightDate, rightIsDate := table.ParseDate(right, opts.DateLayouts)
	if leftIsDate && rightIsDate {
		return compareOrdered(leftDate.UnixNano(), operator, rightDate.UnixNano())
	}
	if rightIsDate && isOrdering(operator) {
		return false
	}

	return compareStrings(left, operator, right, opts.IgnoreCase)
}

func isOrdering(operator Operator) bool {
	switch operator {
	case OpLess, OpLessEqual, OpGreater, OpGreaterEqual:
		return true
	default:
		return false
	}
}

// compareOrdered compares two numbers or timestamps.
func compareOrdered[T float64 | int64](left T, operator Operator, right T) bool {
	switch operator {
	case OpEqual:
		return left == right
	case OpNotEqual:
		return left != right
	case OpLess:
		return left < right
	case OpGreater:
		return left > right
	case OpLessEqual:
		return left <= right
	case OpGreaterEqual:
		return left >= right
	default:
		return false
	}
}

// compareStrings compares two strings, optionally folding case.
func compareStrings(left string, operator Operator, right string, ignoreCase bool) bool {
	if ignoreCase {
		left, right = strings.ToLower(left), strings.ToLower(right)
	}
	switch operator {
	case OpEqual:
		return left == right
	case OpNotEqual:
		return left != right
	case OpLess:
		return left < right
	case OpGreater:
		return left > right
	case OpLessEqual:
		return left <= right
	case OpGreaterEqual:
		return left >= right
	default:
		return false
	}
}

// Match reports whether a record satisfies the filter.
func (f Filter) Match(row table.Record, opts Options) bool {
	value := table.FormatValue(row[f.Column])

	if f.Op != OpRange {
		return compare(value, f.Op, f.Value, opts)
	}
	if strings.TrimSpace(value) == "" {
		return false
	}
	if f.Low != "" && !compare(value, OpGreaterEqual, f.Low, opts) {
		return false
	}
	if f.High != "" && !compare(value, OpLessEqual, f.High, opts) {
		return false
	}
	return true
}

// RequireColumns fails with an *UnknownColumnError for the first column the
// table does not have.
func RequireColumns(t *table.Table, columns ...string) error {
	for _, col := range columns {
		if !t.Has(col) {
			return &UnknownColumnError{Column: col, Available: append([]string{}, t.Columns...)}
		}
	}
	return nil
}

// Apply returns the rows matching every filter, in their original order.
//
// All filter columns are checked before any row is scanned, so a filter on
// an unknown column fails even on an empty table.
func Apply(t *table.Table, filters []Filter, opts Options) (*table.Table, error) {
	for _, f := range filters {
		if err := RequireColumns(t, f.Column); err != nil {
			return nil, err
		}
	}

	result := table.New(t.Columns)
	for _, row := range t.Rows {
		if matchAll(row, filters, opts) {
			result.Rows = append(result.Rows, row)
		}
	}

	return result, nil
}

func matchAll(row table.Record, filters []Filter, opts Options) bool {
	for _, f := range filters {
		if !f.Match(row, opts) {
			return false
		}
	}
	return true
}
