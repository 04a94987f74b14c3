package query

import (
	"fmt"
	"strings"
)

const rangeSeparator = ".."

// ParseFilter parses one filter expression.
//
// Syntax: <column><op><value>, where op is one of =, !=, ~, <, <=, >, >=.
// An unquoted value of the form lo..hi after = is an inclusive range; either
// bound may be omitted. Values may be wrapped in single or double quotes to
// keep surrounding spaces or a literal "..".
//
// Examples:
//
//	product=Widget
//	name~wid
//	quantity>=10
//	received=2024-01-01..2024-03-31
func ParseFilter(expr string) (Filter, error) {
	if err := ValidateFilterExpr(expr); err != nil {
		return Filter{}, err
	}

	pos, op, width := findOperator(expr)
	if pos < 0 {
		return Filter{}, fmt.Errorf("%w %q: expected <column><op><value> with op one of =, !=, ~, <, <=, >, >=", ErrInvalidFilter, expr)
	}

	column := strings.TrimSpace(expr[:pos])
	if err := ValidateColumnName(column); err != nil {
		return Filter{}, fmt.Errorf("%w %q: %w", ErrInvalidFilter, expr, err)
	}

	raw := strings.TrimSpace(expr[pos+width:])
	value, quoted := unquote(raw)

	if op == OpEqual && !quoted && strings.Contains(value, rangeSeparator) {
		low, high, _ := strings.Cut(value, rangeSeparator)
		low, high = strings.TrimSpace(low), strings.TrimSpace(high)
		if low == "" && high == "" {
			return Filter{}, fmt.Errorf("%w %q: range needs at least one bound", ErrInvalidFilter, expr)
		}
		return Filter{Column: column, Op: OpRange, Low: low, High: high}, nil
	}

	if op != OpEqual && op != OpNotEqual && value == "" {
		return Filter{}, fmt.Errorf("%w %q: operator %s needs a value", ErrInvalidFilter, expr, op)
	}

	return Filter{Column: column, Op: op, Value: value}, nil
}

// ParseFilters parses every expression, stopping at the first error.
func ParseFilters(exprs []string) ([]Filter, error) {
	if err := ValidateFilterCount(len(exprs)); err != nil {
		return nil, err
	}
	filters := make([]Filter, 0, len(exprs))
	for _, expr := range exprs {
		f, err := ParseFilter(expr)
		if err != nil {
			return nil, err
		}
		filters = append(filters, f)
	}
	return filters, nil
}

// findOperator locates the first operator in expr and returns its byte
// offset, kind and width. The offset is -1 when there is none.
func findOperator(expr string) (int, Operator, int) {
	for i := 0; i < len(expr); i++ {
		next := byte(0)
		if i+1 < len(expr) {
			next = expr[i+1]
		}

		switch expr[i] {
		case '=':
			return i, OpEqual, 1
		case '~':
			return i, OpContains, 1
		case '!':
			if next == '=' {
				return i, OpNotEqual, 2
			}
			return -1, 0, 0
		case '<':
			if next == '=' {
				return i, OpLessEqual, 2
			}
			return i, OpLess, 1
		case '>':
			if next == '=' {
				return i, OpGreaterEqual, 2
			}
			return i, OpGreater, 1
		}
	}
	return -1, 0, 0
}

// unquote strips one pair of matching surrounding quotes.
func unquote(s string) (string, bool) {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' || first == '\'') && first == last {
			return s[1 : len(s)-1], true
		}
	}
	return s, false
}
