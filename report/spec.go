package report

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidAggregate is returned for malformed aggregate expressions.
var ErrInvalidAggregate = errors.New("invalid aggregate")

// AggFunc is a summary function applied to each group.
type AggFunc string

const (
	Count AggFunc = "count"
	Sum   AggFunc = "sum"
	Avg   AggFunc = "avg"
	Min   AggFunc = "min"
	Max   AggFunc = "max"
)

// ParseAggFunc resolves a function name, accepting average and mean for avg.
func ParseAggFunc(name string) (AggFunc, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "count":
		return Count, nil
	case "sum", "total":
		return Sum, nil
	case "avg", "average", "mean":
		return Avg, nil
	case "min":
		return Min, nil
	case "max":
		return Max, nil
	default:
		return "", fmt.Errorf("%w: unknown function %q (expected count, sum, avg, min or max)", ErrInvalidAggregate, name)
	}
}

// Aggregate is one output column of a report.
type Aggregate struct {
	Func   AggFunc
	Column string // empty only for Count, meaning count rows
	As     string // output column name; defaults to Name()
}

// Name returns the output column name.
func (a Aggregate) Name() string {
	if a.As != "" {
		return a.As
	}
	if a.Column == "" {
		return string(a.Func)
	}
	return string(a.Func) + "_" + a.Column
}

// String renders the aggregate in the fn[:column[:label]] form it was parsed from.
func (a Aggregate) String() string {
	s := string(a.Func)
	if a.Column != "" || a.As != "" {
		s += ":" + a.Column
	}
	if a.As != "" {
		s += ":" + a.As
	}
	return s
}

// ParseAggregate parses fn, fn:column or fn:column:label.
//
//	count
//	sum:quantity
//	avg:unit_price:Average Price
func ParseAggregate(expr string) (Aggregate, error) {
	parts := strings.SplitN(expr, ":", 3)

	fn, err := ParseAggFunc(parts[0])
	if err != nil {
		return Aggregate{}, err
	}

	agg := Aggregate{Func: fn}
	if len(parts) > 1 {
		agg.Column = strings.TrimSpace(parts[1])
	}
	if len(parts) > 2 {
		agg.As = strings.TrimSpace(parts[2])
	}

	if agg.Column == "" && fn != Count {
		return Aggregate{}, fmt.Errorf("%w %q: %s needs a column", ErrInvalidAggregate, expr, fn)
	}
	return agg, nil
}

// ParseAggregates parses every expression, stopping at the first error.
func ParseAggregates(exprs []string) ([]Aggregate, error) {
	aggs := make([]Aggregate, 0, len(exprs))
	for _, expr := range exprs {
		agg, err := ParseAggregate(expr)
		if err != nil {
			return nil, err
		}
		aggs = append(aggs, agg)
	}
	return aggs, nil
}

// Spec describes a report: how rows are grouped and what is computed per group.
type Spec struct {
	GroupBy    []string
	Aggregates []Aggregate
	// Sort orders groups by their group-by values instead of first appearance.
	Sort bool
}

// Columns returns the report schema: group-by columns then aggregate names.
func (s Spec) Columns() []string {
	cols := make([]string, 0, len(s.GroupBy)+len(s.Aggregates))
	cols = append(cols, s.GroupBy...)
	for _, a := range s.Aggregates {
		cols = append(cols, a.Name())
	}
	return cols
}

// Validate checks that the report has at least one column and no duplicates.
func (s Spec) Validate() error {
	if len(s.GroupBy) == 0 && len(s.Aggregates) == 0 {
		return fmt.Errorf("%w: report needs at least one group-by column or aggregate", ErrInvalidAggregate)
	}
	seen := make(map[string]bool)
	for _, col := range s.Columns() {
		if seen[col] {
			return fmt.Errorf("%w: duplicate output column %q", ErrInvalidAggregate, col)
		}
		seen[col] = true
	}
	return nil
}
