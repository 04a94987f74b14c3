package report

import (
	"sort"
	"strings"

	"github.com/vegasq/stockcat/table"
)

// group is the set of rows sharing one combination of group-by values.
type group struct {
	key    string
	values []string
	rows   []table.Record
}

// groupRows partitions rows by the group-by columns. Groups are returned in
// the order their first row appears. No group-by columns yields a single
// group holding every row, even when there are none.
func groupRows(rows []table.Record, groupBy []string) []*group {
	if len(groupBy) == 0 {
		return []*group{{rows: rows}}
	}

	index := make(map[string]*group)
	var order []*group

	for _, row := range rows {
		key, values := groupKey(row, groupBy)
		if g, ok := index[key]; ok {
			g.rows = append(g.rows, row)
			continue
		}
		g := &group{key: key, values: values, rows: []table.Record{row}}
		index[key] = g
		order = append(order, g)
	}

	return order
}

// groupKey joins the rendered group-by values with a separator that cannot
// appear in CSV text.
func groupKey(row table.Record, groupBy []string) (string, []string) {
	values := make([]string, len(groupBy))
	for i, col := range groupBy {
		values[i] = table.FormatValue(row[col])
	}
	return strings.Join(values, "\x00"), values
}

// sortGroups orders groups by their values, numerically where both sides
// are numbers.
func sortGroups(groups []*group) {
	sort.SliceStable(groups, func(i, j int) bool {
		a, b := groups[i].values, groups[j].values
		for k := range a {
			if a[k] == b[k] {
				continue
			}
			an, aok := table.ParseNumber(a[k])
			bn, bok := table.ParseNumber(b[k])
			if aok && bok && an != bn {
				return an < bn
			}
			return a[k] < b[k]
		}
		return false
	})
}

// evaluate computes one aggregate over a group's rows. Cells that are not
// numbers are skipped by sum, avg, min and max.
func evaluate(agg Aggregate, rows []table.Record) interface{} {
	switch agg.Func {
	case Count:
		return countRows(agg.Column, rows)
	case Sum:
		sum, _ := sumColumn(agg.Column, rows)
		return sum
	case Avg:
		sum, n := sumColumn(agg.Column, rows)
		if n == 0 {
			return nil
		}
		return sum / float64(n)
	case Min:
		return extreme(agg.Column, rows, func(candidate, current float64) bool { return candidate < current })
	case Max:
		return extreme(agg.Column, rows, func(candidate, current float64) bool { return candidate > current })
	default:
		return nil
	}
}

// countRows counts all rows, or the rows with a non-empty cell in column.
func countRows(column string, rows []table.Record) int64 {
	if column == "" {
		return int64(len(rows))
	}
	var n int64
	for _, row := range rows {
		if strings.TrimSpace(table.FormatValue(row[column])) != "" {
			n++
		}
	}
	return n
}

func sumColumn(column string, rows []table.Record) (float64, int) {
	sum := 0.0
	n := 0
	for _, row := range rows {
		if num, ok := table.ToFloat64(row[column]); ok {
			sum += num
			n++
		}
	}
	return sum, n
}

func extreme(column string, rows []table.Record, better func(candidate, current float64) bool) interface{} {
	var best *float64
	for _, row := range rows {
		num, ok := table.ToFloat64(row[column])
		if !ok {
			continue
		}
		if best == nil || better(num, *best) {
			v := num
			best = &v
		}
	}
	if best == nil {
		return nil
	}
	return *best
}
