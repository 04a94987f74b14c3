package reader

import (
	"github.com/vegasq/stockcat/table"
)

// ColumnInfo describes one column of a loaded table.
type ColumnInfo struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	NonEmpty int    `json:"non_empty"`
	Distinct int    `json:"distinct"`
	Example  string `json:"example"`
}

// Describe infers per-column metadata from the values of a table.
//
// A column is reported as "number" or "date" only when every non-empty value
// parses as that kind; columns mixing kinds are "text", and columns with no
// values at all are "empty". The example is the first non-empty value.
func Describe(t *table.Table, dateLayouts []string) []ColumnInfo {
	infos := make([]ColumnInfo, 0, len(t.Columns))

	for _, col := range t.Columns {
		info := ColumnInfo{Name: col}
		kind := table.KindEmpty
		distinct := make(map[string]struct{})

		for _, row := range t.Rows {
			value := table.FormatValue(row[col])
			k := table.InferKind(value, dateLayouts)
			if k == table.KindEmpty {
				continue
			}

			info.NonEmpty++
			distinct[value] = struct{}{}
			if info.Example == "" {
				info.Example = value
			}
			kind = mergeKind(kind, k)
		}

		info.Type = kind.String()
		info.Distinct = len(distinct)
		infos = append(infos, info)
	}

	return infos
}

// mergeKind widens the running kind of a column with one more value.
func mergeKind(current, next table.Kind) table.Kind {
	switch {
	case current == table.KindEmpty:
		return next
	case current == next:
		return current
	default:
		return table.KindText
	}
}

// DescribeTable renders Describe output as a table for the formatters.
func DescribeTable(infos []ColumnInfo) *table.Table {
	t := table.New([]string{"name", "type", "non_empty", "distinct", "example"})
	for _, info := range infos {
		t.Rows = append(t.Rows, table.Record{
			"name":      info.Name,
			"type":      info.Type,
			"non_empty": int64(info.NonEmpty),
			"distinct":  int64(info.Distinct),
			"example":   info.Example,
		})
	}
	return t
}
