package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vegasq/stockcat/query"
	"github.com/vegasq/stockcat/table"
)

// Metadata describes how a report was produced. Exporters that can carry
// it store it next to the data.
type Metadata struct {
	ID          uuid.UUID
	GeneratedAt time.Time
	Sources     []string
	Filters     []string
	GroupBy     []string
	Aggregates  []string
	RowCount    int
}

// NewMetadata stamps a fresh report ID and generation time.
func NewMetadata(sources []string) Metadata {
	return Metadata{
		ID:          uuid.New(),
		GeneratedAt: time.Now().UTC(),
		Sources:     append([]string(nil), sources...),
	}
}

// Notes flattens the metadata into ordered key/value pairs.
func (m Metadata) Notes() []table.Note {
	return []table.Note{
		{Key: "report_id", Value: m.ID.String()},
		{Key: "generated_at", Value: m.GeneratedAt.Format(time.RFC3339)},
		{Key: "sources", Value: strings.Join(m.Sources, ", ")},
		{Key: "filters", Value: strings.Join(m.Filters, " AND ")},
		{Key: "group_by", Value: strings.Join(m.GroupBy, ", ")},
		{Key: "aggregates", Value: strings.Join(m.Aggregates, ", ")},
		{Key: "input_rows", Value: strconv.Itoa(m.RowCount)},
	}
}

// Report is an aggregated table and the metadata describing it.
type Report struct {
	Table    *table.Table
	Metadata Metadata
}

// Build groups t by spec.GroupBy and computes spec.Aggregates for each group.
//
// Every group-by and aggregate column must exist in t; otherwise Build fails
// with a *query.UnknownColumnError. An empty t with group-by columns yields an
// empty report; without group-by columns it yields one row over no input.
func Build(t *table.Table, spec Spec, meta Metadata) (*Report, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	if err := query.RequireColumns(t, spec.GroupBy...); err != nil {
		return nil, fmt.Errorf("failed to group report: %w", err)
	}
	for _, agg := range spec.Aggregates {
		if agg.Column == "" {
			continue
		}
		if err := query.RequireColumns(t, agg.Column); err != nil {
			return nil, fmt.Errorf("failed to aggregate %s: %w", agg.Name(), err)
		}
	}

	groups := groupRows(t.Rows, spec.GroupBy)
	if spec.Sort {
		sortGroups(groups)
	}

	result := table.New(spec.Columns())
	for _, g := range groups {
		row := make(table.Record, len(result.Columns))
		for _, col := range spec.GroupBy {
			row[col] = g.rows[0][col]
		}
		for _, agg := range spec.Aggregates {
			row[agg.Name()] = evaluate(agg, g.rows)
		}
		if err := result.Append(row); err != nil {
			return nil, fmt.Errorf("failed to build report row: %w", err)
		}
	}

	meta.GroupBy = append([]string(nil), spec.GroupBy...)
	meta.Aggregates = make([]string, len(spec.Aggregates))
	for i, agg := range spec.Aggregates {
		meta.Aggregates[i] = agg.String()
	}
	meta.RowCount = t.Len()

	return &Report{Table: result, Metadata: meta}, nil
}
