package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAggregate(t *testing.T) {
	tests := []struct {
		expr string
		want Aggregate
		name string
	}{
		{"count", Aggregate{Func: Count}, "count"},
		{"COUNT:sku", Aggregate{Func: Count, Column: "sku"}, "count_sku"},
		{"sum:quantity", Aggregate{Func: Sum, Column: "quantity"}, "sum_quantity"},
		{"average:unit_price:Average Price", Aggregate{Func: Avg, Column: "unit_price", As: "Average Price"}, "Average Price"},
		{"mean:unit_price", Aggregate{Func: Avg, Column: "unit_price"}, "avg_unit_price"},
		{"min:unit_price", Aggregate{Func: Min, Column: "unit_price"}, "min_unit_price"},
		{"max: quantity ", Aggregate{Func: Max, Column: "quantity"}, "max_quantity"},
		{"count::Rows", Aggregate{Func: Count, As: "Rows"}, "Rows"},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := ParseAggregate(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.name, got.Name())
		})
	}
}

func TestParseAggregate_Errors(t *testing.T) {
	for _, expr := range []string{"", "median:quantity", "sum", "avg:", "max::Label"} {
		t.Run(expr, func(t *testing.T) {
			_, err := ParseAggregate(expr)
			assert.ErrorIs(t, err, ErrInvalidAggregate)
		})
	}
}

func TestAggregate_StringRoundTrip(t *testing.T) {
	for _, expr := range []string{"count", "sum:quantity", "avg:unit_price:Average Price", "count::Rows"} {
		agg, err := ParseAggregate(expr)
		require.NoError(t, err)
		assert.Equal(t, expr, agg.String())
	}
}

func TestParseAggregates(t *testing.T) {
	aggs, err := ParseAggregates([]string{"count", "sum:quantity"})
	require.NoError(t, err)
	assert.Len(t, aggs, 2)

	_, err = ParseAggregates([]string{"count", "bogus:x"})
	assert.ErrorIs(t, err, ErrInvalidAggregate)
}

func TestSpec_Columns(t *testing.T) {
	spec := Spec{
		GroupBy:    []string{"category", "warehouse"},
		Aggregates: []Aggregate{{Func: Count}, {Func: Sum, Column: "quantity", As: "Total Quantity"}},
	}
	assert.Equal(t, []string{"category", "warehouse", "count", "Total Quantity"}, spec.Columns())
}
