package cli

import (
	"strings"

	"github.com/spf13/pflag"

	"github.com/vegasq/stockcat/report"
)

// aggregateFlag is a repeatable --agg flag parsed as it is set, so a bad
// expression is reported before any input is read.
type aggregateFlag struct {
	aggs []report.Aggregate
}

var _ pflag.Value = (*aggregateFlag)(nil)

func (f *aggregateFlag) String() string {
	parts := make([]string, len(f.aggs))
	for i, a := range f.aggs {
		parts[i] = a.String()
	}
	return strings.Join(parts, ",")
}

func (f *aggregateFlag) Set(s string) error {
	agg, err := report.ParseAggregate(s)
	if err != nil {
		return err
	}
	f.aggs = append(f.aggs, agg)
	return nil
}

func (f *aggregateFlag) Type() string {
	return "fn[:col[:label]]"
}
