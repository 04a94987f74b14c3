package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/vegasq/stockcat/output"
	"github.com/vegasq/stockcat/query"
	"github.com/vegasq/stockcat/reader"
	"github.com/vegasq/stockcat/table"
)

// stdoutPath as an output path means standard output.
const stdoutPath = "-"

// load expands the inputs and consolidates them under the configured
// schema rules.
func (a *app) load(ctx context.Context, args []string, tagSource bool) (*table.Table, []string, error) {
	paths, err := reader.ExpandInputs(args)
	if err != nil {
		return nil, nil, err
	}

	delim, err := a.cfg.DelimiterRune()
	if err != nil {
		return nil, nil, err
	}

	start := time.Now()
	t, _, err := reader.Consolidate(ctx, paths, reader.Options{
		Schema:    a.cfg.Schema.Columns,
		Mode:      a.cfg.SchemaMode(),
		Delimiter: delim,
		TagSource: tagSource,
		Logger:    a.logger,
	})
	if err != nil {
		return nil, nil, err
	}

	a.logger.Debug("inputs loaded",
		zap.Int("files", len(paths)),
		zap.Int("rows", t.Len()),
		zap.Duration("elapsed", time.Since(start)))
	return t, paths, nil
}

// filter parses the filter expressions and applies them to t.
func (a *app) filter(t *table.Table, exprs []string, ignoreCase bool) (*table.Table, error) {
	if len(exprs) == 0 {
		return t, nil
	}
	filters, err := query.ParseFilters(exprs)
	if err != nil {
		return nil, err
	}
	matched, err := query.Apply(t, filters, query.Options{
		IgnoreCase:  ignoreCase || a.cfg.Search.IgnoreCase,
		DateLayouts: a.cfg.DateLayouts,
	})
	if err != nil {
		return nil, err
	}
	a.logger.Debug("filters applied", zap.Strings("filters", exprs), zap.Int("matched", matched.Len()))
	return matched, nil
}

// emitOptions describes where and how a command writes its table.
type emitOptions struct {
	path          string
	format        string
	defaultFormat output.Format
	notes         []table.Note
}

// emit writes t to a file, or to stdout when no path (or "-") is given.
func (a *app) emit(stdout io.Writer, t *table.Table, opts emitOptions) error {
	delim, err := a.cfg.DelimiterRune()
	if err != nil {
		return err
	}
	wo := output.WriteOptions{
		Delimiter: delim,
		Sanitize:  a.cfg.Output.SanitizeFormulas,
		Notes:     opts.notes,
		Logger:    a.logger,
	}
	if opts.format != "" {
		f, err := output.ParseFormat(opts.format)
		if err != nil {
			return fmt.Errorf("invalid --format: %w", err)
		}
		wo.Format = f
	}

	if opts.path == "" || opts.path == stdoutPath {
		if wo.Format == "" {
			wo.Format = opts.defaultFormat
		}
		return output.Write(stdout, t, wo)
	}

	if err := output.WriteFile(opts.path, t, wo); err != nil {
		return err
	}
	a.stderr.Success("Wrote %d rows to %s", t.Len(), opts.path)
	return nil
}
