package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vegasq/stockcat/config"
	"github.com/vegasq/stockcat/output"
	"github.com/vegasq/stockcat/query"
	"github.com/vegasq/stockcat/reader"
	"github.com/vegasq/stockcat/report"
)

type result struct {
	code   int
	stdout string
	stderr string
}

// runCLI executes the command line in an isolated working directory with no
// config file in reach.
func runCLI(t *testing.T, args ...string) result {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(config.EnvVar, "")
	t.Setenv("STOCKCAT_DELIMITER", "")
	t.Setenv("STOCKCAT_LOG_LEVEL", "")
	t.Chdir(dir)
	return dir
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// stores writes two inventory files sharing a header.
func stores(t *testing.T, dir string) (string, string) {
	t.Helper()
	a := writeFile(t, dir, "a.csv", "product,category,quantity,unit_price\nHammer,tools,10,12.5\nBall,toys,4,3\n")
	b := writeFile(t, dir, "b.csv", "product,category,quantity,unit_price\nWrench,tools,5,7.5\nDoll,toys,6,9\n")
	return a, b
}

func TestConsolidate_WritesMergedFile(t *testing.T) {
	dir := isolate(t)
	a, b := stores(t, dir)
	out := filepath.Join(dir, "merged.csv")

	res := runCLI(t, "consolidate", a, b, "-o", out)
	require.Equal(t, ExitOK, res.code, res.stderr)
	assert.Contains(t, res.stderr, "Wrote 4 rows to "+out)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t,
		"product,category,quantity,unit_price\nHammer,tools,10,12.5\nBall,toys,4,3\nWrench,tools,5,7.5\nDoll,toys,6,9\n",
		string(data))
}

func TestConsolidate_StdoutAndDirectory(t *testing.T) {
	dir := isolate(t)
	stores(t, dir)

	res := runCLI(t, "consolidate", dir, "--tag-source")
	require.Equal(t, ExitOK, res.code, res.stderr)

	lines := strings.Split(strings.TrimSpace(res.stdout), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "product,category,quantity,unit_price,_file", lines[0])
	assert.True(t, strings.HasSuffix(lines[1], "a.csv"))
	assert.True(t, strings.HasSuffix(lines[4], "b.csv"))
}

func TestConsolidate_SchemaMismatch(t *testing.T) {
	dir := isolate(t)
	a, _ := stores(t, dir)
	bad := writeFile(t, dir, "bad.csv", "product,category,qty\nSaw,tools,1\n")
	out := filepath.Join(dir, "merged.csv")

	res := runCLI(t, "consolidate", a, bad, "-o", out)
	assert.Equal(t, ExitUsage, res.code)
	assert.Contains(t, res.stderr, "schema mismatch")
	assert.Contains(t, res.stderr, "bad.csv")
	assert.NoFileExists(t, out)
}

func TestConsolidate_ExactSchemaMode(t *testing.T) {
	dir := isolate(t)
	a, _ := stores(t, dir)
	shuffled := writeFile(t, dir, "c.csv", "category,product,quantity,unit_price\ntools,Saw,1,20\n")

	res := runCLI(t, "consolidate", a, shuffled)
	require.Equal(t, ExitOK, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Saw,tools,1,20")

	res = runCLI(t, "--schema-mode", "exact", "consolidate", a, shuffled)
	assert.Equal(t, ExitUsage, res.code)
}

func TestConsolidate_IOErrors(t *testing.T) {
	dir := isolate(t)
	a, _ := stores(t, dir)

	res := runCLI(t, "consolidate", filepath.Join(dir, "missing.csv"))
	assert.Equal(t, ExitIO, res.code)
	assert.Contains(t, res.stderr, "missing.csv")

	res = runCLI(t, "consolidate", a, "-o", filepath.Join(dir, "no", "such", "dir.csv"))
	assert.Equal(t, ExitIO, res.code)
}

func TestSearch(t *testing.T) {
	dir := isolate(t)
	stores(t, dir)

	res := runCLI(t, "search", dir, "--filter", "category=tools", "--format", "csv")
	require.Equal(t, ExitOK, res.code, res.stderr)
	assert.Equal(t, "product,category,quantity,unit_price\nHammer,tools,10,12.5\nWrench,tools,5,7.5\n", res.stdout)

	res = runCLI(t, "search", dir, "-f", "product~ham")
	require.Equal(t, ExitOK, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Hammer")
	assert.NotContains(t, res.stdout, "Ball")
	assert.Contains(t, res.stdout, "(1 row)")

	res = runCLI(t, "search", dir, "-f", "quantity>=5", "-f", "unit_price<10", "--format", "csv")
	require.Equal(t, ExitOK, res.code, res.stderr)
	assert.Equal(t, "product,category,quantity,unit_price\nWrench,tools,5,7.5\nDoll,toys,6,9\n", res.stdout)
}

func TestSearch_NoMatches(t *testing.T) {
	dir := isolate(t)
	stores(t, dir)

	res := runCLI(t, "search", dir, "--filter", "product=Anvil")
	require.Equal(t, ExitOK, res.code, res.stderr)
	assert.Equal(t, "No matching results.\n", res.stdout)
}

func TestSearch_UnknownColumn(t *testing.T) {
	dir := isolate(t)
	stores(t, dir)

	res := runCLI(t, "search", dir, "--filter", "colour=red")
	assert.Equal(t, ExitUsage, res.code)
	assert.Contains(t, res.stderr, `column "colour" not found`)
	assert.Contains(t, res.stderr, "product, category, quantity, unit_price")
}

func TestSearch_Usage(t *testing.T) {
	dir := isolate(t)
	stores(t, dir)

	assert.Equal(t, ExitUsage, runCLI(t, "search", dir).code)
	assert.Equal(t, ExitUsage, runCLI(t, "search", dir, "-f", "product").code)
	assert.Equal(t, ExitUsage, runCLI(t, "search", dir, "-f", "product=x", "--limit", "-1").code)
}

func TestReport_DefaultSummary(t *testing.T) {
	dir := isolate(t)
	stores(t, dir)

	res := runCLI(t, "report", dir)
	require.Equal(t, ExitOK, res.code, res.stderr)

	data, err := os.ReadFile(filepath.Join(dir, "summary_report.csv"))
	require.NoError(t, err)
	assert.Equal(t, "category,Total Quantity,Average Price\ntools,15,10\ntoys,10,6\n", string(data))
}

func TestReport_Flags(t *testing.T) {
	dir := isolate(t)
	stores(t, dir)

	res := runCLI(t, "report", dir, "--groupby", "category", "--agg", "count", "--agg", "max:unit_price:Top Price",
		"--filter", "quantity>4", "-o", "-", "--format", "csv", "--sort")
	require.Equal(t, ExitOK, res.code, res.stderr)
	assert.Equal(t, "category,count,Top Price\ntools,2,12.5\ntoys,1,9\n", res.stdout)
}

func TestReport_XLSXAndParquet(t *testing.T) {
	dir := isolate(t)
	stores(t, dir)

	for _, name := range []string{"summary.xlsx", "summary.parquet"} {
		t.Run(name, func(t *testing.T) {
			out := filepath.Join(dir, name)
			res := runCLI(t, "report", dir, "-o", out)
			require.Equal(t, ExitOK, res.code, res.stderr)
			assert.FileExists(t, out)
		})
	}

	got, err := reader.ReadParquet(filepath.Join(dir, "summary.parquet"))
	require.NoError(t, err)
	assert.Equal(t, 2, got.Len())
}

func TestReport_Errors(t *testing.T) {
	dir := isolate(t)
	stores(t, dir)
	out := filepath.Join(dir, "r.csv")

	res := runCLI(t, "report", dir, "--groupby", "region", "-o", out)
	assert.Equal(t, ExitUsage, res.code)
	assert.NoFileExists(t, out)

	res = runCLI(t, "report", dir, "--agg", "median:quantity", "-o", out)
	assert.Equal(t, ExitUsage, res.code)

	res = runCLI(t, "report", dir, "--agg", "count", "-o", out, "--format", "pdf")
	assert.Equal(t, ExitUsage, res.code)
	assert.NoFileExists(t, out)

	res = runCLI(t, "report", dir, "-o", out, "--format", "table")
	assert.Equal(t, ExitUsage, res.code)
	assert.Contains(t, res.stderr, "terminals only")
	assert.NoFileExists(t, out)
}

func TestReport_IgnoreCase(t *testing.T) {
	dir := isolate(t)
	stores(t, dir)

	args := []string{"report", dir, "--groupby", "category", "--filter", "category=TOOLS", "-o", "-", "--format", "csv"}

	res := runCLI(t, args...)
	require.Equal(t, ExitOK, res.code, res.stderr)
	assert.Equal(t, "category,count\n", res.stdout)

	res = runCLI(t, append(args, "-i")...)
	require.Equal(t, ExitOK, res.code, res.stderr)
	assert.Equal(t, "category,count\ntools,2\n", res.stdout)
}

func TestConsolidate_TagSourceClash(t *testing.T) {
	dir := isolate(t)
	a := writeFile(t, dir, "a.csv", "product,_file\nHammer,old.csv\n")

	res := runCLI(t, "consolidate", a, "--tag-source")
	assert.Equal(t, ExitUsage, res.code)
	assert.Contains(t, res.stderr, "duplicate column")
	assert.Empty(t, res.stdout)
}

func TestShow(t *testing.T) {
	dir := isolate(t)
	stores(t, dir)

	res := runCLI(t, "show", dir, "-n", "2", "--format", "csv")
	require.Equal(t, ExitOK, res.code, res.stderr)
	assert.Equal(t, "product,category,quantity,unit_price\nHammer,tools,10,12.5\nBall,toys,4,3\n", res.stdout)

	res = runCLI(t, "show", dir)
	require.Equal(t, ExitOK, res.code, res.stderr)
	assert.Contains(t, res.stdout, "(4 rows)")

	assert.Equal(t, ExitUsage, runCLI(t, "show", dir, "-n", "-3").code)
}

func TestSchema(t *testing.T) {
	dir := isolate(t)
	stores(t, dir)

	res := runCLI(t, "schema", dir, "--format", "csv")
	require.Equal(t, ExitOK, res.code, res.stderr)
	assert.Contains(t, res.stdout, "name,type,non_empty,distinct,example")
	assert.Contains(t, res.stdout, "quantity,number,4,4,10")
	assert.Contains(t, res.stdout, "product,text,4,4,Hammer")
}

func TestConfigFile(t *testing.T) {
	dir := isolate(t)
	writeFile(t, dir, "a.csv", "product;category;quantity;unit_price\nHammer;tools;10;12.5\n")
	cfgPath := writeFile(t, dir, "custom.yaml", "delimiter: \";\"\nreport:\n  group_by: [product]\n  aggregates: [count]\n")

	res := runCLI(t, "--config", cfgPath, "report", filepath.Join(dir, "a.csv"), "-o", "-", "--format", "csv")
	require.Equal(t, ExitOK, res.code, res.stderr)
	assert.Equal(t, "product;count\nHammer;1\n", res.stdout)

	res = runCLI(t, "--config", cfgPath, "config")
	require.Equal(t, ExitOK, res.code, res.stderr)
	assert.Contains(t, res.stdout, "group_by:")
	assert.Contains(t, res.stdout, "- product")

	res = runCLI(t, "--config", filepath.Join(dir, "nope.yaml"), "show", dir)
	assert.Equal(t, ExitIO, res.code)

	res = runCLI(t, "--delimiter", "ab", "show", dir)
	assert.Equal(t, ExitUsage, res.code)
}

func TestVersion(t *testing.T) {
	isolate(t)
	res := runCLI(t, "version")
	require.Equal(t, ExitOK, res.code)
	assert.Equal(t, "stockcat version dev (commit: none)\n", res.stdout)
}

func TestUnknownCommand(t *testing.T) {
	isolate(t)
	res := runCLI(t, "explode")
	assert.Equal(t, ExitUsage, res.code)
	assert.Contains(t, res.stderr, "Error:")
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"schema mismatch", &reader.SchemaMismatchError{File: "x.csv"}, ExitUsage},
		{"unknown column", fmt.Errorf("wrapped: %w", &query.UnknownColumnError{Column: "c"}), ExitUsage},
		{"invalid filter", query.ErrInvalidFilter, ExitUsage},
		{"invalid aggregate", report.ErrInvalidAggregate, ExitUsage},
		{"file not found", fmt.Errorf("%w: a.csv", reader.ErrFileNotFound), ExitIO},
		{"read error", reader.ErrRead, ExitIO},
		{"write error", &output.WriteError{Path: "o.csv", Err: errors.New("disk full")}, ExitIO},
		{"no inputs", reader.ErrNoInputFiles, ExitIO},
		{"duplicate column", reader.ErrDuplicateColumn, ExitUsage},
		{"unknown format", fmt.Errorf("%w: table", output.ErrUnknownFormat), ExitUsage},
		{"other", errors.New("boom"), ExitUsage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}
