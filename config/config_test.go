package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/vegasq/stockcat/reader"
	"github.com/vegasq/stockcat/report"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "stockcat.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	spec, err := cfg.ReportSpec()
	require.NoError(t, err)
	assert.Equal(t, []string{"category"}, spec.GroupBy)
	assert.Equal(t, []string{"category", "Total Quantity", "Average Price"}, spec.Columns())
	assert.Equal(t, report.Sum, spec.Aggregates[0].Func)
	assert.Equal(t, "summary_report.csv", cfg.Report.Output)
	assert.Equal(t, reader.SchemaUnordered, cfg.SchemaMode())

	r, err := cfg.DelimiterRune()
	require.NoError(t, err)
	assert.Equal(t, ',', r)
}

func TestParse_OverridesDefaults(t *testing.T) {
	cfg, err := Parse(strings.NewReader(`
delimiter: ";"
log_level: debug
schema:
  mode: exact
  columns: [sku, product, quantity]
search:
  ignore_case: true
report:
  group_by: [warehouse]
  aggregates: ["count::Lines", "max:quantity"]
  format: xlsx
output:
  sanitize_formulas: true
`))
	require.NoError(t, err)

	r, err := cfg.DelimiterRune()
	require.NoError(t, err)
	assert.Equal(t, ';', r)

	lvl, err := cfg.ZapLevel()
	require.NoError(t, err)
	assert.Equal(t, zapcore.DebugLevel, lvl)

	assert.Equal(t, reader.SchemaExact, cfg.SchemaMode())
	assert.Equal(t, []string{"sku", "product", "quantity"}, cfg.Schema.Columns)
	assert.True(t, cfg.Search.IgnoreCase)
	assert.True(t, cfg.Output.SanitizeFormulas)
	assert.Equal(t, "summary_report.csv", cfg.Report.Output, "unset keys keep their defaults")

	spec, err := cfg.ReportSpec()
	require.NoError(t, err)
	assert.Equal(t, []string{"warehouse", "Lines", "max_quantity"}, spec.Columns())
}

func TestParse_Empty(t *testing.T) {
	cfg, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown key", "colour: blue\n"},
		{"bad mode", "schema:\n  mode: fuzzy\n"},
		{"bad delimiter", "delimiter: ab\n"},
		{"quote delimiter", "delimiter: '\"'\n"},
		{"bad level", "log_level: loud\n"},
		{"bad format", "report:\n  format: pdf\n"},
		{"bad aggregate", "report:\n  aggregates: [\"median:quantity\"]\n"},
		{"not yaml", "report: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.yaml))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestParseDelimiter(t *testing.T) {
	for in, want := range map[string]rune{"": ',', ",": ',', ";": ';', "|": '|', `\t`: '\t', "tab": '\t'} {
		got, err := ParseDelimiter(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	flagPath := writeConfig(t, dir, "delimiter: \"|\"\n")

	envDir := t.TempDir()
	envPath := filepath.Join(envDir, "env.yaml")
	require.NoError(t, os.WriteFile(envPath, []byte("delimiter: \";\"\n"), 0o644))
	t.Setenv(EnvVar, envPath)

	cfg, path, err := Resolve(flagPath)
	require.NoError(t, err)
	assert.Equal(t, flagPath, path)
	assert.Equal(t, "|", cfg.Delimiter)

	cfg, path, err = Resolve("")
	require.NoError(t, err)
	assert.Equal(t, envPath, path)
	assert.Equal(t, ";", cfg.Delimiter)
}

func TestResolve_WorkingDirectoryAndDefaults(t *testing.T) {
	t.Setenv(EnvVar, "")
	dir := t.TempDir()
	t.Chdir(dir)

	cfg, path, err := Resolve("")
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, Default(), cfg)

	writeConfig(t, dir, "log_level: info\n")
	cfg, path, err = Resolve("")
	require.NoError(t, err)
	assert.Equal(t, DefaultFile, path)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestResolve_MissingFile(t *testing.T) {
	_, _, err := Resolve(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestMarshal(t *testing.T) {
	data, err := Default().Marshal()
	require.NoError(t, err)

	cfg, err := Parse(strings.NewReader(string(data)))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}
