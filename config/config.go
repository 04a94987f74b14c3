// Package config loads stockcat settings from YAML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/vegasq/stockcat/internal/logging"
	"github.com/vegasq/stockcat/output"
	"github.com/vegasq/stockcat/reader"
	"github.com/vegasq/stockcat/report"
)

const (
	// EnvVar names the environment variable holding a config file path.
	EnvVar = "STOCKCAT_CONFIG"
	// DefaultFile is read from the working directory when present.
	DefaultFile = "stockcat.yaml"
)

// ErrInvalidConfig is returned for a config file that cannot be used.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the contents of stockcat.yaml.
type Config struct {
	Delimiter   string       `yaml:"delimiter,omitempty"`
	LogLevel    string       `yaml:"log_level,omitempty"`
	DateLayouts []string     `yaml:"date_layouts,omitempty"`
	Schema      SchemaConfig `yaml:"schema"`
	Search      SearchConfig `yaml:"search"`
	Report      ReportConfig `yaml:"report"`
	Output      OutputConfig `yaml:"output"`
}

// SchemaConfig controls header validation.
type SchemaConfig struct {
	Mode    string   `yaml:"mode,omitempty"`
	Columns []string `yaml:"columns,omitempty"`
}

// SearchConfig holds search defaults.
type SearchConfig struct {
	IgnoreCase bool `yaml:"ignore_case"`
}

// ReportConfig holds the default report.
type ReportConfig struct {
	GroupBy    []string `yaml:"group_by,omitempty"`
	Aggregates []string `yaml:"aggregates,omitempty"`
	Output     string   `yaml:"output,omitempty"`
	Format     string   `yaml:"format,omitempty"`
	Sort       bool     `yaml:"sort"`
}

// OutputConfig holds export settings.
type OutputConfig struct {
	SanitizeFormulas bool `yaml:"sanitize_formulas"`
}

// Default returns the built-in settings: comma-delimited input, unordered
// schema matching and the category summary report.
func Default() *Config {
	return &Config{
		Delimiter: ",",
		LogLevel:  "warn",
		Schema:    SchemaConfig{Mode: string(reader.SchemaUnordered)},
		Report: ReportConfig{
			GroupBy:    []string{"category"},
			Aggregates: []string{"sum:quantity:Total Quantity", "avg:unit_price:Average Price"},
			Output:     "summary_report.csv",
		},
	}
}

// Parse decodes YAML over the defaults. Unknown keys are rejected.
func Parse(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads and validates the config file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Resolve finds and loads the config file. The flag path wins, then
// $STOCKCAT_CONFIG, then ./stockcat.yaml if it exists; otherwise the
// defaults are used. It returns the path that was loaded, or "".
func Resolve(flagPath string) (*Config, string, error) {
	path := flagPath
	if path == "" {
		path = os.Getenv(EnvVar)
	}
	if path == "" {
		if _, err := os.Stat(DefaultFile); err != nil {
			return Default(), "", nil
		}
		path = DefaultFile
	}

	cfg, err := Load(path)
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

// Validate checks every setting that has a fixed vocabulary.
func (c *Config) Validate() error {
	if _, err := c.DelimiterRune(); err != nil {
		return err
	}
	if _, err := c.ZapLevel(); err != nil {
		return err
	}
	if _, err := reader.ParseSchemaMode(c.Schema.Mode); err != nil {
		return fmt.Errorf("%w: schema.mode: %w", ErrInvalidConfig, err)
	}
	if c.Report.Format != "" {
		if _, err := output.ParseFormat(c.Report.Format); err != nil {
			return fmt.Errorf("%w: report.format: %w", ErrInvalidConfig, err)
		}
	}
	if _, err := report.ParseAggregates(c.Report.Aggregates); err != nil {
		return fmt.Errorf("%w: report.aggregates: %w", ErrInvalidConfig, err)
	}
	return nil
}

// DelimiterRune returns the configured single-character delimiter.
func (c *Config) DelimiterRune() (rune, error) {
	return ParseDelimiter(c.Delimiter)
}

// ParseDelimiter accepts a single character, or "\t" / "tab" for tabs.
// Empty means comma.
func ParseDelimiter(s string) (rune, error) {
	switch s {
	case "":
		return ',', nil
	case `\t`, "tab":
		return '\t', nil
	}
	r, size := utf8.DecodeRuneInString(s)
	if size != len(s) || r == utf8.RuneError || r == '"' || r == '\n' || r == '\r' {
		return 0, fmt.Errorf("%w: delimiter %q must be one character other than a quote or newline", ErrInvalidConfig, s)
	}
	return r, nil
}

// ZapLevel parses log_level.
func (c *Config) ZapLevel() (zapcore.Level, error) {
	if c.LogLevel == "" {
		return zapcore.WarnLevel, nil
	}
	lvl, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return lvl, fmt.Errorf("%w: log_level: %w", ErrInvalidConfig, err)
	}
	return lvl, nil
}

// SchemaMode returns the validated schema mode.
func (c *Config) SchemaMode() reader.SchemaMode {
	mode, err := reader.ParseSchemaMode(c.Schema.Mode)
	if err != nil {
		return reader.SchemaUnordered
	}
	return mode
}

// ReportSpec builds the configured default report.
func (c *Config) ReportSpec() (report.Spec, error) {
	aggs, err := report.ParseAggregates(c.Report.Aggregates)
	if err != nil {
		return report.Spec{}, err
	}
	return report.Spec{
		GroupBy:    append([]string(nil), c.Report.GroupBy...),
		Aggregates: aggs,
		Sort:       c.Report.Sort,
	}, nil
}

// Marshal renders the config as YAML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return data, nil
}
