// Package cli implements the stockcat command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vegasq/stockcat/config"
	"github.com/vegasq/stockcat/internal/logging"
	"github.com/vegasq/stockcat/output"
	"github.com/vegasq/stockcat/query"
	"github.com/vegasq/stockcat/reader"
	"github.com/vegasq/stockcat/report"
)

var (
	version = "dev"
	commit  = "none"
)

// Exit codes.
const (
	ExitOK = 0
	// ExitUsage covers schema mismatches, unknown columns and invalid
	// arguments.
	ExitUsage = 1
	// ExitIO covers missing inputs and failed reads or writes.
	ExitIO = 2
)

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return run(ctx, os.Args[1:], os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := &app{}
	rootCmd := newRootCmd(a)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.ExecuteContext(ctx)
	if a.logger != nil {
		_ = a.logger.Sync()
	}
	if err != nil {
		errOut := a.stderr
		if errOut == nil {
			errOut = newConsole(stderr, false)
		}
		errOut.Error(err)
		return ExitCode(err)
	}
	return ExitOK
}

// ExitCode maps an error to the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, reader.ErrSchemaMismatch),
		errors.Is(err, query.ErrUnknownColumn),
		errors.Is(err, query.ErrInvalidFilter),
		errors.Is(err, report.ErrInvalidAggregate),
		errors.Is(err, output.ErrUnknownFormat),
		errors.Is(err, config.ErrInvalidConfig):
		return ExitUsage
	case errors.Is(err, reader.ErrFileNotFound),
		errors.Is(err, reader.ErrNoInputFiles),
		errors.Is(err, reader.ErrRead),
		errors.Is(err, output.ErrWrite),
		errors.Is(err, fs.ErrNotExist),
		errors.Is(err, fs.ErrPermission):
		return ExitIO
	default:
		return ExitUsage
	}
}

// app holds the settings resolved once per invocation and shared by every
// subcommand.
type app struct {
	configPath string
	logLevel   string
	verbose    bool
	noColor    bool
	delimiter  string
	schemaMode string

	cfg    *config.Config
	logger *zap.Logger
	stdout *console
	stderr *console
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "stockcat",
		Short: "Consolidate, search and summarise CSV stock inventories",
		Long: `stockcat merges inventory files that share a header into one table,
looks up rows by column value, and exports summary reports.

Inputs may be CSV or parquet files, directories, or glob patterns.`,
		Example: `  stockcat consolidate stores/*.csv -o inventory.csv
  stockcat search stores/ --filter product~widget --filter quantity<5
  stockcat report stores/ --groupby category --agg sum:quantity -o summary.xlsx
  stockcat show stores/ -n 10`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default $"+config.EnvVar+" or ./"+config.DefaultFile+")")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	flags.BoolVar(&a.noColor, "no-color", false, "disable coloured status output")
	flags.StringVar(&a.delimiter, "delimiter", "", `CSV field delimiter (single character, or "tab")`)
	flags.StringVar(&a.schemaMode, "schema-mode", "", "header matching: exact or unordered")

	rootCmd.AddCommand(newConsolidateCmd(a))
	rootCmd.AddCommand(newSearchCmd(a))
	rootCmd.AddCommand(newReportCmd(a))
	rootCmd.AddCommand(newShowCmd(a))
	rootCmd.AddCommand(newSchemaCmd(a))
	rootCmd.AddCommand(newConfigCmd(a))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// setup resolves configuration with precedence flag > env > file > default
// and builds the logger and consoles.
func (a *app) setup(cmd *cobra.Command) error {
	color := !a.noColor && os.Getenv("NO_COLOR") == ""
	a.stdout = newConsole(cmd.OutOrStdout(), color)
	a.stderr = newConsole(cmd.ErrOrStderr(), color)

	cfg, path, err := config.Resolve(a.configPath)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("delimiter") {
		cfg.Delimiter = a.delimiter
	} else if v := os.Getenv("STOCKCAT_DELIMITER"); v != "" {
		cfg.Delimiter = v
	}
	if cmd.Flags().Changed("schema-mode") {
		cfg.Schema.Mode = a.schemaMode
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = a.logLevel
	} else if v := os.Getenv("STOCKCAT_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := cfg.ZapLevel()
	if err != nil {
		return err
	}
	if a.verbose {
		level = zap.DebugLevel
	}

	a.cfg = cfg
	a.logger = logging.New(cmd.ErrOrStderr(), level)
	if path != "" {
		a.logger.Debug("loaded config", zap.String("path", path))
	}
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the stockcat version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "stockcat version %s (commit: %s)\n", version, commit)
			return err
		},
	}
}

func newConfigCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := a.cfg.Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
