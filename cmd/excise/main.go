package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jsnanigans/excise/internal/batch"
	"github.com/jsnanigans/excise/internal/config"
	"github.com/jsnanigans/excise/internal/report"
	"github.com/jsnanigans/excise/internal/safeio"
)

// errDocumentsFailed is returned under --strict when any document failed.
// The report already says which, so main doesn't print it again.
var errDocumentsFailed = errors.New("one or more documents failed")

type rootOptions struct {
	configPath string
	root       string
	dryRun     bool
	format     string
	diff       bool
	highlight  bool
	context    int
	strict     bool
	verbose    bool

	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "excise",
		Short: "Replace inline view model declarations with a pointer comment",
		Long: `excise walks a worklist of source files and, in each, removes the
declaration of a named type together with the marker comment above it,
leaving a short comment that points at the type's new file.

Declarations are found by substring and their extent by counting braces,
so the tool trusts the worklist hints and does not parse the source.

Without a config file the built-in worklist is used.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()

			zapCfg := zap.NewProductionConfig()
			if opts.verbose {
				zapCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			logger, err := zapCfg.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			opts.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExcise(cmd, opts)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", config.DefaultPath, "Worklist config file (YAML)")
	flags.StringVar(&opts.root, "root", "", "Directory target paths are resolved against (overrides config)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Debug logging")

	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Report what would be removed without writing files")
	cmd.Flags().StringVar(&opts.format, "format", string(report.FormatText), "Output format: text or json")
	cmd.Flags().BoolVar(&opts.diff, "diff", false, "With --dry-run, show a line diff of each change")
	cmd.Flags().BoolVar(&opts.highlight, "highlight", false, "With --dry-run, show each change highlighted in place")
	cmd.Flags().IntVar(&opts.context, "context", 3, "Unchanged lines shown around each previewed change")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Exit with status 1 when any document fails")
	cmd.MarkFlagsMutuallyExclusive("diff", "highlight")

	cmd.AddCommand(newTargetsCmd(opts), newInitCmd(opts))
	return cmd
}

func loadConfig(opts *rootOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.root != "" {
		cfg.Root = opts.root
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", opts.configPath, err)
	}
	return cfg, nil
}

func runExcise(cmd *cobra.Command, opts *rootOptions) error {
	format, err := report.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	if (opts.diff || opts.highlight) && !opts.dryRun {
		return errors.New("--diff and --highlight require --dry-run")
	}
	if opts.context < 0 {
		return fmt.Errorf("--context must not be negative, got %d", opts.context)
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	fs, err := safeio.NewSafeFS(cfg.Root)
	if err != nil {
		return fmt.Errorf("open root %s: %w", cfg.Root, err)
	}

	runner := &batch.Runner{
		Docs:    fs,
		Config:  cfg,
		Logger:  opts.logger,
		DryRun:  opts.dryRun,
		Context: opts.context,
	}
	switch {
	case opts.diff:
		runner.Preview = batch.PreviewDiff
	case opts.highlight:
		runner.Preview = batch.PreviewHighlight
	}

	rep := runner.Run()
	if err := report.Write(cmd.OutOrStdout(), rep, format); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	if opts.strict && rep.HasFailures() {
		return errDocumentsFailed
	}
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errDocumentsFailed) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
