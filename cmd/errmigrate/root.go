package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/errmigrate/cmd/errmigrate/commands"
	"github.com/walteh/errmigrate/cmd/errmigrate/opts"
	"github.com/walteh/errmigrate/pkg/config"
	"github.com/walteh/errmigrate/pkg/status"
	"gitlab.com/tozd/go/errors"
)

var (
	// Flags
	configFile string
	debug      bool
	dryRun     bool
	async      bool
)

// newRootOpts creates a new RootOpts with initialized dependencies. With no
// --config flag the embedded default configuration is used, so a bare
// invocation needs no files besides the targets themselves.
func newRootOpts(ctx context.Context) (*opts.RootOpts, error) {
	cfg := config.Default()
	if configFile != "" {
		loaded, err := config.Load(ctx, configFile)
		if err != nil {
			return nil, errors.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	if dryRun {
		cfg.DryRun = true
	}
	if async {
		cfg.Async = true
	}

	return &opts.RootOpts{
		Config:   cfg,
		Reporter: status.New(ctx, os.Stdout),
	}, nil
}

// newRootCmd builds the root command. Running it bare performs the fix, the
// same as `errmigrate fix`.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "errmigrate [targets...]",
		Short: "Rewrite legacy AppError call sites into structured error literals",
		Long: `errmigrate scans the configured source files and rewrites legacy
tuple-style AppError variants (AppError::Internal("..."), ...) into the
structured multi-field form, filling unknowable fields with placeholder
values. Files are rewritten in place; missing targets are skipped with a
notice.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// flags are parsed by now, so the log level is known
			logger := setupLogging()
			cmd.SetContext(logger.WithContext(cmd.Context()))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			rootOpts, err := newRootOpts(ctx)
			if err != nil {
				return err
			}
			return commands.RunFix(ctx, rootOpts, args)
		},
	}

	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file path (yaml, json, or hcl)")
	cmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "report what would change without writing")
	cmd.PersistentFlags().BoolVar(&async, "async", false, "process files concurrently")

	cmd.AddCommand(
		commands.NewFixCmd(newRootOpts),
		commands.NewCheckCmd(newRootOpts),
		commands.NewRulesCmd(),
	)

	return cmd
}

// setupLogging configures zerolog based on flags
func setupLogging() zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
}
