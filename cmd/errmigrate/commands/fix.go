package commands

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/errmigrate/cmd/errmigrate/opts"
	"github.com/walteh/errmigrate/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// OptsBuilder constructs the shared options after flags are parsed
type OptsBuilder func(ctx context.Context) (*opts.RootOpts, error)

// NewFixCmd creates a new fix command
func NewFixCmd(build OptsBuilder) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fix [targets...]",
		Short: "Rewrite legacy call sites in the configured files",
		Long: `Fix rewrites every configured target file in place. For each target it
will:
1. Print a skip notice if the file does not exist
2. Otherwise print a progress notice, apply the ruleset, and write the file back

Positional arguments override the configured target list.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			rootOpts, err := build(ctx)
			if err != nil {
				return err
			}
			return RunFix(ctx, rootOpts, args)
		},
	}
	return cmd
}

// RunFix performs the migration over the configured targets. Missing targets
// are skipped, never failed on; the run only errors on real I/O failures.
func RunFix(ctx context.Context, rootOpts *opts.RootOpts, targets []string) error {
	cfg := rootOpts.Config
	if len(targets) > 0 {
		cfg.Targets = targets
	}
	if err := cfg.Validate(); err != nil {
		return errors.Errorf("validating config: %w", err)
	}

	tracker := &operation.Tracker{}

	var ops []operation.Operation
	var err error
	if cfg.DryRun {
		ops, err = operation.NewCheckOperations(cfg, rootOpts.Reporter, tracker)
	} else {
		ops, err = operation.NewFixOperations(cfg, rootOpts.Reporter, tracker)
	}
	if err != nil {
		return errors.Errorf("planning run: %w", err)
	}

	logger := zerolog.Ctx(ctx)
	runner := operation.NewRunner(logger, cfg.Async)
	if err := runner.Run(ctx, ops); err != nil {
		rootOpts.Reporter.Error(err)
		return err
	}

	seen, changed, replacements := tracker.Totals()
	rootOpts.Reporter.Summary(changed, seen, replacements)
	return nil
}
