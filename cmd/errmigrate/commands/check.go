package commands

import (
	"github.com/spf13/cobra"
)

// NewCheckCmd creates a new check command
func NewCheckCmd(build OptsBuilder) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [targets...]",
		Short: "Report remaining legacy call sites without rewriting anything",
		Long: `Check scans the configured targets and reports, per file and per rule,
how many legacy call sites would be rewritten. No file is modified. Useful
for verifying that a previous fix run converted everything.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			rootOpts, err := build(ctx)
			if err != nil {
				return err
			}
			rootOpts.Config.DryRun = true
			return RunFix(ctx, rootOpts, args)
		},
	}
	return cmd
}
