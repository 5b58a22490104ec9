package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/walteh/errmigrate/pkg/rules"
)

// NewRulesCmd creates a new rules command
func NewRulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the rewrite rules in application order",
		RunE: func(cmd *cobra.Command, args []string) error {
			name := color.New(color.FgCyan, color.Bold)
			for i, rule := range rules.Default() {
				fmt.Fprintf(cmd.OutOrStdout(), "%2d. %s\n", i+1, name.Sprint(rule.Name))
				fmt.Fprintf(cmd.OutOrStdout(), "    matches:  %s\n", rule.Pattern.String())
				fmt.Fprintf(cmd.OutOrStdout(), "    produces: %s\n\n", firstLine(rule.Replacement))
			}
			return nil
		},
	}
	return cmd
}

func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' {
			return s[:i] + " ..."
		}
	}
	return s
}
