package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/valorisation/coherence/internal/adapters/outbound/tui"
)

func newRulesCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the coherence rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rules := newService().Rules()
			if jsonOutput {
				return renderJSON(cmd, rules)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderRules(rules))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output rules as JSON")

	return cmd
}
