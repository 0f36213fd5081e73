package cli

import (
	"github.com/spf13/cobra"

	"github.com/valorisation/coherence/internal/adapters/outbound/config"
	"github.com/valorisation/coherence/internal/adapters/outbound/history"
	"github.com/valorisation/coherence/internal/adapters/outbound/snapshot"
	"github.com/valorisation/coherence/internal/application"
	"github.com/valorisation/coherence/internal/logging"
)

var (
	version = "dev"
	commit  = "none"
)

func newRootCmd() *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:   "coherence",
		Short: "Catch inconsistent figures before valuing a company",
		Long: "Coherence cross-checks the financial figures declared in a valuation diagnostic " +
			"against each other and against registry data, and reports every inconsistency found.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logging.New(logLevel, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			cmd.SetContext(logger.WithContext(cmd.Context()))
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newValidateCmd())
	cmd.AddCommand(newRulesCmd())
	cmd.AddCommand(newHistoryCmd())
	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newMCPCmd())
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	return newRootCmd().Execute()
}

func newService() *application.ValidateService {
	return application.NewValidateService(snapshot.New(), config.New(), history.New())
}
