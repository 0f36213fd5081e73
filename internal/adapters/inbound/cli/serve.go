package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/valorisation/coherence/internal/adapters/inbound/httpapi"
	"github.com/valorisation/coherence/internal/adapters/outbound/config"
	"github.com/valorisation/coherence/internal/logging"
)

func newServeCmd() *cobra.Command {
	var (
		serverConfig string
		addr         string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP validation API",
		Long: "Serve the coherence rules over HTTP. Settings come from an optional server config " +
			"file and COHERENCE_* environment variables.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadServerConfig(serverConfig)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}

			timeout, err := config.ShutdownTimeout(cfg)
			if err != nil {
				return err
			}

			logger, err := logging.New(cfg.LogLevel, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			svc := newService().WithConcurrency(cfg.BatchConcurrency)
			api := httpapi.NewWebAPI(logger, httpapi.Config{
				Addr:            cfg.Addr,
				ShutdownTimeout: timeout,
				ConfigPath:      cfg.ConfigPath,
			}, svc)

			if err := api.Start(cmd.Context()); err != nil {
				return fmt.Errorf("server stopped: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&serverConfig, "server-config", "", "Server settings file (yaml, json or toml)")
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address, overrides the configured one")

	return cmd
}
