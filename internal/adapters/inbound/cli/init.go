package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/valorisation/coherence/internal/adapters/outbound/config"
	"github.com/valorisation/coherence/internal/domain"
)

func newInitCmd() *cobra.Command {
	var (
		locale string
		strict bool
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Generate a .coherence.yaml configuration file",
		Long:  "Create a .coherence.yaml listing every rule so individual checks can be skipped.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			dest := filepath.Join(absPath, config.FileName)

			if !force {
				if _, err := os.Stat(dest); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", config.FileName)
				}
			}

			cfg := domain.Config{Locale: domain.Locale(locale), Strict: strict}
			if err := cfg.Validate(); err != nil {
				return err
			}

			if err := os.WriteFile(dest, []byte(generateConfig(cfg)), 0644); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", config.FileName)
			return nil
		},
	}

	cmd.Flags().StringVar(&locale, "locale", string(domain.LocaleFR), "Message language (fr, en)")
	cmd.Flags().BoolVar(&strict, "strict", false, "Treat warnings as failures")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing .coherence.yaml")

	return cmd
}

func generateConfig(cfg domain.Config) string {
	var b strings.Builder
	b.WriteString("# Coherence configuration\n\n")
	fmt.Fprintf(&b, "locale: %s\n", cfg.EffectiveLocale())
	fmt.Fprintf(&b, "strict: %t\n\n", cfg.Strict)
	b.WriteString("# min_severity: warning\n\n")
	b.WriteString("# Uncomment a rule to stop reporting it.\n")
	b.WriteString("# skip:\n")
	for _, id := range domain.ValidAlertIDs {
		fmt.Fprintf(&b, "#   - %s\n", id)
	}
	return b.String()
}
