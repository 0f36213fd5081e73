package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/valorisation/coherence/internal/adapters/outbound/tui"
	"github.com/valorisation/coherence/internal/domain"
)

func newValidateCmd() *cobra.Command {
	var (
		jsonOutput bool
		strict     bool
		configPath string
		locale     string
		record     bool
		dir        string
	)

	cmd := &cobra.Command{
		Use:   "validate <file1> [file2] ...",
		Short: "Check diagnostic snapshots for inconsistent figures",
		Long: "Run the coherence rules over one or more snapshot files (JSON or YAML, one snapshot " +
			"or a list per file). Exits with an error when any snapshot has a blocking inconsistency.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := newService()

			cfg, err := svc.LoadConfig(configPath)
			if err != nil {
				return err
			}
			if locale != "" {
				cfg.Locale = domain.Locale(locale)
			}
			if strict {
				cfg.Strict = true
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			reports, err := svc.ValidateFiles(cmd.Context(), cfg, args...)
			if err != nil {
				return fmt.Errorf("validate failed: %w", err)
			}

			if record {
				absDir, err := filepath.Abs(dir)
				if err != nil {
					return fmt.Errorf("resolving path: %w", err)
				}
				for _, r := range reports {
					if err := svc.Record(absDir, r); err != nil {
						return err
					}
				}
			}

			if jsonOutput {
				if err := renderJSON(cmd, reports); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderReports(reports))
			}

			failed := 0
			for _, r := range reports {
				if r.Status == domain.StatusFail {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("validation failed: %d of %d snapshot(s) inconsistent", failed, len(reports))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output reports as JSON")
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail on warnings too")
	cmd.Flags().StringVar(&configPath, "config", ".", "Path to .coherence.yaml or the directory holding it")
	cmd.Flags().StringVar(&locale, "locale", "", "Message language (fr, en)")
	cmd.Flags().BoolVar(&record, "record", false, "Append the reports to the validation history")
	cmd.Flags().StringVar(&dir, "dir", ".", "Directory holding the validation history")

	return cmd
}

func renderJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
