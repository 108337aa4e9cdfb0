package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/lcaopt/internal/config"
	"github.com/rshade/lcaopt/internal/factors"
)

// NewConfigValidateCmd creates the config validate command for validating configuration.
func NewConfigValidateCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Validates the configuration file, the --config overlay and LCAOPT_* environment
overrides, and reports every invalid setting at once.

This includes:
- Output format and CO2 unit
- Logging level and format
- Optimizer parallelism and batch sizing
- The factors.require dataset version constraint`,
		Example: `  # Validate current configuration
  lcaopt config validate

  # Validate an overlay and show the effective values
  lcaopt config validate --config ./lcaopt.yaml --verbose`,
		Annotations: map[string]string{annotationLenientConfig: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigValidate(cmd, verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed validation information")

	return cmd
}

// runConfigValidate executes the configuration validation logic.
func runConfigValidate(cmd *cobra.Command, verbose bool) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintln(w, "Configuration is valid")

	if verbose {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Config file:      %s\n", displayPath(cfg.Path()))
		fmt.Fprintf(w, "Output format:    %s\n", cfg.Output.DefaultFormat)
		fmt.Fprintf(w, "CO2 unit:         %s\n", cfg.Output.CO2Unit)
		fmt.Fprintf(w, "Log level:        %s\n", cfg.Logging.Level)
		fmt.Fprintf(w, "Parallelism:      %d\n", cfg.Optimize.Parallelism)
		fmt.Fprintf(w, "Batch:            %d rows x %d workers\n", cfg.Batch.BatchSize, cfg.Batch.Concurrency)
		fmt.Fprintf(w, "Scenario store:   %s\n", cfg.Store.Path)
		fmt.Fprintf(w, "Factor dataset:   %s\n", factors.DatasetVersion)
	}
	return nil
}

// resolveConfig loads the config exactly like the root command but
// without validating it.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.New()
	if err != nil {
		return nil, err
	}
	if overlay, _ := cmd.Flags().GetString("config"); overlay != "" {
		if err := config.ShallowMergeYAML(cfg, overlay); err != nil {
			return nil, err
		}
		if err := cfg.ApplyEnv(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func displayPath(p string) string {
	if p == "" {
		return "(defaults)"
	}
	return p
}
