package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/lcaopt/internal/config"
	"github.com/rshade/lcaopt/internal/logging"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root Cobra command for the lcaopt CLI.
// It loads configuration, wires up logging and tracing, and registers every subcommand.
func NewRootCmd(ver string) *cobra.Command {
	var logResult *logging.LogPathResult

	cmd := &cobra.Command{
		Use:     "lcaopt",
		Short:   "Life-cycle impact estimation and optimization",
		Long:    "lcaopt: Estimate the cradle-to-grave footprint of a material and search for lower-emission alternatives",
		Version: ver,
		Example: rootCmdExample,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadConfig(cmd); err != nil {
				return err
			}
			result := setupLogging(cmd)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, logResult)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("config", "", "overlay config file applied on top of ~/.lcaopt/config.yaml")
	cmd.AddCommand(
		NewImpactCmd(), NewOptimizeCmd(), NewRecommendCmd(), NewFillCmd(),
		NewBatchCmd(), NewWhatIfCmd(), NewFactorsCmd(),
		newScenarioCmd(), newConfigCmd(),
	)

	return cmd
}

// loadConfig resolves the global config, the optional overlay and the
// environment, then installs the result process-wide.
// Commands annotated with annotationLenientConfig fall back to defaults
// instead of failing.
func loadConfig(cmd *cobra.Command) error {
	lenient := cmd.Annotations[annotationLenientConfig] == "true"

	cfg, err := resolveConfig(cmd)
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		if !lenient {
			return fmt.Errorf("loading configuration: %w", err)
		}
		if cfg == nil {
			cfg = config.Default()
		}
	}
	config.SetGlobalConfig(cfg)
	return nil
}

const rootCmdExample = `  # Score a single record
  lcaopt impact --input record.json

  # Fill missing fields before scoring
  lcaopt impact --input partial.json --fill --seed 42

  # Find lower-emission fuels and transport modes
  lcaopt optimize --input record.json --parallelism 4

  # Label a file of NDJSON records and export Prometheus metrics
  lcaopt batch --input rows.ndjson --metrics-file lcaopt.prom

  # Explore changes interactively
  lcaopt whatif --input record.json

  # Save and compare scenarios
  lcaopt scenario save baseline --input record.json
  lcaopt scenario compare baseline rail-switch

  # Initialize configuration
  lcaopt config init`

// newScenarioCmd creates the scenario command group.
func newScenarioCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "scenario", Short: "Saved scenario commands"}
	cmd.AddCommand(
		NewScenarioSaveCmd(), NewScenarioListCmd(), NewScenarioShowCmd(),
		NewScenarioCompareCmd(), NewScenarioDeleteCmd(),
	)
	return cmd
}

// newConfigCmd creates the config command group with configuration subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(NewConfigInitCmd(), NewConfigShowCmd(), NewConfigValidateCmd())
	return cmd
}
