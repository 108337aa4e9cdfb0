package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rshade/lcaopt/internal/config"
)

// annotationLenientConfig marks commands that must run even when the
// configuration on disk is broken.
const annotationLenientConfig = "lcaopt/lenient-config"

// NewConfigInitCmd creates the config init command for initializing configuration.
func NewConfigInitCmd() *cobra.Command {
	var (
		force bool
		path  string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file with default values",
		Long: `Creates a new configuration file with default values at ~/.lcaopt/config.yaml
($LCAOPT_HOME/config.yaml when LCAOPT_HOME is set).`,
		Example: `  # Create the global configuration
  lcaopt config init

  # Overwrite an existing configuration
  lcaopt config init --force

  # Write to a custom location for use with --config
  lcaopt config init --path ./lcaopt.yaml`,
		Annotations: map[string]string{annotationLenientConfig: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigInit(cmd, path, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")
	cmd.Flags().StringVar(&path, "path", "", "write to this path instead of the default location")

	return cmd
}

func runConfigInit(cmd *cobra.Command, path string, force bool) error {
	if path == "" {
		path = config.DefaultPath()
	}

	if !force {
		_, err := os.Stat(path)
		if err == nil {
			return errors.New("configuration file already exists, use --force to overwrite")
		}
		if !os.IsNotExist(err) {
			return fmt.Errorf("cannot access config path %s: %w", path, err)
		}
	}

	cfg := config.Default()
	if err := cfg.Save(path); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Configuration initialized successfully\n")
	fmt.Fprintf(cmd.OutOrStdout(), "Configuration file: %s\n", cfg.Path())
	return nil
}
