package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rshade/lcaopt/internal/config"
)

// NewConfigShowCmd creates the config show command that prints the
// effective configuration.
func NewConfigShowCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long: `Print the configuration after the config file, the --config overlay and
LCAOPT_* environment overrides have been applied.`,
		Example: `  lcaopt config show
  lcaopt config show --output json`,
		Annotations: map[string]string{annotationLenientConfig: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.GetGlobalConfig()
			w := cmd.OutOrStdout()
			switch output {
			case outputFormatJSON:
				return writeJSON(w, cfg)
			case "yaml", "":
				data, err := yaml.Marshal(cfg)
				if err != nil {
					return fmt.Errorf("marshalling config: %w", err)
				}
				_, err = w.Write(data)
				return err
			default:
				return fmt.Errorf("unsupported output format: %s", output)
			}
		},
	}

	cmd.Flags().StringVar(&output, "output", "yaml", "Output format: yaml or json")
	return cmd
}
