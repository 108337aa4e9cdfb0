package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/lcaopt/internal/factors"
)

// factorsOutput is the JSON shape of the factors command.
type factorsOutput struct {
	DatasetVersion string          `json:"datasetVersion"`
	Tables         []factors.Table `json:"tables"`
}

// NewFactorsCmd creates the "factors" command that lists the emission
// factor tables.
func NewFactorsCmd() *cobra.Command {
	var (
		output string
		table  string
	)

	cmd := &cobra.Command{
		Use:   "factors",
		Short: "List the emission factor tables",
		Long: `List the factor tables used by the impact model together with the dataset
version. Keys are shown normalized (lower case, underscores); input values are
matched the same way.`,
		Example: `  lcaopt factors
  lcaopt factors --table transport --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := resolveOutputFormat(cmd, output)
			if err != nil {
				return err
			}

			tables := factors.Tables()
			if table != "" {
				tables = filterTables(tables, table)
				if len(tables) == 0 {
					return fmt.Errorf("unknown factor table %q", table)
				}
			}

			w := cmd.OutOrStdout()
			switch format {
			case outputFormatJSON:
				return writeJSON(w, factorsOutput{DatasetVersion: factors.DatasetVersion, Tables: tables})
			case outputFormatNDJSON:
				return writeNDJSON(w, tables)
			default:
				return renderFactorTables(w, tables)
			}
		},
	}

	cmd.Flags().StringVar(&output, "output", outputFormatTable, outputFlagUsage)
	cmd.Flags().StringVar(&table, "table", "", "Only show one table: fuel, landfill, material or transport")
	return cmd
}

func filterTables(tables []factors.Table, name string) []factors.Table {
	var out []factors.Table
	for _, t := range tables {
		if strings.EqualFold(t.Name, name) {
			out = append(out, t)
		}
	}
	return out
}
