package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/lcaopt/internal/cli/pagination"
	"github.com/rshade/lcaopt/internal/compare"
	"github.com/rshade/lcaopt/internal/config"
	"github.com/rshade/lcaopt/internal/greenops"
	"github.com/rshade/lcaopt/internal/ingest"
	"github.com/rshade/lcaopt/internal/logging"
	"github.com/rshade/lcaopt/internal/store"
)

// openStore opens the configured scenario database.
func openStore(cmd *cobra.Command) (*store.DB, error) {
	path := config.GetGlobalConfig().Store.Path
	logging.FromContext(cmd.Context()).Debug().Ctx(cmd.Context()).Str("store_path", path).Msg("opening scenario store")
	db, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening scenario store: %w", err)
	}
	return db, nil
}

// ScenarioSaveParams holds the parameters for the scenario save command.
// Exported for testing.
type ScenarioSaveParams struct {
	Input  string
	Notes  string
	Fill   bool
	Seed   uint64
	Set    []string
	Output string
}

// NewScenarioSaveCmd creates the "scenario save" command.
func NewScenarioSaveCmd() *cobra.Command {
	var params ScenarioSaveParams

	cmd := &cobra.Command{
		Use:   "save <name>",
		Short: "Score a record and save it as a named scenario",
		Args:  cobra.ExactArgs(1),
		Example: `  lcaopt scenario save baseline --input record.json
  lcaopt scenario save rail --input record.json --set transportMode=Rail --notes "switch trucks to rail"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeScenarioSave(cmd, args[0], params)
		},
	}

	cmd.Flags().StringVar(&params.Input, "input", "", "Path to a JSON record (- for stdin)")
	cmd.Flags().StringVar(&params.Notes, "notes", "", "Free-text notes stored with the scenario")
	cmd.Flags().BoolVar(&params.Fill, "fill", false, "Estimate missing fields before scoring")
	cmd.Flags().Uint64Var(&params.Seed, "seed", 0, "Seed for --fill (0 = use config or random)")
	cmd.Flags().StringArrayVar(&params.Set, "set", nil, "Field override field=value (repeatable)")
	cmd.Flags().StringVar(&params.Output, "output", outputFormatTable, outputFlagUsage)

	return cmd
}

func executeScenarioSave(cmd *cobra.Command, name string, params ScenarioSaveParams) error {
	ctx := cmd.Context()

	format, err := resolveOutputFormat(cmd, params.Output)
	if err != nil {
		return err
	}
	rec, err := readRecord(cmd, params.Input)
	if err != nil {
		return err
	}
	if len(params.Set) > 0 {
		assignments, err := parseAssignments(params.Set)
		if err != nil {
			return err
		}
		if rec.Input, err = applyAssignments(rec.Input, assignments); err != nil {
			return err
		}
		rec.Missing = withoutFields(rec.Missing, assignments)
	}

	analysis, err := newEngine(engineOptions{fill: params.Fill, seed: params.Seed}).Analyze(ctx, rec, params.Fill)
	if err != nil {
		return err
	}

	db, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer db.Close()

	sc, err := db.Save(ctx, name, params.Notes, analysis.Input, analysis.Summary)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	switch format {
	case outputFormatJSON:
		return writeJSON(w, sc)
	case outputFormatNDJSON:
		return writeNDJSON(w, []store.Scenario{sc})
	default:
		fmt.Fprintf(w, "Saved scenario %q (%s): %s\n", sc.Name, sc.ID, formatCO2(sc.Summary.TotalCO2Emissions))
		return nil
	}
}

// scenarioSorter orders saved scenarios for listing.
func scenarioSorter() *pagination.Sorter[store.Scenario] {
	return pagination.NewSorter(map[string]pagination.CompareFunc[store.Scenario]{
		"name":     pagination.Compare(func(s store.Scenario) string { return s.Name }),
		"created":  pagination.Compare(func(s store.Scenario) int64 { return s.CreatedAt.UnixNano() }),
		"material": pagination.Compare(func(s store.Scenario) string { return s.Input.MaterialType }),
		"co2":      pagination.Compare(func(s store.Scenario) float64 { return s.Summary.TotalCO2Emissions }),
	})
}

// scenarioListOutput is the JSON shape of a scenario listing.
type scenarioListOutput struct {
	Scenarios  []store.Scenario `json:"scenarios"`
	Pagination pagination.Meta  `json:"pagination"`
}

// NewScenarioListCmd creates the "scenario list" command.
func NewScenarioListCmd() *cobra.Command {
	var output string
	var page pagination.Params

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved scenarios",
		Args:  cobra.NoArgs,
		Example: `  lcaopt scenario list
  lcaopt scenario list --sort co2:desc --limit 5
  lcaopt scenario list --page 2 --page-size 20 --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := resolveOutputFormat(cmd, output)
			if err != nil {
				return err
			}
			if err := page.Validate(); err != nil {
				return err
			}
			db, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer db.Close()

			all, err := db.List(cmd.Context())
			if err != nil {
				return err
			}
			scenarios, meta, err := pagination.Apply(all, page, scenarioSorter())
			if err != nil {
				return err
			}
			if scenarios == nil {
				scenarios = []store.Scenario{}
			}

			w := cmd.OutOrStdout()
			switch format {
			case outputFormatJSON:
				return writeJSON(w, scenarioListOutput{Scenarios: scenarios, Pagination: meta})
			case outputFormatNDJSON:
				return writeNDJSON(w, scenarios)
			default:
				if err := renderScenarioList(w, scenarios, co2Unit()); err != nil {
					return err
				}
				if meta.TotalItems > len(scenarios) {
					fmt.Fprintf(w, "\nShowing %d of %d scenarios (page %d of %d)\n",
						len(scenarios), meta.TotalItems, meta.CurrentPage, meta.TotalPages)
				}
				return nil
			}
		},
	}

	cmd.Flags().StringVar(&output, "output", outputFormatTable, outputFlagUsage)
	page.AddFlags(cmd)
	return cmd
}

// NewScenarioShowCmd creates the "scenario show" command.
func NewScenarioShowCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "show <id|name>",
		Short: "Show a saved scenario with its full report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := resolveOutputFormat(cmd, output)
			if err != nil {
				return err
			}
			db, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer db.Close()

			sc, err := db.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			switch format {
			case outputFormatJSON:
				return writeJSON(w, sc)
			case outputFormatNDJSON:
				return writeNDJSON(w, []store.Scenario{sc})
			}

			fmt.Fprintf(w, "Scenario %s (%s), saved %s\n", sc.Name, sc.ID, sc.CreatedAt.Local().Format(timeLayout))
			if sc.Notes != "" {
				fmt.Fprintf(w, "Notes: %s\n", sc.Notes)
			}
			fmt.Fprintln(w)
			analysis, err := newEngine(engineOptions{}).Analyze(cmd.Context(), recordOf(sc), false)
			if err != nil {
				return err
			}
			return renderAnalysisTable(w, analysis, co2Unit())
		},
	}

	cmd.Flags().StringVar(&output, "output", outputFormatTable, outputFlagUsage)
	return cmd
}

// NewScenarioCompareCmd creates the "scenario compare" command.
func NewScenarioCompareCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "compare <baseline> <other>...",
		Short: "Compare saved scenarios metric by metric",
		Long: `Compare two or more saved scenarios against the first one.

Changes are percentages relative to the first scenario; positive values mean
the metric is lower than in the first scenario.`,
		Args: cobra.MinimumNArgs(2), //nolint:mnd // Comparison needs a baseline and one other.
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := resolveOutputFormat(cmd, output)
			if err != nil {
				return err
			}
			db, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer db.Close()

			scenarios := make([]compare.Scenario, 0, len(args))
			for _, ref := range args {
				sc, err := db.Get(cmd.Context(), ref)
				if err != nil {
					return err
				}
				scenarios = append(scenarios, compare.Scenario{Name: sc.Name, Summary: sc.Summary})
			}
			res := compare.Scenarios(scenarios...)

			w := cmd.OutOrStdout()
			switch format {
			case outputFormatJSON:
				return writeJSON(w, res)
			case outputFormatNDJSON:
				return writeNDJSON(w, res.Metrics)
			default:
				return renderComparisonTable(w, res)
			}
		},
	}

	cmd.Flags().StringVar(&output, "output", outputFormatTable, outputFlagUsage)
	return cmd
}

// NewScenarioDeleteCmd creates the "scenario delete" command.
func NewScenarioDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id|name>",
		Short: "Delete a saved scenario",
		Long:  "Delete a saved scenario. A name selects the most recent scenario with that name.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer db.Close()

			sc, err := db.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := db.Delete(cmd.Context(), sc.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted scenario %q (%s)\n", sc.Name, sc.ID)
			return nil
		},
	}
}

// recordOf rebuilds a record from a saved scenario.
func recordOf(sc store.Scenario) ingest.Record {
	return ingest.Record{Name: sc.Name, Input: sc.Input}
}

func formatCO2(kg float64) string {
	return greenops.FormatCO2(kg, co2Unit())
}
