package cli

import (
	"errors"
	"fmt"
	"io"
	"sort"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/lcaopt/internal/engine"
	"github.com/rshade/lcaopt/internal/greenops"
	"github.com/rshade/lcaopt/internal/lca"
	"github.com/rshade/lcaopt/internal/logging"
	"github.com/rshade/lcaopt/internal/tui"
)

// WhatIfParams holds the parameters for the whatif command execution.
// Exported for testing.
type WhatIfParams struct {
	Input       string
	Set         []string
	Interactive bool
	Output      string
}

// NewWhatIfCmd creates the "whatif" command that compares a record with a
// modified copy of itself.
func NewWhatIfCmd() *cobra.Command {
	var params WhatIfParams

	cmd := &cobra.Command{
		Use:   "whatif",
		Short: "Compare a record against modified versions of itself",
		Long: `Apply field changes to a record and compare the footprint before and after.

Without --set the command opens an interactive editor when stdout is a
terminal; every edit rescores the record immediately.`,
		Example: `  # One-shot comparison
  lcaopt whatif --input record.json --set fuelType=Biomass --set transportMode=Rail

  # Interactive editor
  lcaopt whatif --input record.json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeWhatIf(cmd, params)
		},
	}

	cmd.Flags().StringVar(&params.Input, "input", "", "Path to a JSON record (- for stdin)")
	cmd.Flags().StringArrayVar(&params.Set, "set", nil, "Field change field=value (repeatable)")
	cmd.Flags().BoolVar(&params.Interactive, "interactive", false, "Open the editor even when --set is given")
	cmd.Flags().StringVar(&params.Output, "output", outputFormatTable, outputFlagUsage)

	return cmd
}

func executeWhatIf(cmd *cobra.Command, params WhatIfParams) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)

	format, err := resolveOutputFormat(cmd, params.Output)
	if err != nil {
		return err
	}
	rec, err := readRecord(cmd, params.Input)
	if err != nil {
		return err
	}
	assignments, err := parseAssignments(params.Set)
	if err != nil {
		return err
	}
	baseline := rec.Input.WithDefaults()
	modified, err := applyAssignments(baseline, assignments)
	if err != nil {
		return err
	}

	eng := newEngine(engineOptions{})
	interactive := params.Interactive || len(assignments) == 0
	if interactive && format == outputFormatTable {
		if tui.DetectOutputMode(false, false, false) == tui.OutputModeInteractive {
			return runWhatIfEditor(cmd, eng, baseline, modified)
		}
		if len(assignments) == 0 {
			return errors.New("no changes given: use --set field=value or run in a terminal")
		}
		log.Debug().Ctx(ctx).Msg("stdout is not interactive, rendering table")
	}
	if len(assignments) == 0 {
		return errors.New("no changes given: use --set field=value")
	}

	res, err := eng.WhatIf(ctx, baseline, modified)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	switch format {
	case outputFormatJSON:
		return writeJSON(w, res)
	case outputFormatNDJSON:
		return writeNDJSON(w, []*engine.WhatIfResult{res})
	default:
		return renderWhatIfTable(w, baseline, modified, res)
	}
}

func runWhatIfEditor(cmd *cobra.Command, eng *engine.Engine, baseline, modified lca.ImpactInput) error {
	ctx := cmd.Context()

	initial, err := eng.WhatIf(ctx, baseline, baseline)
	if err != nil {
		return err
	}
	model := tui.NewWhatIfModelWithCallback(ctx, baseline, initial, eng.WhatIf)
	for _, f := range lca.Fields() {
		if modified.Get(f) != baseline.Get(f) {
			if err := model.Preset(f, modified.Get(f)); err != nil {
				return err
			}
		}
	}

	p := tea.NewProgram(model, tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("failed to run interactive TUI: %w", err)
	}
	m, ok := final.(*tui.WhatIfModel)
	if !ok {
		return errors.New("unexpected TUI model type")
	}
	if m.Result() == nil || len(m.Changes()) == 0 {
		return nil
	}
	return renderWhatIfTable(cmd.OutOrStdout(), baseline, m.Modified(), m.Result())
}

// renderWhatIfTable renders the changed fields and the metric comparison.
func renderWhatIfTable(w io.Writer, baseline, modified lca.ImpactInput, res *engine.WhatIfResult) error {
	writeHeader(w, "WHAT-IF ANALYSIS")

	var changed []string
	for _, f := range lca.Fields() {
		if baseline.Get(f) != modified.Get(f) {
			changed = append(changed, f)
		}
	}
	sort.Strings(changed)
	for _, f := range changed {
		fmt.Fprintf(w, "  %s: %s -> %s\n", f, baseline.Get(f), modified.Get(f))
	}
	fmt.Fprintln(w)

	sign := ""
	if res.DeltaCO2 > 0 {
		sign = "+"
	}
	unit := co2Unit()
	fmt.Fprintf(w, "Baseline:  %s\n", greenops.FormatCO2(res.Baseline.TotalCO2Emissions, unit))
	fmt.Fprintf(w, "Modified:  %s\n", greenops.FormatCO2(res.Modified.TotalCO2Emissions, unit))
	fmt.Fprintf(w, "Change:    %s%.2f kg CO2e\n\n", sign, res.DeltaCO2)

	return renderComparisonTable(w, res.Comparison)
}
