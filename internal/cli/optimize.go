package cli

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/lcaopt/internal/logging"
	"github.com/rshade/lcaopt/internal/metrics"
	"github.com/rshade/lcaopt/internal/optimize"
	"github.com/rshade/lcaopt/internal/tui"
)

// OptimizeParams holds the parameters for the optimize command execution.
// Exported for testing.
type OptimizeParams struct {
	Input       string
	Output      string
	Parallelism int
	Interactive bool
	Fill        bool
	Seed        uint64
	MetricsFile string
}

// NewOptimizeCmd creates the "optimize" command that searches single-parameter
// substitutions for lower emissions.
func NewOptimizeCmd() *cobra.Command {
	var params OptimizeParams

	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Find lower-emission fuel and transport alternatives",
		Long: `Try every alternative fuel type and transport mode, one at a time, and list
the substitutions that lower total CO2, best first (at most five).

The potential reduction adds up the top three candidates. Substitutions on
different parameters are not rescored together, so treat it as an estimate.`,
		Example: `  # Rank alternatives for a record
  lcaopt optimize --input record.json

  # Score candidates on four workers and emit JSON
  lcaopt optimize --input record.json --parallelism 4 --output json

  # Browse candidates in a terminal UI
  lcaopt optimize --input record.json --interactive

  # Export candidate and timing metrics
  lcaopt optimize --input record.json --metrics-file optimize.prom`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeOptimize(cmd, params)
		},
	}

	cmd.Flags().StringVar(&params.Input, "input", "", "Path to a JSON record (- for stdin)")
	cmd.Flags().StringVar(&params.Output, "output", outputFormatTable, outputFlagUsage)
	cmd.Flags().IntVar(&params.Parallelism, "parallelism", 0, "Concurrent candidate scoring (0 = use config)")
	cmd.Flags().BoolVar(&params.Interactive, "interactive", false, "Browse candidates in a terminal UI")
	cmd.Flags().BoolVar(&params.Fill, "fill", false, "Estimate missing fields before searching")
	cmd.Flags().Uint64Var(&params.Seed, "seed", 0, "Seed for --fill (0 = use config or random)")
	cmd.Flags().StringVar(&params.MetricsFile, "metrics-file", "", "Write Prometheus text-format metrics to this path")

	return cmd
}

func executeOptimize(cmd *cobra.Command, params OptimizeParams) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)

	if params.Parallelism < 0 {
		return fmt.Errorf("--parallelism must be >= 0, got %d", params.Parallelism)
	}
	format, err := resolveOutputFormat(cmd, params.Output)
	if err != nil {
		return err
	}
	rec, err := readRecord(cmd, params.Input)
	if err != nil {
		return err
	}

	var recorder *metrics.Recorder
	if params.MetricsFile != "" {
		recorder = metrics.NewRecorder()
	}
	eng := newEngine(engineOptions{
		fill:        params.Fill,
		seed:        params.Seed,
		parallelism: params.Parallelism,
		recorder:    recorder,
	})
	in, _ := eng.Prepare(ctx, rec, params.Fill)
	res, err := eng.Optimize(ctx, in)
	if err != nil {
		return err
	}

	if recorder != nil {
		if err := recorder.WriteTextfile(params.MetricsFile); err != nil {
			return err
		}
		log.Debug().Ctx(ctx).Str("path", params.MetricsFile).Msg("metrics written")
	}

	if params.Interactive && format == outputFormatTable {
		if tui.DetectOutputMode(false, false, false) == tui.OutputModeInteractive {
			return runCandidateBrowser(cmd, res)
		}
		log.Debug().Ctx(ctx).Msg("stdout is not interactive, rendering table")
	}

	w := cmd.OutOrStdout()
	switch format {
	case outputFormatJSON:
		return writeJSON(w, res)
	case outputFormatNDJSON:
		return writeNDJSON(w, res.Candidates)
	default:
		return renderOptimizationTable(w, res, co2Unit())
	}
}

func runCandidateBrowser(cmd *cobra.Command, res optimize.Result) error {
	p := tea.NewProgram(tui.NewCandidatesModel(res), tea.WithContext(cmd.Context()))
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("failed to run interactive TUI: %w", err)
	}

	m, ok := final.(tui.CandidatesModel)
	if !ok {
		return errors.New("unexpected TUI model type")
	}
	if c := m.Selected(); c != nil {
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Selected %s -> %s (%.1f%% lower)\n", c.BaselineValue, c.CandidateValue, c.PercentageReduction)
		fmt.Fprintf(w, "Apply with: --set %s=%q\n", c.Parameter, c.CandidateValue)
	}
	return nil
}
