package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/rshade/lcaopt/internal/logging"
)

// ImpactParams holds the parameters for the impact command execution.
// Exported for testing.
type ImpactParams struct {
	Input  string
	Output string
	Fill   bool
	Seed   uint64
	Set    []string
}

// NewImpactCmd creates the "impact" command that scores a single record.
func NewImpactCmd() *cobra.Command {
	var params ImpactParams

	cmd := &cobra.Command{
		Use:   "impact",
		Short: "Compute the life-cycle footprint of a record",
		Long: `Compute the cradle-to-grave footprint of a single input record.

The report covers total CO2, energy and water, the efficiency and circularity
scores, a per-phase breakdown, recommendations and everyday equivalents.`,
		Example: `  # Score a record file
  lcaopt impact --input record.json

  # Read from stdin and emit JSON
  cat record.json | lcaopt impact --input - --output json

  # Estimate absent fields before scoring
  lcaopt impact --input partial.json --fill --seed 7

  # Override a field without editing the file
  lcaopt impact --input record.json --set transportMode=Rail`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeImpact(cmd, params)
		},
	}

	cmd.Flags().StringVar(&params.Input, "input", "", "Path to a JSON record (- for stdin)")
	cmd.Flags().StringVar(&params.Output, "output", outputFormatTable, outputFlagUsage)
	cmd.Flags().BoolVar(&params.Fill, "fill", false, "Estimate missing fields before scoring")
	cmd.Flags().Uint64Var(&params.Seed, "seed", 0, "Seed for --fill (0 = use config or random)")
	cmd.Flags().StringArrayVar(&params.Set, "set", nil, "Field override field=value (repeatable)")

	return cmd
}

func executeImpact(cmd *cobra.Command, params ImpactParams) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)
	start := time.Now()

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

	eng := newEngine(engineOptions{fill: params.Fill, seed: params.Seed})
	analysis, err := eng.Analyze(ctx, rec, params.Fill)
	if err != nil {
		return err
	}

	log.Debug().Ctx(ctx).
		Str("operation", "impact").
		Dur("duration_ms", time.Since(start)).
		Msg("impact command complete")

	w := cmd.OutOrStdout()
	switch format {
	case outputFormatJSON:
		return writeJSON(w, analysis)
	case outputFormatNDJSON:
		return writeNDJSON(w, []any{analysis})
	default:
		return renderAnalysisTable(w, analysis, co2Unit())
	}
}

// withoutFields drops explicitly assigned fields from the missing list.
func withoutFields(missing []string, assigned map[string]string) []string {
	out := missing[:0:0]
	for _, f := range missing {
		if _, ok := assigned[f]; !ok {
			out = append(out, f)
		}
	}
	return out
}
