package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/lcaopt/internal/impute"
	"github.com/rshade/lcaopt/internal/lca"
)

// FillParams holds the parameters for the fill command execution.
// Exported for testing.
type FillParams struct {
	Input  string
	Output string
	Seed   uint64
}

// fillOutput is the JSON shape of the fill command.
type fillOutput struct {
	Input   lca.ImpactInput `json:"input"`
	Missing []string        `json:"missing"`
	Filled  []impute.Filled `json:"filled"`
}

// NewFillCmd creates the "fill" command that estimates absent fields
// without scoring the record.
func NewFillCmd() *cobra.Command {
	var params FillParams

	cmd := &cobra.Command{
		Use:   "fill",
		Short: "Estimate missing fields of a record",
		Long: `Estimate the fields absent from a record from per-material averages.

Each estimated field is reported with a confidence. A fixed --seed makes the
result reproducible.`,
		Example: `  # Complete a partial record and print it as JSON
  lcaopt fill --input partial.json --seed 42 --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeFill(cmd, params)
		},
	}

	cmd.Flags().StringVar(&params.Input, "input", "", "Path to a JSON record (- for stdin)")
	cmd.Flags().StringVar(&params.Output, "output", outputFormatTable, outputFlagUsage)
	cmd.Flags().Uint64Var(&params.Seed, "seed", 0, "Random seed (0 = use config or random)")

	return cmd
}

func executeFill(cmd *cobra.Command, params FillParams) error {
	format, err := resolveOutputFormat(cmd, params.Output)
	if err != nil {
		return err
	}
	rec, err := readRecord(cmd, params.Input)
	if err != nil {
		return err
	}

	eng := newEngine(engineOptions{fill: true, seed: params.Seed})
	in, report := eng.Prepare(cmd.Context(), rec, true)
	out := fillOutput{Input: in, Missing: rec.Missing, Filled: report.Filled}
	if out.Missing == nil {
		out.Missing = []string{}
	}
	if out.Filled == nil {
		out.Filled = []impute.Filled{}
	}

	w := cmd.OutOrStdout()
	switch format {
	case outputFormatJSON:
		return writeJSON(w, out)
	case outputFormatNDJSON:
		return writeNDJSON(w, []fillOutput{out})
	}

	if len(out.Filled) == 0 {
		fmt.Fprintln(w, "No missing fields; record is complete.")
	} else if err := renderImputed(w, out.Filled); err != nil {
		return err
	}
	fmt.Fprintln(w)
	writeHeader(w, "COMPLETED RECORD")
	for _, f := range lca.Fields() {
		fmt.Fprintf(w, "  %-22s %s\n", f, in.Get(f))
	}
	return nil
}
