package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/lcaopt/internal/lca"
	"github.com/rshade/lcaopt/internal/recommend"
)

// RecommendParams holds the parameters for the recommend command execution.
// Exported for testing.
type RecommendParams struct {
	Input   string
	Output  string
	Explain bool
}

// recommendOutput is the JSON shape of the recommend command.
type recommendOutput struct {
	Recommendations []recommend.Recommendation `json:"recommendations"`
	Explanations    []string                   `json:"explanations,omitempty"`
}

// NewRecommendCmd creates the "recommend" command.
func NewRecommendCmd() *cobra.Command {
	var params RecommendParams

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Print improvement recommendations for a record",
		Example: `  # Recommendations only
  lcaopt recommend --input record.json

  # Include the per-phase explanation
  lcaopt recommend --input record.json --explain`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeRecommend(cmd, params)
		},
	}

	cmd.Flags().StringVar(&params.Input, "input", "", "Path to a JSON record (- for stdin)")
	cmd.Flags().StringVar(&params.Output, "output", outputFormatTable, outputFlagUsage)
	cmd.Flags().BoolVar(&params.Explain, "explain", false, "Also explain the main contributors")

	return cmd
}

func executeRecommend(cmd *cobra.Command, params RecommendParams) error {
	format, err := resolveOutputFormat(cmd, params.Output)
	if err != nil {
		return err
	}
	rec, err := readRecord(cmd, params.Input)
	if err != nil {
		return err
	}
	summary, err := lca.ComputeImpact(rec.Input)
	if err != nil {
		return err
	}

	out := recommendOutput{Recommendations: recommend.Generate(rec.Input, summary)}
	if params.Explain {
		out.Explanations = recommend.Explain(rec.Input, summary)
	}

	w := cmd.OutOrStdout()
	switch format {
	case outputFormatJSON:
		return writeJSON(w, out)
	case outputFormatNDJSON:
		return writeNDJSON(w, out.Recommendations)
	default:
		renderRecommendationList(w, out.Recommendations)
		if len(out.Explanations) > 0 {
			fmt.Fprintln(w)
			writeHeader(w, "EXPLANATION")
			for _, line := range out.Explanations {
				fmt.Fprintf(w, "  %s\n", line)
			}
		}
		return nil
	}
}
