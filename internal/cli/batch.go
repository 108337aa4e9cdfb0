package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/lcaopt/internal/logging"
	"github.com/rshade/lcaopt/internal/metrics"
)

// BatchParams holds the parameters for the batch command execution.
// Exported for testing.
type BatchParams struct {
	Input       string
	Output      string
	Fill        bool
	Seed        uint64
	MetricsFile string
	BatchSize   int
	Concurrency int
	Strict      bool
}

// exitCodeRowsFailed is returned by --strict when any row failed.
const exitCodeRowsFailed = 3

// NewBatchCmd creates the "batch" command that labels many records at once.
func NewBatchCmd() *cobra.Command {
	var params BatchParams

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Label every record in a file with its footprint",
		Long: `Score a JSON array or newline-delimited JSON file of records.

Rows that cannot be decoded or scored are reported with their error and never
abort the batch. The summary lists averages, the most frequent recommendations
and the material distribution.`,
		Example: `  # Label an NDJSON file
  lcaopt batch --input rows.ndjson

  # Fill gaps, stream one JSON object per row, and export metrics
  lcaopt batch --input rows.ndjson --fill --seed 1 --output ndjson --metrics-file lcaopt.prom

  # Fail the pipeline when any row is rejected
  lcaopt batch --input rows.ndjson --strict`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeBatch(cmd, params)
		},
	}

	cmd.Flags().StringVar(&params.Input, "input", "", "Path to a JSON array or NDJSON file (- for stdin)")
	cmd.Flags().StringVar(&params.Output, "output", outputFormatTable, outputFlagUsage)
	cmd.Flags().BoolVar(&params.Fill, "fill", false, "Estimate missing fields before scoring")
	cmd.Flags().Uint64Var(&params.Seed, "seed", 0, "Seed for --fill (0 = use config or random)")
	cmd.Flags().StringVar(&params.MetricsFile, "metrics-file", "", "Write Prometheus text-format metrics to this path")
	cmd.Flags().IntVar(&params.BatchSize, "batch-size", 0, "Rows per chunk (0 = use config)")
	cmd.Flags().IntVar(&params.Concurrency, "concurrency", 0, "Chunks scored in parallel (0 = use config)")
	cmd.Flags().BoolVar(&params.Strict, "strict", false, "Exit with code 3 when any row fails")

	return cmd
}

func executeBatch(cmd *cobra.Command, params BatchParams) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)

	if params.BatchSize < 0 || params.Concurrency < 0 {
		return errors.New("--batch-size and --concurrency must be >= 0")
	}
	format, err := resolveOutputFormat(cmd, params.Output)
	if err != nil {
		return err
	}
	lines, err := readLines(cmd, params.Input)
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
		batchSize:   params.BatchSize,
		concurrency: params.Concurrency,
		recorder:    recorder,
	})

	report, err := eng.LabelRecords(ctx, lines, params.Fill)
	if err != nil {
		return err
	}

	if recorder != nil {
		if err := recorder.WriteTextfile(params.MetricsFile); err != nil {
			return err
		}
		log.Debug().Ctx(ctx).Str("path", params.MetricsFile).Msg("metrics written")
	}

	w := cmd.OutOrStdout()
	switch format {
	case outputFormatJSON:
		err = writeJSON(w, report)
	case outputFormatNDJSON:
		err = writeNDJSON(w, report.Rows)
	default:
		err = renderBatchTable(w, report, co2Unit())
	}
	if err != nil {
		return err
	}

	if params.Strict && report.Summary.Failed > 0 {
		return &ExitError{
			ExitCode: exitCodeRowsFailed,
			Reason:   fmt.Sprintf("%d of %d rows failed", report.Summary.Failed, report.Summary.Rows),
		}
	}
	return nil
}
