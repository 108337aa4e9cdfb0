package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/lcaopt/internal/config"
	"github.com/rshade/lcaopt/internal/engine"
	"github.com/rshade/lcaopt/internal/impute"
	"github.com/rshade/lcaopt/internal/ingest"
	"github.com/rshade/lcaopt/internal/lca"
	"github.com/rshade/lcaopt/internal/metrics"
)

// Output formats accepted by --output.
const (
	outputFormatTable  = "table"
	outputFormatJSON   = "json"
	outputFormatNDJSON = "ndjson"
)

const (
	stdinPath         = "-"
	keyValueParts     = 2
	maxAssignments    = 32
	maxAssignValueLen = 256
	outputFlagUsage   = "Output format: table, json, or ndjson"
)

// ExitError carries a specific process exit code.
type ExitError struct {
	ExitCode int
	Reason   string
}

func (e *ExitError) Error() string {
	return e.Reason
}

// errNoRecords is returned when an input yields nothing to score.
var errNoRecords = errors.New("input contains no records")

// resolveOutputFormat applies the configured default when the flag was not set.
func resolveOutputFormat(cmd *cobra.Command, flag string) (string, error) {
	format := flag
	if !cmd.Flags().Changed("output") {
		format = config.GetGlobalConfig().Output.DefaultFormat
	}
	format = strings.ToLower(strings.TrimSpace(format))
	switch format {
	case outputFormatTable, outputFormatJSON, outputFormatNDJSON:
		return format, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", format)
	}
}

// co2Unit is the configured display unit for table output.
func co2Unit() string {
	return config.GetGlobalConfig().Output.CO2Unit
}

// openInput opens path, treating "-" as stdin.
func openInput(cmd *cobra.Command, path string) (io.ReadCloser, error) {
	if path == "" {
		return nil, errors.New("--input is required (use - for stdin)")
	}
	if path == stdinPath {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening input: %w", err)
	}
	return f, nil
}

// readLines reads every record from path.
func readLines(cmd *cobra.Command, path string) ([]ingest.Line, error) {
	rc, err := openInput(cmd, path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	lines, err := ingest.ReadAll(rc)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, errNoRecords
	}
	return lines, nil
}

// readRecord reads exactly one record from path.
func readRecord(cmd *cobra.Command, path string) (ingest.Record, error) {
	lines, err := readLines(cmd, path)
	if err != nil {
		return ingest.Record{}, err
	}
	if len(lines) > 1 {
		return ingest.Record{}, fmt.Errorf("expected a single record, got %d (use batch for multiple records)", len(lines))
	}
	if lines[0].Err != nil {
		return ingest.Record{}, lines[0].Err
	}
	return lines[0].Record, nil
}

// parseAssignments parses field=value flags into a map.
func parseAssignments(items []string) (map[string]string, error) {
	if len(items) > maxAssignments {
		return nil, fmt.Errorf("too many assignments: %d (max %d)", len(items), maxAssignments)
	}

	out := make(map[string]string, len(items))
	for _, item := range items {
		parts := strings.SplitN(item, "=", keyValueParts)
		if len(parts) != keyValueParts {
			return nil, fmt.Errorf("invalid assignment %q: expected field=value", item)
		}
		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		if key == "" {
			return nil, fmt.Errorf("field name cannot be empty in %q", item)
		}
		if len(value) > maxAssignValueLen {
			return nil, fmt.Errorf("value too large for field %q: %d bytes (max %d)", key, len(value), maxAssignValueLen)
		}
		out[key] = value
	}
	return out, nil
}

// applyAssignments returns in with every assignment applied in field order.
func applyAssignments(in lca.ImpactInput, assignments map[string]string) (lca.ImpactInput, error) {
	known := make(map[string]bool)
	for _, f := range lca.Fields() {
		known[f] = true
		v, ok := assignments[f]
		if !ok {
			continue
		}
		var err error
		if in, err = in.Set(f, v); err != nil {
			return in, err
		}
	}
	for f := range assignments {
		if !known[f] {
			return in, &lca.InputError{Field: f, Value: assignments[f], Reason: "unknown field"}
		}
	}
	return in, nil
}

// engineOptions collects the command-independent engine settings.
// Zero values fall back to the global config.
type engineOptions struct {
	fill        bool
	seed        uint64
	parallelism int
	batchSize   int
	concurrency int
	recorder    *metrics.Recorder
}

// newEngine builds an engine from the global config. A non-zero seed
// overrides impute.seed; when both are zero the filler is seeded randomly.
func newEngine(opts engineOptions) *engine.Engine {
	cfg := config.GetGlobalConfig()

	engOpts := []engine.Option{
		engine.WithParallelism(orDefault(opts.parallelism, cfg.Optimize.Parallelism)),
		engine.WithBatch(orDefault(opts.batchSize, cfg.Batch.BatchSize), orDefault(opts.concurrency, cfg.Batch.Concurrency)),
	}
	if opts.fill {
		seed := cfg.Impute.Seed
		if opts.seed != 0 {
			seed = opts.seed
		}
		if seed == 0 {
			seed = rand.Uint64() //nolint:gosec // Not security sensitive.
		}
		engOpts = append(engOpts, engine.WithFiller(impute.NewSmartFiller(seed)))
	}
	if opts.recorder != nil {
		engOpts = append(engOpts, engine.WithRecorder(opts.recorder))
	}
	return engine.New(engOpts...)
}

func orDefault(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}

// writeJSON writes v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeNDJSON writes each item on its own line.
func writeNDJSON[T any](w io.Writer, items []T) error {
	enc := json.NewEncoder(w)
	for _, item := range items {
		if err := enc.Encode(item); err != nil {
			return err
		}
	}
	return nil
}
