// Package engine orchestrates scoring, imputation, recommendations and
// optimization for the CLI and TUI, and logs each operation.
package engine

import (
	"context"
	"time"

	"github.com/rshade/lcaopt/internal/greenops"
	"github.com/rshade/lcaopt/internal/impute"
	"github.com/rshade/lcaopt/internal/ingest"
	"github.com/rshade/lcaopt/internal/lca"
	"github.com/rshade/lcaopt/internal/logging"
	"github.com/rshade/lcaopt/internal/metrics"
	"github.com/rshade/lcaopt/internal/optimize"
	"github.com/rshade/lcaopt/internal/recommend"
)

// Engine wires the model packages together.
type Engine struct {
	parallelism int
	batchSize   int
	concurrency int
	filler      impute.Filler
	recorder    *metrics.Recorder
	scorer      optimize.Scorer
}

// Option configures an Engine.
type Option func(*Engine)

// WithParallelism sets the optimizer's worker count.
func WithParallelism(n int) Option {
	return func(e *Engine) { e.parallelism = n }
}

// WithBatch sets batch chunk size and concurrency for LabelRecords.
func WithBatch(size, concurrency int) Option {
	return func(e *Engine) {
		e.batchSize = size
		e.concurrency = concurrency
	}
}

// WithFiller enables imputation of missing fields.
func WithFiller(f impute.Filler) Option {
	return func(e *Engine) { e.filler = f }
}

// WithRecorder records metrics for every operation.
func WithRecorder(r *metrics.Recorder) Option {
	return func(e *Engine) { e.recorder = r }
}

// WithScorer replaces lca.ComputeImpact, mainly for tests.
func WithScorer(s optimize.Scorer) Option {
	return func(e *Engine) { e.scorer = s }
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{parallelism: 1, batchSize: 100, concurrency: 1, scorer: lca.ComputeImpact}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Analysis is the full report for one record.
type Analysis struct {
	Name              string                     `json:"name,omitempty"`
	Input             lca.ImpactInput            `json:"input"`
	Summary           lca.ImpactSummary          `json:"summary"`
	Recommendations   []recommend.Recommendation `json:"recommendations"`
	Explanations      []string                   `json:"explanations,omitempty"`
	Equivalents       greenops.Equivalents       `json:"equivalents"`
	Imputed           []impute.Filled            `json:"imputed,omitempty"`
	UnknownCategories []string                   `json:"unknownCategories,omitempty"`
}

// Prepare fills the record's missing fields when fill is set and a filler
// is configured, and returns the input to score.
func (e *Engine) Prepare(ctx context.Context, rec ingest.Record, fill bool) (lca.ImpactInput, impute.Report) {
	if !fill || e.filler == nil || len(rec.Missing) == 0 {
		return rec.Input, impute.Report{}
	}

	in, report := e.filler.Fill(rec.Input, rec.Missing)
	logging.FromContext(ctx).Debug().
		Ctx(ctx).
		Str("component", "engine").
		Str("operation", "impute").
		Strs("fields", report.Fields()).
		Msg("filled missing fields")
	return in, report
}

// Analyze scores a record and attaches recommendations, explanations and
// equivalents.
func (e *Engine) Analyze(ctx context.Context, rec ingest.Record, fill bool) (*Analysis, error) {
	log := logging.FromContext(ctx)
	start := time.Now()

	in, report := e.Prepare(ctx, rec, fill)
	log.Debug().
		Ctx(ctx).
		Str("component", "engine").
		Str("operation", "analyze").
		Str("material", in.MaterialType).
		Int("missing", len(rec.Missing)).
		Msg("starting impact analysis")

	summary, err := e.scorer(in)
	if err != nil {
		e.observeRejected()
		log.Error().
			Ctx(ctx).
			Str("component", "engine").
			Str("operation", "analyze").
			Err(err).
			Msg("impact analysis failed")
		return nil, err
	}

	equivalents, err := greenops.Calculate(summary.TotalCO2Emissions)
	if err != nil {
		log.Warn().Ctx(ctx).Str("component", "engine").Err(err).Msg("equivalents unavailable")
	}

	analysis := &Analysis{
		Name:              rec.Name,
		Input:             in.WithDefaults(),
		Summary:           summary,
		Recommendations:   recommend.Generate(in, summary),
		Explanations:      recommend.Explain(in, summary),
		Equivalents:       equivalents,
		Imputed:           report.Filled,
		UnknownCategories: in.UnknownCategories(),
	}

	if len(analysis.UnknownCategories) > 0 {
		log.Warn().
			Ctx(ctx).
			Str("component", "engine").
			Strs("fields", analysis.UnknownCategories).
			Msg("unknown categories scored with fallback factors")
	}

	e.observeScored("analyze", summary.TotalCO2Emissions, time.Since(start))
	log.Info().
		Ctx(ctx).
		Str("component", "engine").
		Str("operation", "analyze").
		Float64("total_co2", summary.TotalCO2Emissions).
		Float64("efficiency", summary.EfficiencyScore).
		Int64("duration_ms", time.Since(start).Milliseconds()).
		Msg("impact analysis complete")
	return analysis, nil
}

// Optimize searches lower-emission alternatives for in.
func (e *Engine) Optimize(ctx context.Context, in lca.ImpactInput) (optimize.Result, error) {
	log := logging.FromContext(ctx)
	start := time.Now()

	log.Debug().
		Ctx(ctx).
		Str("component", "engine").
		Str("operation", "optimize").
		Int("parallelism", e.parallelism).
		Msg("starting optimization search")

	searcher := optimize.NewSearcher(optimize.WithScorer(e.scorer), optimize.WithParallelism(e.parallelism))
	res, err := searcher.Find(ctx, in)
	if err != nil {
		log.Error().
			Ctx(ctx).
			Str("component", "engine").
			Str("operation", "optimize").
			Err(err).
			Msg("optimization failed")
		return optimize.Result{}, err
	}

	if e.recorder != nil {
		e.recorder.ObserveCandidates(len(res.Candidates))
		e.recorder.ObserveDuration("optimize", time.Since(start))
	}
	log.Info().
		Ctx(ctx).
		Str("component", "engine").
		Str("operation", "optimize").
		Float64("baseline_co2", res.BaselineCO2).
		Int("candidates", len(res.Candidates)).
		Float64("potential_reduction", res.PotentialReduction).
		Int64("duration_ms", time.Since(start).Milliseconds()).
		Msg("optimization complete")
	return res, nil
}

func (e *Engine) observeScored(op string, co2 float64, d time.Duration) {
	if e.recorder == nil {
		return
	}
	e.recorder.ObserveScored(co2)
	e.recorder.ObserveDuration(op, d)
}

func (e *Engine) observeRejected() {
	if e.recorder != nil {
		e.recorder.ObserveRejected()
	}
}
