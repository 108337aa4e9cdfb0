// Package optimize searches single-parameter substitutions that lower the
// emissions of an input record.
//
// The search space is the enumerated fuel and transport alternatives from the
// factor tables. Every candidate re-runs the full impact pipeline through a
// Scorer, so the result reflects the same model the caller reports on.
package optimize

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/rshade/lcaopt/internal/factors"
	"github.com/rshade/lcaopt/internal/lca"
)

// ErrOptimizationUnavailable is returned when the baseline cannot be scored.
var ErrOptimizationUnavailable = errors.New("optimization unavailable")

const (
	// MaxCandidates is the number of candidates returned.
	MaxCandidates = 5
	// PotentialReductionDepth is how many top candidates are summed into the
	// potential reduction estimate.
	PotentialReductionDepth = 3
	percent                 = 100.0
)

// Parameter names the input field a candidate substitutes.
type Parameter string

// Searchable parameters.
const (
	ParameterFuelType      Parameter = "fuelType"
	ParameterTransportMode Parameter = "transportMode"
)

// Scorer scores a full input record. lca.ComputeImpact is the default.
type Scorer func(lca.ImpactInput) (lca.ImpactSummary, error)

// Candidate is one alternative that strictly beats the baseline.
type Candidate struct {
	Parameter           Parameter `json:"parameter"`
	BaselineValue       string    `json:"baselineValue"`
	CandidateValue      string    `json:"candidateValue"`
	PercentageReduction float64   `json:"percentageReduction"`
	ResultingTotalCO2   float64   `json:"resultingTotalCO2"`
}

// Result is the outcome of a search.
//
// PotentialReduction sums the percentage reductions of the top three
// candidates. Substitutions on different parameters do not combine
// additively in the model, so this is an upper-bound style estimate rather
// than the score of a combined configuration.
type Result struct {
	BaselineCO2        float64     `json:"baselineCO2"`
	Candidates         []Candidate `json:"candidates"`
	PotentialReduction float64     `json:"potentialReduction"`
}

// Searcher runs the optimization with a configurable scorer and parallelism.
type Searcher struct {
	scorer      Scorer
	parallelism int
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithScorer replaces the default scorer.
func WithScorer(s Scorer) Option {
	return func(o *Searcher) {
		if s != nil {
			o.scorer = s
		}
	}
}

// WithParallelism bounds how many candidates are scored concurrently.
// Values below 1 mean sequential evaluation.
func WithParallelism(n int) Option {
	return func(o *Searcher) {
		if n < 1 {
			n = 1
		}
		o.parallelism = n
	}
}

// NewSearcher creates a Searcher. Without options it scores with
// lca.ComputeImpact sequentially.
func NewSearcher(opts ...Option) *Searcher {
	s := &Searcher{scorer: lca.ComputeImpact, parallelism: 1}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FindOptimizations runs a sequential search with the default scorer.
func FindOptimizations(baseline lca.ImpactInput) (Result, error) {
	return NewSearcher().Find(context.Background(), baseline)
}

type variant struct {
	param     Parameter
	baseValue string
	value     string
	input     lca.ImpactInput
}

// Find scores the baseline and every enumerated alternative, returning at
// most MaxCandidates that strictly lower total CO2, ordered by percentage
// reduction with ties in discovery order. The ordering does not depend on
// the parallelism setting.
func (s *Searcher) Find(ctx context.Context, baseline lca.ImpactInput) (Result, error) {
	baseline = baseline.WithDefaults()
	base, err := s.scorer(baseline)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrOptimizationUnavailable, err)
	}

	variants := enumerate(baseline)
	scored := make([]*Candidate, len(variants))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.parallelism)
	for i, v := range variants {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			summary, scoreErr := s.scorer(v.input)
			if scoreErr != nil {
				return fmt.Errorf("scoring %s=%s: %w", v.param, v.value, scoreErr)
			}
			if summary.TotalCO2Emissions >= base.TotalCO2Emissions {
				return nil
			}
			scored[i] = &Candidate{
				Parameter:           v.param,
				BaselineValue:       v.baseValue,
				CandidateValue:      v.value,
				PercentageReduction: lca.Round((base.TotalCO2Emissions-summary.TotalCO2Emissions)/base.TotalCO2Emissions*percent, 1),
				ResultingTotalCO2:   lca.Round(summary.TotalCO2Emissions, 2),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	candidates := make([]Candidate, 0, len(scored))
	for _, c := range scored {
		if c != nil {
			candidates = append(candidates, *c)
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].PercentageReduction > candidates[j].PercentageReduction
	})
	if len(candidates) > MaxCandidates {
		candidates = candidates[:MaxCandidates]
	}

	var potential float64
	for i := 0; i < len(candidates) && i < PotentialReductionDepth; i++ {
		potential += candidates[i].PercentageReduction
	}

	return Result{
		BaselineCO2:        base.TotalCO2Emissions,
		Candidates:         candidates,
		PotentialReduction: lca.Round(potential, 1),
	}, nil
}

// enumerate lists the alternatives in discovery order: fuels first, then
// transport modes when the record actually moves goods.
func enumerate(baseline lca.ImpactInput) []variant {
	var out []variant
	for _, fuel := range factors.FuelAlternatives() {
		if factors.SameCategory(fuel, baseline.FuelType) {
			continue
		}
		out = append(out, variant{
			param: ParameterFuelType, baseValue: baseline.FuelType, value: fuel,
			input: baseline.WithFuelType(fuel),
		})
	}

	if baseline.TransportDistanceKm <= 0 {
		return out
	}
	for _, mode := range factors.TransportAlternatives() {
		if factors.SameCategory(mode, baseline.TransportMode) {
			continue
		}
		out = append(out, variant{
			param: ParameterTransportMode, baseValue: baseline.TransportMode, value: mode,
			input: baseline.WithTransportMode(mode),
		})
	}
	return out
}
