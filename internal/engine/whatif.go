package engine

import (
	"context"

	"github.com/rshade/lcaopt/internal/compare"
	"github.com/rshade/lcaopt/internal/lca"
	"github.com/rshade/lcaopt/internal/logging"
)

// WhatIfResult compares a modified input against its baseline.
type WhatIfResult struct {
	Baseline   lca.ImpactSummary `json:"baseline"`
	Modified   lca.ImpactSummary `json:"modified"`
	DeltaCO2   float64           `json:"deltaCO2"`
	Comparison compare.Result    `json:"comparison"`
}

// WhatIf scores both inputs and compares them. DeltaCO2 is modified minus
// baseline, so a negative delta is an improvement.
func (e *Engine) WhatIf(ctx context.Context, baseline, modified lca.ImpactInput) (*WhatIfResult, error) {
	log := logging.FromContext(ctx)

	base, err := e.scorer(baseline)
	if err != nil {
		return nil, err
	}
	mod, err := e.scorer(modified)
	if err != nil {
		log.Debug().
			Ctx(ctx).
			Str("component", "engine").
			Str("operation", "what_if").
			Err(err).
			Msg("modified input rejected")
		return nil, err
	}

	res := &WhatIfResult{
		Baseline: base,
		Modified: mod,
		DeltaCO2: lca.Round(mod.TotalCO2Emissions-base.TotalCO2Emissions, 2),
		Comparison: compare.Scenarios(
			compare.Scenario{Name: "baseline", Summary: base},
			compare.Scenario{Name: "modified", Summary: mod},
		),
	}
	log.Debug().
		Ctx(ctx).
		Str("component", "engine").
		Str("operation", "what_if").
		Float64("delta_co2", res.DeltaCO2).
		Msg("what-if evaluated")
	return res, nil
}
