// Package lca implements the multi-phase life-cycle impact model.
//
// An ImpactInput is scored by five independent phase calculators (extraction,
// processing, transport, end-of-life and circularity) and the results are
// folded into an ImpactSummary by Aggregate. ComputeImpact runs the whole
// pipeline and is the single entry point used by the optimizer, the batch
// labeller and the CLI.
//
// Everything in this package is pure: no I/O, no logging, no shared mutable
// state. Identical inputs always produce identical summaries.
package lca
