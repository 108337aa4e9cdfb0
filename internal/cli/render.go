package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/rshade/lcaopt/internal/compare"
	"github.com/rshade/lcaopt/internal/engine"
	"github.com/rshade/lcaopt/internal/factors"
	"github.com/rshade/lcaopt/internal/greenops"
	"github.com/rshade/lcaopt/internal/impute"
	"github.com/rshade/lcaopt/internal/optimize"
	"github.com/rshade/lcaopt/internal/recommend"
	"github.com/rshade/lcaopt/internal/store"
)

const (
	tabPadding         = 2
	headerSeparatorLen = 60
	timeLayout         = "2006-01-02 15:04"
)

func writeHeader(w io.Writer, title string) {
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, strings.Repeat("-", headerSeparatorLen))
}

// renderAnalysisTable renders a full impact report.
func renderAnalysisTable(w io.Writer, a *engine.Analysis, unit string) error {
	s := a.Summary

	if a.Name != "" {
		writeHeader(w, "IMPACT SUMMARY: "+a.Name)
	} else {
		writeHeader(w, "IMPACT SUMMARY")
	}
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintf(tw, "Material:\t%s\n", a.Input.MaterialType)
	fmt.Fprintf(tw, "Total CO2:\t%s\n", greenops.FormatCO2(s.TotalCO2Emissions, unit))
	fmt.Fprintf(tw, "Total Energy:\t%s MJ\n", greenops.FormatFloat(s.TotalEnergyConsumption, 2))
	fmt.Fprintf(tw, "Total Water:\t%s L\n", greenops.FormatFloat(s.TotalWaterConsumption, 2))
	fmt.Fprintf(tw, "Efficiency Score:\t%.1f\n", s.EfficiencyScore)
	fmt.Fprintf(tw, "Circularity Score:\t%.1f\n", s.CircularityScore)
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flushing table writer: %w", err)
	}
	fmt.Fprintln(w)

	writeHeader(w, "PHASE BREAKDOWN")
	tw = tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(tw, "PHASE\tCO2 (kg)\tSHARE")
	fmt.Fprintln(tw, "-----\t--------\t-----")
	for _, p := range s.PhaseBreakdown {
		fmt.Fprintf(tw, "%s\t%s\t%.1f%%\n", p.Phase, greenops.FormatFloat(p.CO2, 2), p.PercentageOfTotal)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flushing table writer: %w", err)
	}

	if len(a.Imputed) > 0 {
		fmt.Fprintln(w)
		if err := renderImputed(w, a.Imputed); err != nil {
			return err
		}
	}

	fmt.Fprintln(w)
	renderRecommendationList(w, a.Recommendations)

	if len(a.Explanations) > 0 {
		fmt.Fprintln(w)
		writeHeader(w, "EXPLANATION")
		for _, line := range a.Explanations {
			fmt.Fprintf(w, "  %s\n", line)
		}
	}

	if a.Equivalents.Text != "" {
		fmt.Fprintln(w)
		writeHeader(w, "EQUIVALENT TO")
		for _, item := range a.Equivalents.Items {
			fmt.Fprintf(w, "  %s %s\n", item.Formatted, item.Label)
		}
	}

	if len(a.UnknownCategories) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Note: unrecognised %s scored with default factors\n", strings.Join(a.UnknownCategories, ", "))
	}
	return nil
}

func renderImputed(w io.Writer, filled []impute.Filled) error {
	writeHeader(w, "ESTIMATED FIELDS")
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(tw, "FIELD\tVALUE\tCONFIDENCE")
	fmt.Fprintln(tw, "-----\t-----\t----------")
	for _, f := range filled {
		fmt.Fprintf(tw, "%s\t%v\t%.0f%%\n", f.Field, f.Value, f.Confidence*100)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flushing table writer: %w", err)
	}
	return nil
}

func renderRecommendationList(w io.Writer, recs []recommend.Recommendation) {
	writeHeader(w, "RECOMMENDATIONS")
	if len(recs) == 0 {
		fmt.Fprintln(w, "  None")
		return
	}
	for _, r := range recs {
		fmt.Fprintf(w, "  %d. [%s] %s\n", r.Priority, r.Category, r.Message)
	}
}

// renderOptimizationTable renders the candidate list.
func renderOptimizationTable(w io.Writer, res optimize.Result, unit string) error {
	writeHeader(w, "OPTIMIZATION OPPORTUNITIES")
	fmt.Fprintf(w, "Baseline: %s\n\n", greenops.FormatCO2(res.BaselineCO2, unit))

	if len(res.Candidates) == 0 {
		fmt.Fprintln(w, "No alternative fuel or transport mode lowers the footprint.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(tw, "#\tPARAMETER\tCURRENT\tSWITCH TO\tREDUCTION\tRESULTING CO2")
	fmt.Fprintln(tw, "-\t---------\t-------\t---------\t---------\t-------------")
	for i, c := range res.Candidates {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%.1f%%\t%s\n",
			i+1, c.Parameter, c.BaselineValue, c.CandidateValue,
			c.PercentageReduction, greenops.FormatCO2(c.ResultingTotalCO2, unit))
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flushing table writer: %w", err)
	}

	fmt.Fprintf(w, "\nPotential reduction (top %d combined): %.1f%%\n",
		min(optimize.PotentialReductionDepth, len(res.Candidates)), res.PotentialReduction)
	return nil
}

// renderComparisonTable renders metric rows side by side.
func renderComparisonTable(w io.Writer, res compare.Result) error {
	writeHeader(w, "SCENARIO COMPARISON")
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)

	header := []string{"METRIC", "UNIT"}
	for i, name := range res.Scenarios {
		header = append(header, strings.ToUpper(name))
		if i > 0 {
			header = append(header, "CHANGE")
		}
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	for _, m := range res.Metrics {
		cols := []string{m.Name, m.Unit}
		for i, v := range m.Values {
			cols = append(cols, greenops.FormatFloat(v, 2))
			if i > 0 && i-1 < len(m.Changes) {
				cols = append(cols, fmt.Sprintf("%+.1f%%", m.Changes[i-1]))
			}
		}
		fmt.Fprintln(tw, strings.Join(cols, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flushing table writer: %w", err)
	}
	fmt.Fprintln(w, "\nPositive change = lower than the first scenario.")
	return nil
}

// renderBatchTable renders per-row labels followed by the summary.
func renderBatchTable(w io.Writer, report *engine.BatchReport, unit string) error {
	writeHeader(w, "BATCH RESULTS")
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(tw, "LINE\tNAME\tMATERIAL\tCO2\tEFFICIENCY\tSTATUS")
	fmt.Fprintln(tw, "----\t----\t--------\t---\t----------\t------")
	for _, row := range report.Rows {
		if row.Summary == nil {
			fmt.Fprintf(tw, "%d\t%s\t%s\t-\t-\terror: %s\n", row.Line, row.Name, row.Input.MaterialType, row.Error)
			continue
		}
		status := "ok"
		if len(row.Imputed) > 0 {
			status = fmt.Sprintf("ok (%d estimated)", len(row.Imputed))
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%.1f\t%s\n", row.Line, row.Name, row.Input.MaterialType,
			greenops.FormatCO2(row.Summary.TotalCO2Emissions, unit), row.Summary.EfficiencyScore, status)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flushing table writer: %w", err)
	}

	s := report.Summary
	fmt.Fprintln(w)
	writeHeader(w, "SUMMARY")
	tw = tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintf(tw, "Rows:\t%d (%d scored, %d failed)\n", s.Rows, s.Scored, s.Failed)
	fmt.Fprintf(tw, "Average CO2:\t%s\n", greenops.FormatCO2(s.AverageCO2, unit))
	fmt.Fprintf(tw, "Average Energy:\t%s MJ\n", greenops.FormatFloat(s.AverageEnergy, 2))
	fmt.Fprintf(tw, "Average Water:\t%s L\n", greenops.FormatFloat(s.AverageWater, 2))
	fmt.Fprintf(tw, "Average Circularity:\t%.1f\n", s.AverageCircularity)
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flushing table writer: %w", err)
	}

	if len(s.TopRecommendations) > 0 {
		fmt.Fprintln(w)
		writeHeader(w, "TOP RECOMMENDATIONS")
		for _, f := range s.TopRecommendations {
			fmt.Fprintf(w, "  %3d x %s\n", f.Count, f.Value)
		}
	}

	if len(s.MaterialDistribution) > 0 {
		fmt.Fprintln(w)
		writeHeader(w, "MATERIALS")
		names := make([]string, 0, len(s.MaterialDistribution))
		for name := range s.MaterialDistribution {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(w, "  %-20s %d\n", name, s.MaterialDistribution[name])
		}
	}
	return nil
}

// renderScenarioList renders saved scenarios in creation order.
func renderScenarioList(w io.Writer, scenarios []store.Scenario, unit string) error {
	if len(scenarios) == 0 {
		fmt.Fprintln(w, "No saved scenarios")
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tMATERIAL\tCO2\tCREATED\tNOTES")
	fmt.Fprintln(tw, "--\t----\t--------\t---\t-------\t-----")
	for _, s := range scenarios {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", s.ID, s.Name, s.Input.MaterialType,
			greenops.FormatCO2(s.Summary.TotalCO2Emissions, unit), s.CreatedAt.Local().Format(timeLayout), s.Notes)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flushing table writer: %w", err)
	}
	return nil
}

// renderFactorTables renders every factor table.
func renderFactorTables(w io.Writer, tables []factors.Table) error {
	fmt.Fprintf(w, "Factor dataset version %s\n\n", factors.DatasetVersion)
	for i, t := range tables {
		if i > 0 {
			fmt.Fprintln(w)
		}
		writeHeader(w, fmt.Sprintf("%s (%s)", strings.ToUpper(t.Name), t.Unit))
		keys := make([]string, 0, len(t.Entries))
		for k := range t.Entries {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
		for _, k := range keys {
			fmt.Fprintf(tw, "  %s\t%g\n", k, t.Entries[k])
		}
		if err := tw.Flush(); err != nil {
			return fmt.Errorf("flushing table writer: %w", err)
		}
	}
	return nil
}
