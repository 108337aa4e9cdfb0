package engine

import (
	"context"
	"sort"
	"time"

	"github.com/rshade/lcaopt/internal/engine/batch"
	"github.com/rshade/lcaopt/internal/factors"
	"github.com/rshade/lcaopt/internal/impute"
	"github.com/rshade/lcaopt/internal/ingest"
	"github.com/rshade/lcaopt/internal/lca"
	"github.com/rshade/lcaopt/internal/logging"
	"github.com/rshade/lcaopt/internal/recommend"
)

const topRecommendationCount = 5

// LabeledRow is the outcome for one input line.
type LabeledRow struct {
	Line            int                `json:"line"`
	Name            string             `json:"name,omitempty"`
	Input           lca.ImpactInput    `json:"input"`
	Summary         *lca.ImpactSummary `json:"summary,omitempty"`
	Recommendations []string           `json:"recommendations,omitempty"`
	Imputed         []string           `json:"imputed,omitempty"`
	Error           string             `json:"error,omitempty"`
}

// Frequency counts how often a value occurred.
type Frequency struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// BatchSummary aggregates a labelled batch.
type BatchSummary struct {
	Rows                 int            `json:"rows"`
	Scored               int            `json:"scored"`
	Failed               int            `json:"failed"`
	AverageCO2           float64        `json:"averageCO2"`
	AverageEnergy        float64        `json:"averageEnergy"`
	AverageWater         float64        `json:"averageWater"`
	AverageCircularity   float64        `json:"averageCircularity"`
	TopRecommendations   []Frequency    `json:"topRecommendations"`
	MaterialDistribution map[string]int `json:"materialDistribution"`
}

// BatchReport is the result of LabelRecords.
type BatchReport struct {
	Rows    []LabeledRow `json:"rows"`
	Summary BatchSummary `json:"summary"`
}

// LabelRecords scores every line. Lines that failed to decode or score are
// kept with an error message; they never abort the batch. Imputation runs
// sequentially so a seeded filler stays reproducible, scoring runs in
// concurrent chunks.
func (e *Engine) LabelRecords(ctx context.Context, lines []ingest.Line, fill bool) (*BatchReport, error) {
	log := logging.FromContext(ctx)
	start := time.Now()

	rows := make([]LabeledRow, len(lines))
	for i, line := range lines {
		rows[i] = LabeledRow{Line: line.Number, Name: line.Record.Name}
		if line.Err != nil {
			rows[i].Error = line.Err.Error()
			continue
		}
		in, report := e.Prepare(ctx, line.Record, fill)
		rows[i].Input = in.WithDefaults()
		rows[i].Imputed = report.Fields()
		if len(rows[i].Imputed) == 0 {
			rows[i].Imputed = nil
		}
	}

	report := &BatchReport{Rows: rows}
	if len(rows) == 0 {
		report.Summary = summarize(rows)
		return report, nil
	}

	proc, err := batch.NewProcessor[LabeledRow](e.batchSize)
	if err != nil {
		return nil, err
	}
	proc.WithProgress(func(done, total int) {
		log.Debug().
			Ctx(ctx).
			Str("component", "engine").
			Str("operation", "label").
			Int("done", done).
			Int("total", total).
			Msg("batch progress")
	})

	log.Debug().
		Ctx(ctx).
		Str("component", "engine").
		Str("operation", "label").
		Int("batch_size", proc.Size()).
		Int("concurrency", e.concurrency).
		Msg("scoring batch")

	score := func(_ context.Context, chunk []LabeledRow, _ int) error {
		for i := range chunk {
			e.labelRow(&chunk[i])
		}
		return nil
	}
	if e.concurrency <= 1 {
		err = proc.Process(ctx, rows, score)
	} else {
		err = proc.ProcessConcurrent(ctx, rows, score, e.concurrency)
	}
	if err != nil {
		return nil, err
	}

	report.Summary = summarize(rows)
	if e.recorder != nil {
		e.recorder.ObserveDuration("label", time.Since(start))
	}
	log.Info().
		Ctx(ctx).
		Str("component", "engine").
		Str("operation", "label").
		Int("rows", report.Summary.Rows).
		Int("failed", report.Summary.Failed).
		Int64("duration_ms", time.Since(start).Milliseconds()).
		Msg("batch labelling complete")
	return report, nil
}

func (e *Engine) labelRow(row *LabeledRow) {
	if row.Error != "" {
		e.observeRejected()
		return
	}
	summary, err := e.scorer(row.Input)
	if err != nil {
		row.Error = err.Error()
		e.observeRejected()
		return
	}
	row.Summary = &summary
	row.Recommendations = recommend.Messages(recommend.Generate(row.Input, summary))
	if e.recorder != nil {
		e.recorder.ObserveScored(summary.TotalCO2Emissions)
	}
}

func summarize(rows []LabeledRow) BatchSummary {
	s := BatchSummary{Rows: len(rows), MaterialDistribution: map[string]int{}}
	recCounts := map[string]int{}
	var firstSeen []string

	for _, row := range rows {
		if row.Summary == nil {
			s.Failed++
			continue
		}
		s.Scored++
		s.AverageCO2 += row.Summary.TotalCO2Emissions
		s.AverageEnergy += row.Summary.TotalEnergyConsumption
		s.AverageWater += row.Summary.TotalWaterConsumption
		s.AverageCircularity += row.Summary.CircularityScore
		s.MaterialDistribution[factors.NormalizeKey(row.Input.MaterialType)]++
		for _, msg := range row.Recommendations {
			if recCounts[msg] == 0 {
				firstSeen = append(firstSeen, msg)
			}
			recCounts[msg]++
		}
	}

	if s.Scored > 0 {
		n := float64(s.Scored)
		s.AverageCO2 = lca.Round(s.AverageCO2/n, 2)
		s.AverageEnergy = lca.Round(s.AverageEnergy/n, 2)
		s.AverageWater = lca.Round(s.AverageWater/n, 2)
		s.AverageCircularity = lca.Round(s.AverageCircularity/n, 1)
	}

	for _, msg := range firstSeen {
		s.TopRecommendations = append(s.TopRecommendations, Frequency{Value: msg, Count: recCounts[msg]})
	}
	sort.SliceStable(s.TopRecommendations, func(i, j int) bool {
		return s.TopRecommendations[i].Count > s.TopRecommendations[j].Count
	})
	if len(s.TopRecommendations) > topRecommendationCount {
		s.TopRecommendations = s.TopRecommendations[:topRecommendationCount]
	}
	return s
}

// Ensure SmartFiller satisfies the interface the engine consumes.
var _ impute.Filler = (*impute.SmartFiller)(nil)
