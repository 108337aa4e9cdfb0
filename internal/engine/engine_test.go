package engine

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/lcaopt/internal/impute"
	"github.com/rshade/lcaopt/internal/ingest"
	"github.com/rshade/lcaopt/internal/lca"
	"github.com/rshade/lcaopt/internal/metrics"
	"github.com/rshade/lcaopt/internal/optimize"
)

func referenceRecord() ingest.Record {
	return ingest.Record{Input: lca.ImpactInput{
		MaterialType:        "Iron Ore",
		ElectricityKwh:      1200,
		FuelType:            "Natural Gas",
		FuelMj:              1800,
		TransportMode:       "Truck",
		TransportDistanceKm: 250,
		LandfillLocation:    "Ghazipur Delhi",
		RecyclePercent:      20,
		ReusePercent:        10,
	}}
}

func TestEngine_Analyze(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	ctx := logger.WithContext(context.Background())

	rec := metrics.NewRecorder()
	eng := New(WithRecorder(rec))
	a, err := eng.Analyze(ctx, referenceRecord(), false)
	require.NoError(t, err)

	assert.InDelta(t, 1227.25, a.Summary.TotalCO2Emissions, 1e-9)
	assert.Equal(t, []string{"circular-economy", "carbon-offset"}, recommendationIDs(a))
	assert.NotEmpty(t, a.Equivalents.Items)
	assert.Empty(t, a.Imputed)
	assert.Empty(t, a.UnknownCategories)
	assert.Contains(t, buf.String(), `"operation":"analyze"`)

	reg := rec.Registry()
	count, err := testutil.GatherAndCount(reg, "lcaopt_records_scored_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestEngine_AnalyzeFillsMissing(t *testing.T) {
	eng := New(WithFiller(impute.NewSmartFiller(5)))
	rec := ingest.Record{
		Input:   lca.ImpactInput{MaterialType: "Copper"},
		Missing: []string{lca.FieldElectricityKwh, lca.FieldFuelMj},
	}

	a, err := eng.Analyze(context.Background(), rec, true)
	require.NoError(t, err)
	require.Len(t, a.Imputed, 2)
	assert.Greater(t, a.Input.ElectricityKwh, 0.0)
	assert.Greater(t, a.Input.FuelMj, 0.0)
	assert.Equal(t, lca.DefaultFuelType, a.Input.FuelType)

	noFill, err := eng.Analyze(context.Background(), rec, false)
	require.NoError(t, err)
	assert.Empty(t, noFill.Imputed)
	assert.Zero(t, noFill.Input.ElectricityKwh)
}

func TestEngine_AnalyzeInvalid(t *testing.T) {
	rec := metrics.NewRecorder()
	eng := New(WithRecorder(rec))
	bad := referenceRecord()
	bad.Input.FuelMj = -1

	_, err := eng.Analyze(context.Background(), bad, false)
	assert.ErrorIs(t, err, lca.ErrInvalidInput)
}

func TestEngine_Optimize(t *testing.T) {
	eng := New(WithParallelism(4))
	res, err := eng.Optimize(context.Background(), referenceRecord().Input)
	require.NoError(t, err)
	require.Len(t, res.Candidates, 3)
	assert.Equal(t, "Ship", res.Candidates[0].CandidateValue)

	_, err = eng.Optimize(context.Background(), lca.ImpactInput{ElectricityKwh: -1})
	assert.ErrorIs(t, err, optimize.ErrOptimizationUnavailable)
}

func TestEngine_LabelRecords(t *testing.T) {
	input := strings.Join([]string{
		`{"name":"a","materialType":"Gold","electricityKwh":2500,"fuelType":"Coal","fuelMj":3000}`,
		`{"name":"b","materialType":"Gold","fuelType":"Coal","fuelMj":100}`,
		`{"name":"c","fuelMj":"oops"}`,
		`{"name":"d","materialType":"Copper"}`,
	}, "\n")
	lines, err := ingest.ReadAll(strings.NewReader(input))
	require.NoError(t, err)

	rec := metrics.NewRecorder()
	eng := New(WithBatch(2, 2), WithRecorder(rec))
	report, err := eng.LabelRecords(context.Background(), lines, false)
	require.NoError(t, err)
	require.Len(t, report.Rows, 4)

	assert.Equal(t, "a", report.Rows[0].Name)
	require.NotNil(t, report.Rows[0].Summary)
	assert.NotEmpty(t, report.Rows[2].Error)
	assert.Nil(t, report.Rows[2].Summary)

	s := report.Summary
	assert.Equal(t, 4, s.Rows)
	assert.Equal(t, 3, s.Scored)
	assert.Equal(t, 1, s.Failed)
	assert.Equal(t, map[string]int{"gold": 2, "copper": 1}, s.MaterialDistribution)
	require.NotEmpty(t, s.TopRecommendations)
	assert.Equal(t, "Switch from coal to natural gas or biomass to reduce CO2 emissions by 40-80%", s.TopRecommendations[0].Value)
	assert.Equal(t, 2, s.TopRecommendations[0].Count)
	assert.LessOrEqual(t, len(s.TopRecommendations), 5)

	wantAvg := (report.Rows[0].Summary.TotalCO2Emissions +
		report.Rows[1].Summary.TotalCO2Emissions +
		report.Rows[3].Summary.TotalCO2Emissions) / 3
	assert.InDelta(t, wantAvg, s.AverageCO2, 0.01)
}

func TestEngine_LabelRecordsSequentialMatchesConcurrent(t *testing.T) {
	input := strings.Join([]string{
		`{"materialType":"Gold","fuelType":"Coal","fuelMj":3000}`,
		`{"materialType":"Zinc","transportMode":"Ship","transportDistanceKm":900}`,
		`{"materialType":"Copper","recyclePercent":40}`,
	}, "\n")
	lines, err := ingest.ReadAll(strings.NewReader(input))
	require.NoError(t, err)

	sequential, err := New(WithBatch(1, 1)).LabelRecords(context.Background(), lines, false)
	require.NoError(t, err)
	concurrent, err := New(WithBatch(1, 3)).LabelRecords(context.Background(), lines, false)
	require.NoError(t, err)

	assert.Equal(t, sequential, concurrent)
	assert.Equal(t, 3, sequential.Summary.Scored)
}

func TestEngine_LabelRecordsEmpty(t *testing.T) {
	report, err := New().LabelRecords(context.Background(), nil, false)
	require.NoError(t, err)
	assert.Zero(t, report.Summary.Rows)
	assert.Empty(t, report.Summary.TopRecommendations)
}

func TestEngine_LabelRecordsScorerError(t *testing.T) {
	boom := errors.New("scorer down")
	eng := New(WithScorer(func(lca.ImpactInput) (lca.ImpactSummary, error) { return lca.ImpactSummary{}, boom }))
	report, err := eng.LabelRecords(context.Background(), []ingest.Line{{Number: 1}}, false)
	require.NoError(t, err)
	assert.Equal(t, "scorer down", report.Rows[0].Error)
	assert.Equal(t, 1, report.Summary.Failed)
}

func TestEngine_WhatIf(t *testing.T) {
	base := referenceRecord().Input
	res, err := New().WhatIf(context.Background(), base, base.WithTransportMode("Ship"))
	require.NoError(t, err)
	assert.InDelta(t, -262.5, res.DeltaCO2, 1e-9)
	assert.InDelta(t, 21.4, res.Comparison.Metrics[0].Changes[0], 1e-9)

	_, err = New().WhatIf(context.Background(), base, lca.ImpactInput{ReusePercent: 500})
	assert.ErrorIs(t, err, lca.ErrInvalidInput)
}

func recommendationIDs(a *Analysis) []string {
	ids := make([]string, len(a.Recommendations))
	for i, r := range a.Recommendations {
		ids[i] = r.ID
	}
	return ids
}
