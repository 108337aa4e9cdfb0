package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	r := NewRecorder()
	r.ObserveScored(120)
	r.ObserveScored(80)
	r.ObserveRejected()
	r.ObserveCandidates(3)
	r.ObserveDuration("analyze", 15*time.Millisecond)

	assert.InDelta(t, 2.0, testutil.ToFloat64(r.recordsScored.WithLabelValues(OutcomeOK)), 1e-9)
	assert.InDelta(t, 1.0, testutil.ToFloat64(r.recordsScored.WithLabelValues(OutcomeInvalid)), 1e-9)
	assert.InDelta(t, 3.0, testutil.ToFloat64(r.candidatesFound), 1e-9)
	assert.Equal(t, 1, testutil.CollectAndCount(r.recordCO2))
}

func TestRecorder_WriteTextfile(t *testing.T) {
	r := NewRecorder()
	r.ObserveScored(42)

	path := filepath.Join(t.TempDir(), "lcaopt.prom")
	require.NoError(t, r.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `lcaopt_records_scored_total{outcome="ok"} 1`)
	assert.Contains(t, string(data), "lcaopt_record_co2_kg_count 1")
}

func TestRecorder_IsolatedRegistries(t *testing.T) {
	a, b := NewRecorder(), NewRecorder()
	a.ObserveRejected()
	assert.InDelta(t, 0.0, testutil.ToFloat64(b.recordsScored.WithLabelValues(OutcomeInvalid)), 1e-9)
	assert.NotSame(t, a.Registry(), b.Registry())
}
