package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNopRecorder(t *testing.T) {
	rec := NewNop()

	require.NotPanics(t, func() {
		rec.RecordCandidates("Fit", 3, 1)
		rec.RecordBatch(0, 0, 0)
		rec.RecordNotification("sent")
		rec.ObserveRequest("/v1/dispatch", 200, 0.01)
	})
}

func TestPrometheusRecorder_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := NewPrometheus(reg, "test")

	rec.RecordCandidates("Fit", 4, 1)
	rec.RecordCandidates("Fit", 2, 0)
	rec.RecordCandidates("Simple", 5, 2)
	rec.RecordBatch(3, 1, 2)
	rec.RecordNotification("sent")
	rec.RecordNotification("failed")
	rec.RecordNotification("sent")

	assert.Equal(t, 6.0, testutil.ToFloat64(rec.candidatesEvaluated.WithLabelValues("Fit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.candidatesDisqualified.WithLabelValues("Fit")))
	assert.Equal(t, 2.0, testutil.ToFloat64(rec.candidatesDisqualified.WithLabelValues("Simple")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.batchRuns))
	assert.Equal(t, 3.0, testutil.ToFloat64(rec.batchJobs.WithLabelValues("assigned")))
	assert.Equal(t, 2.0, testutil.ToFloat64(rec.batchJobs.WithLabelValues("skipped")))
	assert.Equal(t, 2.0, testutil.ToFloat64(rec.notifications.WithLabelValues("sent")))
}

func TestPrometheusRecorder_RequestLatency(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := NewPrometheus(reg, "")

	rec.ObserveRequest("/v1/candidates", 200, 0.004)
	rec.ObserveRequest("/v1/candidates", 400, 0.001)

	assert.Equal(t, 2, testutil.CollectAndCount(rec.requestLatency))

	families, err := reg.Gather()
	require.NoError(t, err)
	var names []string
	for _, mf := range families {
		names = append(names, mf.GetName())
	}
	assert.Contains(t, names, "dispatch_http_request_duration_seconds")
}
