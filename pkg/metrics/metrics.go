// Package metrics records dispatch and service activity.
package metrics

// Recorder is the set of measurements taken by the dispatch services and HTTP API
type Recorder interface {
	// RecordCandidates counts employees scored for one job, and how many were disqualified
	RecordCandidates(scorer string, evaluated, disqualified int)

	// RecordBatch counts the outcome of one batch dispatch run
	RecordBatch(decisions, unmatched, skipped int)

	// RecordNotification counts one assignment email by result (sent, failed)
	RecordNotification(result string)

	// ObserveRequest observes one HTTP request's latency in seconds
	ObserveRequest(route string, status int, seconds float64)
}

// NopRecorder discards all measurements
type NopRecorder struct{}

var _ Recorder = (*NopRecorder)(nil)

// NewNop creates a recorder that discards everything
func NewNop() *NopRecorder {
	return &NopRecorder{}
}

func (n *NopRecorder) RecordCandidates(_ string, _, _ int) {}

func (n *NopRecorder) RecordBatch(_, _, _ int) {}

func (n *NopRecorder) RecordNotification(_ string) {}

func (n *NopRecorder) ObserveRequest(_ string, _ int, _ float64) {}
